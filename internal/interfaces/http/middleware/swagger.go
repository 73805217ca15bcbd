package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
)

// SwaggerProtection hides the API docs when disabled and restricts them to
// the configured IPs and CIDR ranges
func SwaggerProtection(cfg config.SwaggerConfig) gin.HandlerFunc {
	var nets []*net.IPNet
	for _, entry := range cfg.AllowedIPs {
		if !strings.Contains(entry, "/") {
			if ip := net.ParseIP(entry); ip != nil {
				bits := 32
				if ip.To4() == nil {
					bits = 128
				}
				nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
			}
			continue
		}
		if _, network, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, network)
		}
	}

	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNotFound, "API documentation is not available", GetRequestID(c)))
			return
		}
		if len(cfg.AllowedIPs) > 0 && !ipAllowed(net.ParseIP(c.ClientIP()), nets) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeForbidden, "Access to API documentation is restricted", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func ipAllowed(ip net.IP, nets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, n := range nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
