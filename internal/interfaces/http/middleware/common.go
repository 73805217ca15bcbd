package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
)

// Gin context keys shared by the middleware chain
const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
	// MaxRequestIDLength bounds client supplied request IDs
	MaxRequestIDLength = 128
)

// CORSConfig holds CORS middleware configuration
type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           time.Duration
}

// CORSConfigFromHTTP builds the CORS settings from the HTTP section. An empty
// origin list rejects every cross-origin request.
func CORSConfigFromHTTP(cfg config.HTTPConfig) CORSConfig {
	return CORSConfig{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     cfg.CORSAllowMethods,
		AllowHeaders:     cfg.CORSAllowHeaders,
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}

// CORS returns a CORS middleware
func CORS(cfg CORSConfig) gin.HandlerFunc {
	allowWildcard := slices.Contains(cfg.AllowOrigins, "*")

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		allowed := ""
		switch {
		case len(cfg.AllowOrigins) == 0:
		case allowWildcard:
			allowed = "*"
		case slices.Contains(cfg.AllowOrigins, origin):
			allowed = origin
		}

		if allowed != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", allowed)
			if cfg.AllowCredentials && allowed != "*" {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowHeaders, ", "))
			h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowMethods, ", "))
			if len(cfg.ExposeHeaders) > 0 {
				h.Set("Access-Control-Expose-Headers", strings.Join(cfg.ExposeHeaders, ", "))
			}
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", strconv.Itoa(int(cfg.MaxAge.Seconds())))
			}
		}

		// preflight always ends here, with or without CORS headers
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestID reuses the caller's X-Request-ID or generates one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if len(requestID) > MaxRequestIDLength {
			requestID = requestID[:MaxRequestIDLength]
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request ID set by RequestID
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// Secure adds security headers. The API serves JSON only, so the CSP denies
// everything except the Swagger UI assets.
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if !strings.HasPrefix(c.Request.URL.Path, "/swagger") {
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}
		c.Next()
	}
}
