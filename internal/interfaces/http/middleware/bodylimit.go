package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose declared body exceeds maxBytes and caps
// streamed bodies at the same size
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodePayloadTooLarge,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
