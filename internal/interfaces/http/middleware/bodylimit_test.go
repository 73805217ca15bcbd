package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	newRouter := func(limit int64) *gin.Engine {
		router := gin.New()
		router.Use(BodyLimit(limit))
		router.POST("/test", func(c *gin.Context) {
			if _, err := io.ReadAll(c.Request.Body); err != nil {
				c.String(http.StatusRequestEntityTooLarge, "too large")
				return
			}
			c.String(http.StatusOK, "ok")
		})
		return router
	}

	t.Run("allows request within limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte("small body")))
		w := httptest.NewRecorder()
		newRouter(1024).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects request exceeding Content-Length limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader([]byte(strings.Repeat("x", 200))))
		w := httptest.NewRecorder()
		newRouter(100).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_PAYLOAD_TOO_LARGE")
	})

	t.Run("caps streamed bodies without Content-Length", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		newRouter(100).ServeHTTP(w, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
