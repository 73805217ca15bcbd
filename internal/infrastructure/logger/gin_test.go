package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"ok", http.StatusOK, zapcore.InfoLevel},
		{"client error", http.StatusConflict, zapcore.WarnLevel},
		{"server error", http.StatusBadGateway, zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.DebugLevel)
			r := gin.New()
			r.Use(func(c *gin.Context) { c.Set("request_id", "req-42"); c.Next() })
			r.Use(GinMiddleware(zap.New(core)))
			r.GET("/stores/:id/pull", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stores/1/pull?x=1", nil))

			entries := recorded.FilterMessage("HTTP Request").All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			fields := entries[0].ContextMap()
			assert.Equal(t, "req-42", fields["request_id"])
			assert.Equal(t, "/stores/1/pull", fields["path"])
			assert.Equal(t, "x=1", fields["query"])
			assert.Equal(t, "/stores/:id/pull", fields["route"])
			assert.Equal(t, "1", fields["store_id"])
			assert.EqualValues(t, tt.status, fields["status"])
		})
	}
}

func TestGinMiddleware_LoggerReachesHandlers(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(GinMiddleware(zap.New(core)))
	r.GET("/", func(c *gin.Context) {
		GetGinLogger(c).Info("from gin context")
		L(c.Request.Context()).Info("from request context")
		c.Status(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1, recorded.FilterMessage("from gin context").Len())
	assert.Equal(t, 1, recorded.FilterMessage("from request context").Len())
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.Equal(t, 1, recorded.FilterMessage("Panic recovered").Len())
}

func TestGetGinLogger_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))
}
