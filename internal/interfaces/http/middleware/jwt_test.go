package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/auth"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/config"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/logger"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
)

func newTestJWTService(expiration time.Duration) *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: expiration,
		Issuer:                "test-issuer",
	})
}

func newJWTRouter(svc *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuth(DefaultJWTConfig(svc)))
	handler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     GetJWTUserID(c),
			"ctx_user_id": logger.GetUserID(c.Request.Context()),
		})
	}
	router.GET("/api/v1/stores", handler)
	router.GET("/health", handler)
	router.POST("/api/v1/callbacks/couriers/:id/status", handler)
	return router
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	userID := uuid.New()
	token, _, err := svc.GenerateAccessToken(userID, "owner")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
	req.Header.Set(AuthHeaderKey, BearerPrefix+token)
	rec := httptest.NewRecorder()
	newJWTRouter(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, userID.String(), body["user_id"])
	assert.Equal(t, userID.String(), body["ctx_user_id"])
}

func TestJWTAuth_Rejections(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	otherSvc := auth.NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-chars",
		AccessTokenExpiration: time.Minute,
		Issuer:                "test-issuer",
	})
	forged, _, err := otherSvc.GenerateAccessToken(uuid.New(), "mallory")
	require.NoError(t, err)
	expired, _, err := newTestJWTService(-time.Minute).GenerateAccessToken(uuid.New(), "late")
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		wantCode string
	}{
		{"missing header", "", dto.ErrCodeTokenInvalid},
		{"basic scheme", "Basic abc", dto.ErrCodeTokenInvalid},
		{"empty bearer", "Bearer ", dto.ErrCodeTokenInvalid},
		{"garbage token", "Bearer not-a-jwt", dto.ErrCodeTokenInvalid},
		{"wrong signing key", "Bearer " + forged, dto.ErrCodeTokenInvalid},
		{"expired", "Bearer " + expired, dto.ErrCodeTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/stores", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			rec := httptest.NewRecorder()
			newJWTRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantCode, decodeErrorCode(t, rec))
		})
	}
}

func TestJWTAuth_SkippedPaths(t *testing.T) {
	router := newJWTRouter(newTestJWTService(time.Minute))

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/health", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/callbacks/couriers/"+uuid.NewString()+"/status", nil),
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, req.URL.Path)
	}
}

func TestGetJWTUserUUID(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	_, ok := GetJWTUserUUID(c)
	assert.False(t, ok)
	assert.Nil(t, GetJWTClaims(c))

	id := uuid.New()
	c.Set(JWTUserIDKey, id.String())
	got, ok := GetJWTUserUUID(c)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
