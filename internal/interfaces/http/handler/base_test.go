package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/dto"
	"github.com/Fayyez/UniKhata-sub000/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setJWTContext simulates an authenticated request without a real token
func setJWTContext(c *gin.Context, userID uuid.UUID) {
	c.Set(middleware.JWTUserIDKey, userID.String())
}

func newTestContext(method, path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetUserID(t *testing.T) {
	t.Run("from JWT", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/")
		id := uuid.New()
		setJWTContext(c, id)

		got, err := getUserID(c)
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("missing", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/")
		_, err := getUserID(c)
		assert.ErrorIs(t, err, errUnauthenticated)
	})

	t.Run("not a UUID", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/")
		c.Set(middleware.JWTUserIDKey, "admin")
		_, err := getUserID(c)
		assert.ErrorIs(t, err, errUnauthenticated)
	})
}

func TestParseUUIDParam(t *testing.T) {
	id := uuid.New()
	c, _ := newTestContext(http.MethodGet, "/")
	c.Params = gin.Params{{Key: "id", Value: id.String()}, {Key: "bad", Value: "42"}}

	got, ok := parseUUIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = parseUUIDParam(c, "bad")
	assert.False(t, ok)

	_, ok = parseUUIDParam(c, "missing")
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	orderID := uuid.New()
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", shared.NewNotFoundError("Order"), http.StatusNotFound, dto.ErrCodeNotFound},
		{"invalid state", shared.NewInvalidStateError("Order is %s", "completed"), http.StatusBadRequest, dto.ErrCodeInvalidState},
		{"unauthorized", shared.ErrUnauthorized, http.StatusUnauthorized, dto.ErrCodeUnauthorized},
		{"concurrency", shared.ErrConcurrencyConflict, http.StatusConflict, dto.ErrCodeConcurrencyConflict},
		{"already exists", shared.ErrAlreadyExists, http.StatusConflict, dto.ErrCodeAlreadyExists},
		{"unmapped domain code", shared.NewDomainError("INVALID_NAME", "Store name cannot be empty"), http.StatusBadRequest, "INVALID_NAME"},
		{
			"unsupported provider",
			&integration.ConfigurationError{Category: integration.CategoryEcommerce, Provider: "SHOPIFY", IntegrationID: uuid.New()},
			http.StatusInternalServerError, dto.ErrCodeProviderNotSupported,
		},
		{
			"courier refused",
			&integration.DispatchFailedError{OrderID: orderID, IntegrationID: uuid.New(), Message: "out of zone"},
			http.StatusBadGateway, dto.ErrCodeDispatchFailed,
		},
		{"sync in progress", integration.ErrSyncInProgress, http.StatusConflict, dto.ErrCodeSyncInProgress},
		{
			"contract-only operation",
			integration.NewUnsupportedOperation(integration.ProviderDummyStore, "CancelOrder"),
			http.StatusNotImplemented, dto.ErrCodeUnsupportedOperation,
		},
		{
			"gateway down",
			fmt.Errorf("sync products of integration x: %w", integration.ErrGatewayUnavailable),
			http.StatusBadGateway, dto.ErrCodeGateway,
		},
		{
			"no courier wraps invalid state",
			fmt.Errorf("%w: %w", integration.ErrNoCourierIntegration, shared.NewInvalidStateError("Store has no courier integration")),
			http.StatusBadRequest, dto.ErrCodeInvalidState,
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code, message := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
			assert.NotEmpty(t, message)
		})
	}
}

func TestHandleError_WritesEnvelope(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/")
	c.Set(middleware.RequestIDKey, "req-1")

	h := &BaseHandler{}
	h.HandleError(c, &integration.DispatchFailedError{OrderID: uuid.New(), Message: "courier responded HTTP 422: bad address"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeDispatchFailed, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "bad address")
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, c.Errors, 1)
}

func TestHandleError_HidesInternalDetails(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/")

	(&BaseHandler{}).HandleError(c, errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestHandleError_Nil(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "/")
	(&BaseHandler{}).HandleError(c, nil)
	assert.False(t, c.Writer.Written())
	assert.Equal(t, 0, w.Body.Len())
}

func TestBaseHandler_ResponseHelpers(t *testing.T) {
	h := &BaseHandler{}

	t.Run("created", func(t *testing.T) {
		c, w := newTestContext(http.MethodPost, "/")
		h.Created(c, gin.H{"id": "1"})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decodeResponse(t, w).Success)
	})

	t.Run("with meta", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/")
		h.SuccessWithMeta(c, []string{"a"}, 41, 2, 20)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(41), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("no content", func(t *testing.T) {
		c, w := newTestContext(http.MethodDelete, "/")
		h.NoContent(c)
		c.Writer.WriteHeaderNow()
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("unauthorized", func(t *testing.T) {
		c, w := newTestContext(http.MethodGet, "/")
		h.Unauthorized(c, "Authentication required")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrCodeUnauthorized, decodeResponse(t, w).Error.Code)
	})
}
