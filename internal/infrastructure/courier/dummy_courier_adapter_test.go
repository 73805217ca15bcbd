package courier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
)

func newTestRecord(baseURL, token string) *integration.CourierIntegration {
	return &integration.CourierIntegration{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    uuid.New(),
		Title:      "Rider",
		Provider:   integration.ProviderDummyCourier,
		BaseURL:    baseURL,
		Token:      token,
	}
}

func newTestOrder(t *testing.T) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(uuid.New(), uuid.New(), "DUMMY_STORE", "R-100",
		[]trade.OrderLine{{ProductID: uuid.New(), Name: "Kettle", Quantity: 2}},
		"12 Mall Road", decimal.RequireFromString("49.98"))
	require.NoError(t, err)
	return order
}

func TestNewDummyCourierAdapter_Validation(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		timeout time.Duration
		wantErr error
	}{
		{"valid", "http://localhost:5000/", 0, nil},
		{"empty url", "", 0, ErrDummyCourierInvalidBaseURL},
		{"relative url", "/dispatch", 0, ErrDummyCourierInvalidBaseURL},
		{"ftp url", "ftp://courier.example.com", 0, ErrDummyCourierInvalidBaseURL},
		{"timeout too long", "http://localhost:5000", 10 * time.Minute, integration.ErrInvalidGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewDummyCourierAdapter(newTestRecord(tt.baseURL, ""), DummyCourierDeps{Timeout: tt.timeout})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "http://localhost:5000", a.baseURL)
			assert.Equal(t, integration.DefaultGatewayTimeout, a.timeout)
			assert.Equal(t, integration.ServiceTypeStandard, a.serviceType)
		})
	}
}

func TestDummyCourierAdapter_DispatchSuccess(t *testing.T) {
	var calls int32
	var got DispatchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/dispatch", r.URL.Path)
		assert.Equal(t, "Bearer rider-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"message":"Rider assigned"}`))
	}))
	defer server.Close()

	a, err := NewDummyCourierAdapter(newTestRecord(server.URL, "rider-token"), DummyCourierDeps{})
	require.NoError(t, err)

	order := newTestOrder(t)
	result := a.Dispatch(context.Background(), order)

	assert.True(t, result.Success)
	assert.Equal(t, "Rider assigned", result.Message)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, order.ID.String(), got.OrderID)
	assert.Equal(t, "R-100", got.RemoteOrderID)
	assert.Equal(t, "STANDARD", got.ServiceType)
	assert.True(t, decimal.RequireFromString("49.98").Equal(got.Subtotal))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Kettle", got.Items[0].Name)
	assert.Equal(t, 2, got.Items[0].Quantity)
}

func TestDummyCourierAdapter_DispatchDefaultMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	a, err := NewDummyCourierAdapter(newTestRecord(server.URL, ""), DummyCourierDeps{})
	require.NoError(t, err)

	result := a.Dispatch(context.Background(), newTestOrder(t))
	assert.True(t, result.Success)
	assert.Equal(t, defaultDispatchMessage, result.Message)
}

func TestDummyCourierAdapter_DispatchUnreadableReply(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		logMsg  string
	}{
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`accepted`))
		}, "Courier reply is not a JSON object"},
		{"truncated body", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Length", "100")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"mess`))
		}, "Failed to read courier reply"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			core, logs := observer.New(zapcore.DebugLevel)
			a, err := NewDummyCourierAdapter(newTestRecord(server.URL, ""), DummyCourierDeps{Logger: zap.New(core)})
			require.NoError(t, err)

			result := a.Dispatch(context.Background(), newTestOrder(t))
			assert.True(t, result.Success)
			assert.Equal(t, defaultDispatchMessage, result.Message)

			entries := logs.FilterMessage(tt.logMsg).All()
			require.Len(t, entries, 1)
			assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
			assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
		})
	}
}

func TestDummyCourierAdapter_DispatchRejected(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains string
	}{
		{"error field", http.StatusUnprocessableEntity, `{"error":"address outside coverage"}`, "address outside coverage"},
		{"message field", http.StatusBadRequest, `{"message":"missing items"}`, "missing items"},
		{"no body", http.StatusInternalServerError, ``, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			a, err := NewDummyCourierAdapter(newTestRecord(server.URL, ""), DummyCourierDeps{})
			require.NoError(t, err)

			result := a.Dispatch(context.Background(), newTestOrder(t))
			assert.False(t, result.Success)
			assert.Contains(t, result.Message, tt.contains)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "dispatch is never retried")
		})
	}
}

func TestDummyCourierAdapter_DispatchUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	a, err := NewDummyCourierAdapter(newTestRecord(url, ""), DummyCourierDeps{})
	require.NoError(t, err)

	result := a.Dispatch(context.Background(), newTestOrder(t))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "courier unreachable")
}

func TestDummyCourierAdapter_DispatchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	a, err := NewDummyCourierAdapter(newTestRecord(server.URL, ""), DummyCourierDeps{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	result := a.Dispatch(ctx, newTestOrder(t))
	assert.False(t, result.Success)
}

func TestDummyCourierAdapter_UnsupportedOperations(t *testing.T) {
	a, err := NewDummyCourierAdapter(newTestRecord("http://localhost:5000", ""), DummyCourierDeps{})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = a.GetTrackingInfo(ctx, "T-1")
	assert.ErrorIs(t, err, integration.ErrUnsupportedOperation)

	var unsupported *integration.UnsupportedOperationError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "GetTrackingInfo", unsupported.Operation)
	assert.Equal(t, integration.ProviderDummyCourier, unsupported.Provider)

	_, err = a.CreateOrder(ctx, newTestOrder(t))
	assert.ErrorIs(t, err, integration.ErrUnsupportedOperation)
	assert.ErrorIs(t, a.CancelOrder(ctx, "T-1"), integration.ErrUnsupportedOperation)
	_, err = a.CalculateShippingRate(ctx, integration.ShippingQuery{})
	assert.ErrorIs(t, err, integration.ErrUnsupportedOperation)
	_, err = a.EstimateDeliveryTime(ctx, integration.ShippingQuery{})
	assert.ErrorIs(t, err, integration.ErrUnsupportedOperation)
}
