package integration

import (
	"errors"
	"testing"
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// ProviderCode Tests
// ---------------------------------------------------------------------------

func TestProviderCode_DisplayName(t *testing.T) {
	tests := []struct {
		code     ProviderCode
		expected string
	}{
		{ProviderDummyStore, "Dummy Store"},
		{ProviderDummyCourier, "Dummy Courier"},
		{ProviderCode("SHOPIFY"), "Shopify"},
		{ProviderCode(""), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.DisplayName())
		})
	}
}

func TestParseProviderCode(t *testing.T) {
	assert.Equal(t, ProviderDummyStore, ParseProviderCode(" dummy_store "))
	assert.True(t, ParseProviderCode("  ").IsEmpty())
}

// ---------------------------------------------------------------------------
// Courier vocabulary
// ---------------------------------------------------------------------------

func TestCourierStatus_OrderStatus(t *testing.T) {
	tests := []struct {
		status CourierStatus
		want   trade.OrderStatus
		ok     bool
	}{
		{CourierStatusDelivered, trade.OrderStatusCompleted, true},
		{CourierStatusReturned, trade.OrderStatusReturned, true},
		{CourierStatusCancelled, trade.OrderStatusCancelled, true},
		{CourierStatusInTransit, "", false},
		{CourierStatusPending, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.True(t, tt.status.IsValid())
			got, ok := tt.status.OrderStatus()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.False(t, CourierStatus("LOST").IsValid())
}

func TestServiceType_DeliveryWindow(t *testing.T) {
	assert.Equal(t, 48, int(ServiceTypeStandard.DeliveryWindow().Hours()))
	assert.Equal(t, 24, int(ServiceTypeExpress.DeliveryWindow().Hours()))
	assert.Equal(t, 6, int(ServiceTypeSameDay.DeliveryWindow().Hours()))
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestConfigurationError(t *testing.T) {
	err := error(&ConfigurationError{Category: CategoryEcommerce, Provider: "SHOPIFY", IntegrationID: uuid.New()})
	assert.True(t, errors.Is(err, ErrProviderNotSupported))
	assert.Contains(t, err.Error(), `"SHOPIFY"`)
	assert.False(t, IsTransportError(err))
}

func TestUnsupportedOperationError(t *testing.T) {
	err := NewUnsupportedOperation(ProviderDummyCourier, "GetTrackingInfo")
	assert.True(t, errors.Is(err, ErrUnsupportedOperation))

	var opErr *UnsupportedOperationError
	require.True(t, errors.As(err, &opErr))
	assert.Equal(t, "GetTrackingInfo", opErr.Operation)
}

func TestIsTransportError(t *testing.T) {
	assert.True(t, IsTransportError(ErrGatewayUnavailable))
	assert.True(t, IsTransportError(errors.Join(errors.New("x"), ErrGatewayRequestFailed)))
	assert.False(t, IsTransportError(ErrSyncInProgress))
}

func TestParseMatchedProductUpdatePolicy(t *testing.T) {
	p, err := ParseMatchedProductUpdatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, MatchedProductKeep, p)

	p, err = ParseMatchedProductUpdatePolicy("REFRESH")
	require.NoError(t, err)
	assert.Equal(t, MatchedProductRefresh, p)

	_, err = ParseMatchedProductUpdatePolicy("merge")
	assert.Error(t, err)
}

func TestNormalizeGatewayTimeout(t *testing.T) {
	tests := []struct {
		name    string
		input   time.Duration
		want    time.Duration
		wantErr bool
	}{
		{"zero uses default", 0, DefaultGatewayTimeout, false},
		{"lower bound", time.Second, time.Second, false},
		{"upper bound", 120 * time.Second, 120 * time.Second, false},
		{"below range", 500 * time.Millisecond, 0, true},
		{"above range", 121 * time.Second, 0, true},
		{"negative", -time.Second, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeGatewayTimeout(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidGatewayTimeout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
