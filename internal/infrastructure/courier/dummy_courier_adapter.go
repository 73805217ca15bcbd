// Package courier holds the courier gateway adapters.
package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
)

// maxResponseSize is the maximum allowed response size from a courier (1MB)
const maxResponseSize = 1 << 20

// defaultDispatchMessage is used when a courier accepts without a message
const defaultDispatchMessage = "Order dispatched successfully"

// ErrDummyCourierInvalidBaseURL is returned for a missing or non-http(s) base URL
var ErrDummyCourierInvalidBaseURL = errors.New("dummy courier: base URL must be an absolute http(s) URL")

// DummyCourierDeps are the collaborators shared by every dummy courier adapter
type DummyCourierDeps struct {
	Logger *zap.Logger
	// Timeout bounds each gateway call; zero means integration.DefaultGatewayTimeout
	Timeout time.Duration
	// ServiceType is sent with every dispatch; empty means STANDARD
	ServiceType integration.ServiceType
}

// DummyCourierAdapter implements integration.CourierAdapter for DUMMY_COURIER
type DummyCourierAdapter struct {
	record      *integration.CourierIntegration
	baseURL     string
	timeout     time.Duration
	serviceType integration.ServiceType
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewDummyCourierAdapter binds an adapter to one integration record
func NewDummyCourierAdapter(rec *integration.CourierIntegration, deps DummyCourierDeps) (*DummyCourierAdapter, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(rec.BaseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrDummyCourierInvalidBaseURL
	}
	timeout, err := integration.NormalizeGatewayTimeout(deps.Timeout)
	if err != nil {
		return nil, err
	}
	serviceType := deps.ServiceType
	if serviceType == "" {
		serviceType = integration.ServiceTypeStandard
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DummyCourierAdapter{
		record:      rec,
		baseURL:     baseURL,
		timeout:     timeout,
		serviceType: serviceType,
		httpClient:  &http.Client{Timeout: timeout},
		logger: logger.With(
			zap.String("provider", rec.Provider.String()),
			zap.String("integration_id", rec.ID.String()),
		),
	}, nil
}

// Provider returns the provider code this adapter handles
func (a *DummyCourierAdapter) Provider() integration.ProviderCode {
	return integration.ProviderDummyCourier
}

// Integration returns the bound record
func (a *DummyCourierAdapter) Integration() *integration.CourierIntegration {
	return a.record
}

// Dispatch posts the order to {base}/dispatch once. Any 2xx is success.
func (a *DummyCourierAdapter) Dispatch(ctx context.Context, order *trade.Order) integration.DispatchResult {
	payload, err := json.Marshal(newDispatchRequest(order, string(a.serviceType)))
	if err != nil {
		return integration.DispatchResult{Message: fmt.Sprintf("encode order: %v", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/dispatch", bytes.NewReader(payload))
	if err != nil {
		return integration.DispatchResult{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if a.record.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.record.Token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		a.logger.Warn("Courier unreachable", zap.String("order_id", order.ID.String()), zap.Error(err))
		return integration.DispatchResult{Message: fmt.Sprintf("courier unreachable: %v", err)}
	}
	defer resp.Body.Close()

	// the status code decides the outcome; the body only supplies the message
	var reply DispatchResponse
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		a.logger.Debug("Failed to read courier reply",
			zap.String("order_id", order.ID.String()),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
	} else if len(body) > 0 {
		if err := json.Unmarshal(body, &reply); err != nil {
			a.logger.Debug("Courier reply is not a JSON object",
				zap.String("order_id", order.ID.String()),
				zap.Int("status", resp.StatusCode),
				zap.Error(err),
			)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := reply.Error
		if msg == "" {
			msg = reply.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		a.logger.Warn("Courier rejected dispatch",
			zap.String("order_id", order.ID.String()),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return integration.DispatchResult{Message: fmt.Sprintf("courier responded HTTP %d: %s", resp.StatusCode, msg)}
	}

	msg := reply.Message
	if msg == "" {
		msg = defaultDispatchMessage
	}
	return integration.DispatchResult{Success: true, Message: msg}
}

// ---------------------------------------------------------------------------
// Contract-only operations
// ---------------------------------------------------------------------------

func (a *DummyCourierAdapter) unsupported(op string) error {
	return integration.NewUnsupportedOperation(a.Provider(), op)
}

func (a *DummyCourierAdapter) CreateOrder(ctx context.Context, order *trade.Order) (*integration.ShipmentInfo, error) {
	return nil, a.unsupported("CreateOrder")
}

func (a *DummyCourierAdapter) CancelOrder(ctx context.Context, trackingID string) error {
	return a.unsupported("CancelOrder")
}

func (a *DummyCourierAdapter) UpdateOrder(ctx context.Context, trackingID string, order *trade.Order) error {
	return a.unsupported("UpdateOrder")
}

func (a *DummyCourierAdapter) GetOrderStatus(ctx context.Context, trackingID string) (integration.CourierStatus, error) {
	return "", a.unsupported("GetOrderStatus")
}

func (a *DummyCourierAdapter) GetOrderDetails(ctx context.Context, trackingID string) (*integration.ShipmentInfo, error) {
	return nil, a.unsupported("GetOrderDetails")
}

func (a *DummyCourierAdapter) GetTrackingInfo(ctx context.Context, trackingID string) (*integration.TrackingInfo, error) {
	return nil, a.unsupported("GetTrackingInfo")
}

func (a *DummyCourierAdapter) GetAssignedAgent(ctx context.Context, trackingID string) (*integration.CourierAgent, error) {
	return nil, a.unsupported("GetAssignedAgent")
}

func (a *DummyCourierAdapter) CalculateShippingRate(ctx context.Context, query integration.ShippingQuery) (*integration.ShippingRate, error) {
	return nil, a.unsupported("CalculateShippingRate")
}

func (a *DummyCourierAdapter) CheckServiceAvailability(ctx context.Context, address string) (bool, error) {
	return false, a.unsupported("CheckServiceAvailability")
}

func (a *DummyCourierAdapter) SchedulePickup(ctx context.Context, req integration.PickupRequest) (*integration.PickupConfirmation, error) {
	return nil, a.unsupported("SchedulePickup")
}

func (a *DummyCourierAdapter) ValidateAddress(ctx context.Context, address string) (bool, error) {
	return false, a.unsupported("ValidateAddress")
}

func (a *DummyCourierAdapter) EstimateDeliveryTime(ctx context.Context, query integration.ShippingQuery) (time.Duration, error) {
	return 0, a.unsupported("EstimateDeliveryTime")
}

// Ensure DummyCourierAdapter implements CourierAdapter
var _ integration.CourierAdapter = (*DummyCourierAdapter)(nil)
