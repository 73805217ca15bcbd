// Package ecommerce holds the e-commerce gateway adapters.
package ecommerce

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from a gateway (10MB)
const maxResponseSize = 10 * 1024 * 1024

// DummyStoreDeps are the collaborators shared by every dummy store adapter
type DummyStoreDeps struct {
	Reconciler integration.Reconciler
	// Archiver is optional
	Archiver integration.SnapshotArchiver
	Logger   *zap.Logger
	// Timeout bounds each gateway call; zero means integration.DefaultGatewayTimeout
	Timeout time.Duration
}

// DummyStoreAdapter implements integration.EStoreAdapter for DUMMY_STORE
type DummyStoreAdapter struct {
	record     *integration.EcommerceIntegration
	config     *DummyStoreConfig
	httpClient *http.Client
	reconciler integration.Reconciler
	archiver   integration.SnapshotArchiver
	logger     *zap.Logger
}

// NewDummyStoreAdapter binds an adapter to one integration record
func NewDummyStoreAdapter(rec *integration.EcommerceIntegration, deps DummyStoreDeps) (*DummyStoreAdapter, error) {
	if deps.Reconciler == nil {
		return nil, fmt.Errorf("dummy store: reconciler is required")
	}
	config := NewDummyStoreConfig(rec, deps.Timeout)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DummyStoreAdapter{
		record: rec,
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		reconciler: deps.Reconciler,
		archiver:   deps.Archiver,
		logger: logger.With(
			zap.String("provider", rec.Provider.String()),
			zap.String("integration_id", rec.ID.String()),
		),
	}, nil
}

// Provider returns the provider code this adapter handles
func (a *DummyStoreAdapter) Provider() integration.ProviderCode {
	return integration.ProviderDummyStore
}

// Integration returns the bound record
func (a *DummyStoreAdapter) Integration() *integration.EcommerceIntegration {
	return a.record
}

// ---------------------------------------------------------------------------
// Synchronization
// ---------------------------------------------------------------------------

// GetAllProducts fetches the remote catalog and reconciles it into the store
func (a *DummyStoreAdapter) GetAllProducts(ctx context.Context, actorID, storeID uuid.UUID) (*integration.ProductSyncReport, error) {
	body, err := a.doRequest(ctx, http.MethodGet, "/products")
	if err != nil {
		return nil, err
	}
	a.archive(ctx, integration.SnapshotProducts, storeID, body)

	var wire []DummyProduct
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: products: %v", integration.ErrGatewayInvalidResponse, err)
	}
	products := make([]integration.RemoteProduct, 0, len(wire))
	for _, p := range wire {
		products = append(products, p.toRemote())
	}

	report, err := a.reconciler.ReconcileProducts(ctx, actorID, storeID, a.record.ID, products)
	if err != nil {
		return report, err
	}
	a.logSkips(report.Skips)
	a.logger.Info("Products synchronized",
		zap.String("store_id", storeID.String()),
		zap.Int("fetched", report.Fetched),
		zap.Int("created", report.Created),
		zap.Int("matched", report.Matched),
		zap.Int("skipped", report.Skipped),
	)
	return report, nil
}

// GetOrders fetches remote orders and creates the ones the store has not seen
func (a *DummyStoreAdapter) GetOrders(ctx context.Context, storeID uuid.UUID) (*integration.OrderSyncReport, error) {
	body, err := a.doRequest(ctx, http.MethodGet, "/orders")
	if err != nil {
		return nil, err
	}
	a.archive(ctx, integration.SnapshotOrders, storeID, body)

	var wire []DummyOrder
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: orders: %v", integration.ErrGatewayInvalidResponse, err)
	}
	orders := make([]integration.RemoteOrder, 0, len(wire))
	for _, o := range wire {
		orders = append(orders, o.toRemote())
	}

	report, err := a.reconciler.ReconcileOrders(ctx, storeID, a.record, orders)
	if err != nil {
		return report, err
	}
	a.logSkips(report.Skips)
	a.logger.Info("Orders synchronized",
		zap.String("store_id", storeID.String()),
		zap.Int("fetched", report.Fetched),
		zap.Int("created", len(report.Created)),
		zap.Int("already_synced", report.AlreadySynced),
		zap.Int("unresolved", report.Unresolved),
	)
	return report, nil
}

func (a *DummyStoreAdapter) logSkips(skips []integration.ReconciliationSkip) {
	for _, s := range skips {
		a.logger.Warn("Remote record skipped",
			zap.String("kind", string(s.Kind)),
			zap.String("remote_id", s.RemoteID),
			zap.String("reason", s.Reason),
		)
	}
}

func (a *DummyStoreAdapter) archive(ctx context.Context, kind integration.SnapshotKind, storeID uuid.UUID, body []byte) {
	if a.archiver == nil {
		return
	}
	err := a.archiver.Archive(ctx, integration.Snapshot{
		Kind:          kind,
		StoreID:       storeID,
		IntegrationID: a.record.ID,
		Provider:      a.record.Provider,
		Body:          body,
	})
	if err != nil {
		a.logger.Warn("Failed to archive gateway snapshot", zap.String("kind", string(kind)), zap.Error(err))
	}
}

// ---------------------------------------------------------------------------
// Passthroughs
// ---------------------------------------------------------------------------

// CreateProduct answers with a canned id. The dummy gateway has no write API.
func (a *DummyStoreAdapter) CreateProduct(ctx context.Context, draft integration.ProductDraft) (*integration.ProductMutation, error) {
	a.logger.Debug("CreateProduct", zap.String("name", draft.Name))
	return &integration.ProductMutation{Success: true, ProductID: "dummy-product-123"}, nil
}

// UpdateProduct answers with a canned result
func (a *DummyStoreAdapter) UpdateProduct(ctx context.Context, remoteID string, draft integration.ProductDraft) (*integration.ProductMutation, error) {
	a.logger.Debug("UpdateProduct", zap.String("remote_id", remoteID))
	return &integration.ProductMutation{Success: true, ProductID: remoteID, Updated: true}, nil
}

// DeleteProduct answers with a canned result
func (a *DummyStoreAdapter) DeleteProduct(ctx context.Context, remoteID string) (*integration.ProductMutation, error) {
	a.logger.Debug("DeleteProduct", zap.String("remote_id", remoteID))
	return &integration.ProductMutation{Success: true, ProductID: remoteID, Deleted: true}, nil
}

// GetProduct answers with a canned product
func (a *DummyStoreAdapter) GetProduct(ctx context.Context, remoteID string) (*integration.RemoteProduct, error) {
	return &integration.RemoteProduct{
		ID:    remoteID,
		Name:  "Dummy Product",
		Price: decimal.RequireFromString("19.99"),
		Stock: 100,
	}, nil
}

// ListProducts answers with two canned products
func (a *DummyStoreAdapter) ListProducts(ctx context.Context, query integration.ProductQuery) ([]integration.RemoteProduct, error) {
	return []integration.RemoteProduct{
		{ID: "dummy-1", Name: "Dummy Product 1", Price: decimal.RequireFromString("19.99"), Stock: 100},
		{ID: "dummy-2", Name: "Dummy Product 2", Price: decimal.RequireFromString("29.99"), Stock: 50},
	}, nil
}

// UpdateStock echoes the requested stock
func (a *DummyStoreAdapter) UpdateStock(ctx context.Context, remoteID string, stock int) (*integration.StockUpdate, error) {
	return &integration.StockUpdate{Success: true, NewStock: stock}, nil
}

// GetStock answers with a canned level
func (a *DummyStoreAdapter) GetStock(ctx context.Context, remoteID string) (*integration.StockLevel, error) {
	return &integration.StockLevel{ProductID: remoteID, Stock: 100}, nil
}

// GetOrderDetails answers with a canned order
func (a *DummyStoreAdapter) GetOrderDetails(ctx context.Context, remoteOrderID string) (*integration.RemoteOrderDetails, error) {
	return &integration.RemoteOrderDetails{
		ID:       remoteOrderID,
		Status:   "PENDING",
		Customer: "John Doe",
		Total:    decimal.RequireFromString("49.98"),
		Items: []integration.RemoteOrderItem{
			{ProductID: "dummy-1", Quantity: 2, Price: decimal.RequireFromString("19.99")},
			{ProductID: "dummy-2", Quantity: 1, Price: decimal.RequireFromString("9.99")},
		},
	}, nil
}

// UpdateOrderStatus echoes the requested status
func (a *DummyStoreAdapter) UpdateOrderStatus(ctx context.Context, remoteOrderID, status string) (*integration.OrderStatusUpdate, error) {
	return &integration.OrderStatusUpdate{Success: true, NewStatus: status}, nil
}

// UpdatePrice echoes the requested price
func (a *DummyStoreAdapter) UpdatePrice(ctx context.Context, remoteID string, price decimal.Decimal) (*integration.PriceUpdate, error) {
	return &integration.PriceUpdate{Success: true, NewPrice: price}, nil
}

// GetPricing answers with a canned price sheet
func (a *DummyStoreAdapter) GetPricing(ctx context.Context, remoteID string) (*integration.Pricing, error) {
	return &integration.Pricing{
		ProductID: remoteID,
		Price:     decimal.RequireFromString("19.99"),
		SalePrice: decimal.RequireFromString("15.99"),
		Currency:  "USD",
	}, nil
}

// ---------------------------------------------------------------------------
// HTTP
// ---------------------------------------------------------------------------

// doRequest performs one bounded gateway call and returns the body
func (a *DummyStoreAdapter) doRequest(ctx context.Context, method, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, a.config.endpoint(path), nil)
	if err != nil {
		return nil, fmt.Errorf("dummy store: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if a.config.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.Token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", integration.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", integration.ErrGatewayUnavailable, path, err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: %s %s: HTTP %d", integration.ErrGatewayRequestFailed, method, path, resp.StatusCode)
	}

	return body, nil
}

// Ensure DummyStoreAdapter implements EStoreAdapter
var _ integration.EStoreAdapter = (*DummyStoreAdapter)(nil)
