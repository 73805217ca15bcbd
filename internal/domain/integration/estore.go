package integration

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Remote records
// ---------------------------------------------------------------------------

// RemoteProduct is a product as reported by an e-commerce gateway
type RemoteProduct struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Tag         string
	Description string
	Brand       string
	Stock       int
}

// RemoteOrderLine is one product entry of a remote order. Lines are matched to
// local products by name.
type RemoteOrderLine struct {
	Name     string
	Quantity int
}

// RemoteOrder is an order as reported by an e-commerce gateway
type RemoteOrder struct {
	ID              string
	Lines           []RemoteOrderLine
	DeliveryAddress string
	Subtotal        decimal.Decimal
}

// ---------------------------------------------------------------------------
// Sync reports
// ---------------------------------------------------------------------------

// SkipKind names what a ReconciliationSkip refers to
type SkipKind string

const (
	SkipKindProduct   SkipKind = "product"
	SkipKindOrder     SkipKind = "order"
	SkipKindOrderLine SkipKind = "order_line"
)

// ReconciliationSkip is a remote record that was dropped during
// reconciliation. It is reported and logged, never returned as an error.
type ReconciliationSkip struct {
	Kind     SkipKind
	RemoteID string
	Reason   string
}

// ProductSyncReport summarizes one product reconciliation pass
type ProductSyncReport struct {
	IntegrationID uuid.UUID
	Fetched       int
	Created       int
	Matched       int
	Refreshed     int
	Skipped       int
	Skips         []ReconciliationSkip
}

// OrderSyncReport summarizes one order reconciliation pass
type OrderSyncReport struct {
	IntegrationID uuid.UUID
	Fetched       int
	Created       []*trade.Order
	// AlreadySynced counts remote orders whose remote id was seen before
	AlreadySynced int
	// Unresolved counts remote orders dropped because no line matched a product
	Unresolved int
	// DroppedLines counts individual lines that matched no product
	DroppedLines int
	Skips        []ReconciliationSkip
}

// ---------------------------------------------------------------------------
// Passthrough types
// ---------------------------------------------------------------------------

// ProductDraft is the payload for creating or updating a remote product
type ProductDraft struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Stock       int
}

// ProductMutation is the result of a remote product write
type ProductMutation struct {
	Success   bool
	ProductID string
	Updated   bool
	Deleted   bool
}

// ProductQuery filters remote product listings
type ProductQuery struct {
	Search   string
	Page     int
	PageSize int
}

// StockLevel is the remote stock of one product
type StockLevel struct {
	ProductID string
	Stock     int
}

// StockUpdate is the result of a remote stock write
type StockUpdate struct {
	Success  bool
	NewStock int
}

// RemoteOrderDetails is the full remote view of one order
type RemoteOrderDetails struct {
	ID       string
	Status   string
	Customer string
	Total    decimal.Decimal
	Items    []RemoteOrderItem
}

// RemoteOrderItem is one line of RemoteOrderDetails
type RemoteOrderItem struct {
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

// OrderStatusUpdate is the result of a remote order status write
type OrderStatusUpdate struct {
	Success   bool
	NewStatus string
}

// PriceUpdate is the result of a remote price write
type PriceUpdate struct {
	Success  bool
	NewPrice decimal.Decimal
}

// Pricing is the remote price sheet of one product
type Pricing struct {
	ProductID string
	Price     decimal.Decimal
	SalePrice decimal.Decimal
	Currency  string
}

// ---------------------------------------------------------------------------
// EStoreAdapter
// ---------------------------------------------------------------------------

// EStoreAdapter is the port every e-commerce provider implements. An adapter
// is bound to one EcommerceIntegration record.
//
// GetAllProducts and GetOrders reconcile into local storage. Every other method
// is a remote passthrough with no local side effects.
type EStoreAdapter interface {
	Provider() ProviderCode
	Integration() *EcommerceIntegration

	// GetAllProducts pulls the full remote catalog and creates missing local
	// products owned by actorID.
	GetAllProducts(ctx context.Context, actorID, storeID uuid.UUID) (*ProductSyncReport, error)

	// GetOrders pulls remote orders and creates the ones not seen before.
	// Products must be synced first so lines can be resolved.
	GetOrders(ctx context.Context, storeID uuid.UUID) (*OrderSyncReport, error)

	CreateProduct(ctx context.Context, draft ProductDraft) (*ProductMutation, error)
	UpdateProduct(ctx context.Context, remoteID string, draft ProductDraft) (*ProductMutation, error)
	DeleteProduct(ctx context.Context, remoteID string) (*ProductMutation, error)
	GetProduct(ctx context.Context, remoteID string) (*RemoteProduct, error)
	ListProducts(ctx context.Context, query ProductQuery) ([]RemoteProduct, error)
	UpdateStock(ctx context.Context, remoteID string, stock int) (*StockUpdate, error)
	GetStock(ctx context.Context, remoteID string) (*StockLevel, error)
	GetOrderDetails(ctx context.Context, remoteOrderID string) (*RemoteOrderDetails, error)
	UpdateOrderStatus(ctx context.Context, remoteOrderID, status string) (*OrderStatusUpdate, error)
	UpdatePrice(ctx context.Context, remoteID string, price decimal.Decimal) (*PriceUpdate, error)
	GetPricing(ctx context.Context, remoteID string) (*Pricing, error)
}
