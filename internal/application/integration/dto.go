package integration

import (
	apptrade "github.com/Fayyez/UniKhata-sub000/internal/application/trade"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Pull DTOs
// ---------------------------------------------------------------------------

// SkipResponse is one remote record dropped during reconciliation
type SkipResponse struct {
	Kind     string `json:"kind"`
	RemoteID string `json:"remote_id,omitempty"`
	Reason   string `json:"reason"`
}

// IntegrationPullResult is the outcome of one e-commerce integration
type IntegrationPullResult struct {
	IntegrationID    uuid.UUID      `json:"integration_id"`
	Provider         string         `json:"provider"`
	ProductsFetched  int            `json:"products_fetched"`
	ProductsCreated  int            `json:"products_created"`
	ProductsMatched  int            `json:"products_matched"`
	ProductsSkipped  int            `json:"products_skipped"`
	OrdersFetched    int            `json:"orders_fetched"`
	OrdersCreated    int            `json:"orders_created"`
	OrdersDuplicated int            `json:"orders_already_synced"`
	OrdersUnresolved int            `json:"orders_unresolved"`
	DroppedLines     int            `json:"dropped_lines"`
	Skips            []SkipResponse `json:"skips,omitempty"`
}

// PullResult is returned by PullNewOrders. Orders holds only the orders
// created by this pull.
type PullResult struct {
	StoreID         uuid.UUID                `json:"store_id"`
	ProductsCreated int                      `json:"products_created"`
	ProductsMatched int                      `json:"products_matched"`
	OrdersCreated   int                      `json:"orders_created"`
	OrdersSkipped   int                      `json:"orders_skipped"`
	Integrations    []IntegrationPullResult  `json:"integrations"`
	Orders          []apptrade.OrderResponse `json:"orders"`
}

func (r *PullResult) add(rec *integration.EcommerceIntegration, products *integration.ProductSyncReport, orders *integration.OrderSyncReport) {
	item := IntegrationPullResult{
		IntegrationID:    rec.ID,
		Provider:         rec.Provider.String(),
		ProductsFetched:  products.Fetched,
		ProductsCreated:  products.Created,
		ProductsMatched:  products.Matched,
		ProductsSkipped:  products.Skipped,
		OrdersFetched:    orders.Fetched,
		OrdersCreated:    len(orders.Created),
		OrdersDuplicated: orders.AlreadySynced,
		OrdersUnresolved: orders.Unresolved,
		DroppedLines:     orders.DroppedLines,
	}
	for _, s := range products.Skips {
		item.Skips = append(item.Skips, SkipResponse{Kind: string(s.Kind), RemoteID: s.RemoteID, Reason: s.Reason})
	}
	for _, s := range orders.Skips {
		item.Skips = append(item.Skips, SkipResponse{Kind: string(s.Kind), RemoteID: s.RemoteID, Reason: s.Reason})
	}

	r.ProductsCreated += products.Created
	r.ProductsMatched += products.Matched
	r.OrdersCreated += len(orders.Created)
	r.OrdersSkipped += orders.AlreadySynced + orders.Unresolved
	r.Integrations = append(r.Integrations, item)
	r.Orders = append(r.Orders, apptrade.ToOrderResponsesFromPtrs(orders.Created)...)
}

// ---------------------------------------------------------------------------
// Dispatch DTOs
// ---------------------------------------------------------------------------

// DispatchOutcome is returned by a successful DispatchOrder
type DispatchOutcome struct {
	Order                apptrade.OrderResponse `json:"order"`
	CourierIntegrationID uuid.UUID              `json:"courier_integration_id"`
	Provider             string                 `json:"provider"`
	Details              string                 `json:"details"`
}

// ---------------------------------------------------------------------------
// Courier callback DTOs
// ---------------------------------------------------------------------------

// CourierCallbackRequest is posted by a courier when a shipment changes state
type CourierCallbackRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	Status  string    `json:"status" binding:"required,max=20"`
	Message string    `json:"message" binding:"max=500"`
}

// CourierCallbackResponse reports what the callback did to the order
type CourierCallbackResponse struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status"`
	Applied bool      `json:"applied"`
}
