package trade

import (
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderListFilter narrows GET /stores/:id/orders
type OrderListFilter struct {
	Status    string `form:"status" binding:"omitempty,oneof=pending dispatched processing completed cancelled returned"`
	Search    string `form:"search" binding:"max=100"`
	Page      int    `form:"page" binding:"omitempty,min=1"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy    string `form:"sort_by" binding:"omitempty,oneof=created_at updated_at remote_order_id status subtotal dispatched_at"`
	SortOrder string `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

func (f OrderListFilter) toDomain() (trade.OrderFilter, error) {
	out := trade.OrderFilter{
		Filter: shared.Filter{
			Page:     f.Page,
			PageSize: f.PageSize,
			OrderBy:  f.SortBy,
			OrderDir: f.SortOrder,
			Search:   f.Search,
		}.Normalize(),
	}
	if out.OrderBy == "" {
		out.OrderBy = "created_at"
	}
	if f.Status != "" {
		status, err := trade.ParseOrderStatus(f.Status)
		if err != nil {
			return trade.OrderFilter{}, err
		}
		out.Status = &status
	}
	return out, nil
}

// ChangeOrderStatusRequest moves an order through the state machine
type ChangeOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled returned dispatched processing"`
}

// OrderLineResponse represents one order line
type OrderLineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                     uuid.UUID           `json:"id"`
	StoreID                uuid.UUID           `json:"store_id"`
	RemoteOrderID          string              `json:"remote_order_id"`
	Platform               string              `json:"platform"`
	EcommerceIntegrationID uuid.UUID           `json:"ecommerce_integration_id"`
	CourierIntegrationID   *uuid.UUID          `json:"courier_integration_id,omitempty"`
	Status                 string              `json:"status"`
	DeliveryAddress        string              `json:"delivery_address"`
	Subtotal               decimal.Decimal     `json:"subtotal"`
	TotalQuantity          int                 `json:"total_quantity"`
	Lines                  []OrderLineResponse `json:"lines"`
	DispatchedAt           *time.Time          `json:"dispatched_at,omitempty"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
	Version                int                 `json:"version"`
}

// ToOrderResponse converts a domain order
func ToOrderResponse(o *trade.Order) OrderResponse {
	lines := make([]OrderLineResponse, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = OrderLineResponse{ProductID: l.ProductID, Name: l.Name, Quantity: l.Quantity}
	}
	return OrderResponse{
		ID:                     o.ID,
		StoreID:                o.StoreID,
		RemoteOrderID:          o.RemoteOrderID,
		Platform:               o.Platform,
		EcommerceIntegrationID: o.EcommerceIntegrationID,
		CourierIntegrationID:   o.CourierIntegrationID,
		Status:                 o.Status.String(),
		DeliveryAddress:        o.DeliveryAddress,
		Subtotal:               o.Subtotal,
		TotalQuantity:          o.TotalQuantity(),
		Lines:                  lines,
		DispatchedAt:           o.DispatchedAt,
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
		Version:                o.Version,
	}
}

// ToOrderResponses converts a listing page
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ToOrderResponsesFromPtrs converts orders produced by a sync
func ToOrderResponsesFromPtrs(orders []*trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}
