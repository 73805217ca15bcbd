package courier

import (
	"github.com/shopspring/decimal"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
)

// DispatchRequest is the body of POST /dispatch
type DispatchRequest struct {
	OrderID         string          `json:"orderId"`
	StoreID         string          `json:"storeId"`
	RemoteOrderID   string          `json:"remoteOrderId"`
	Platform        string          `json:"platform"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ServiceType     string          `json:"serviceType"`
	Items           []DispatchItem  `json:"items"`
}

// DispatchItem is one line of a DispatchRequest
type DispatchItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// DispatchResponse is the body the dummy courier answers with
type DispatchResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// newDispatchRequest serializes an order for the courier
func newDispatchRequest(order *trade.Order, serviceType string) DispatchRequest {
	items := make([]DispatchItem, 0, len(order.Lines))
	for _, l := range order.Lines {
		items = append(items, DispatchItem{
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Quantity:  l.Quantity,
		})
	}
	return DispatchRequest{
		OrderID:         order.ID.String(),
		StoreID:         order.StoreID.String(),
		RemoteOrderID:   order.RemoteOrderID,
		Platform:        order.Platform,
		DeliveryAddress: order.DeliveryAddress,
		Subtotal:        order.Subtotal,
		ServiceType:     serviceType,
		Items:           items,
	}
}
