package ecommerce

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Dummy store wire types
// ---------------------------------------------------------------------------

// RemoteID accepts a JSON string or number and keeps its text form
type RemoteID string

// UnmarshalJSON implements json.Unmarshaler
func (id *RemoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RemoteID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("remote id must be a string or number: %w", err)
	}
	*id = RemoteID(n.String())
	return nil
}

// String returns the id text
func (id RemoteID) String() string {
	return string(id)
}

// DummyProduct is one entry of GET /products
type DummyProduct struct {
	ID          RemoteID        `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Tag         string          `json:"tag,omitempty"`
	Description string          `json:"description,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Stock       int             `json:"stock"`
}

// DummyOrder is one entry of GET /orders
type DummyOrder struct {
	ID      RemoteID          `json:"id"`
	Summary DummyOrderSummary `json:"summary"`
}

// DummyOrderSummary holds the lines and totals of a dummy order
type DummyOrderSummary struct {
	Products        []DummyOrderLine `json:"products"`
	DeliveryAddress string           `json:"deliveryAddress"`
	TotalSubtotal   decimal.Decimal  `json:"totalSubtotal"`
}

// DummyOrderLine is one product entry of a dummy order
type DummyOrderLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// toRemote converts the wire product to the domain shape
func (p DummyProduct) toRemote() integration.RemoteProduct {
	return integration.RemoteProduct{
		ID:          p.ID.String(),
		Name:        strings.TrimSpace(p.Name),
		Price:       p.Price,
		Tag:         p.Tag,
		Description: p.Description,
		Brand:       p.Brand,
		Stock:       p.Stock,
	}
}

// toRemote converts the wire order to the domain shape
func (o DummyOrder) toRemote() integration.RemoteOrder {
	lines := make([]integration.RemoteOrderLine, 0, len(o.Summary.Products))
	for _, l := range o.Summary.Products {
		lines = append(lines, integration.RemoteOrderLine{
			Name:     strings.TrimSpace(l.Name),
			Quantity: l.Quantity,
		})
	}
	return integration.RemoteOrder{
		ID:              o.ID.String(),
		Lines:           lines,
		DeliveryAddress: o.Summary.DeliveryAddress,
		Subtotal:        o.Summary.TotalSubtotal,
	}
}
