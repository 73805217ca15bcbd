package models

import (
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order entity.
// (store_id, remote_order_id) is unique.
type OrderModel struct {
	BaseModel
	SoftDeleteModel
	StoreID                uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_orders_store_remote,priority:1;index:idx_orders_store_status,priority:1"`
	RemoteOrderID          string           `gorm:"type:varchar(100);not null;uniqueIndex:idx_orders_store_remote,priority:2"`
	EcommerceIntegrationID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Platform               string           `gorm:"type:varchar(50);not null"`
	CourierIntegrationID   *uuid.UUID       `gorm:"type:uuid"`
	Status                 string           `gorm:"type:varchar(20);not null;default:'pending';index:idx_orders_store_status,priority:2"`
	DeliveryAddress        string           `gorm:"type:text"`
	Subtotal               decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	DispatchedAt           *time.Time       `gorm:"column:dispatched_at"`
	Version                int              `gorm:"not null;default:1"`
	Lines                  []OrderLineModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the model to an Order
func (m *OrderModel) ToDomain() *trade.Order {
	o := &trade.Order{
		BaseEntity:             m.BaseModel.ToDomain(),
		SoftDeletable:          m.SoftDeleteModel.ToDomain(),
		StoreID:                m.StoreID,
		RemoteOrderID:          m.RemoteOrderID,
		EcommerceIntegrationID: m.EcommerceIntegrationID,
		Platform:               m.Platform,
		CourierIntegrationID:   m.CourierIntegrationID,
		Status:                 trade.OrderStatus(m.Status),
		DeliveryAddress:        m.DeliveryAddress,
		Subtotal:               m.Subtotal,
		DispatchedAt:           m.DispatchedAt,
		Version:                m.Version,
	}
	o.Lines = make([]trade.OrderLine, 0, len(m.Lines))
	for _, l := range m.Lines {
		o.Lines = append(o.Lines, trade.OrderLine{
			ID:        l.ID,
			OrderID:   l.OrderID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
		})
	}
	return o
}

// OrderModelFromDomain converts an Order without its lines
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{
		StoreID:                o.StoreID,
		RemoteOrderID:          o.RemoteOrderID,
		EcommerceIntegrationID: o.EcommerceIntegrationID,
		Platform:               o.Platform,
		CourierIntegrationID:   o.CourierIntegrationID,
		Status:                 o.Status.String(),
		DeliveryAddress:        o.DeliveryAddress,
		Subtotal:               o.Subtotal,
		DispatchedAt:           o.DispatchedAt,
		Version:                o.Version,
	}
	m.FromDomainBaseEntity(o.BaseEntity)
	m.FromDomainSoftDeletable(o.SoftDeletable)
	return m
}

// LineModelsFromDomain converts an order's lines, keeping their order
func LineModelsFromDomain(o *trade.Order) []OrderLineModel {
	lines := make([]OrderLineModel, 0, len(o.Lines))
	for i, l := range o.Lines {
		lines = append(lines, OrderLineModel{
			ID:        l.ID,
			OrderID:   o.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Position:  i,
		})
	}
	return lines
}

// OrderLineModel is one product entry of an order
type OrderLineModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Quantity  int       `gorm:"not null"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "order_lines"
}

// All returns every model, in dependency order, for schema setup in tests
func All() []any {
	return []any{
		&StoreModel{},
		&EcommerceIntegrationModel{},
		&CourierIntegrationModel{},
		&ProductModel{},
		&ProductThirdPartyTagModel{},
		&ProductCounterModel{},
		&OrderModel{},
		&OrderLineModel{},
	}
}
