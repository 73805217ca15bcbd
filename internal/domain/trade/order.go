package trade

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the fulfillment status of a store order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// MaxRemoteOrderIDLength is the width of the remote order id column in characters
const MaxRemoteOrderIDLength = 100

// orderStatusProcessing is accepted on input and stored as dispatched
const orderStatusProcessing = "processing"

// ParseOrderStatus parses a status string, accepting "processing" as an alias
// for dispatched.
func ParseOrderStatus(s string) (OrderStatus, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == orderStatusProcessing {
		return OrderStatusDispatched, nil
	}
	status := OrderStatus(v)
	if !status.IsValid() {
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+s)
	}
	return status, nil
}

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusDispatched, OrderStatusCompleted,
		OrderStatusCancelled, OrderStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no transition out of s exists
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == OrderStatusCancelled {
		return true
	}
	switch s {
	case OrderStatusPending:
		return target == OrderStatusDispatched
	case OrderStatusDispatched:
		return target == OrderStatusCompleted || target == OrderStatusReturned
	}
	return false
}

// OrderLine is one product entry of an order. Name is a snapshot taken when the
// order was pulled.
type OrderLine struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Quantity  int
}

// Order is a store order pulled from an e-commerce integration
type Order struct {
	shared.BaseEntity
	shared.SoftDeletable
	StoreID                uuid.UUID
	RemoteOrderID          string
	Lines                  []OrderLine
	EcommerceIntegrationID uuid.UUID
	Platform               string
	CourierIntegrationID   *uuid.UUID
	Status                 OrderStatus
	DeliveryAddress        string
	Subtotal               decimal.Decimal
	DispatchedAt           *time.Time
	Version                int
}

// NewOrder creates a pending order. At least one line is required.
func NewOrder(storeID, integrationID uuid.UUID, platform, remoteOrderID string, lines []OrderLine, deliveryAddress string, subtotal decimal.Decimal) (*Order, error) {
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if strings.TrimSpace(remoteOrderID) == "" {
		return nil, shared.NewDomainError("INVALID_REMOTE_ID", "Remote order ID cannot be empty")
	}
	if utf8.RuneCountInString(remoteOrderID) > MaxRemoteOrderIDLength {
		return nil, shared.NewDomainError("INVALID_REMOTE_ID",
			fmt.Sprintf("Remote order ID cannot exceed %d characters", MaxRemoteOrderIDLength))
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order requires at least one line item")
	}
	if subtotal.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Subtotal cannot be negative")
	}

	o := &Order{
		BaseEntity:             shared.NewBaseEntity(),
		StoreID:                storeID,
		RemoteOrderID:          remoteOrderID,
		EcommerceIntegrationID: integrationID,
		Platform:               platform,
		Status:                 OrderStatusPending,
		DeliveryAddress:        deliveryAddress,
		Subtotal:               subtotal,
		Version:                1,
	}
	o.Lines = make([]OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
		}
		l.ID = uuid.New()
		l.OrderID = o.ID
		o.Lines = append(o.Lines, l)
	}
	return o, nil
}

// IsPending reports whether the order can still be dispatched
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// TotalQuantity sums line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, l := range o.Lines {
		total += l.Quantity
	}
	return total
}

func (o *Order) transition(target OrderStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewInvalidStateError("Cannot move order from %s to %s", o.Status, target)
	}
	o.Status = target
	o.Touch()
	return nil
}

// MarkDispatched moves a pending order to dispatched and binds the courier
func (o *Order) MarkDispatched(courierIntegrationID uuid.UUID) error {
	if !o.IsPending() {
		return shared.NewInvalidStateError("Order is %s, only pending orders can be dispatched", o.Status)
	}
	if courierIntegrationID == uuid.Nil {
		return shared.NewDomainError("INVALID_COURIER", "Courier integration ID cannot be empty")
	}
	if err := o.transition(OrderStatusDispatched); err != nil {
		return err
	}
	now := time.Now()
	o.CourierIntegrationID = &courierIntegrationID
	o.DispatchedAt = &now
	return nil
}

// Complete marks a dispatched order as delivered
func (o *Order) Complete() error {
	return o.transition(OrderStatusCompleted)
}

// MarkReturned marks a dispatched order as returned by the courier
func (o *Order) MarkReturned() error {
	return o.transition(OrderStatusReturned)
}

// Cancel cancels any non-terminal order
func (o *Order) Cancel() error {
	return o.transition(OrderStatusCancelled)
}

// ChangeStatus applies an explicit status change. Dispatch is excluded because
// it needs a courier binding.
func (o *Order) ChangeStatus(target OrderStatus) error {
	switch target {
	case OrderStatusCompleted:
		return o.Complete()
	case OrderStatusReturned:
		return o.MarkReturned()
	case OrderStatusCancelled:
		return o.Cancel()
	case OrderStatusDispatched:
		return shared.NewInvalidStateError("Orders are dispatched through a courier integration")
	}
	return shared.NewInvalidStateError("Cannot move order from %s to %s", o.Status, target)
}
