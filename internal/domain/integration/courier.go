package integration

import (
	"context"
	"time"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// CourierStatus is the shipment status reported by a courier
// ---------------------------------------------------------------------------

// CourierStatus is the shipment status reported by a courier
type CourierStatus string

const (
	CourierStatusPending   CourierStatus = "PENDING"
	CourierStatusInTransit CourierStatus = "IN_TRANSIT"
	CourierStatusDelivered CourierStatus = "DELIVERED"
	CourierStatusReturned  CourierStatus = "RETURNED"
	CourierStatusCancelled CourierStatus = "CANCELLED"
)

// IsValid returns true if the status is valid
func (s CourierStatus) IsValid() bool {
	switch s {
	case CourierStatusPending, CourierStatusInTransit, CourierStatusDelivered,
		CourierStatusReturned, CourierStatusCancelled:
		return true
	}
	return false
}

// OrderStatus maps a courier status onto the local order state machine.
// ok is false for statuses that do not move the order.
func (s CourierStatus) OrderStatus() (status trade.OrderStatus, ok bool) {
	switch s {
	case CourierStatusDelivered:
		return trade.OrderStatusCompleted, true
	case CourierStatusReturned:
		return trade.OrderStatusReturned, true
	case CourierStatusCancelled:
		return trade.OrderStatusCancelled, true
	}
	return "", false
}

// ServiceType is a courier delivery speed tier
type ServiceType string

const (
	ServiceTypeStandard ServiceType = "STANDARD"
	ServiceTypeExpress  ServiceType = "EXPRESS"
	ServiceTypeSameDay  ServiceType = "SAME_DAY"
)

// DeliveryWindow is the nominal delivery time of the tier
func (t ServiceType) DeliveryWindow() time.Duration {
	switch t {
	case ServiceTypeExpress:
		return 24 * time.Hour
	case ServiceTypeSameDay:
		return 6 * time.Hour
	default:
		return 48 * time.Hour
	}
}

// ---------------------------------------------------------------------------
// Courier types
// ---------------------------------------------------------------------------

// DispatchResult is the outcome of handing an order to a courier. Dispatch
// never reports failure through an error; callers branch on Success.
type DispatchResult struct {
	Success bool
	Message string
}

// ShipmentInfo describes a courier shipment
type ShipmentInfo struct {
	TrackingID  string
	Status      CourierStatus
	ServiceType ServiceType
}

// TrackingEvent is one hop in a shipment's history
type TrackingEvent struct {
	Status   CourierStatus
	Location string
	At       time.Time
}

// TrackingInfo is the tracking history of a shipment
type TrackingInfo struct {
	TrackingID string
	Status     CourierStatus
	Events     []TrackingEvent
}

// CourierAgent is the rider assigned to a shipment
type CourierAgent struct {
	ID    string
	Name  string
	Phone string
}

// ShippingQuery describes a parcel for rate and ETA queries
type ShippingQuery struct {
	Origin      string
	Destination string
	WeightKg    decimal.Decimal
	ServiceType ServiceType
}

// ShippingRate is a courier quote
type ShippingRate struct {
	Amount      decimal.Decimal
	Currency    string
	ServiceType ServiceType
}

// PickupRequest asks the courier to collect a parcel
type PickupRequest struct {
	TrackingID string
	Address    string
	At         time.Time
}

// PickupConfirmation confirms a scheduled pickup
type PickupConfirmation struct {
	ConfirmationID string
	ScheduledAt    time.Time
}

// ---------------------------------------------------------------------------
// CourierAdapter
// ---------------------------------------------------------------------------

// CourierAdapter is the port every courier provider implements. An adapter is
// bound to one CourierIntegration record.
//
// Only Dispatch is required to work. Providers may answer the remaining
// methods with an UnsupportedOperationError.
type CourierAdapter interface {
	Provider() ProviderCode
	Integration() *CourierIntegration

	// Dispatch makes exactly one call to the courier. Transport failures are
	// folded into the result.
	Dispatch(ctx context.Context, order *trade.Order) DispatchResult

	CreateOrder(ctx context.Context, order *trade.Order) (*ShipmentInfo, error)
	CancelOrder(ctx context.Context, trackingID string) error
	UpdateOrder(ctx context.Context, trackingID string, order *trade.Order) error
	GetOrderStatus(ctx context.Context, trackingID string) (CourierStatus, error)
	GetOrderDetails(ctx context.Context, trackingID string) (*ShipmentInfo, error)
	GetTrackingInfo(ctx context.Context, trackingID string) (*TrackingInfo, error)
	GetAssignedAgent(ctx context.Context, trackingID string) (*CourierAgent, error)
	CalculateShippingRate(ctx context.Context, query ShippingQuery) (*ShippingRate, error)
	CheckServiceAvailability(ctx context.Context, address string) (bool, error)
	SchedulePickup(ctx context.Context, req PickupRequest) (*PickupConfirmation, error)
	ValidateAddress(ctx context.Context, address string) (bool, error)
	EstimateDeliveryTime(ctx context.Context, query ShippingQuery) (time.Duration, error)
}
