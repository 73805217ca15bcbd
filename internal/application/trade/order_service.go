// Package trade holds the store order use cases other than pulling and
// dispatching, which live in the integration package.
package trade

import (
	"context"

	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order queries and manual status changes
type OrderService struct {
	orderRepo trade.OrderRepository
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{orderRepo: orderRepo, logger: logger}
}

// List returns a page of the store's orders
func (s *OrderService) List(ctx context.Context, storeID uuid.UUID, filter OrderListFilter) (shared.Paginated[OrderResponse], error) {
	f, err := filter.toDomain()
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	orders, total, err := s.orderRepo.ListByStore(ctx, storeID, f)
	if err != nil {
		return shared.Paginated[OrderResponse]{}, err
	}
	return shared.NewPaginated(ToOrderResponses(orders), total, f.Page, f.PageSize), nil
}

// GetByID returns one order of the store
func (s *OrderService) GetByID(ctx context.Context, storeID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByIDForStore(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(order)
	return &resp, nil
}

// ChangeStatus applies a state machine transition other than dispatch
func (s *OrderService) ChangeStatus(ctx context.Context, storeID, orderID uuid.UUID, req ChangeOrderStatusRequest) (*OrderResponse, error) {
	target, err := trade.ParseOrderStatus(req.Status)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByIDForStore(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, target)
}

// ApplyStatus moves an already loaded order to target and persists it
// conditionally on its current status
func (s *OrderService) ApplyStatus(ctx context.Context, order *trade.Order, target trade.OrderStatus) (*OrderResponse, error) {
	return s.transition(ctx, order, target)
}

func (s *OrderService) transition(ctx context.Context, order *trade.Order, target trade.OrderStatus) (*OrderResponse, error) {
	from := order.Status
	if err := order.ChangeStatus(target); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatus(ctx, order, from); err != nil {
		return nil, err
	}
	s.logger.Info("Order status changed",
		zap.String("order_id", order.ID.String()),
		zap.String("store_id", order.StoreID.String()),
		zap.String("from", from.String()),
		zap.String("to", order.Status.String()),
	)
	resp := ToOrderResponse(order)
	return &resp, nil
}
