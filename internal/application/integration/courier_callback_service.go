package integration

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apptrade "github.com/Fayyez/UniKhata-sub000/internal/application/trade"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
)

// CourierCallbackService applies shipment status pushed by couriers
type CourierCallbackService struct {
	stores   store.StoreRepository
	orders   trade.OrderRepository
	orderSvc *apptrade.OrderService
	logger   *zap.Logger
}

// NewCourierCallbackService creates a new CourierCallbackService
func NewCourierCallbackService(stores store.StoreRepository, orders trade.OrderRepository, orderSvc *apptrade.OrderService, logger *zap.Logger) *CourierCallbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourierCallbackService{stores: stores, orders: orders, orderSvc: orderSvc, logger: logger}
}

// HandleStatus authenticates the courier by the integration token and moves
// the order it dispatched. IN_TRANSIT and PENDING leave the order as is.
func (s *CourierCallbackService) HandleStatus(ctx context.Context, integrationID uuid.UUID, token string, req CourierCallbackRequest) (*CourierCallbackResponse, error) {
	rec, err := s.stores.FindCourierIntegration(ctx, integrationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !tokenMatches(rec.Token, token) {
		s.logger.Warn("Courier callback rejected",
			zap.String("integration_id", integrationID.String()),
			zap.String("reason", "token mismatch"),
		)
		return nil, shared.ErrUnauthorized
	}

	status := integration.CourierStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown courier status: "+req.Status)
	}

	order, err := s.orders.FindByIDForStore(ctx, rec.StoreID, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.CourierIntegrationID == nil || *order.CourierIntegrationID != rec.ID {
		return nil, shared.NewNotFoundError("Order")
	}

	log := s.logger.With(
		zap.String("integration_id", rec.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("courier_status", string(status)),
	)

	target, ok := status.OrderStatus()
	if !ok || order.Status == target {
		log.Debug("Courier callback did not change order", zap.String("status", order.Status.String()))
		return &CourierCallbackResponse{OrderID: order.ID, Status: order.Status.String()}, nil
	}

	resp, err := s.orderSvc.ApplyStatus(ctx, order, target)
	if err != nil {
		log.Warn("Courier callback not applied", zap.Error(err))
		return nil, err
	}
	if req.Message != "" {
		log = log.With(zap.String("message", req.Message))
	}
	log.Info("Courier callback applied")
	return &CourierCallbackResponse{OrderID: resp.ID, Status: resp.Status, Applied: true}, nil
}

// tokenMatches compares in constant time. Integrations without a token never
// accept callbacks.
func tokenMatches(expected, given string) bool {
	if expected == "" || given == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}
