// Package integration holds the storefront pull and courier dispatch use
// cases. Adapters are built per call from the store's integration records.
package integration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	appstore "github.com/Fayyez/UniKhata-sub000/internal/application/store"
	apptrade "github.com/Fayyez/UniKhata-sub000/internal/application/trade"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/integration"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/shared"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/store"
	"github.com/Fayyez/UniKhata-sub000/internal/domain/trade"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/logger"
	"github.com/Fayyez/UniKhata-sub000/internal/infrastructure/telemetry"
)

// Orchestrator runs PullNewOrders and DispatchOrder
type Orchestrator struct {
	stores   store.StoreRepository
	orders   trade.OrderRepository
	adapters integration.AdapterFactory
	lock     integration.SyncLock
	lockTTL  time.Duration
	metrics  *telemetry.IntegrationMetrics
	logger   *zap.Logger
}

// OrchestratorOption configures an Orchestrator
type OrchestratorOption func(*Orchestrator)

// WithSyncLock serializes pulls per store. Without it concurrent pulls rely
// on the unique constraints alone.
func WithSyncLock(lock integration.SyncLock, ttl time.Duration) OrchestratorOption {
	return func(o *Orchestrator) {
		o.lock = lock
		if ttl > 0 {
			o.lockTTL = ttl
		}
	}
}

// WithMetrics records pull and dispatch counters
func WithMetrics(m *telemetry.IntegrationMetrics) OrchestratorOption {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}

// WithLogger sets the base logger
func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewOrchestrator creates an Orchestrator
func NewOrchestrator(stores store.StoreRepository, orders trade.OrderRepository, adapters integration.AdapterFactory, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		stores:   stores,
		orders:   orders,
		adapters: adapters,
		lockTTL:  integration.DefaultSyncLockTTL,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// PullNewOrders syncs products and then orders from every e-commerce
// integration of the store, one integration at a time. A nil actorID means
// the store owner. The first adapter error aborts the pull; what earlier
// integrations already stored is kept.
func (o *Orchestrator) PullNewOrders(ctx context.Context, storeID, actorID uuid.UUID) (result *PullResult, err error) {
	ctx, span := telemetry.StartSpan(ctx, "integration.PullNewOrders",
		telemetry.AttrStoreID.String(storeID.String()))
	start := time.Now()
	outcome := telemetry.OutcomeSuccess
	defer func() {
		o.metrics.RecordPull(ctx, outcome, time.Since(start))
		telemetry.EndSpan(span, err)
	}()

	st, err := appstore.LoadOwned(ctx, o.stores, storeID, actorID)
	if err != nil {
		outcome = telemetry.OutcomeFailed
		return nil, err
	}
	if actorID == uuid.Nil {
		actorID = st.OwnerID
	}
	log := logger.Enrich(logger.WithStoreID(ctx, st.ID.String()), o.logger)

	if o.lock != nil {
		release, err := o.lock.Acquire(ctx, integration.StoreSyncKey(st.ID), o.lockTTL)
		if err != nil {
			if errors.Is(err, integration.ErrSyncInProgress) {
				outcome = telemetry.OutcomeBusy
				log.Info("Pull skipped, store sync already running")
			} else {
				outcome = telemetry.OutcomeFailed
			}
			return nil, err
		}
		defer release()
	}

	adapters, err := o.adapters.EStoreAdapters(st.EcommerceIntegrations)
	if err != nil {
		outcome = telemetry.OutcomeFailed
		log.Error("Cannot build e-commerce adapters", zap.Error(err))
		return nil, err
	}

	result = &PullResult{
		StoreID:      st.ID,
		Integrations: make([]IntegrationPullResult, 0, len(adapters)),
		Orders:       make([]apptrade.OrderResponse, 0),
	}
	for _, a := range adapters {
		if err := o.pullOne(ctx, log, a, actorID, st.ID, result); err != nil {
			outcome = telemetry.OutcomeFailed
			return nil, err
		}
	}

	log.Info("Store pull finished",
		zap.Int("integrations", len(adapters)),
		zap.Int("products_created", result.ProductsCreated),
		zap.Int("products_matched", result.ProductsMatched),
		zap.Int("orders_created", result.OrdersCreated),
		zap.Int("orders_skipped", result.OrdersSkipped),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (o *Orchestrator) pullOne(ctx context.Context, log *zap.Logger, a integration.EStoreAdapter, actorID, storeID uuid.UUID, result *PullResult) (err error) {
	rec := a.Integration()
	provider := a.Provider().String()
	ctx, span := telemetry.StartSpan(ctx, "integration.SyncIntegration",
		telemetry.AttrStoreID.String(storeID.String()),
		telemetry.AttrProvider.String(provider),
		attribute.String("integration.id", rec.ID.String()),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	log = log.With(zap.String("integration_id", rec.ID.String()), zap.String("provider", provider))

	products, err := a.GetAllProducts(ctx, actorID, storeID)
	if err != nil {
		o.recordGatewayError(ctx, log, provider, "products", err)
		return fmt.Errorf("sync products of integration %s: %w", rec.ID, err)
	}
	orders, err := a.GetOrders(ctx, storeID)
	if err != nil {
		o.recordGatewayError(ctx, log, provider, "orders", err)
		return fmt.Errorf("sync orders of integration %s: %w", rec.ID, err)
	}

	o.metrics.RecordReconciliation(ctx, provider, products.Created, products.Matched, len(orders.Created))
	result.add(rec, products, orders)
	return nil
}

func (o *Orchestrator) recordGatewayError(ctx context.Context, log *zap.Logger, provider, kind string, err error) {
	if integration.IsTransportError(err) {
		o.metrics.RecordGatewayError(ctx, provider, kind)
	}
	log.Error("Integration sync failed", zap.String("kind", kind), zap.Error(err))
}

// DispatchOrder hands a pending order to the store's first courier
// integration. The courier is called once; on refusal the order stays
// pending and a *integration.DispatchFailedError is returned.
func (o *Orchestrator) DispatchOrder(ctx context.Context, storeID, orderID uuid.UUID) (outcome *DispatchOutcome, err error) {
	ctx, span := telemetry.StartSpan(ctx, "integration.DispatchOrder",
		telemetry.AttrStoreID.String(storeID.String()),
		attribute.String("order.id", orderID.String()),
	)
	defer func() { telemetry.EndSpan(span, err) }()
	log := logger.Enrich(logger.WithStoreID(ctx, storeID.String()), o.logger).
		With(zap.String("order_id", orderID.String()))

	order, err := o.orders.FindByIDForStore(ctx, storeID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsPending() {
		return nil, shared.NewInvalidStateError("Order is %s, only pending orders can be dispatched", order.Status)
	}

	st, err := appstore.LoadOwned(ctx, o.stores, storeID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if len(st.CourierIntegrations) == 0 {
		return nil, fmt.Errorf("%w: %w", integration.ErrNoCourierIntegration,
			shared.NewInvalidStateError("Store has no courier integration"))
	}

	couriers, err := o.adapters.CourierAdapters(st.CourierIntegrations)
	if err != nil {
		log.Error("Cannot build courier adapters", zap.Error(err))
		return nil, err
	}
	courier := couriers[0]
	rec := courier.Integration()
	provider := courier.Provider().String()

	callCtx, callSpan := telemetry.StartClientSpan(ctx, "courier.Dispatch",
		telemetry.AttrProvider.String(provider),
		attribute.String("integration.id", rec.ID.String()),
	)
	res := courier.Dispatch(callCtx, order)
	callSpan.SetAttributes(attribute.Bool("dispatch.success", res.Success))
	callSpan.End()

	if !res.Success {
		o.metrics.RecordDispatch(ctx, provider, telemetry.OutcomeRejected)
		log.Warn("Courier did not accept order",
			zap.String("integration_id", rec.ID.String()),
			zap.String("message", res.Message),
		)
		return nil, &integration.DispatchFailedError{
			OrderID:       order.ID,
			IntegrationID: rec.ID,
			Message:       res.Message,
		}
	}

	if err := order.MarkDispatched(rec.ID); err != nil {
		return nil, err
	}
	if err := o.orders.UpdateStatus(ctx, order, trade.OrderStatusPending); err != nil {
		o.metrics.RecordDispatch(ctx, provider, telemetry.OutcomeFailed)
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			log.Warn("Order was dispatched concurrently", zap.String("integration_id", rec.ID.String()))
		}
		return nil, err
	}
	o.metrics.RecordDispatch(ctx, provider, telemetry.OutcomeSuccess)
	log.Info("Order dispatched",
		zap.String("integration_id", rec.ID.String()),
		zap.String("provider", provider),
	)

	return &DispatchOutcome{
		Order:                apptrade.ToOrderResponse(order),
		CourierIntegrationID: rec.ID,
		Provider:             provider,
		Details:              res.Message,
	}, nil
}
