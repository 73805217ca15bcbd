package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Dispatch and pull outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
	OutcomeBusy     = "busy"
)

// IntegrationMetrics counts storefront pulls and courier dispatches
type IntegrationMetrics struct {
	pulls           *Counter
	pullDuration    *Histogram
	productsCreated *Counter
	productsMatched *Counter
	ordersCreated   *Counter
	dispatches      *Counter
	gatewayErrors   *Counter
}

// NewIntegrationMetrics registers the instruments on meter
func NewIntegrationMetrics(meter metric.Meter) (*IntegrationMetrics, error) {
	m := &IntegrationMetrics{}
	var err error
	if m.pulls, err = NewCounter(meter, "integration_pulls_total", "Storefront pulls by outcome", "{pull}"); err != nil {
		return nil, err
	}
	if m.pullDuration, err = NewHistogram(meter, "integration_pull_duration_seconds", "Duration of a full store pull", "s", GatewayDurationBuckets); err != nil {
		return nil, err
	}
	if m.productsCreated, err = NewCounter(meter, "integration_products_created_total", "Products created by reconciliation", "{product}"); err != nil {
		return nil, err
	}
	if m.productsMatched, err = NewCounter(meter, "integration_products_matched_total", "Remote products matched to existing rows", "{product}"); err != nil {
		return nil, err
	}
	if m.ordersCreated, err = NewCounter(meter, "integration_orders_created_total", "Orders created by reconciliation", "{order}"); err != nil {
		return nil, err
	}
	if m.dispatches, err = NewCounter(meter, "courier_dispatches_total", "Courier dispatch attempts by outcome", "{dispatch}"); err != nil {
		return nil, err
	}
	if m.gatewayErrors, err = NewCounter(meter, "integration_gateway_errors_total", "Per-integration gateway failures during pulls", "{error}"); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordPull records one PullNewOrders call
func (m *IntegrationMetrics) RecordPull(ctx context.Context, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrOutcome.String(outcome)}
	m.pulls.Inc(ctx, attrs...)
	m.pullDuration.RecordDuration(ctx, d, attrs...)
}

// RecordReconciliation records what one integration contributed to a pull
func (m *IntegrationMetrics) RecordReconciliation(ctx context.Context, provider string, productsCreated, productsMatched, ordersCreated int) {
	if m == nil {
		return
	}
	p := AttrProvider.String(provider)
	m.productsCreated.Add(ctx, int64(productsCreated), p)
	m.productsMatched.Add(ctx, int64(productsMatched), p)
	m.ordersCreated.Add(ctx, int64(ordersCreated), p)
}

// RecordGatewayError records a gateway failure that aborted a pull
func (m *IntegrationMetrics) RecordGatewayError(ctx context.Context, provider, kind string) {
	if m == nil {
		return
	}
	m.gatewayErrors.Inc(ctx, AttrProvider.String(provider), AttrKind.String(kind))
}

// RecordDispatch records one courier dispatch
func (m *IntegrationMetrics) RecordDispatch(ctx context.Context, provider, outcome string) {
	if m == nil {
		return
	}
	m.dispatches.Inc(ctx, AttrProvider.String(provider), AttrOutcome.String(outcome))
}
