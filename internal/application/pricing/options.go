package pricing

import (
	"context"
	"time"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
)

// Metrics records pricing business events. Implemented by the telemetry package.
type Metrics interface {
	RecordCalculation(ctx context.Context, operation string, duration time.Duration, err error)
	RecordPromotionCreated(ctx context.Context, productID int64)
	RecordPromotionsExpired(ctx context.Context, count int64)
	RecordTierAssignment(ctx context.Context, level pricing.TierLevel)
}

type noopMetrics struct{}

func (noopMetrics) RecordCalculation(context.Context, string, time.Duration, error) {}
func (noopMetrics) RecordPromotionCreated(context.Context, int64)                  {}
func (noopMetrics) RecordPromotionsExpired(context.Context, int64)                 {}
func (noopMetrics) RecordTierAssignment(context.Context, pricing.TierLevel)        {}

// Operation names passed to Metrics.RecordCalculation
const (
	OperationCalculatePrice = "calculate_price"
	OperationCalculateOrder = "calculate_order"
	OperationTierPricing    = "tier_pricing"
)

// Option configures a pricing service
type Option func(*options)

type options struct {
	now     func() time.Time
	metrics Metrics
}

// WithClock overrides the time source used for promotion windows and timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(m Metrics) Option {
	return func(o *options) {
		if m != nil {
			o.metrics = m
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		now:     func() time.Time { return time.Now().UTC() },
		metrics: noopMetrics{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
