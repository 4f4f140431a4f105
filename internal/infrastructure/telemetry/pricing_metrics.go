package telemetry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pricingapp "github.com/leduxro-prog/erp-dashboard-sub010/internal/application/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics recorder is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// PricingMetrics records pricing business metrics. It implements the
// application layer's Metrics interface.
type PricingMetrics struct {
	calculations        metric.Int64Counter
	calculationDuration metric.Float64Histogram
	promotionsCreated   metric.Int64Counter
	promotionsExpired   metric.Int64Counter
	tierAssignments     metric.Int64Counter
}

var _ pricingapp.Metrics = (*PricingMetrics)(nil)

// NewPricingMetrics registers the pricing instruments on meter
func NewPricingMetrics(meter metric.Meter) (*PricingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   PricingMetrics
		err error
	)
	if m.calculations, err = meter.Int64Counter("pricing_calculations_total",
		metric.WithDescription("Price calculations by operation and outcome"),
		metric.WithUnit("{calculations}")); err != nil {
		return nil, fmt.Errorf("create calculations counter: %w", err)
	}
	if m.calculationDuration, err = meter.Float64Histogram("pricing_calculation_duration_seconds",
		metric.WithDescription("Latency of price calculations"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1)); err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	if m.promotionsCreated, err = meter.Int64Counter("pricing_promotions_created_total",
		metric.WithDescription("Promotions created"),
		metric.WithUnit("{promotions}")); err != nil {
		return nil, fmt.Errorf("create promotions counter: %w", err)
	}
	if m.promotionsExpired, err = meter.Int64Counter("pricing_promotions_expired_total",
		metric.WithDescription("Promotions deactivated because their window ended"),
		metric.WithUnit("{promotions}")); err != nil {
		return nil, fmt.Errorf("create expiry counter: %w", err)
	}
	if m.tierAssignments, err = meter.Int64Counter("pricing_tier_assignments_total",
		metric.WithDescription("Customer tier assignments by level"),
		metric.WithUnit("{assignments}")); err != nil {
		return nil, fmt.Errorf("create tier counter: %w", err)
	}
	return &m, nil
}

// RecordCalculation counts a calculation and its latency. The outcome label is
// "ok" or the lower-cased domain error code; other errors are "error".
func (m *PricingMetrics) RecordCalculation(ctx context.Context, operation string, duration time.Duration, err error) {
	op := attribute.String("operation", operation)
	m.calculations.Add(ctx, 1, metric.WithAttributes(op, attribute.String("outcome", outcome(err))))
	m.calculationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(op))
}

// RecordPromotionCreated counts a created promotion
func (m *PricingMetrics) RecordPromotionCreated(ctx context.Context, _ int64) {
	m.promotionsCreated.Add(ctx, 1)
}

// RecordPromotionsExpired counts promotions deactivated by an expiry sweep
func (m *PricingMetrics) RecordPromotionsExpired(ctx context.Context, count int64) {
	if count > 0 {
		m.promotionsExpired.Add(ctx, count)
	}
}

// RecordTierAssignment counts a tier assignment
func (m *PricingMetrics) RecordTierAssignment(ctx context.Context, level pricing.TierLevel) {
	m.tierAssignments.Add(ctx, 1, metric.WithAttributes(attribute.String("level", string(level))))
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return strings.ToLower(domainErr.Code)
	}
	return "error"
}
