package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockPriceRepository is a mock implementation of pricing.PriceRepository
type MockPriceRepository struct {
	mock.Mock
}

func (m *MockPriceRepository) GetProductPrice(ctx context.Context, productID int64) (*pricing.ProductPrice, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.ProductPrice), args.Error(1)
}

func (m *MockPriceRepository) GetProductPricesByIDs(ctx context.Context, productIDs []int64) ([]*pricing.ProductPrice, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.ProductPrice), args.Error(1)
}

func (m *MockPriceRepository) GetActivePromotionsForProduct(ctx context.Context, productID int64, now time.Time) ([]*pricing.Promotion, error) {
	args := m.Called(ctx, productID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.Promotion), args.Error(1)
}

func (m *MockPriceRepository) GetOpenPromotionsForProduct(ctx context.Context, productID int64, now time.Time) ([]*pricing.Promotion, error) {
	args := m.Called(ctx, productID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.Promotion), args.Error(1)
}

func (m *MockPriceRepository) GetAllActivePromotions(ctx context.Context, now time.Time) ([]*pricing.Promotion, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.Promotion), args.Error(1)
}

func (m *MockPriceRepository) GetPromotionByID(ctx context.Context, id uuid.UUID) (*pricing.Promotion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Promotion), args.Error(1)
}

func (m *MockPriceRepository) GetVolumeDiscountRuleForQuantity(ctx context.Context, productID int64, quantity int) (*pricing.VolumeDiscountRule, error) {
	args := m.Called(ctx, productID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.VolumeDiscountRule), args.Error(1)
}

func (m *MockPriceRepository) GetOrderLevelVolumeDiscount(ctx context.Context, totalQuantity int) (*pricing.VolumeDiscountRule, error) {
	args := m.Called(ctx, totalQuantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.VolumeDiscountRule), args.Error(1)
}

func (m *MockPriceRepository) CreatePromotion(ctx context.Context, promotion *pricing.Promotion) error {
	args := m.Called(ctx, promotion)
	return args.Error(0)
}

func (m *MockPriceRepository) DeactivatePromotion(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockPriceRepository) ExpirePromotionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPriceRepository) UpdateProductPrice(ctx context.Context, price *pricing.ProductPrice) error {
	args := m.Called(ctx, price)
	return args.Error(0)
}

func (m *MockPriceRepository) CreateVolumeDiscountRule(ctx context.Context, rule *pricing.VolumeDiscountRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockPriceRepository) DeleteVolumeDiscountRule(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTierRepository is a mock implementation of pricing.TierRepository
type MockTierRepository struct {
	mock.Mock
}

func (m *MockTierRepository) GetCustomerTier(ctx context.Context, customerID int64) (*pricing.CustomerTier, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.CustomerTier), args.Error(1)
}

func (m *MockTierRepository) SetCustomerTier(ctx context.Context, customerID int64, level pricing.TierLevel, discount decimal.Decimal, reason string, at time.Time) (*pricing.CustomerTier, error) {
	args := m.Called(ctx, customerID, level, discount, reason, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.CustomerTier), args.Error(1)
}

func (m *MockTierRepository) GetCustomersByTierLevel(ctx context.Context, level pricing.TierLevel) ([]*pricing.CustomerTier, error) {
	args := m.Called(ctx, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.CustomerTier), args.Error(1)
}

func (m *MockTierRepository) BulkUpdateCustomerTiers(ctx context.Context, updates []pricing.TierUpdate, at time.Time) error {
	args := m.Called(ctx, updates, at)
	return args.Error(0)
}

func (m *MockTierRepository) GetCustomerTierHistory(ctx context.Context, customerID int64, limit int) ([]*pricing.TierHistoryEntry, error) {
	args := m.Called(ctx, customerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pricing.TierHistoryEntry), args.Error(1)
}

// =============================================================================
// Helpers
// =============================================================================

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() Option {
	return WithClock(func() time.Time { return fixedNow })
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func int64Ptr(v int64) *int64 { return &v }

func newPrice(productID int64, price string) *pricing.ProductPrice {
	return &pricing.ProductPrice{
		ProductID:   productID,
		Price:       dec(price),
		Currency:    pricing.Currency,
		LastUpdated: fixedNow,
	}
}

func newTier(customerID int64, level pricing.TierLevel) *pricing.CustomerTier {
	return &pricing.CustomerTier{
		CustomerID:         customerID,
		Level:              level,
		DiscountPercentage: level.DiscountRate(),
		Name:               level.DisplayName(),
		AssignedAt:         fixedNow,
		Reason:             "test",
	}
}

func newActivePromotion(productID int64, promotional, original string) *pricing.Promotion {
	return &pricing.Promotion{
		BaseEntity:       shared.NewBaseEntity(fixedNow.Add(-48 * time.Hour)),
		ProductID:        productID,
		PromotionalPrice: dec(promotional),
		OriginalPrice:    dec(original),
		ValidFrom:        fixedNow.Add(-24 * time.Hour),
		ValidUntil:       fixedNow.Add(24 * time.Hour),
		Reason:           "sale",
		IsActive:         true,
	}
}

func newVolumeRule(productID *int64, minQty int, pct string) *pricing.VolumeDiscountRule {
	return &pricing.VolumeDiscountRule{
		ID:                 uuid.New(),
		ProductID:          productID,
		MinQuantity:        minQty,
		DiscountPercentage: dec(pct),
	}
}

// recordingMetrics captures metric calls for assertions
type recordingMetrics struct {
	calculations []string
	promotions   int
	expired      int64
	tiers        []pricing.TierLevel
}

func (r *recordingMetrics) RecordCalculation(_ context.Context, op string, _ time.Duration, _ error) {
	r.calculations = append(r.calculations, op)
}

func (r *recordingMetrics) RecordPromotionCreated(context.Context, int64) { r.promotions++ }

func (r *recordingMetrics) RecordPromotionsExpired(_ context.Context, count int64) { r.expired += count }

func (r *recordingMetrics) RecordTierAssignment(_ context.Context, level pricing.TierLevel) {
	r.tiers = append(r.tiers, level)
}
