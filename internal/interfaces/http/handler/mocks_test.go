package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

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
