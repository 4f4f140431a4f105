package pricing

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPriceCalculator(priceRepo *MockPriceRepository, tierRepo *MockTierRepository, opts ...Option) *PriceCalculator {
	return NewPriceCalculator(priceRepo, tierRepo, zap.NewNop(), append([]Option{fixedClock()}, opts...)...)
}

func TestPriceCalculator_NoDiscounts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		price := decimal.NewFromInt(rng.Int63n(100000) + 1).Div(decimal.NewFromInt(100))
		qty := rng.Intn(500) + 1

		priceRepo := new(MockPriceRepository)
		tierRepo := new(MockTierRepository)
		priceRepo.On("GetProductPrice", mock.Anything, int64(7)).
			Return(&pricing.ProductPrice{ProductID: 7, Price: price, Currency: pricing.Currency}, nil)
		priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(7), fixedNow).Return(nil, nil)
		priceRepo.On("GetVolumeDiscountRuleForQuantity", mock.Anything, int64(7), qty).Return(nil, nil)

		result, err := newTestPriceCalculator(priceRepo, tierRepo).Execute(context.Background(), 7, nil, qty)

		require.NoError(t, err)
		assert.True(t, result.FinalPrice.Equal(price), "price %s qty %d", price, qty)
		assert.True(t, result.TotalDiscount.IsZero())
		assert.True(t, result.TotalDiscountPercentage.IsZero())
		assert.True(t, result.PromotionalPrice.Equal(price))
		assert.Equal(t, qty, result.Quantity)
		assert.Equal(t, "RON", result.Currency)
		assert.Nil(t, result.BreakdownDetails.AppliedTierLevel)
		assert.Nil(t, result.BreakdownDetails.AppliedPromotion)
		assert.Nil(t, result.BreakdownDetails.AppliedVolumeDiscount)
		tierRepo.AssertNotCalled(t, "GetCustomerTier", mock.Anything, mock.Anything)
	}
}

func TestPriceCalculator_GoldTierWithPromotion(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	tierRepo := new(MockTierRepository)
	promo := newActivePromotion(1, "80", "100")

	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	tierRepo.On("GetCustomerTier", mock.Anything, int64(123)).Return(newTier(123, pricing.TierGold), nil)
	priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).
		Return([]*pricing.Promotion{promo}, nil)
	priceRepo.On("GetVolumeDiscountRuleForQuantity", mock.Anything, int64(1), 1).Return(nil, nil)

	result, err := newTestPriceCalculator(priceRepo, tierRepo).Execute(context.Background(), 1, int64Ptr(123), 1)

	require.NoError(t, err)
	assert.True(t, result.TierDiscountPercentage.Equal(dec("0.15")))
	assert.True(t, result.TierDiscount.Equal(dec("15")))
	assert.True(t, result.PromotionalPrice.Equal(dec("80")))
	assert.True(t, result.PromotionalDiscount.Equal(dec("20")))
	assert.True(t, result.TotalDiscount.Equal(dec("35")))
	assert.True(t, result.FinalPrice.Equal(dec("65")))
	assert.True(t, result.FinalPrice.IsPositive())
	assert.True(t, result.FinalPrice.LessThan(dec("100")))
	require.NotNil(t, result.BreakdownDetails.AppliedPromotion)
	assert.Equal(t, promo.ID, result.BreakdownDetails.AppliedPromotion.ID)
	require.NotNil(t, result.BreakdownDetails.AppliedTierLevel)
	assert.Equal(t, pricing.TierGold, *result.BreakdownDetails.AppliedTierLevel)
	priceRepo.AssertExpectations(t)
	tierRepo.AssertExpectations(t)
}

func TestPriceCalculator_FirstPromotionWins(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	first := newActivePromotion(1, "70", "100")
	second := newActivePromotion(1, "50", "100")

	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).
		Return([]*pricing.Promotion{first, second}, nil)
	priceRepo.On("GetVolumeDiscountRuleForQuantity", mock.Anything, int64(1), 1).Return(nil, nil)

	result, err := newTestPriceCalculator(priceRepo, new(MockTierRepository)).Execute(context.Background(), 1, nil, 1)

	require.NoError(t, err)
	assert.True(t, result.PromotionalPrice.Equal(dec("70")))
	assert.Equal(t, first.ID, result.BreakdownDetails.AppliedPromotion.ID)
}

func TestPriceCalculator_VolumeUsesHigherOfPromotionAndTierPrice(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	tierRepo := new(MockTierRepository)
	rule := newVolumeRule(int64Ptr(1), 10, "0.10")

	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	tierRepo.On("GetCustomerTier", mock.Anything, int64(5)).Return(newTier(5, pricing.TierGold), nil)
	priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).
		Return([]*pricing.Promotion{newActivePromotion(1, "80", "100")}, nil)
	priceRepo.On("GetVolumeDiscountRuleForQuantity", mock.Anything, int64(1), 12).Return(rule, nil)

	result, err := newTestPriceCalculator(priceRepo, tierRepo).Execute(context.Background(), 1, int64Ptr(5), 12)

	require.NoError(t, err)
	// volume base is max(80, 85) = 85
	assert.True(t, result.VolumeDiscount.Equal(dec("8.5")))
	assert.True(t, result.VolumeDiscountPercentage.Equal(dec("0.10")))
	// tier and promotional discounts are both counted
	assert.True(t, result.TotalDiscount.Equal(dec("43.5")))
	assert.True(t, result.FinalPrice.Equal(dec("56.5")))
	assert.True(t, result.TotalDiscountPercentage.Equal(dec("0.435")))
	require.NotNil(t, result.BreakdownDetails.AppliedVolumeDiscount)
	assert.Equal(t, rule.ID, result.BreakdownDetails.AppliedVolumeDiscount.RuleID)
}

func TestPriceCalculator_VolumeOnly(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).Return(nil, nil)
	priceRepo.On("GetVolumeDiscountRuleForQuantity", mock.Anything, int64(1), 50).
		Return(newVolumeRule(int64Ptr(1), 50, "0.07"), nil)

	result, err := newTestPriceCalculator(priceRepo, new(MockTierRepository)).Execute(context.Background(), 1, nil, 50)

	require.NoError(t, err)
	assert.True(t, result.VolumeDiscount.Equal(dec("7")))
	assert.True(t, result.FinalPrice.Equal(dec("93")))
}

func TestPriceCalculator_FinalPriceClampedAtZero(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	tierRepo := new(MockTierRepository)

	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	tierRepo.On("GetCustomerTier", mock.Anything, int64(9)).Return(newTier(9, pricing.TierPlatinum), nil)
	priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).
		Return([]*pricing.Promotion{newActivePromotion(1, "10", "100")}, nil)
	priceRepo.On("GetVolumeDiscountRuleForQuantity", mock.Anything, int64(1), 100).
		Return(newVolumeRule(int64Ptr(1), 100, "0.50"), nil)

	result, err := newTestPriceCalculator(priceRepo, tierRepo).Execute(context.Background(), 1, int64Ptr(9), 100)

	require.NoError(t, err)
	assert.True(t, result.TotalDiscount.GreaterThan(dec("100")))
	assert.True(t, result.FinalPrice.IsZero())
}

func TestPriceCalculator_QuantityDefaultsToOne(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).Return(nil, nil)
	priceRepo.On("GetVolumeDiscountRuleForQuantity", mock.Anything, int64(1), 1).Return(nil, nil)

	result, err := newTestPriceCalculator(priceRepo, new(MockTierRepository)).Execute(context.Background(), 1, nil, 0)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Quantity)
	priceRepo.AssertExpectations(t)
}

func TestPriceCalculator_CustomerWithoutTier(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	tierRepo := new(MockTierRepository)
	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	tierRepo.On("GetCustomerTier", mock.Anything, int64(42)).Return(nil, nil)
	priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).Return(nil, nil)
	priceRepo.On("GetVolumeDiscountRuleForQuantity", mock.Anything, int64(1), 1).Return(nil, nil)

	result, err := newTestPriceCalculator(priceRepo, tierRepo).Execute(context.Background(), 1, int64Ptr(42), 1)

	require.NoError(t, err)
	assert.True(t, result.TierDiscountPercentage.IsZero())
	assert.Nil(t, result.BreakdownDetails.AppliedTierLevel)
	assert.True(t, result.FinalPrice.Equal(dec("100")))
}

func TestPriceCalculator_ProductNotFound(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	metrics := &recordingMetrics{}
	priceRepo.On("GetProductPrice", mock.Anything, int64(404)).Return(nil, nil)

	_, err := newTestPriceCalculator(priceRepo, new(MockTierRepository), WithMetrics(metrics)).
		Execute(context.Background(), 404, nil, 1)

	assert.True(t, errors.Is(err, pricing.ErrProductNotFound))
	assert.Equal(t, []string{OperationCalculatePrice}, metrics.calculations)
	priceRepo.AssertNotCalled(t, "GetActivePromotionsForProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestPriceCalculator_RepositoryErrorPropagates(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	dbErr := errors.New("connection refused")
	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).Return(nil, dbErr)

	_, err := newTestPriceCalculator(priceRepo, new(MockTierRepository)).Execute(context.Background(), 1, nil, 1)

	assert.Same(t, dbErr, err)
}
