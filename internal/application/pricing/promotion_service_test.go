package pricing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const day = 24 * time.Hour

func newTestPromotionService(priceRepo *MockPriceRepository, opts ...Option) *PromotionService {
	return NewPromotionService(priceRepo, zap.NewNop(), append([]Option{fixedClock()}, opts...)...)
}

func promotionRequest(price string, from, until time.Time) CreatePromotionRequest {
	return CreatePromotionRequest{
		ProductID:        1,
		PromotionalPrice: dec(price),
		ValidFrom:        from,
		ValidUntil:       until,
		Reason:           "clearance",
	}
}

func TestPromotionService_CreatePromotion(t *testing.T) {
	t.Run("creates promotion", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		metrics := &recordingMetrics{}
		priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
		priceRepo.On("GetOpenPromotionsForProduct", mock.Anything, int64(1), fixedNow).Return(nil, nil)
		priceRepo.On("CreatePromotion", mock.Anything, mock.MatchedBy(func(p *pricing.Promotion) bool {
			return p.ProductID == 1 && p.IsActive && p.OriginalPrice.Equal(dec("100")) && p.PromotionalPrice.Equal(dec("80"))
		})).Return(nil)

		resp, err := newTestPromotionService(priceRepo, WithMetrics(metrics)).
			CreatePromotion(context.Background(), promotionRequest("80", fixedNow, fixedNow.Add(7*day)))

		require.NoError(t, err)
		assert.True(t, resp.IsActive)
		assert.True(t, resp.DiscountPercentage.Equal(dec("0.2")))
		assert.Equal(t, "clearance", resp.Reason)
		assert.Equal(t, fixedNow, resp.CreatedAt)
		assert.Equal(t, 1, metrics.promotions)
		priceRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(nil, nil)

		_, err := newTestPromotionService(priceRepo).
			CreatePromotion(context.Background(), promotionRequest("80", fixedNow, fixedNow.Add(day)))

		assert.True(t, errors.Is(err, pricing.ErrProductNotFound))
		priceRepo.AssertNotCalled(t, "CreatePromotion", mock.Anything, mock.Anything)
	})

	t.Run("rejects promotional price not below base price", func(t *testing.T) {
		for _, price := range []string{"100", "100.01", "250"} {
			priceRepo := new(MockPriceRepository)
			priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)

			_, err := newTestPromotionService(priceRepo).
				CreatePromotion(context.Background(), promotionRequest(price, fixedNow, fixedNow.Add(day)))

			assert.True(t, errors.Is(err, pricing.ErrInvalidPromotion), price)
			priceRepo.AssertNotCalled(t, "GetOpenPromotionsForProduct", mock.Anything, mock.Anything, mock.Anything)
			priceRepo.AssertNotCalled(t, "CreatePromotion", mock.Anything, mock.Anything)
		}
	})

	t.Run("enforces 90 percent discount ceiling", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
		priceRepo.On("GetOpenPromotionsForProduct", mock.Anything, int64(1), fixedNow).Return(nil, nil)
		priceRepo.On("CreatePromotion", mock.Anything, mock.Anything).Return(nil).Once()
		svc := newTestPromotionService(priceRepo)

		_, err := svc.CreatePromotion(context.Background(), promotionRequest("5", fixedNow, fixedNow.Add(day)))
		assert.True(t, errors.Is(err, pricing.ErrInvalidPromotion))

		resp, err := svc.CreatePromotion(context.Background(), promotionRequest("10", fixedNow, fixedNow.Add(day)))
		require.NoError(t, err)
		assert.True(t, resp.PromotionalPrice.Equal(dec("10")))
		priceRepo.AssertNumberOfCalls(t, "CreatePromotion", 1)
	})

	t.Run("rejects invalid dates", func(t *testing.T) {
		cases := map[string]CreatePromotionRequest{
			"missing dates":   promotionRequest("80", time.Time{}, time.Time{}),
			"inverted window": promotionRequest("80", fixedNow.Add(2*day), fixedNow.Add(day)),
			"already ended":   promotionRequest("80", fixedNow.Add(-2*day), fixedNow.Add(-day)),
		}
		for name, req := range cases {
			priceRepo := new(MockPriceRepository)
			priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)

			_, err := newTestPromotionService(priceRepo).CreatePromotion(context.Background(), req)

			assert.True(t, errors.Is(err, pricing.ErrPromotionDate), name)
			priceRepo.AssertNotCalled(t, "CreatePromotion", mock.Anything, mock.Anything)
		}
	})

	t.Run("price rules are checked before dates", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)

		_, err := newTestPromotionService(priceRepo).
			CreatePromotion(context.Background(), promotionRequest("120", time.Time{}, time.Time{}))

		assert.True(t, errors.Is(err, pricing.ErrInvalidPromotion))
	})
}

func TestPromotionService_CreatePromotion_Overlap(t *testing.T) {
	existing := newActivePromotion(1, "85", "100")
	existing.ValidFrom = fixedNow
	existing.ValidUntil = fixedNow.Add(10 * day)

	tests := []struct {
		name     string
		from     time.Time
		until    time.Time
		overlaps bool
	}{
		{"straddles end", fixedNow.Add(5 * day), fixedNow.Add(15 * day), true},
		{"contains existing", fixedNow.Add(-day), fixedNow.Add(11 * day), true},
		{"inside existing", fixedNow.Add(day), fixedNow.Add(2 * day), true},
		{"starts when existing ends", fixedNow.Add(10 * day), fixedNow.Add(20 * day), false},
		{"later window", fixedNow.Add(30 * day), fixedNow.Add(40 * day), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			priceRepo := new(MockPriceRepository)
			priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
			priceRepo.On("GetOpenPromotionsForProduct", mock.Anything, int64(1), fixedNow).
				Return([]*pricing.Promotion{existing}, nil)
			priceRepo.On("CreatePromotion", mock.Anything, mock.Anything).Return(nil)

			_, err := newTestPromotionService(priceRepo).
				CreatePromotion(context.Background(), promotionRequest("80", tt.from, tt.until))

			if tt.overlaps {
				assert.True(t, errors.Is(err, pricing.ErrPromotionDate))
				assert.Contains(t, err.Error(), existing.ID.String())
				priceRepo.AssertNotCalled(t, "CreatePromotion", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				priceRepo.AssertNumberOfCalls(t, "CreatePromotion", 1)
			}
		})
	}
}

func TestPromotionService_CreatePromotion_MarginWarningDoesNotBlock(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	priceRepo := new(MockPriceRepository)
	price := newPrice(1, "100")
	cost := dec("75")
	price.Cost = &cost

	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(price, nil)
	priceRepo.On("GetOpenPromotionsForProduct", mock.Anything, int64(1), fixedNow).Return(nil, nil)
	priceRepo.On("CreatePromotion", mock.Anything, mock.Anything).Return(nil)

	svc := NewPromotionService(priceRepo, zap.New(core), fixedClock())
	_, err := svc.CreatePromotion(context.Background(), promotionRequest("80", fixedNow, fixedNow.Add(day)))

	require.NoError(t, err)
	entries := logs.FilterMessage("Promotional price is below the margin floor").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["detail"], "6.25%")
}

func TestPromotionService_CreatePromotion_RepositoryConflict(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	conflict := pricing.NewPromotionDateError("promotion overlaps an active promotion")
	priceRepo.On("GetProductPrice", mock.Anything, int64(1)).Return(newPrice(1, "100"), nil)
	priceRepo.On("GetOpenPromotionsForProduct", mock.Anything, int64(1), fixedNow).Return(nil, nil)
	priceRepo.On("CreatePromotion", mock.Anything, mock.Anything).Return(conflict)

	_, err := newTestPromotionService(priceRepo).
		CreatePromotion(context.Background(), promotionRequest("80", fixedNow, fixedNow.Add(day)))

	assert.Same(t, conflict, err)
}

func TestPromotionService_DeactivatePromotion(t *testing.T) {
	t.Run("deactivates active promotion", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		promo := newActivePromotion(1, "80", "100")
		priceRepo.On("GetPromotionByID", mock.Anything, promo.ID).Return(promo, nil)
		priceRepo.On("DeactivatePromotion", mock.Anything, promo.ID, fixedNow).Return(nil)

		resp, err := newTestPromotionService(priceRepo).DeactivatePromotion(context.Background(), promo.ID)

		require.NoError(t, err)
		assert.False(t, resp.IsActive)
		assert.Equal(t, fixedNow, resp.UpdatedAt)
		priceRepo.AssertExpectations(t)
	})

	t.Run("inactive promotion is a no-op", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		promo := newActivePromotion(1, "80", "100")
		promo.IsActive = false
		priceRepo.On("GetPromotionByID", mock.Anything, promo.ID).Return(promo, nil)

		resp, err := newTestPromotionService(priceRepo).DeactivatePromotion(context.Background(), promo.ID)

		require.NoError(t, err)
		assert.False(t, resp.IsActive)
		priceRepo.AssertNotCalled(t, "DeactivatePromotion", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown promotion", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		id := uuid.New()
		priceRepo.On("GetPromotionByID", mock.Anything, id).Return(nil, nil)

		_, err := newTestPromotionService(priceRepo).DeactivatePromotion(context.Background(), id)

		assert.True(t, errors.Is(err, pricing.ErrPromotionNotFound))
	})
}

func TestPromotionService_GetPromotion(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	promo := newActivePromotion(1, "80", "100")
	missing := uuid.New()
	priceRepo.On("GetPromotionByID", mock.Anything, promo.ID).Return(promo, nil)
	priceRepo.On("GetPromotionByID", mock.Anything, missing).Return(nil, nil)
	svc := newTestPromotionService(priceRepo)

	resp, err := svc.GetPromotion(context.Background(), promo.ID)
	require.NoError(t, err)
	assert.Equal(t, promo.ID, resp.ID)

	_, err = svc.GetPromotion(context.Background(), missing)
	assert.True(t, errors.Is(err, pricing.ErrPromotionNotFound))
}

func TestPromotionService_GetActivePromotions(t *testing.T) {
	a := newActivePromotion(1, "80", "100")
	b := newActivePromotion(2, "40", "50")

	t.Run("scoped to product", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		priceRepo.On("GetActivePromotionsForProduct", mock.Anything, int64(1), fixedNow).
			Return([]*pricing.Promotion{a}, nil)

		resp, err := newTestPromotionService(priceRepo).GetActivePromotions(context.Background(), int64Ptr(1))

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, a.ID, resp[0].ID)
		priceRepo.AssertNotCalled(t, "GetAllActivePromotions", mock.Anything, mock.Anything)
	})

	t.Run("global", func(t *testing.T) {
		priceRepo := new(MockPriceRepository)
		priceRepo.On("GetAllActivePromotions", mock.Anything, fixedNow).
			Return([]*pricing.Promotion{a, b}, nil)

		resp, err := newTestPromotionService(priceRepo).GetActivePromotions(context.Background(), nil)

		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, b.ID, resp[1].ID)
	})
}

func TestPromotionService_ExpireOverduePromotions(t *testing.T) {
	priceRepo := new(MockPriceRepository)
	metrics := &recordingMetrics{}
	priceRepo.On("ExpirePromotionsBefore", mock.Anything, fixedNow).Return(int64(3), nil)

	count, err := newTestPromotionService(priceRepo, WithMetrics(metrics)).ExpireOverduePromotions(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, int64(3), metrics.expired)
}
