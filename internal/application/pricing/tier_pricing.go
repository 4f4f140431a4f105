package pricing

import (
	"context"
	"time"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"go.uber.org/zap"
)

// TierPricingService previews a product's price at every tier. Read only.
type TierPricingService struct {
	priceRepo pricing.PriceRepository
	logger    *zap.Logger
	opts      options
}

// NewTierPricingService creates a new TierPricingService
func NewTierPricingService(priceRepo pricing.PriceRepository, logger *zap.Logger, opts ...Option) *TierPricingService {
	return &TierPricingService{
		priceRepo: priceRepo,
		logger:    logger,
		opts:      newOptions(opts),
	}
}

// Execute returns the base price of productID and its price at each tier, Bronze first
func (s *TierPricingService) Execute(ctx context.Context, productID int64) (result *TierPricingResponse, err error) {
	start := time.Now()
	defer func() {
		s.opts.metrics.RecordCalculation(ctx, OperationTierPricing, time.Since(start), err)
	}()

	productPrice, err := s.priceRepo.GetProductPrice(ctx, productID)
	if err != nil {
		return nil, err
	}
	if productPrice == nil {
		return nil, pricing.NewProductNotFoundError(productID)
	}

	base := productPrice.Price
	levels := pricing.AllTierLevels()
	result = &TierPricingResponse{
		ProductID: productID,
		BasePrice: base,
		Currency:  pricing.Currency,
		Tiers:     make([]TierPrice, 0, len(levels)),
	}
	for _, level := range levels {
		price := level.ApplyDiscount(base)
		result.Tiers = append(result.Tiers, TierPrice{
			Level:              level,
			Name:               level.DisplayName(),
			DiscountPercentage: level.DiscountRate(),
			Price:              price,
			Savings:            base.Sub(price),
		})
	}

	s.logger.Debug("Tier pricing preview", zap.Int64("product_id", productID))
	return result, nil
}
