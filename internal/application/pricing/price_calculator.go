package pricing

import (
	"context"
	"time"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PriceCalculator computes the final price of a single product for a customer and quantity
type PriceCalculator struct {
	priceRepo pricing.PriceRepository
	tierRepo  pricing.TierRepository
	logger    *zap.Logger
	opts      options
}

// NewPriceCalculator creates a new PriceCalculator
func NewPriceCalculator(
	priceRepo pricing.PriceRepository,
	tierRepo pricing.TierRepository,
	logger *zap.Logger,
	opts ...Option,
) *PriceCalculator {
	return &PriceCalculator{
		priceRepo: priceRepo,
		tierRepo:  tierRepo,
		logger:    logger,
		opts:      newOptions(opts),
	}
}

// Execute calculates the price of quantity units of productID. A quantity
// of zero or less is treated as 1. customerID may be nil for anonymous pricing.
//
// The tier and promotional discounts are both added to the total discount,
// while the volume discount is taken on the higher of the promotional price
// and the tier-discounted price.
func (c *PriceCalculator) Execute(ctx context.Context, productID int64, customerID *int64, quantity int) (result *PriceCalculationResult, err error) {
	start := time.Now()
	defer func() {
		c.opts.metrics.RecordCalculation(ctx, OperationCalculatePrice, time.Since(start), err)
	}()

	if quantity <= 0 {
		quantity = 1
	}
	now := c.opts.now()

	productPrice, err := c.priceRepo.GetProductPrice(ctx, productID)
	if err != nil {
		return nil, err
	}
	if productPrice == nil {
		return nil, pricing.NewProductNotFoundError(productID)
	}
	basePrice := productPrice.Price

	var breakdown PriceBreakdown

	tierPct := decimal.Zero
	if customerID != nil {
		tier, err := c.tierRepo.GetCustomerTier(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if tier != nil {
			tierPct = tier.DiscountPercentage
			level := tier.Level
			breakdown.AppliedTierLevel = &level
		}
	}
	tierDiscount := basePrice.Mul(tierPct)
	tierPrice := basePrice.Sub(tierDiscount)

	promos, err := c.priceRepo.GetActivePromotionsForProduct(ctx, productID, now)
	if err != nil {
		return nil, err
	}
	promotionalPrice := tierPrice
	promotionalDiscount := decimal.Zero
	if len(promos) > 0 {
		promo := promos[0]
		promotionalPrice = promo.PromotionalPrice
		promotionalDiscount = basePrice.Sub(promotionalPrice)
		breakdown.AppliedPromotion = toAppliedPromotion(promo)
	}

	priceBeforeVolume := decimal.Max(promotionalPrice, tierPrice)

	rule, err := c.priceRepo.GetVolumeDiscountRuleForQuantity(ctx, productID, quantity)
	if err != nil {
		return nil, err
	}
	volumePct := decimal.Zero
	if rule != nil {
		volumePct = rule.DiscountPercentage
		breakdown.AppliedVolumeDiscount = toAppliedVolumeDiscount(rule)
	}
	volumeDiscount := priceBeforeVolume.Mul(volumePct)

	totalDiscount := tierDiscount.Add(promotionalDiscount).Add(volumeDiscount)
	finalPrice := decimal.Max(basePrice.Sub(totalDiscount), decimal.Zero)

	totalPct := decimal.Zero
	if !totalDiscount.IsZero() && basePrice.IsPositive() {
		totalPct = totalDiscount.Div(basePrice)
	}

	c.logger.Debug("Calculated product price",
		zap.Int64("product_id", productID),
		zap.Int("quantity", quantity),
		zap.String("base_price", basePrice.String()),
		zap.String("final_price", finalPrice.String()))

	return &PriceCalculationResult{
		ProductID:                productID,
		Quantity:                 quantity,
		BasePrice:                basePrice,
		TierDiscount:             tierDiscount,
		TierDiscountPercentage:   tierPct,
		PromotionalDiscount:      promotionalDiscount,
		PromotionalPrice:         promotionalPrice,
		VolumeDiscount:           volumeDiscount,
		VolumeDiscountPercentage: volumePct,
		TotalDiscount:            totalDiscount,
		TotalDiscountPercentage:  totalPct,
		FinalPrice:               finalPrice,
		Currency:                 pricing.Currency,
		BreakdownDetails:         breakdown,
	}, nil
}
