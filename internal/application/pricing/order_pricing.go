package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderPricingCalculator prices a multi-product order including VAT.
// Per-line discounts are computed here independently of PriceCalculator:
// the volume discount applies to the tier-adjusted unit price and the
// promotional discount is the saving against the base price.
type OrderPricingCalculator struct {
	priceRepo pricing.PriceRepository
	tierRepo  pricing.TierRepository
	logger    *zap.Logger
	opts      options
}

// NewOrderPricingCalculator creates a new OrderPricingCalculator
func NewOrderPricingCalculator(
	priceRepo pricing.PriceRepository,
	tierRepo pricing.TierRepository,
	logger *zap.Logger,
	opts ...Option,
) *OrderPricingCalculator {
	return &OrderPricingCalculator{
		priceRepo: priceRepo,
		tierRepo:  tierRepo,
		logger:    logger,
		opts:      newOptions(opts),
	}
}

// Execute prices items for the optional customer
func (c *OrderPricingCalculator) Execute(ctx context.Context, items []OrderItem, customerID *int64) (result *OrderPricingResult, err error) {
	start := time.Now()
	defer func() {
		c.opts.metrics.RecordCalculation(ctx, OperationCalculateOrder, time.Since(start), err)
	}()

	if err := validateOrderItems(items); err != nil {
		return nil, err
	}
	now := c.opts.now()

	productIDs := lo.Uniq(lo.Map(items, func(item OrderItem, _ int) int64 { return item.ProductID }))
	prices, err := c.priceRepo.GetProductPricesByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	priceByID := lo.KeyBy(prices, func(p *pricing.ProductPrice) int64 { return p.ProductID })
	missing := lo.Filter(productIDs, func(id int64, _ int) bool {
		_, ok := priceByID[id]
		return !ok
	})
	if len(missing) == 1 {
		return nil, pricing.NewProductNotFoundError(missing[0])
	}
	if len(missing) > 1 {
		return nil, pricing.NewProductsNotFoundError(missing)
	}

	tierPct := decimal.Zero
	var appliedTier *pricing.TierLevel
	if customerID != nil {
		tier, err := c.tierRepo.GetCustomerTier(ctx, *customerID)
		if err != nil {
			return nil, err
		}
		if tier != nil {
			tierPct = tier.DiscountPercentage
			level := tier.Level
			appliedTier = &level
		}
	}

	result = &OrderPricingResult{
		Items:                         make([]LineItemResult, 0, len(items)),
		Subtotal:                      decimal.Zero,
		TierDiscount:                  decimal.Zero,
		PromotionalDiscount:           decimal.Zero,
		VolumeDiscount:                decimal.Zero,
		OrderVolumeDiscount:           decimal.Zero,
		OrderVolumeDiscountPercentage: decimal.Zero,
		TaxRate:                       pricing.VATRate,
		Currency:                      pricing.Currency,
		AppliedTierLevel:              appliedTier,
	}

	for _, item := range items {
		line, err := c.priceLine(ctx, item, priceByID[item.ProductID].Price, tierPct, now)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, *line)
		result.Subtotal = result.Subtotal.Add(line.LineSubtotal)
		result.TierDiscount = result.TierDiscount.Add(line.TierDiscount)
		result.PromotionalDiscount = result.PromotionalDiscount.Add(line.PromotionalDiscount)
		result.VolumeDiscount = result.VolumeDiscount.Add(line.VolumeDiscount)
		result.TotalQuantity += item.Quantity
	}

	orderRule, err := c.priceRepo.GetOrderLevelVolumeDiscount(ctx, result.TotalQuantity)
	if err != nil {
		return nil, err
	}
	if orderRule != nil {
		// Stacks on top of the per-line volume discounts.
		discountable := decimal.Max(result.Subtotal.Sub(result.TierDiscount).Sub(result.PromotionalDiscount), decimal.Zero)
		result.OrderVolumeDiscountPercentage = orderRule.DiscountPercentage
		result.OrderVolumeDiscount = discountable.Mul(orderRule.DiscountPercentage)
	}

	result.TotalDiscount = result.TierDiscount.
		Add(result.PromotionalDiscount).
		Add(result.VolumeDiscount).
		Add(result.OrderVolumeDiscount)

	result.DiscountPercentage = decimal.Zero
	if result.Subtotal.IsPositive() {
		result.DiscountPercentage = result.TotalDiscount.Div(result.Subtotal)
	}
	result.SubtotalAfterDiscounts = decimal.Max(result.Subtotal.Sub(result.TotalDiscount), decimal.Zero)
	result.TaxAmount = result.SubtotalAfterDiscounts.Mul(pricing.VATRate)
	result.GrandTotal = result.SubtotalAfterDiscounts.Add(result.TaxAmount)

	c.logger.Debug("Calculated order pricing",
		zap.Int("lines", len(result.Items)),
		zap.Int("total_quantity", result.TotalQuantity),
		zap.String("subtotal", result.Subtotal.String()),
		zap.String("grand_total", result.GrandTotal.String()))

	return result, nil
}

func (c *OrderPricingCalculator) priceLine(ctx context.Context, item OrderItem, basePrice, tierPct decimal.Decimal, now time.Time) (*LineItemResult, error) {
	qty := decimal.NewFromInt(int64(item.Quantity))
	line := &LineItemResult{
		ProductID:                item.ProductID,
		Quantity:                 item.Quantity,
		UnitPrice:                basePrice,
		LineSubtotal:             basePrice.Mul(qty),
		TierDiscount:             basePrice.Mul(tierPct).Mul(qty),
		PromotionalDiscount:      decimal.Zero,
		VolumeDiscount:           decimal.Zero,
		VolumeDiscountPercentage: decimal.Zero,
		Currency:                 pricing.Currency,
	}

	promos, err := c.priceRepo.GetActivePromotionsForProduct(ctx, item.ProductID, now)
	if err != nil {
		return nil, err
	}
	if len(promos) > 0 {
		promo := promos[0]
		line.PromotionalDiscount = decimal.Max(basePrice.Sub(promo.PromotionalPrice).Mul(qty), decimal.Zero)
		id := promo.ID
		line.AppliedPromotionID = &id
	}

	rule, err := c.priceRepo.GetVolumeDiscountRuleForQuantity(ctx, item.ProductID, item.Quantity)
	if err != nil {
		return nil, err
	}
	if rule != nil {
		tierAdjusted := basePrice.Mul(decimal.NewFromInt(1).Sub(tierPct))
		line.VolumeDiscountPercentage = rule.DiscountPercentage
		line.VolumeDiscount = tierAdjusted.Mul(rule.DiscountPercentage).Mul(qty)
	}

	line.TotalDiscount = line.TierDiscount.Add(line.PromotionalDiscount).Add(line.VolumeDiscount)
	line.LineTotal = decimal.Max(line.LineSubtotal.Sub(line.TotalDiscount), decimal.Zero)
	return line, nil
}

func validateOrderItems(items []OrderItem) error {
	if len(items) == 0 {
		return pricing.NewPricingError("order must contain at least one item")
	}
	for i, item := range items {
		if item.ProductID <= 0 {
			return pricing.NewPricingError(fmt.Sprintf("item %d: product id must be positive", i))
		}
		if item.Quantity < 1 {
			return pricing.NewPricingError(fmt.Sprintf("item %d: quantity must be at least 1", i))
		}
	}
	return nil
}
