package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"go.uber.org/zap"
)

// PriceAdminService maintains base prices and volume discount rules
type PriceAdminService struct {
	priceRepo pricing.PriceRepository
	logger    *zap.Logger
	opts      options
}

// NewPriceAdminService creates a new PriceAdminService
func NewPriceAdminService(priceRepo pricing.PriceRepository, logger *zap.Logger, opts ...Option) *PriceAdminService {
	return &PriceAdminService{
		priceRepo: priceRepo,
		logger:    logger,
		opts:      newOptions(opts),
	}
}

// UpdateProductPrice creates or replaces the base price of a product
func (s *PriceAdminService) UpdateProductPrice(ctx context.Context, productID int64, req UpdateProductPriceRequest) (*ProductPriceResponse, error) {
	price, err := pricing.NewProductPrice(productID, req.Price, req.Cost, s.opts.now())
	if err != nil {
		return nil, err
	}
	if err := s.priceRepo.UpdateProductPrice(ctx, price); err != nil {
		return nil, err
	}

	s.logger.Info("Product price updated",
		zap.Int64("product_id", productID),
		zap.String("price", price.Price.String()))

	resp := ToProductPriceResponse(price)
	return &resp, nil
}

// CreateVolumeDiscountRule validates and stores a volume discount rule.
// Product rules require the product to have a price.
func (s *PriceAdminService) CreateVolumeDiscountRule(ctx context.Context, req CreateVolumeRuleRequest) (*VolumeRuleResponse, error) {
	rule, err := pricing.NewVolumeDiscountRule(req.ProductID, req.MinQuantity, req.MaxQuantity, req.DiscountPercentage)
	if err != nil {
		return nil, err
	}

	if rule.ProductID != nil {
		price, err := s.priceRepo.GetProductPrice(ctx, *rule.ProductID)
		if err != nil {
			return nil, err
		}
		if price == nil {
			return nil, pricing.NewProductNotFoundError(*rule.ProductID)
		}
	}

	if err := s.priceRepo.CreateVolumeDiscountRule(ctx, rule); err != nil {
		return nil, err
	}

	s.logger.Info("Volume discount rule created",
		zap.String("rule_id", rule.ID.String()),
		zap.Bool("order_level", rule.IsOrderLevel()),
		zap.Int("min_quantity", rule.MinQuantity))

	resp := ToVolumeRuleResponse(rule)
	return &resp, nil
}

// DeleteVolumeDiscountRule removes a volume discount rule
func (s *PriceAdminService) DeleteVolumeDiscountRule(ctx context.Context, id uuid.UUID) error {
	if err := s.priceRepo.DeleteVolumeDiscountRule(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Volume discount rule deleted", zap.String("rule_id", id.String()))
	return nil
}
