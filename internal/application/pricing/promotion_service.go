package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"go.uber.org/zap"
)

// PromotionService handles promotion lifecycle operations
type PromotionService struct {
	priceRepo pricing.PriceRepository
	logger    *zap.Logger
	opts      options
}

// NewPromotionService creates a new PromotionService
func NewPromotionService(priceRepo pricing.PriceRepository, logger *zap.Logger, opts ...Option) *PromotionService {
	return &PromotionService{
		priceRepo: priceRepo,
		logger:    logger,
		opts:      newOptions(opts),
	}
}

// CreatePromotion validates and persists a new promotion.
// Checks run in order: product exists, price rules, date rules, overlap.
// Nothing is written unless every check passes.
func (s *PromotionService) CreatePromotion(ctx context.Context, req CreatePromotionRequest) (*PromotionResponse, error) {
	now := s.opts.now()

	productPrice, err := s.priceRepo.GetProductPrice(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if productPrice == nil {
		return nil, pricing.NewProductNotFoundError(req.ProductID)
	}

	promo, err := pricing.NewPromotion(pricing.NewPromotionInput{
		ProductID:        req.ProductID,
		PromotionalPrice: req.PromotionalPrice,
		ValidFrom:        req.ValidFrom,
		ValidUntil:       req.ValidUntil,
		Reason:           req.Reason,
	}, productPrice.Price, now)
	if err != nil {
		s.logger.Warn("Promotion rejected",
			zap.Int64("product_id", req.ProductID),
			zap.Error(err))
		return nil, err
	}

	open, err := s.priceRepo.GetOpenPromotionsForProduct(ctx, req.ProductID, now)
	if err != nil {
		return nil, err
	}
	if existing := pricing.FindOverlapping(open, promo.ValidFrom, promo.ValidUntil); existing != nil {
		s.logger.Warn("Promotion overlaps an active promotion",
			zap.Int64("product_id", req.ProductID),
			zap.String("existing_promotion_id", existing.ID.String()))
		return nil, pricing.NewPromotionDateError(fmt.Sprintf(
			"promotion overlaps active promotion %s valid from %s until %s",
			existing.ID, existing.ValidFrom.Format(time.RFC3339),
			existing.ValidUntil.Format(time.RFC3339)))
	}

	// The margin floor is advisory only.
	if productPrice.HasCost() {
		if err := pricing.EnsureMinimumMargin(promo.PromotionalPrice, *productPrice.Cost); err != nil {
			s.logger.Warn("Promotional price is below the margin floor",
				zap.Int64("product_id", req.ProductID),
				zap.String("promotional_price", promo.PromotionalPrice.String()),
				zap.String("detail", err.Error()))
		}
	}

	if err := s.priceRepo.CreatePromotion(ctx, promo); err != nil {
		return nil, err
	}

	s.opts.metrics.RecordPromotionCreated(ctx, promo.ProductID)
	s.logger.Info("Promotion created",
		zap.String("promotion_id", promo.ID.String()),
		zap.Int64("product_id", promo.ProductID),
		zap.String("promotional_price", promo.PromotionalPrice.String()),
		zap.Time("valid_from", promo.ValidFrom),
		zap.Time("valid_until", promo.ValidUntil))

	resp := ToPromotionResponse(promo)
	return &resp, nil
}

// GetPromotion returns a promotion by id
func (s *PromotionService) GetPromotion(ctx context.Context, id uuid.UUID) (*PromotionResponse, error) {
	promo, err := s.priceRepo.GetPromotionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, pricing.NewPromotionNotFoundError(id)
	}
	resp := ToPromotionResponse(promo)
	return &resp, nil
}

// DeactivatePromotion marks a promotion inactive. Deactivating an inactive
// promotion succeeds without changes.
func (s *PromotionService) DeactivatePromotion(ctx context.Context, id uuid.UUID) (*PromotionResponse, error) {
	promo, err := s.priceRepo.GetPromotionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, pricing.NewPromotionNotFoundError(id)
	}

	if promo.IsActive {
		now := s.opts.now()
		if err := s.priceRepo.DeactivatePromotion(ctx, id, now); err != nil {
			return nil, err
		}
		promo.Deactivate(now)
		s.logger.Info("Promotion deactivated",
			zap.String("promotion_id", id.String()),
			zap.Int64("product_id", promo.ProductID))
	}

	resp := ToPromotionResponse(promo)
	return &resp, nil
}

// GetActivePromotions lists promotions in effect now, for one product or all products
func (s *PromotionService) GetActivePromotions(ctx context.Context, productID *int64) ([]PromotionResponse, error) {
	now := s.opts.now()

	var (
		promos []*pricing.Promotion
		err    error
	)
	if productID != nil {
		promos, err = s.priceRepo.GetActivePromotionsForProduct(ctx, *productID, now)
	} else {
		promos, err = s.priceRepo.GetAllActivePromotions(ctx, now)
	}
	if err != nil {
		return nil, err
	}
	return ToPromotionResponses(promos), nil
}

// ExpireOverduePromotions deactivates every active promotion whose validity
// has ended and returns how many were affected
func (s *PromotionService) ExpireOverduePromotions(ctx context.Context) (int64, error) {
	count, err := s.priceRepo.ExpirePromotionsBefore(ctx, s.opts.now())
	if err != nil {
		return 0, err
	}
	s.opts.metrics.RecordPromotionsExpired(ctx, count)
	if count > 0 {
		s.logger.Info("Expired overdue promotions", zap.Int64("count", count))
	}
	return count, nil
}
