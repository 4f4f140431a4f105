package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/persistence/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgExclusionViolation is the SQLSTATE raised by the promotions no-overlap constraint
const pgExclusionViolation = "23P01"

const promotionOrder = "valid_from ASC, created_at ASC, id ASC"

// GormPriceRepository implements pricing.PriceRepository using GORM
type GormPriceRepository struct {
	db *gorm.DB
}

// NewGormPriceRepository creates a new GormPriceRepository
func NewGormPriceRepository(db *gorm.DB) *GormPriceRepository {
	return &GormPriceRepository{db: db}
}

var _ pricing.PriceRepository = (*GormPriceRepository)(nil)

// GetProductPrice returns the price of a product, or nil if the product has none
func (r *GormPriceRepository) GetProductPrice(ctx context.Context, productID int64) (*pricing.ProductPrice, error) {
	var model models.ProductPriceModel
	if err := r.db.WithContext(ctx).First(&model, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetProductPricesByIDs fetches prices for several products in one query
func (r *GormPriceRepository) GetProductPricesByIDs(ctx context.Context, productIDs []int64) ([]*pricing.ProductPrice, error) {
	if len(productIDs) == 0 {
		return []*pricing.ProductPrice{}, nil
	}
	var rows []models.ProductPriceModel
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("product_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(m models.ProductPriceModel, _ int) *pricing.ProductPrice {
		return m.ToDomain()
	}), nil
}

// GetActivePromotionsForProduct returns active promotions in effect at now
func (r *GormPriceRepository) GetActivePromotionsForProduct(ctx context.Context, productID int64, now time.Time) ([]*pricing.Promotion, error) {
	return r.findPromotions(r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ? AND valid_from <= ? AND valid_until > ?", productID, true, now, now))
}

// GetOpenPromotionsForProduct returns active promotions that have not ended yet
func (r *GormPriceRepository) GetOpenPromotionsForProduct(ctx context.Context, productID int64, now time.Time) ([]*pricing.Promotion, error) {
	return r.findPromotions(r.db.WithContext(ctx).
		Where("product_id = ? AND is_active = ? AND valid_until > ?", productID, true, now))
}

// GetAllActivePromotions returns every active promotion in effect at now
func (r *GormPriceRepository) GetAllActivePromotions(ctx context.Context, now time.Time) ([]*pricing.Promotion, error) {
	return r.findPromotions(r.db.WithContext(ctx).
		Where("is_active = ? AND valid_from <= ? AND valid_until > ?", true, now, now))
}

func (r *GormPriceRepository) findPromotions(query *gorm.DB) ([]*pricing.Promotion, error) {
	var rows []models.PromotionModel
	if err := query.Order(promotionOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(m models.PromotionModel, _ int) *pricing.Promotion {
		return m.ToDomain()
	}), nil
}

// GetPromotionByID returns a promotion, or nil if it does not exist
func (r *GormPriceRepository) GetPromotionByID(ctx context.Context, id uuid.UUID) (*pricing.Promotion, error) {
	var model models.PromotionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetVolumeDiscountRuleForQuantity selects the product rule with the greatest
// min_quantity matching quantity. Ties go to the lowest id.
func (r *GormPriceRepository) GetVolumeDiscountRuleForQuantity(ctx context.Context, productID int64, quantity int) (*pricing.VolumeDiscountRule, error) {
	return r.findVolumeRule(r.db.WithContext(ctx).Where("product_id = ?", productID), quantity)
}

// GetOrderLevelVolumeDiscount selects the order-level rule matching totalQuantity
func (r *GormPriceRepository) GetOrderLevelVolumeDiscount(ctx context.Context, totalQuantity int) (*pricing.VolumeDiscountRule, error) {
	return r.findVolumeRule(r.db.WithContext(ctx).Where("product_id IS NULL"), totalQuantity)
}

func (r *GormPriceRepository) findVolumeRule(query *gorm.DB, quantity int) (*pricing.VolumeDiscountRule, error) {
	var model models.VolumeDiscountRuleModel
	err := query.
		Where("min_quantity <= ? AND (max_quantity IS NULL OR max_quantity >= ?)", quantity, quantity).
		Order("min_quantity DESC, id ASC").
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// CreatePromotion stores a promotion after re-checking overlap inside a
// transaction. On PostgreSQL the product's price row is locked so concurrent
// creations for the same product serialize, and the exclusion constraint on
// the promotions table backs the check.
func (r *GormPriceRepository) CreatePromotion(ctx context.Context, promotion *pricing.Promotion) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isPostgres(tx) {
			var price models.ProductPriceModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&price, "product_id = ?", promotion.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pricing.NewProductNotFoundError(promotion.ProductID)
				}
				return err
			}
		}

		var existing models.PromotionModel
		err := tx.Where("product_id = ? AND is_active = ? AND valid_from < ? AND valid_until > ?",
			promotion.ProductID, true, promotion.ValidUntil, promotion.ValidFrom).
			Order(promotionOrder).
			First(&existing).Error
		if err == nil {
			return overlapError(existing.ID, existing.ValidFrom, existing.ValidUntil)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(models.PromotionModelFromDomain(promotion)).Error
	})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return pricing.NewPromotionDateError("promotion overlaps an existing active promotion for this product")
	}
	return err
}

func overlapError(id uuid.UUID, from, until time.Time) error {
	return pricing.NewPromotionDateError(fmt.Sprintf(
		"promotion overlaps active promotion %s (%s to %s)",
		id, from.Format(time.RFC3339), until.Format(time.RFC3339)))
}

// DeactivatePromotion marks a promotion inactive. Already inactive promotions are left unchanged.
func (r *GormPriceRepository) DeactivatePromotion(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.PromotionModel{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "updated_at": at}).Error
}

// ExpirePromotionsBefore deactivates active promotions whose window ended at or before cutoff
func (r *GormPriceRepository) ExpirePromotionsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.PromotionModel{}).
		Where("is_active = ? AND valid_until <= ?", true, cutoff).
		Updates(map[string]any{"is_active": false, "updated_at": cutoff})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateProductPrice inserts or replaces a product's price
func (r *GormPriceRepository) UpdateProductPrice(ctx context.Context, price *pricing.ProductPrice) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "cost", "currency", "last_updated"}),
		}).
		Create(models.ProductPriceModelFromDomain(price)).Error
}

// CreateVolumeDiscountRule stores a new volume discount rule
func (r *GormPriceRepository) CreateVolumeDiscountRule(ctx context.Context, rule *pricing.VolumeDiscountRule) error {
	model := models.VolumeDiscountRuleModelFromDomain(rule, r.db.NowFunc())
	return r.db.WithContext(ctx).Create(model).Error
}

// DeleteVolumeDiscountRule removes a rule by id
func (r *GormPriceRepository) DeleteVolumeDiscountRule(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VolumeDiscountRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pricing.NewVolumeRuleNotFoundError(id)
	}
	return nil
}
