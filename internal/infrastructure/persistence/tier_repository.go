package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/persistence/models"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTierRepository implements pricing.TierRepository using GORM
type GormTierRepository struct {
	db *gorm.DB
}

// NewGormTierRepository creates a new GormTierRepository
func NewGormTierRepository(db *gorm.DB) *GormTierRepository {
	return &GormTierRepository{db: db}
}

var _ pricing.TierRepository = (*GormTierRepository)(nil)

// GetCustomerTier returns the current tier of a customer, or nil if none is assigned
func (r *GormTierRepository) GetCustomerTier(ctx context.Context, customerID int64) (*pricing.CustomerTier, error) {
	var model models.CustomerTierModel
	if err := r.db.WithContext(ctx).First(&model, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SetCustomerTier overwrites the customer's tier and appends a history row in one transaction
func (r *GormTierRepository) SetCustomerTier(ctx context.Context, customerID int64, level pricing.TierLevel, discount decimal.Decimal, reason string, at time.Time) (*pricing.CustomerTier, error) {
	tier := &pricing.CustomerTier{
		CustomerID:         customerID,
		Level:              level,
		DiscountPercentage: discount,
		Name:               level.DisplayName(),
		AssignedAt:         at,
		Reason:             reason,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveTier(tx, tier)
	})
	if err != nil {
		return nil, err
	}
	return tier, nil
}

// BulkUpdateCustomerTiers applies every update in one transaction; any failure rolls all of them back
func (r *GormTierRepository) BulkUpdateCustomerTiers(ctx context.Context, updates []pricing.TierUpdate, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			tier, err := pricing.NewCustomerTier(u.CustomerID, u.Level, u.Reason, at)
			if err != nil {
				return err
			}
			if err := saveTier(tx, tier); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveTier(tx *gorm.DB, tier *pricing.CustomerTier) error {
	if err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"level", "discount_percentage", "name", "assigned_at", "reason"}),
	}).Create(models.CustomerTierModelFromDomain(tier)).Error; err != nil {
		return err
	}
	return tx.Create(models.TierHistoryModelFromDomain(tier.HistoryEntry())).Error
}

// GetCustomersByTierLevel lists customers currently holding level, ordered by customer id
func (r *GormTierRepository) GetCustomersByTierLevel(ctx context.Context, level pricing.TierLevel) ([]*pricing.CustomerTier, error) {
	var rows []models.CustomerTierModel
	if err := r.db.WithContext(ctx).
		Where("level = ?", level).
		Order("customer_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(m models.CustomerTierModel, _ int) *pricing.CustomerTier {
		return m.ToDomain()
	}), nil
}

// GetCustomerTierHistory returns up to limit history entries, newest first
func (r *GormTierRepository) GetCustomerTierHistory(ctx context.Context, customerID int64, limit int) ([]*pricing.TierHistoryEntry, error) {
	query := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("assigned_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []models.TierHistoryModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(m models.TierHistoryModel, _ int) *pricing.TierHistoryEntry {
		return m.ToDomain()
	}), nil
}
