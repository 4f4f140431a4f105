package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// CustomerTierModel is the persistence model for a customer's current tier.
type CustomerTierModel struct {
	CustomerID         int64             `gorm:"primaryKey;autoIncrement:false"`
	Level              pricing.TierLevel `gorm:"type:varchar(20);not null;index"`
	DiscountPercentage decimal.Decimal   `gorm:"type:decimal(5,4);not null"`
	Name               string            `gorm:"type:varchar(50);not null"`
	AssignedAt         time.Time         `gorm:"not null"`
	Reason             string            `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (CustomerTierModel) TableName() string {
	return "customer_tiers"
}

// ToDomain converts the persistence model to a domain CustomerTier.
func (m *CustomerTierModel) ToDomain() *pricing.CustomerTier {
	return &pricing.CustomerTier{
		CustomerID:         m.CustomerID,
		Level:              m.Level,
		DiscountPercentage: m.DiscountPercentage,
		Name:               m.Name,
		AssignedAt:         m.AssignedAt,
		Reason:             m.Reason,
	}
}

// CustomerTierModelFromDomain creates a persistence model from a domain CustomerTier.
func CustomerTierModelFromDomain(t *pricing.CustomerTier) *CustomerTierModel {
	return &CustomerTierModel{
		CustomerID:         t.CustomerID,
		Level:              t.Level,
		DiscountPercentage: t.DiscountPercentage,
		Name:               t.Name,
		AssignedAt:         t.AssignedAt,
		Reason:             t.Reason,
	}
}

// TierHistoryModel is an append-only audit row for a tier assignment.
type TierHistoryModel struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primary_key"`
	CustomerID         int64             `gorm:"not null;index:idx_tier_history_customer_assigned,priority:1"`
	Level              pricing.TierLevel `gorm:"type:varchar(20);not null"`
	DiscountPercentage decimal.Decimal   `gorm:"type:decimal(5,4);not null"`
	Reason             string            `gorm:"type:text;not null"`
	AssignedAt         time.Time         `gorm:"not null;index:idx_tier_history_customer_assigned,priority:2"`
}

// TableName returns the table name for GORM
func (TierHistoryModel) TableName() string {
	return "customer_tier_history"
}

// ToDomain converts the persistence model to a domain TierHistoryEntry.
func (m *TierHistoryModel) ToDomain() *pricing.TierHistoryEntry {
	return &pricing.TierHistoryEntry{
		ID:                 m.ID,
		CustomerID:         m.CustomerID,
		Level:              m.Level,
		DiscountPercentage: m.DiscountPercentage,
		Reason:             m.Reason,
		AssignedAt:         m.AssignedAt,
	}
}

// TierHistoryModelFromDomain creates a persistence model from a domain TierHistoryEntry.
func TierHistoryModelFromDomain(e *pricing.TierHistoryEntry) *TierHistoryModel {
	return &TierHistoryModel{
		ID:                 e.ID,
		CustomerID:         e.CustomerID,
		Level:              e.Level,
		DiscountPercentage: e.DiscountPercentage,
		Reason:             e.Reason,
		AssignedAt:         e.AssignedAt,
	}
}

// AllModels returns every model managed by this package, in dependency order.
func AllModels() []any {
	return []any{
		&ProductPriceModel{},
		&PromotionModel{},
		&VolumeDiscountRuleModel{},
		&CustomerTierModel{},
		&TierHistoryModel{},
	}
}
