package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// ProductPriceModel is the persistence model for a product's base price.
type ProductPriceModel struct {
	ProductID   int64               `gorm:"primaryKey;autoIncrement:false"`
	Price       decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Cost        decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Currency    string              `gorm:"type:varchar(3);not null;default:'RON'"`
	LastUpdated time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductPriceModel) TableName() string {
	return "product_prices"
}

// ToDomain converts the persistence model to a domain ProductPrice.
func (m *ProductPriceModel) ToDomain() *pricing.ProductPrice {
	p := &pricing.ProductPrice{
		ProductID:   m.ProductID,
		Price:       m.Price,
		Currency:    m.Currency,
		LastUpdated: m.LastUpdated,
	}
	if m.Cost.Valid {
		cost := m.Cost.Decimal
		p.Cost = &cost
	}
	return p
}

// ProductPriceModelFromDomain creates a persistence model from a domain ProductPrice.
func ProductPriceModelFromDomain(p *pricing.ProductPrice) *ProductPriceModel {
	m := &ProductPriceModel{
		ProductID:   p.ProductID,
		Price:       p.Price,
		Currency:    p.Currency,
		LastUpdated: p.LastUpdated,
	}
	if p.Cost != nil {
		m.Cost = decimal.NewNullDecimal(*p.Cost)
	}
	return m
}

// PromotionModel is the persistence model for a time-bounded price override.
type PromotionModel struct {
	BaseModel
	ProductID        int64           `gorm:"not null;index:idx_promotion_product_window,priority:1"`
	PromotionalPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	OriginalPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ValidFrom        time.Time       `gorm:"not null;index:idx_promotion_product_window,priority:2"`
	ValidUntil       time.Time       `gorm:"not null;index"`
	Reason           string          `gorm:"type:text"`
	IsActive         bool            `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (PromotionModel) TableName() string {
	return "promotions"
}

// ToDomain converts the persistence model to a domain Promotion.
func (m *PromotionModel) ToDomain() *pricing.Promotion {
	return &pricing.Promotion{
		BaseEntity:       m.BaseModel.ToDomain(),
		ProductID:        m.ProductID,
		PromotionalPrice: m.PromotionalPrice,
		OriginalPrice:    m.OriginalPrice,
		ValidFrom:        m.ValidFrom,
		ValidUntil:       m.ValidUntil,
		Reason:           m.Reason,
		IsActive:         m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Promotion.
func (m *PromotionModel) FromDomain(p *pricing.Promotion) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.ProductID = p.ProductID
	m.PromotionalPrice = p.PromotionalPrice
	m.OriginalPrice = p.OriginalPrice
	m.ValidFrom = p.ValidFrom
	m.ValidUntil = p.ValidUntil
	m.Reason = p.Reason
	m.IsActive = p.IsActive
}

// PromotionModelFromDomain creates a persistence model from a domain Promotion.
func PromotionModelFromDomain(p *pricing.Promotion) *PromotionModel {
	m := &PromotionModel{}
	m.FromDomain(p)
	return m
}

// VolumeDiscountRuleModel is the persistence model for a quantity threshold discount.
// A NULL product_id marks an order-level rule.
type VolumeDiscountRuleModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	ProductID          *int64          `gorm:"index:idx_volume_rule_product_min,priority:1"`
	MinQuantity        int             `gorm:"not null;index:idx_volume_rule_product_min,priority:2"`
	MaxQuantity        *int
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,4);not null"`
	CreatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (VolumeDiscountRuleModel) TableName() string {
	return "volume_discount_rules"
}

// ToDomain converts the persistence model to a domain VolumeDiscountRule.
func (m *VolumeDiscountRuleModel) ToDomain() *pricing.VolumeDiscountRule {
	return &pricing.VolumeDiscountRule{
		ID:                 m.ID,
		ProductID:          m.ProductID,
		MinQuantity:        m.MinQuantity,
		MaxQuantity:        m.MaxQuantity,
		DiscountPercentage: m.DiscountPercentage,
	}
}

// VolumeDiscountRuleModelFromDomain creates a persistence model from a domain rule.
func VolumeDiscountRuleModelFromDomain(r *pricing.VolumeDiscountRule, createdAt time.Time) *VolumeDiscountRuleModel {
	return &VolumeDiscountRuleModel{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		MinQuantity:        r.MinQuantity,
		MaxQuantity:        r.MaxQuantity,
		DiscountPercentage: r.DiscountPercentage,
		CreatedAt:          createdAt,
	}
}
