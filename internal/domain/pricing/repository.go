package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceRepository gives access to product prices, promotions and volume rules.
//
// Lookups of a single optional record (price, promotion, rule) return
// (nil, nil) when nothing is found.
//
// Promotion listings are ordered by valid_from ASC, created_at ASC, id ASC.
// Callers that pick "the first active promotion" rely on this order.
type PriceRepository interface {
	GetProductPrice(ctx context.Context, productID int64) (*ProductPrice, error)
	// GetProductPricesByIDs returns the prices that exist; missing ids are simply absent
	GetProductPricesByIDs(ctx context.Context, productIDs []int64) ([]*ProductPrice, error)

	// GetActivePromotionsForProduct returns active promotions in effect at now
	GetActivePromotionsForProduct(ctx context.Context, productID int64, now time.Time) ([]*Promotion, error)
	// GetOpenPromotionsForProduct returns active promotions that have not ended by now,
	// including ones that start in the future
	GetOpenPromotionsForProduct(ctx context.Context, productID int64, now time.Time) ([]*Promotion, error)
	GetAllActivePromotions(ctx context.Context, now time.Time) ([]*Promotion, error)
	GetPromotionByID(ctx context.Context, id uuid.UUID) (*Promotion, error)

	// GetVolumeDiscountRuleForQuantity selects the product rule matching quantity
	GetVolumeDiscountRuleForQuantity(ctx context.Context, productID int64, quantity int) (*VolumeDiscountRule, error)
	// GetOrderLevelVolumeDiscount selects the order-level rule matching the total quantity
	GetOrderLevelVolumeDiscount(ctx context.Context, totalQuantity int) (*VolumeDiscountRule, error)

	// CreatePromotion persists a promotion. Implementations must refuse to
	// store a promotion overlapping another active one on the same product.
	CreatePromotion(ctx context.Context, promotion *Promotion) error
	// DeactivatePromotion marks a promotion inactive. Idempotent.
	DeactivatePromotion(ctx context.Context, id uuid.UUID, at time.Time) error
	// ExpirePromotionsBefore deactivates active promotions with valid_until <= cutoff
	ExpirePromotionsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	UpdateProductPrice(ctx context.Context, price *ProductPrice) error
	CreateVolumeDiscountRule(ctx context.Context, rule *VolumeDiscountRule) error
	// DeleteVolumeDiscountRule returns ErrVolumeRuleNotFound when nothing was deleted
	DeleteVolumeDiscountRule(ctx context.Context, id uuid.UUID) error
}

// TierRepository gives access to customer tier assignments and their history
type TierRepository interface {
	// GetCustomerTier returns (nil, nil) for an unassigned customer
	GetCustomerTier(ctx context.Context, customerID int64) (*CustomerTier, error)
	// SetCustomerTier overwrites the assignment and appends a history entry atomically
	SetCustomerTier(ctx context.Context, customerID int64, level TierLevel, discount decimal.Decimal, reason string, at time.Time) (*CustomerTier, error)
	GetCustomersByTierLevel(ctx context.Context, level TierLevel) ([]*CustomerTier, error)
	// BulkUpdateCustomerTiers applies every update in a single transaction
	BulkUpdateCustomerTiers(ctx context.Context, updates []TierUpdate, at time.Time) error
	// GetCustomerTierHistory returns entries newest first
	GetCustomerTierHistory(ctx context.Context, customerID int64, limit int) ([]*TierHistoryEntry, error)
}
