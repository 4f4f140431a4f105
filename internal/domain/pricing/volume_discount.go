package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VolumeDiscountRule is a quantity-threshold percentage reduction.
// A nil ProductID marks an order-level rule keyed on the total order quantity.
type VolumeDiscountRule struct {
	ID                 uuid.UUID
	ProductID          *int64
	MinQuantity        int
	MaxQuantity        *int
	DiscountPercentage decimal.Decimal
}

// NewVolumeDiscountRule validates and builds a rule. Pass a nil productID for an order-level rule.
func NewVolumeDiscountRule(productID *int64, minQuantity int, maxQuantity *int, discount decimal.Decimal) (*VolumeDiscountRule, error) {
	if productID != nil && *productID <= 0 {
		return nil, NewPricingError("product id must be positive")
	}
	if minQuantity < 1 {
		return nil, NewPricingError("min quantity must be at least 1")
	}
	if maxQuantity != nil && *maxQuantity < minQuantity {
		return nil, NewPricingError("max quantity cannot be lower than min quantity")
	}
	if !discount.IsPositive() || discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, NewPricingError("discount percentage must be between 0 and 1 (exclusive)")
	}
	return &VolumeDiscountRule{
		ID:                 uuid.New(),
		ProductID:          productID,
		MinQuantity:        minQuantity,
		MaxQuantity:        maxQuantity,
		DiscountPercentage: discount,
	}, nil
}

// IsOrderLevel returns true for rules keyed on total order quantity
func (r *VolumeDiscountRule) IsOrderLevel() bool {
	return r.ProductID == nil
}

// Matches reports whether quantity falls within [MinQuantity, MaxQuantity]
func (r *VolumeDiscountRule) Matches(quantity int) bool {
	if quantity < r.MinQuantity {
		return false
	}
	return r.MaxQuantity == nil || quantity <= *r.MaxQuantity
}

// SelectVolumeRule picks the matching rule with the highest MinQuantity,
// breaking ties by id. Returns nil when no rule matches.
func SelectVolumeRule(rules []*VolumeDiscountRule, quantity int) *VolumeDiscountRule {
	var selected *VolumeDiscountRule
	for _, r := range rules {
		if !r.Matches(quantity) {
			continue
		}
		if selected == nil ||
			r.MinQuantity > selected.MinQuantity ||
			(r.MinQuantity == selected.MinQuantity && r.ID.String() < selected.ID.String()) {
			selected = r
		}
	}
	return selected
}
