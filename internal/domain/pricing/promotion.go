package pricing

import (
	"strings"
	"time"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MaxPromotionDiscountRatio is the largest allowed (original-promotional)/original
var MaxPromotionDiscountRatio = decimal.RequireFromString("0.90")

// Promotion is a time-bounded override of a product's price
type Promotion struct {
	shared.BaseEntity
	ProductID        int64
	PromotionalPrice decimal.Decimal
	OriginalPrice    decimal.Decimal
	ValidFrom        time.Time
	ValidUntil       time.Time
	Reason           string
	IsActive         bool
}

// NewPromotionInput carries the caller-supplied promotion fields
type NewPromotionInput struct {
	ProductID        int64
	PromotionalPrice decimal.Decimal
	ValidFrom        time.Time
	ValidUntil       time.Time
	Reason           string
}

// NewPromotion validates price and date rules against the current base
// price and returns an active promotion. Overlap with other promotions is
// checked by the caller, which has access to storage.
func NewPromotion(in NewPromotionInput, originalPrice decimal.Decimal, now time.Time) (*Promotion, error) {
	if err := ValidatePromotionPrice(in.PromotionalPrice, originalPrice); err != nil {
		return nil, err
	}
	if err := ValidatePromotionWindow(in.ValidFrom, in.ValidUntil, now); err != nil {
		return nil, err
	}
	return &Promotion{
		BaseEntity:       shared.NewBaseEntity(now),
		ProductID:        in.ProductID,
		PromotionalPrice: in.PromotionalPrice,
		OriginalPrice:    originalPrice,
		ValidFrom:        in.ValidFrom,
		ValidUntil:       in.ValidUntil,
		Reason:           strings.TrimSpace(in.Reason),
		IsActive:         true,
	}, nil
}

// ValidatePromotionPrice checks 0 < promotional < original and the discount ceiling
func ValidatePromotionPrice(promotional, original decimal.Decimal) error {
	if !promotional.IsPositive() {
		return NewInvalidPromotionError("promotional price must be greater than zero")
	}
	if promotional.GreaterThanOrEqual(original) {
		return NewInvalidPromotionError("promotional price must be lower than the current price " + original.String())
	}
	ratio := original.Sub(promotional).Div(original)
	if ratio.GreaterThan(MaxPromotionDiscountRatio) {
		return NewInvalidPromotionError("promotion discount of " + ratio.Mul(hundred).StringFixed(2) +
			"% exceeds the maximum of " + MaxPromotionDiscountRatio.Mul(hundred).StringFixed(0) + "%")
	}
	return nil
}

// ValidatePromotionWindow checks the promotion interval is well formed and not already over
func ValidatePromotionWindow(from, until, now time.Time) error {
	if from.IsZero() || until.IsZero() {
		return NewPromotionDateError("valid_from and valid_until are required")
	}
	if !from.Before(until) {
		return NewPromotionDateError("valid_from must be before valid_until")
	}
	if !until.After(now) {
		return NewPromotionDateError("valid_until must be in the future")
	}
	return nil
}

// Overlaps reports whether [from, until) intersects this promotion's interval
func (p *Promotion) Overlaps(from, until time.Time) bool {
	return from.Before(p.ValidUntil) && until.After(p.ValidFrom)
}

// IsCurrentAt reports whether the promotion is active and in effect at t
func (p *Promotion) IsCurrentAt(t time.Time) bool {
	return p.IsActive && !t.Before(p.ValidFrom) && t.Before(p.ValidUntil)
}

// DiscountAmount returns original minus promotional price
func (p *Promotion) DiscountAmount() decimal.Decimal {
	return p.OriginalPrice.Sub(p.PromotionalPrice)
}

// DiscountRatio returns the discount as a fraction of the original price
func (p *Promotion) DiscountRatio() decimal.Decimal {
	if p.OriginalPrice.IsZero() {
		return decimal.Zero
	}
	return p.DiscountAmount().Div(p.OriginalPrice)
}

// Deactivate marks the promotion inactive. Deactivating twice is a no-op.
func (p *Promotion) Deactivate(at time.Time) {
	if !p.IsActive {
		return
	}
	p.IsActive = false
	p.Touch(at)
}

// FindOverlapping returns the first promotion in existing that overlaps [from, until)
func FindOverlapping(existing []*Promotion, from, until time.Time) *Promotion {
	for _, p := range existing {
		if p.IsActive && p.Overlaps(from, until) {
			return p
		}
	}
	return nil
}
