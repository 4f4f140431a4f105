package pricing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TierLevel identifies a customer segmentation bucket
type TierLevel string

// Tier levels, lowest discount first
const (
	TierBronze   TierLevel = "BRONZE"
	TierSilver   TierLevel = "SILVER"
	TierGold     TierLevel = "GOLD"
	TierPlatinum TierLevel = "PLATINUM"
)

type tierDefinition struct {
	level    TierLevel
	name     string
	discount decimal.Decimal
}

// tierTable is the only place tier discounts are defined.
// Order is Bronze -> Platinum and is relied on by tier price previews.
var tierTable = []tierDefinition{
	{level: TierBronze, name: "Bronze", discount: decimal.RequireFromString("0.05")},
	{level: TierSilver, name: "Silver", discount: decimal.RequireFromString("0.10")},
	{level: TierGold, name: "Gold", discount: decimal.RequireFromString("0.15")},
	{level: TierPlatinum, name: "Platinum", discount: decimal.RequireFromString("0.20")},
}

// AllTierLevels returns every tier level in Bronze -> Platinum order
func AllTierLevels() []TierLevel {
	levels := make([]TierLevel, len(tierTable))
	for i, d := range tierTable {
		levels[i] = d.level
	}
	return levels
}

// ParseTierLevel parses a tier level case-insensitively
func ParseTierLevel(s string) (TierLevel, bool) {
	level := TierLevel(strings.ToUpper(strings.TrimSpace(s)))
	return level, level.IsValid()
}

func (l TierLevel) definition() (tierDefinition, bool) {
	for _, d := range tierTable {
		if d.level == l {
			return d, true
		}
	}
	return tierDefinition{}, false
}

// IsValid returns true if the level is one of the four defined tiers
func (l TierLevel) IsValid() bool {
	_, ok := l.definition()
	return ok
}

// String returns the string representation of the level
func (l TierLevel) String() string {
	return string(l)
}

// DiscountRate returns the discount fraction of the level, zero for unknown levels
func (l TierLevel) DiscountRate() decimal.Decimal {
	d, ok := l.definition()
	if !ok {
		return decimal.Zero
	}
	return d.discount
}

// DisplayName returns the human readable tier name
func (l TierLevel) DisplayName() string {
	d, ok := l.definition()
	if !ok {
		return string(l)
	}
	return d.name
}

// ApplyDiscount returns price reduced by the level's discount
func (l TierLevel) ApplyDiscount(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(1).Sub(l.DiscountRate()))
}

// CustomerTier is the current tier assignment of a customer.
// DiscountPercentage is always derived from Level.
type CustomerTier struct {
	CustomerID         int64
	Level              TierLevel
	DiscountPercentage decimal.Decimal
	Name               string
	AssignedAt         time.Time
	Reason             string
}

// NewCustomerTier validates and builds a tier assignment
func NewCustomerTier(customerID int64, level TierLevel, reason string, at time.Time) (*CustomerTier, error) {
	if customerID <= 0 {
		return nil, NewPricingError("customer id must be positive")
	}
	if !level.IsValid() {
		return nil, NewPricingError("invalid tier level: " + string(level))
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, NewPricingError("a reason is required when assigning a customer tier")
	}
	return &CustomerTier{
		CustomerID:         customerID,
		Level:              level,
		DiscountPercentage: level.DiscountRate(),
		Name:               level.DisplayName(),
		AssignedAt:         at,
		Reason:             reason,
	}, nil
}

// HistoryEntry builds the audit record for this assignment
func (t *CustomerTier) HistoryEntry() *TierHistoryEntry {
	return &TierHistoryEntry{
		ID:                 uuid.New(),
		CustomerID:         t.CustomerID,
		Level:              t.Level,
		DiscountPercentage: t.DiscountPercentage,
		Reason:             t.Reason,
		AssignedAt:         t.AssignedAt,
	}
}

// TierHistoryEntry is an immutable audit record of a tier assignment
type TierHistoryEntry struct {
	ID                 uuid.UUID
	CustomerID         int64
	Level              TierLevel
	DiscountPercentage decimal.Decimal
	Reason             string
	AssignedAt         time.Time
}

// TierUpdate is a single assignment in a bulk tier update
type TierUpdate struct {
	CustomerID int64
	Level      TierLevel
	Reason     string
}
