package pricing

import (
	"github.com/shopspring/decimal"
)

// MinimumMarginRatio is the margin floor for promotional prices.
// Not enforced on promotion creation; PromotionService only logs a warning.
var MinimumMarginRatio = decimal.RequireFromString("0.15")

// Margin returns (price - cost) / price. A non-positive price yields zero.
func Margin(price, cost decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(price)
}

// EnsureMinimumMargin returns a MarginBelowMinimum error when selling at
// price with the given cost falls under MinimumMarginRatio.
func EnsureMinimumMargin(price, cost decimal.Decimal) error {
	margin := Margin(price, cost)
	if margin.LessThan(MinimumMarginRatio) {
		return NewMarginBelowMinimumError(margin, MinimumMarginRatio)
	}
	return nil
}
