package pricing

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Pricing error codes
const (
	CodeProductNotFound      = "PRODUCT_NOT_FOUND"
	CodeInvalidPromotion     = "INVALID_PROMOTION"
	CodePromotionDate        = "PROMOTION_DATE_INVALID"
	CodeCustomerTierNotFound = "CUSTOMER_TIER_NOT_FOUND"
	CodeMarginBelowMinimum   = "MARGIN_BELOW_MINIMUM"
	CodePricingError         = "PRICING_ERROR"
	CodePromotionNotFound    = "PROMOTION_NOT_FOUND"
	CodeVolumeRuleNotFound   = "VOLUME_RULE_NOT_FOUND"
)

// Sentinel errors for errors.Is matching. Concrete errors returned by the
// constructors below carry a specific message but the same code.
var (
	ErrProductNotFound      = shared.NewDomainErrorWithStatus(CodeProductNotFound, "Product price not found", http.StatusNotFound)
	ErrInvalidPromotion     = shared.NewDomainErrorWithStatus(CodeInvalidPromotion, "Invalid promotion", http.StatusBadRequest)
	ErrPromotionDate        = shared.NewDomainErrorWithStatus(CodePromotionDate, "Invalid promotion dates", http.StatusBadRequest)
	ErrCustomerTierNotFound = shared.NewDomainErrorWithStatus(CodeCustomerTierNotFound, "Customer tier not found", http.StatusNotFound)
	ErrMarginBelowMinimum   = shared.NewDomainErrorWithStatus(CodeMarginBelowMinimum, "Margin below minimum", http.StatusBadRequest)
	ErrPricing              = shared.NewDomainErrorWithStatus(CodePricingError, "Pricing error", http.StatusBadRequest)
	ErrPromotionNotFound    = shared.NewDomainErrorWithStatus(CodePromotionNotFound, "Promotion not found", http.StatusNotFound)
	ErrVolumeRuleNotFound   = shared.NewDomainErrorWithStatus(CodeVolumeRuleNotFound, "Volume discount rule not found", http.StatusNotFound)
)

// NewProductNotFoundError reports a product without a price record
func NewProductNotFoundError(productID int64) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodeProductNotFound,
		fmt.Sprintf("Product %d not found", productID), http.StatusNotFound)
}

// NewProductsNotFoundError reports several products without a price record
func NewProductsNotFoundError(productIDs []int64) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodeProductNotFound,
		fmt.Sprintf("Products not found: %v", productIDs), http.StatusNotFound)
}

// NewInvalidPromotionError reports a promotion that violates a price rule
func NewInvalidPromotionError(message string) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodeInvalidPromotion, message, http.StatusBadRequest)
}

// NewPromotionDateError reports a promotion that violates a date rule
func NewPromotionDateError(message string) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodePromotionDate, message, http.StatusBadRequest)
}

// NewCustomerTierNotFoundError reports a customer without a tier assignment
func NewCustomerTierNotFoundError(customerID int64) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodeCustomerTierNotFound,
		fmt.Sprintf("No tier assigned to customer %d", customerID), http.StatusNotFound)
}

// NewMarginBelowMinimumError reports a price whose margin falls under the floor
func NewMarginBelowMinimumError(margin, minimum decimal.Decimal) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodeMarginBelowMinimum,
		fmt.Sprintf("Margin %s%% is below the minimum of %s%%",
			margin.Mul(hundred).StringFixed(2), minimum.Mul(hundred).StringFixed(2)),
		http.StatusBadRequest)
}

// NewPricingError reports a generic pricing input violation
func NewPricingError(message string) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodePricingError, message, http.StatusBadRequest)
}

// NewPromotionNotFoundError reports an unknown promotion id
func NewPromotionNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodePromotionNotFound,
		fmt.Sprintf("Promotion %s not found", id), http.StatusNotFound)
}

// NewVolumeRuleNotFoundError reports an unknown volume discount rule id
func NewVolumeRuleNotFoundError(id uuid.UUID) *shared.DomainError {
	return shared.NewDomainErrorWithStatus(CodeVolumeRuleNotFound,
		fmt.Sprintf("Volume discount rule %s not found", id), http.StatusNotFound)
}
