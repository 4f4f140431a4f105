package dto

import (
	"net/http"

	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/shared"
)

// Transport-level error codes. Domain codes come from the pricing package.
const (
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Not-found codes
	pricing.CodeProductNotFound:      http.StatusNotFound,
	pricing.CodeCustomerTierNotFound: http.StatusNotFound,
	pricing.CodePromotionNotFound:    http.StatusNotFound,
	pricing.CodeVolumeRuleNotFound:   http.StatusNotFound,

	// Validation codes
	pricing.CodeInvalidPromotion:   http.StatusBadRequest,
	pricing.CodePromotionDate:      http.StatusBadRequest,
	pricing.CodeMarginBelowMinimum: http.StatusBadRequest,
	pricing.CodePricingError:       http.StatusBadRequest,

	// Shared codes
	"INVALID_INPUT":        http.StatusBadRequest,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorStatus returns the status for a domain error, preferring the
// table and falling back to the status the error carries.
func DomainErrorStatus(err *shared.DomainError) int {
	if status, ok := ErrorCodeHTTPStatus[err.Code]; ok {
		return status
	}
	return err.HTTPStatus()
}
