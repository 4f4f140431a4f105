package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/domain/pricing"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Price calculation DTOs
// =============================================================================

// PriceCalculationResult is the flat result of a single product price calculation
type PriceCalculationResult struct {
	ProductID                int64           `json:"product_id"`
	Quantity                 int             `json:"quantity"`
	BasePrice                decimal.Decimal `json:"base_price"`
	TierDiscount             decimal.Decimal `json:"tier_discount"`
	TierDiscountPercentage   decimal.Decimal `json:"tier_discount_percentage"`
	PromotionalDiscount      decimal.Decimal `json:"promotional_discount"`
	PromotionalPrice         decimal.Decimal `json:"promotional_price"`
	VolumeDiscount           decimal.Decimal `json:"volume_discount"`
	VolumeDiscountPercentage decimal.Decimal `json:"volume_discount_percentage"`
	TotalDiscount            decimal.Decimal `json:"total_discount"`
	TotalDiscountPercentage  decimal.Decimal `json:"total_discount_percentage"`
	FinalPrice               decimal.Decimal `json:"final_price"`
	Currency                 string          `json:"currency"`
	BreakdownDetails         PriceBreakdown  `json:"breakdown_details"`
}

// PriceBreakdown names the discount sources that contributed to a price
type PriceBreakdown struct {
	AppliedTierLevel      *pricing.TierLevel     `json:"applied_tier_level,omitempty"`
	AppliedPromotion      *AppliedPromotion      `json:"applied_promotion,omitempty"`
	AppliedVolumeDiscount *AppliedVolumeDiscount `json:"applied_volume_discount,omitempty"`
}

// AppliedPromotion describes the promotion used in a calculation
type AppliedPromotion struct {
	ID               uuid.UUID       `json:"id"`
	PromotionalPrice decimal.Decimal `json:"promotional_price"`
	ValidFrom        time.Time       `json:"valid_from"`
	ValidUntil       time.Time       `json:"valid_until"`
	Reason           string          `json:"reason,omitempty"`
}

// AppliedVolumeDiscount describes the volume rule used in a calculation
type AppliedVolumeDiscount struct {
	RuleID             uuid.UUID       `json:"rule_id"`
	MinQuantity        int             `json:"min_quantity"`
	MaxQuantity        *int            `json:"max_quantity,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

func toAppliedPromotion(p *pricing.Promotion) *AppliedPromotion {
	return &AppliedPromotion{
		ID:               p.ID,
		PromotionalPrice: p.PromotionalPrice,
		ValidFrom:        p.ValidFrom,
		ValidUntil:       p.ValidUntil,
		Reason:           p.Reason,
	}
}

func toAppliedVolumeDiscount(r *pricing.VolumeDiscountRule) *AppliedVolumeDiscount {
	return &AppliedVolumeDiscount{
		RuleID:             r.ID,
		MinQuantity:        r.MinQuantity,
		MaxQuantity:        r.MaxQuantity,
		DiscountPercentage: r.DiscountPercentage,
	}
}

// =============================================================================
// Order pricing DTOs
// =============================================================================

// OrderItem is a single requested line of an order
type OrderItem struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"required,gte=1"`
}

// CalculateOrderRequest is the request body for order pricing
type CalculateOrderRequest struct {
	Items      []OrderItem `json:"items" binding:"required,min=1,dive"`
	CustomerID *int64      `json:"customer_id" binding:"omitempty,gt=0"`
}

// LineItemResult is the priced result of one order line
type LineItemResult struct {
	ProductID                int64           `json:"product_id"`
	Quantity                 int             `json:"quantity"`
	UnitPrice                decimal.Decimal `json:"unit_price"`
	LineSubtotal             decimal.Decimal `json:"line_subtotal"`
	TierDiscount             decimal.Decimal `json:"tier_discount"`
	PromotionalDiscount      decimal.Decimal `json:"promotional_discount"`
	VolumeDiscount           decimal.Decimal `json:"volume_discount"`
	VolumeDiscountPercentage decimal.Decimal `json:"volume_discount_percentage"`
	TotalDiscount            decimal.Decimal `json:"total_discount"`
	LineTotal                decimal.Decimal `json:"line_total"`
	AppliedPromotionID       *uuid.UUID      `json:"applied_promotion_id,omitempty"`
	Currency                 string          `json:"currency"`
}

// OrderPricingResult is the priced result of a whole order
type OrderPricingResult struct {
	Items                         []LineItemResult   `json:"items"`
	Subtotal                      decimal.Decimal    `json:"subtotal"`
	TierDiscount                  decimal.Decimal    `json:"tier_discount"`
	PromotionalDiscount           decimal.Decimal    `json:"promotional_discount"`
	VolumeDiscount                decimal.Decimal    `json:"volume_discount"`
	OrderVolumeDiscount           decimal.Decimal    `json:"order_volume_discount"`
	OrderVolumeDiscountPercentage decimal.Decimal    `json:"order_volume_discount_percentage"`
	TotalDiscount                 decimal.Decimal    `json:"total_discount"`
	DiscountPercentage            decimal.Decimal    `json:"discount_percentage"`
	SubtotalAfterDiscounts        decimal.Decimal    `json:"subtotal_after_discounts"`
	TaxRate                       decimal.Decimal    `json:"tax_rate"`
	TaxAmount                     decimal.Decimal    `json:"tax_amount"`
	GrandTotal                    decimal.Decimal    `json:"grand_total"`
	Currency                      string             `json:"currency"`
	AppliedTierLevel              *pricing.TierLevel `json:"applied_tier_level,omitempty"`
	TotalQuantity                 int                `json:"total_quantity"`
}

// =============================================================================
// Promotion DTOs
// =============================================================================

// CreatePromotionRequest represents a request to create a promotion.
// Prices and dates are checked by the service so that they produce the
// dedicated promotion error codes.
type CreatePromotionRequest struct {
	ProductID        int64           `json:"product_id" binding:"required,gt=0"`
	PromotionalPrice decimal.Decimal `json:"promotional_price"`
	ValidFrom        time.Time       `json:"valid_from"`
	ValidUntil       time.Time       `json:"valid_until"`
	Reason           string          `json:"reason" binding:"max=500"`
}

// PromotionResponse represents a promotion in API responses
type PromotionResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ProductID          int64           `json:"product_id"`
	PromotionalPrice   decimal.Decimal `json:"promotional_price"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	ValidFrom          time.Time       `json:"valid_from"`
	ValidUntil         time.Time       `json:"valid_until"`
	Reason             string          `json:"reason"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ToPromotionResponse converts a domain Promotion to PromotionResponse
func ToPromotionResponse(p *pricing.Promotion) PromotionResponse {
	return PromotionResponse{
		ID:                 p.ID,
		ProductID:          p.ProductID,
		PromotionalPrice:   p.PromotionalPrice,
		OriginalPrice:      p.OriginalPrice,
		DiscountPercentage: p.DiscountRatio(),
		ValidFrom:          p.ValidFrom,
		ValidUntil:         p.ValidUntil,
		Reason:             p.Reason,
		IsActive:           p.IsActive,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

// ToPromotionResponses converts a slice of promotions, preserving order
func ToPromotionResponses(promos []*pricing.Promotion) []PromotionResponse {
	out := make([]PromotionResponse, len(promos))
	for i, p := range promos {
		out[i] = ToPromotionResponse(p)
	}
	return out
}

// ExpirePromotionsResponse reports how many promotions were expired
type ExpirePromotionsResponse struct {
	Expired int64 `json:"expired"`
}

// =============================================================================
// Tier DTOs
// =============================================================================

// TierDefinitionResponse is one entry of the tier catalog
type TierDefinitionResponse struct {
	Level              pricing.TierLevel `json:"level"`
	Name               string            `json:"name"`
	DiscountPercentage decimal.Decimal   `json:"discount_percentage"`
}

// SetCustomerTierRequest represents a request to assign a tier to a customer
type SetCustomerTierRequest struct {
	Level  string `json:"level" binding:"required,tier_level"`
	Reason string `json:"reason" binding:"required,max=500"`
}

// BulkTierUpdateItem is one assignment in a bulk update request
type BulkTierUpdateItem struct {
	CustomerID int64  `json:"customer_id" binding:"required,gt=0"`
	Level      string `json:"level" binding:"required,tier_level"`
	Reason     string `json:"reason" binding:"required,max=500"`
}

// BulkUpdateTiersRequest represents a bulk tier assignment request
type BulkUpdateTiersRequest struct {
	Updates []BulkTierUpdateItem `json:"updates" binding:"required,min=1,max=1000,dive"`
}

// BulkUpdateTiersResponse reports the number of assignments applied
type BulkUpdateTiersResponse struct {
	Updated int `json:"updated"`
}

// CustomerTierResponse represents a customer tier assignment in API responses
type CustomerTierResponse struct {
	CustomerID         int64             `json:"customer_id"`
	Level              pricing.TierLevel `json:"level"`
	Name               string            `json:"name"`
	DiscountPercentage decimal.Decimal   `json:"discount_percentage"`
	AssignedAt         time.Time         `json:"assigned_at"`
	Reason             string            `json:"reason"`
}

// ToCustomerTierResponse converts a domain CustomerTier to CustomerTierResponse
func ToCustomerTierResponse(t *pricing.CustomerTier) CustomerTierResponse {
	return CustomerTierResponse{
		CustomerID:         t.CustomerID,
		Level:              t.Level,
		Name:               t.Name,
		DiscountPercentage: t.DiscountPercentage,
		AssignedAt:         t.AssignedAt,
		Reason:             t.Reason,
	}
}

// TierHistoryResponse represents one audit entry of a customer's tier history
type TierHistoryResponse struct {
	ID                 uuid.UUID         `json:"id"`
	CustomerID         int64             `json:"customer_id"`
	Level              pricing.TierLevel `json:"level"`
	DiscountPercentage decimal.Decimal   `json:"discount_percentage"`
	Reason             string            `json:"reason"`
	AssignedAt         time.Time         `json:"assigned_at"`
}

// TierPrice is the price of a product at one tier
type TierPrice struct {
	Level              pricing.TierLevel `json:"level"`
	Name               string            `json:"name"`
	DiscountPercentage decimal.Decimal   `json:"discount_percentage"`
	Price              decimal.Decimal   `json:"price"`
	Savings            decimal.Decimal   `json:"savings"`
}

// TierPricingResponse previews a product's price at every tier, Bronze first
type TierPricingResponse struct {
	ProductID int64           `json:"product_id"`
	BasePrice decimal.Decimal `json:"base_price"`
	Currency  string          `json:"currency"`
	Tiers     []TierPrice     `json:"tiers"`
}

// =============================================================================
// Price administration DTOs
// =============================================================================

// UpdateProductPriceRequest represents a request to set a product's base price
type UpdateProductPriceRequest struct {
	Price decimal.Decimal  `json:"price"`
	Cost  *decimal.Decimal `json:"cost"`
}

// ProductPriceResponse represents a product price in API responses
type ProductPriceResponse struct {
	ProductID   int64            `json:"product_id"`
	Price       decimal.Decimal  `json:"price"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Margin      *decimal.Decimal `json:"margin,omitempty"`
	Currency    string           `json:"currency"`
	LastUpdated time.Time        `json:"last_updated"`
}

// ToProductPriceResponse converts a domain ProductPrice to ProductPriceResponse
func ToProductPriceResponse(p *pricing.ProductPrice) ProductPriceResponse {
	resp := ProductPriceResponse{
		ProductID:   p.ProductID,
		Price:       p.Price,
		Cost:        p.Cost,
		Currency:    p.Currency,
		LastUpdated: p.LastUpdated,
	}
	if p.HasCost() {
		margin := pricing.Margin(p.Price, *p.Cost)
		resp.Margin = &margin
	}
	return resp
}

// CreateVolumeRuleRequest represents a request to create a volume discount rule.
// Omit product_id for an order-level rule.
type CreateVolumeRuleRequest struct {
	ProductID          *int64          `json:"product_id" binding:"omitempty,gt=0"`
	MinQuantity        int             `json:"min_quantity" binding:"required,gte=1"`
	MaxQuantity        *int            `json:"max_quantity" binding:"omitempty,gtefield=MinQuantity"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// VolumeRuleResponse represents a volume discount rule in API responses
type VolumeRuleResponse struct {
	ID                 uuid.UUID       `json:"id"`
	ProductID          *int64          `json:"product_id,omitempty"`
	OrderLevel         bool            `json:"order_level"`
	MinQuantity        int             `json:"min_quantity"`
	MaxQuantity        *int            `json:"max_quantity,omitempty"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}

// ToVolumeRuleResponse converts a domain VolumeDiscountRule to VolumeRuleResponse
func ToVolumeRuleResponse(r *pricing.VolumeDiscountRule) VolumeRuleResponse {
	return VolumeRuleResponse{
		ID:                 r.ID,
		ProductID:          r.ProductID,
		OrderLevel:         r.IsOrderLevel(),
		MinQuantity:        r.MinQuantity,
		MaxQuantity:        r.MaxQuantity,
		DiscountPercentage: r.DiscountPercentage,
	}
}
