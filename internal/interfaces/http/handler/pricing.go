package handler

import (
	"github.com/gin-gonic/gin"
	pricingapp "github.com/leduxro-prog/erp-dashboard-sub010/internal/application/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/interfaces/http/middleware"
)

// PricingHandler serves price calculation and price administration endpoints
type PricingHandler struct {
	BaseHandler
	priceCalculator *pricingapp.PriceCalculator
	orderCalculator *pricingapp.OrderPricingCalculator
	tierPricing     *pricingapp.TierPricingService
	admin           *pricingapp.PriceAdminService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(
	priceCalculator *pricingapp.PriceCalculator,
	orderCalculator *pricingapp.OrderPricingCalculator,
	tierPricing *pricingapp.TierPricingService,
	admin *pricingapp.PriceAdminService,
) *PricingHandler {
	return &PricingHandler{
		priceCalculator: priceCalculator,
		orderCalculator: orderCalculator,
		tierPricing:     tierPricing,
		admin:           admin,
	}
}

// CalculatePrice godoc
// @Summary      Calculate the price of a product
// @Tags         pricing
// @Produce      json
// @Param        product_id  path   int  true   "Product ID"
// @Param        customer_id query  int  false  "Customer ID for tier discount"
// @Param        quantity    query  int  false  "Quantity (default 1)"
// @Router       /pricing/products/{product_id}/price [get]
func (h *PricingHandler) CalculatePrice(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "product_id")
	if !ok {
		return
	}
	customerID, ok := h.parseOptionalIDQuery(c, "customer_id")
	if !ok {
		return
	}
	quantity, ok := h.parseIntQuery(c, "quantity", 1)
	if !ok {
		return
	}

	result, err := h.priceCalculator.Execute(c.Request.Context(), productID, customerID, quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetTierPricing godoc
// @Summary      Preview a product's price at every tier
// @Tags         pricing
// @Produce      json
// @Param        product_id  path  int  true  "Product ID"
// @Router       /pricing/products/{product_id}/tier-pricing [get]
func (h *PricingHandler) GetTierPricing(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "product_id")
	if !ok {
		return
	}

	result, err := h.tierPricing.Execute(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateProductPrice godoc
// @Summary      Set a product's base price and cost
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        product_id  path  int                                       true  "Product ID"
// @Param        request     body  pricingapp.UpdateProductPriceRequest      true  "Price"
// @Router       /pricing/products/{product_id}/price [put]
func (h *PricingHandler) UpdateProductPrice(c *gin.Context) {
	productID, ok := h.parseIDParam(c, "product_id")
	if !ok {
		return
	}

	var req pricingapp.UpdateProductPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.admin.UpdateProductPrice(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CalculateOrder godoc
// @Summary      Price a whole order
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request  body  pricingapp.CalculateOrderRequest  true  "Order lines"
// @Router       /pricing/orders/calculate [post]
func (h *PricingHandler) CalculateOrder(c *gin.Context) {
	var req pricingapp.CalculateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.orderCalculator.Execute(c.Request.Context(), req.Items, req.CustomerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateVolumeRule godoc
// @Summary      Create a volume discount rule
// @Description  Omit product_id to create an order-level rule
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request  body  pricingapp.CreateVolumeRuleRequest  true  "Rule"
// @Router       /pricing/volume-rules [post]
func (h *PricingHandler) CreateVolumeRule(c *gin.Context) {
	var req pricingapp.CreateVolumeRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.admin.CreateVolumeDiscountRule(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// DeleteVolumeRule godoc
// @Summary      Delete a volume discount rule
// @Tags         pricing
// @Param        id  path  string  true  "Rule ID"
// @Router       /pricing/volume-rules/{id} [delete]
func (h *PricingHandler) DeleteVolumeRule(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.admin.DeleteVolumeDiscountRule(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
