package handler

import (
	"github.com/gin-gonic/gin"
	pricingapp "github.com/leduxro-prog/erp-dashboard-sub010/internal/application/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/interfaces/http/middleware"
)

// TierHandler serves the tier catalog and customer tier assignment endpoints
type TierHandler struct {
	BaseHandler
	tierService *pricingapp.TierService
}

// NewTierHandler creates a new TierHandler
func NewTierHandler(tierService *pricingapp.TierService) *TierHandler {
	return &TierHandler{tierService: tierService}
}

// ListTiers godoc
// @Summary      List the tier catalog
// @Tags         tiers
// @Produce      json
// @Router       /pricing/tiers [get]
func (h *TierHandler) ListTiers(c *gin.Context) {
	h.Success(c, h.tierService.ListTiers())
}

// GetCustomersByTier godoc
// @Summary      List customers assigned to a tier
// @Tags         tiers
// @Produce      json
// @Param        level  path  string  true  "Tier level"
// @Router       /pricing/tiers/{level}/customers [get]
func (h *TierHandler) GetCustomersByTier(c *gin.Context) {
	customers, err := h.tierService.GetCustomersByTier(c.Request.Context(), c.Param("level"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customers)
}

// GetCustomerTier godoc
// @Summary      Get a customer's tier
// @Tags         tiers
// @Produce      json
// @Param        customer_id  path  int  true  "Customer ID"
// @Router       /pricing/customers/{customer_id}/tier [get]
func (h *TierHandler) GetCustomerTier(c *gin.Context) {
	customerID, ok := h.parseIDParam(c, "customer_id")
	if !ok {
		return
	}

	tier, err := h.tierService.GetCustomerTier(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tier)
}

// SetCustomerTier godoc
// @Summary      Assign a tier to a customer
// @Tags         tiers
// @Accept       json
// @Produce      json
// @Param        customer_id  path  int                                    true  "Customer ID"
// @Param        request      body  pricingapp.SetCustomerTierRequest      true  "Assignment"
// @Router       /pricing/customers/{customer_id}/tier [put]
func (h *TierHandler) SetCustomerTier(c *gin.Context) {
	customerID, ok := h.parseIDParam(c, "customer_id")
	if !ok {
		return
	}

	var req pricingapp.SetCustomerTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	tier, err := h.tierService.SetCustomerTier(c.Request.Context(), customerID, req.Level, req.Reason)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tier)
}

// BulkUpdateCustomerTiers godoc
// @Summary      Assign tiers to many customers at once
// @Description  All updates are applied or none are
// @Tags         tiers
// @Accept       json
// @Produce      json
// @Param        request  body  pricingapp.BulkUpdateTiersRequest  true  "Assignments"
// @Router       /pricing/customers/tiers/bulk [post]
func (h *TierHandler) BulkUpdateCustomerTiers(c *gin.Context) {
	var req pricingapp.BulkUpdateTiersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.tierService.BulkUpdateCustomerTiers(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetCustomerTierHistory godoc
// @Summary      List a customer's tier changes, newest first
// @Tags         tiers
// @Produce      json
// @Param        customer_id  path   int  true   "Customer ID"
// @Param        limit        query  int  false  "Maximum entries"
// @Router       /pricing/customers/{customer_id}/tier/history [get]
func (h *TierHandler) GetCustomerTierHistory(c *gin.Context) {
	customerID, ok := h.parseIDParam(c, "customer_id")
	if !ok {
		return
	}
	limit, ok := h.parseIntQuery(c, "limit", 0)
	if !ok {
		return
	}

	history, err := h.tierService.GetCustomerTierHistory(c.Request.Context(), customerID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}
