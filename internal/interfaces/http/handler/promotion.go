package handler

import (
	"github.com/gin-gonic/gin"
	pricingapp "github.com/leduxro-prog/erp-dashboard-sub010/internal/application/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/interfaces/http/middleware"
)

// PromotionHandler serves promotion endpoints
type PromotionHandler struct {
	BaseHandler
	promotionService *pricingapp.PromotionService
}

// NewPromotionHandler creates a new PromotionHandler
func NewPromotionHandler(promotionService *pricingapp.PromotionService) *PromotionHandler {
	return &PromotionHandler{promotionService: promotionService}
}

// CreatePromotion godoc
// @Summary      Create a promotion
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        request  body  pricingapp.CreatePromotionRequest  true  "Promotion"
// @Router       /pricing/promotions [post]
func (h *PromotionHandler) CreatePromotion(c *gin.Context) {
	var req pricingapp.CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	promotion, err := h.promotionService.CreatePromotion(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, promotion)
}

// ListActivePromotions godoc
// @Summary      List promotions in effect now
// @Tags         promotions
// @Produce      json
// @Param        product_id  query  int  false  "Restrict to one product"
// @Router       /pricing/promotions [get]
func (h *PromotionHandler) ListActivePromotions(c *gin.Context) {
	productID, ok := h.parseOptionalIDQuery(c, "product_id")
	if !ok {
		return
	}

	promotions, err := h.promotionService.GetActivePromotions(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, promotions)
}

// GetPromotion godoc
// @Summary      Get a promotion by ID
// @Tags         promotions
// @Produce      json
// @Param        id  path  string  true  "Promotion ID"
// @Router       /pricing/promotions/{id} [get]
func (h *PromotionHandler) GetPromotion(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	promotion, err := h.promotionService.GetPromotion(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, promotion)
}

// DeactivatePromotion godoc
// @Summary      Deactivate a promotion
// @Tags         promotions
// @Produce      json
// @Param        id  path  string  true  "Promotion ID"
// @Router       /pricing/promotions/{id}/deactivate [post]
func (h *PromotionHandler) DeactivatePromotion(c *gin.Context) {
	id, ok := h.parseUUIDParam(c, "id")
	if !ok {
		return
	}

	promotion, err := h.promotionService.DeactivatePromotion(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, promotion)
}

// ExpirePromotions godoc
// @Summary      Deactivate every promotion whose window has ended
// @Tags         promotions
// @Produce      json
// @Router       /pricing/promotions/expire [post]
func (h *PromotionHandler) ExpirePromotions(c *gin.Context) {
	count, err := h.promotionService.ExpireOverduePromotions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pricingapp.ExpirePromotionsResponse{Expired: count})
}
