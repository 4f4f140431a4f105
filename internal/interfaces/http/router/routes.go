package router

import (
	"github.com/gin-gonic/gin"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/logger"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/interfaces/http/handler"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers mounted by NewEngine
type Handlers struct {
	Pricing   *handler.PricingHandler
	Promotion *handler.PromotionHandler
	Tier      *handler.TierHandler
	System    *handler.SystemHandler
}

// EngineConfig configures the middleware chain of the HTTP engine
type EngineConfig struct {
	Logger         *zap.Logger
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	TrustedProxies []string
	Tracing        middleware.TracingConfig
	// Metrics is optional; nil disables HTTP metrics
	Metrics gin.HandlerFunc
	Swagger bool
}

// PricingRoutes returns the /pricing route tree
func PricingRoutes(h Handlers) *DomainGroup {
	pricing := NewDomainGroup("pricing", "/pricing")

	pricing.Group("products", "/products").
		GET("/:product_id/price", h.Pricing.CalculatePrice).
		PUT("/:product_id/price", h.Pricing.UpdateProductPrice).
		GET("/:product_id/tier-pricing", h.Pricing.GetTierPricing)

	pricing.Group("orders", "/orders").
		POST("/calculate", h.Pricing.CalculateOrder)

	pricing.Group("volume-rules", "/volume-rules").
		POST("", h.Pricing.CreateVolumeRule).
		DELETE("/:id", h.Pricing.DeleteVolumeRule)

	pricing.Group("promotions", "/promotions").
		GET("", h.Promotion.ListActivePromotions).
		POST("", h.Promotion.CreatePromotion).
		POST("/expire", h.Promotion.ExpirePromotions).
		GET("/:id", h.Promotion.GetPromotion).
		POST("/:id/deactivate", h.Promotion.DeactivatePromotion)

	pricing.Group("tiers", "/tiers").
		GET("", h.Tier.ListTiers).
		GET("/:level/customers", h.Tier.GetCustomersByTier)

	pricing.Group("customers", "/customers").
		POST("/tiers/bulk", h.Tier.BulkUpdateCustomerTiers).
		GET("/:customer_id/tier", h.Tier.GetCustomerTier).
		PUT("/:customer_id/tier", h.Tier.SetCustomerTier).
		GET("/:customer_id/tier/history", h.Tier.GetCustomerTierHistory)

	return pricing
}

// NewEngine builds the gin engine with the full middleware chain and routes
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(cfg.Logger),
		middleware.Tracing(cfg.Tracing),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(cfg.Logger),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.BodyLimit(cfg.MaxBodySize),
	)
	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics)
	}

	engine.GET("/health", h.System.Health)
	if cfg.Swagger {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := NewRouter(engine).Register(PricingRoutes(h)).Setup()
	api.GET("/ping", h.System.Ping)

	return engine, nil
}
