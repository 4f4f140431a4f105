package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/leduxro-prog/erp-dashboard-sub010/docs"
	pricingapp "github.com/leduxro-prog/erp-dashboard-sub010/internal/application/pricing"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/config"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/logger"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/persistence"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/scheduler"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/infrastructure/telemetry"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/interfaces/http/handler"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/interfaces/http/middleware"
	"github.com/leduxro-prog/erp-dashboard-sub010/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			Pricing Engine API
//	@version		1.0
//	@description	Product prices, customer tiers, promotions and volume discounts. Amounts are in RON.

//	@contact.name	Pricing Team

//	@host		localhost:8080
//	@BasePath	/api/v1

const meterName = "github.com/leduxro-prog/erp-dashboard-sub010"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting pricing engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		_ = meterProvider.Shutdown(context.Background())
		_ = tracerProvider.Shutdown(context.Background())
	}()

	gormLog := logger.NewGormLogger(log, logger.GormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         tracerProvider.IsEnabled() && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
	}, log); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	meter := meterProvider.Meter(meterName)
	pricingMetrics, err := telemetry.NewPricingMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create pricing metrics", zap.Error(err))
	}
	withMetrics := pricingapp.WithMetrics(pricingMetrics)

	priceRepo := persistence.NewGormPriceRepository(db.DB)
	tierRepo := persistence.NewGormTierRepository(db.DB)

	priceCalculator := pricingapp.NewPriceCalculator(priceRepo, tierRepo, log, withMetrics)
	orderCalculator := pricingapp.NewOrderPricingCalculator(priceRepo, tierRepo, log, withMetrics)
	tierPricingService := pricingapp.NewTierPricingService(priceRepo, log, withMetrics)
	priceAdminService := pricingapp.NewPriceAdminService(priceRepo, log, withMetrics)
	promotionService := pricingapp.NewPromotionService(priceRepo, log, withMetrics)
	tierService := pricingapp.NewTierService(tierRepo, log, withMetrics)

	expiryScheduler := scheduler.NewPromotionExpiryScheduler(promotionService, log, scheduler.PromotionExpiryConfig{
		Enabled:  cfg.Scheduler.PromotionExpiryEnabled,
		Interval: cfg.Scheduler.PromotionExpiryInterval,
		Timeout:  cfg.Scheduler.JobTimeout,
	})
	if err := expiryScheduler.Start(ctx); err != nil {
		log.Fatal("Failed to start promotion expiry scheduler", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := expiryScheduler.Stop(stopCtx); err != nil {
			log.Error("Error stopping promotion expiry scheduler", zap.Error(err))
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	var httpMetrics gin.HandlerFunc
	if meterProvider.IsEnabled() {
		httpMetrics, err = middleware.HTTPMetrics(meter)
		if err != nil {
			log.Fatal("Failed to create HTTP metrics", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine, err := router.NewEngine(router.EngineConfig{
		Logger:         log,
		CORS:           corsConfig,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tracerProvider.IsEnabled(),
		},
		Metrics: httpMetrics,
		Swagger: !cfg.IsProduction(),
	}, router.Handlers{
		Pricing:   handler.NewPricingHandler(priceCalculator, orderCalculator, tierPricingService, priceAdminService),
		Promotion: handler.NewPromotionHandler(promotionService),
		Tier:      handler.NewTierHandler(tierService),
		System:    handler.NewSystemHandler(db),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}
