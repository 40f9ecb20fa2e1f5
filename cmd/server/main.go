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
	"github.com/spicebox/packing-summary/internal/application/packing"
	"github.com/spicebox/packing-summary/internal/domain/fulfillment"
	"github.com/spicebox/packing-summary/internal/infrastructure/config"
	"github.com/spicebox/packing-summary/internal/infrastructure/ecommerce"
	"github.com/spicebox/packing-summary/internal/infrastructure/logger"
	"github.com/spicebox/packing-summary/internal/infrastructure/telemetry"
	"github.com/spicebox/packing-summary/internal/interfaces/http/handler"
	"github.com/spicebox/packing-summary/internal/interfaces/http/middleware"
	"github.com/spicebox/packing-summary/internal/interfaces/http/router"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.DefaultConfig()
	if cfg.Log.Level != "" {
		logCfg.Level = cfg.Log.Level
	}
	if cfg.Log.Format != "" {
		logCfg.Format = cfg.Log.Format
	}
	if cfg.Log.Output != "" {
		logCfg.Output = cfg.Log.Output
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// OTLP log export, bridged into the zap logger when enabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize OTEL logs", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          zapcore.InfoLevel,
		})
		if bridged, err := logger.New(logCfg, otelCore); err == nil {
			log = bridged
		}
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Packing Summary Tool",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Profiling.Enabled,
		ServerAddress:   cfg.Profiling.ServerAddress,
		ApplicationName: cfg.Profiling.ApplicationName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Profiling.SpanProfiles && profiler.IsEnabled() {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
		log.Info("Span profiles", zap.Bool("enabled", tracerProvider.IsSpanProfilesEnabled()))
	}

	packingMetrics, err := telemetry.NewPackingMetrics(meterProvider.Meter(telemetry.TracerName))
	if err != nil {
		log.Warn("Packing metrics unavailable", zap.Error(err))
	}

	// Store connection. Outside production the server also starts without
	// credentials; data endpoints then answer with an error.
	var source fulfillment.OrderSource
	shopifyCfg := &ecommerce.ShopifyConfig{
		ShopDomain:     cfg.Shopify.ShopDomain,
		AccessToken:    cfg.Shopify.AccessToken,
		APIVersion:     cfg.Shopify.APIVersion,
		PageSize:       cfg.Shopify.PageSize,
		TimeoutSeconds: cfg.Shopify.TimeoutSeconds,
	}
	adapter, err := ecommerce.NewShopifyAdapter(shopifyCfg,
		ecommerce.WithLogger(log),
		ecommerce.WithMetrics(packingMetrics),
	)
	if err != nil {
		log.Warn("Shopify is not configured, data endpoints will fail", zap.Error(err))
	} else {
		source = adapter
	}

	packingService := packing.NewPackingService(source, fulfillment.DefaultBundleCatalog(), log)
	packingService.SetMetrics(packingMetrics)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order:
	// 1. RequestID - generate/propagate request ID
	// 2. Recovery - catch panics
	// 3. Logger - log requests
	// 4. Security headers
	// 5. CORS
	// 6. Tracing, span enrichment and error marking
	// 7. HTTP metrics
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.IsEnabled(),
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		Enabled:       cfg.Telemetry.MetricsEnabled,
	}))

	healthHandler := handler.NewHealthHandler()
	packingHandler := handler.NewPackingHandler(packingService)

	systemRoutes := router.NewDomainGroup("system", "").
		GET("/health", healthHandler.Health)

	packingRoutes := router.NewDomainGroup("packing", "").
		Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{Enabled: profiler.IsEnabled()})).
		GET("/packing-summary", packingHandler.PackingSummary).
		GET("/orders-view", packingHandler.OrdersView)

	r := router.NewRouter(engine, router.WithStaticDir(cfg.Static.Dir))
	r.Register(systemRoutes).Register(packingRoutes)
	r.Setup()

	log.Debug("Routes registered", zap.Strings("groups", r.GroupNames()))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Packing Summary Tool running",
			zap.String("addr", srv.Addr),
			zap.String("shop", cfg.Shopify.ShopDomain),
			zap.String("open", "http://localhost:"+cfg.App.Port),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := profiler.Stop(); err != nil {
		log.Warn("Failed to stop profiler", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down tracer provider", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Failed to shut down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
