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
	authapp "github.com/inventra/frontend/internal/application/auth"
	catalogapp "github.com/inventra/frontend/internal/application/catalog"
	identityapp "github.com/inventra/frontend/internal/application/identity"
	inventoryapp "github.com/inventra/frontend/internal/application/inventory"
	"github.com/inventra/frontend/internal/application/refdata"
	reportapp "github.com/inventra/frontend/internal/application/report"
	saleapp "github.com/inventra/frontend/internal/application/sale"
	"github.com/inventra/frontend/internal/infrastructure/apiclient"
	"github.com/inventra/frontend/internal/infrastructure/config"
	"github.com/inventra/frontend/internal/infrastructure/logger"
	"github.com/inventra/frontend/internal/infrastructure/printing"
	"github.com/inventra/frontend/internal/infrastructure/session"
	"github.com/inventra/frontend/internal/infrastructure/telemetry"
	"github.com/inventra/frontend/internal/interfaces/http/handler"
	"github.com/inventra/frontend/internal/interfaces/http/middleware"
	"github.com/inventra/frontend/internal/interfaces/http/router"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Inventra frontend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("backend", cfg.API.BaseURL),
	)

	ctx := context.Background()
	telemetryCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetryCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	if cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled {
		loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetryCfg, log)
		if err != nil {
			log.Fatal("Failed to initialize logger provider", zap.Error(err))
		}
		defer func() {
			if err := loggerProvider.Shutdown(ctx); err != nil {
				log.Error("Error shutting down logger provider", zap.Error(err))
			}
		}()

		bridge := loggerProvider.BridgeCore(cfg.Telemetry.ServiceName)
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, bridge)
		}))
	}

	profiler, err := telemetry.StartProfiler(telemetry.ProfilerConfig{
		Enabled:       cfg.Profiling.Enabled,
		ServerAddress: cfg.Profiling.ServerAddress,
		ServiceName:   cfg.Telemetry.ServiceName,
		Environment:   cfg.App.Env,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer profiler.Stop()

	if cfg.Profiling.Enabled && cfg.Profiling.SpanProfiles {
		if err := tracerProvider.EnableSpanProfiles(); err != nil {
			log.Warn("Failed to enable span profiles", zap.Error(err))
		}
	}

	metrics, err := telemetry.NewFrontendMetrics()
	if err != nil {
		log.Fatal("Failed to register metrics", zap.Error(err))
	}

	api, err := apiclient.New(apiclient.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		TLSSkipVerify: cfg.API.TLSSkipVerify,
	}, log)
	if err != nil {
		log.Fatal("Failed to create API client", zap.Error(err))
	}
	api.SetMetrics(metrics)

	sessionStore := session.NewStore(cfg.Redis, cfg.Session.TTL, log)
	codec := session.NewCookieCodec(cfg.Session)

	refProvider := refdata.NewProvider(api, refdata.DefaultTTL)
	carts := saleapp.NewCartStore()
	defer carts.Close()

	authService := authapp.NewService(api, sessionStore, log)
	productService := catalogapp.NewProductService(api, refProvider)
	categoryService := catalogapp.NewCategoryService(api, refProvider)
	userService := identityapp.NewUserService(api)
	inventoryService := inventoryapp.NewService(api)
	branchService := inventoryapp.NewBranchService(api, refProvider)
	checkoutService := saleapp.NewCheckoutService(api, carts, metrics, log)
	invoiceService := saleapp.NewInvoiceService(api)
	reportService := reportapp.NewService(api)

	templateEngine := printing.NewTemplateEngine()
	receiptRenderer := printing.NewReceiptRenderer(templateEngine, printing.ShopHeader{
		Name:    cfg.Shop.Name,
		Address: cfg.Shop.Address,
		Phone:   cfg.Shop.Phone,
	})

	var pdfRenderer printing.PDFRenderer
	if cfg.Printing.PDFEnabled {
		chromeRenderer := printing.NewChromedpRenderer(printing.ChromedpConfig{
			Timeout:   cfg.Printing.PDFTimeout,
			NoSandbox: true,
			Logger:    log,
		})
		defer chromeRenderer.Close()
		pdfRenderer = chromeRenderer
		log.Info("Receipt PDF rendering enabled")
	}

	pageRenderer, err := handler.NewPageRenderer(templateEngine)
	if err != nil {
		log.Fatal("Failed to parse page templates", zap.Error(err))
	}
	base := handler.NewBaseHandler(pageRenderer, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureHeaders())
	engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	requireSession := middleware.RequireSession(authService, codec, log)
	requireManager := middleware.RequireManager()

	r := router.NewRouter(engine)
	r.Register(handler.NewAuthHandler(base, authService, carts, refProvider, codec))
	r.RegisterProtected(handler.NewDashboardHandler(base, invoiceService, reportService), requireSession)
	r.RegisterProtected(handler.NewProductHandler(base, productService, categoryService), requireSession)
	r.RegisterProtected(handler.NewCategoryHandler(base, categoryService), requireSession)
	r.RegisterProtected(handler.NewInventoryHandler(base, inventoryService, branchService, refProvider), requireSession)
	r.RegisterProtected(handler.NewSaleHandler(base, carts, checkoutService, invoiceService, refProvider, receiptRenderer), requireSession)
	r.RegisterProtected(handler.NewInvoiceHandler(base, invoiceService, refProvider, receiptRenderer, pdfRenderer), requireSession)
	r.RegisterProtected(handler.NewBranchHandler(base, branchService), requireSession)
	r.RegisterProtected(handler.NewUserHandler(base, userService, authService), requireSession, requireManager)
	r.RegisterProtected(handler.NewReportHandler(base, reportService, refProvider), requireSession, requireManager)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	if closer, ok := sessionStore.(interface{ Close() error }); ok {
		_ = closer.Close()
	} else if closer, ok := sessionStore.(interface{ Close() }); ok {
		closer.Close()
	}

	log.Info("Server stopped")
}
