package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solstice-erp/solstice-erp/internal/app"
	"github.com/solstice-erp/solstice-erp/internal/inventory"
	"github.com/solstice-erp/solstice-erp/internal/masterdata/products"
	"github.com/solstice-erp/solstice-erp/internal/platform/cache"
	"github.com/solstice-erp/solstice-erp/internal/platform/db"
	"github.com/solstice-erp/solstice-erp/internal/sales/customers"
	"github.com/solstice-erp/solstice-erp/internal/sales/orders"
	"github.com/solstice-erp/solstice-erp/internal/sales/quotations"
	"github.com/solstice-erp/solstice-erp/report"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, inventory cache disabled", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	customerRepo := customers.NewRepository(pool)
	customerService := customers.NewService(customerRepo)
	customerHandler := customers.NewHandler(logger, customerService)

	productRepo := products.NewRepository(pool)
	productService := products.NewService(productRepo)
	productHandler := products.NewHandler(logger, productService)

	inventoryRepo := inventory.NewRepository(pool)
	inventoryCache := inventory.NewCache(redisClient, cfg.InventoryCacheTTL)
	inventoryService := inventory.NewService(inventoryRepo, inventoryCache)
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	quotationRepo := quotations.NewRepository(pool)
	quotationService := quotations.NewService(quotationRepo, customerRepo, productRepo, inventoryService, cfg.QuotationValidityDays)
	pdfClient := report.NewClient(cfg.GotenbergURL)
	pdfExporter, err := quotations.NewPDFExporter(pdfClient)
	if err != nil {
		logger.Error("init pdf exporter", slog.Any("error", err))
		os.Exit(1)
	}
	quotationHandler := quotations.NewHandler(logger, quotationService, customerService, pdfExporter)

	orderRepo := orders.NewRepository(pool)
	orderService := orders.NewService(orderRepo, quotationService, customerRepo, productRepo, inventoryService)
	orderHandler := orders.NewHandler(logger, orderService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CustomerHandler:  customerHandler,
		ProductHandler:   productHandler,
		InventoryHandler: inventoryHandler,
		QuotationHandler: quotationHandler,
		OrderHandler:     orderHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
