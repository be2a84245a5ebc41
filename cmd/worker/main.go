package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/solstice-erp/solstice-erp/internal/app"
	"github.com/solstice-erp/solstice-erp/internal/masterdata/products"
	"github.com/solstice-erp/solstice-erp/internal/platform/db"
	"github.com/solstice-erp/solstice-erp/internal/sales/customers"
	"github.com/solstice-erp/solstice-erp/internal/sales/quotations"
	"github.com/solstice-erp/solstice-erp/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	// The sweep only touches the quotations table; the stock gate is never
	// consulted, so a nil gate is fine here.
	customerRepo := customers.NewRepository(pool)
	productRepo := products.NewRepository(pool)
	quotationRepo := quotations.NewRepository(pool)
	quotationService := quotations.NewService(quotationRepo, customerRepo, productRepo, nil, cfg.QuotationValidityDays)

	expireJob := jobs.NewExpireQuotationsJob(quotationService, logger)

	expireTask, err := jobs.NewQuotationExpireTask(jobs.QuotationExpirePayload{})
	if err != nil {
		logger.Error("build expire task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskQuotationExpire, Handler: expireJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.ExpirySweepCron, Task: expireTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
