package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// QuotationExpirer marks overdue pending quotations as expired.
type QuotationExpirer interface {
	ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

// ExpireQuotationsJob runs the nightly quotation expiry sweep.
type ExpireQuotationsJob struct {
	Service QuotationExpirer
	Logger  *slog.Logger
	clock   func() time.Time
}

// NewExpireQuotationsJob initialises the expiry sweep handler.
func NewExpireQuotationsJob(service QuotationExpirer, logger *slog.Logger) *ExpireQuotationsJob {
	return &ExpireQuotationsJob{
		Service: service,
		Logger:  logger,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle executes the expiry sweep.
func (j *ExpireQuotationsJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Service == nil {
		return errors.New("quotation expire: handler not configured")
	}
	var payload QuotationExpirePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	asOf := payload.AsOf
	if asOf.IsZero() {
		asOf = j.clock()
	}

	logger := j.logger().With(slog.Time("as_of", asOf))
	logger.Info("starting quotation expiry sweep")

	expired, err := j.Service.ExpireOverdue(ctx, asOf)
	if err != nil {
		logger.Error("expiry sweep failed", slog.Any("error", err))
		return err
	}
	logger.Info("quotation expiry sweep finished", slog.Int64("expired", expired))
	return nil
}

func (j *ExpireQuotationsJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
