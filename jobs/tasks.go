package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskQuotationExpire sweeps pending quotations past their validity date.
	TaskQuotationExpire = "quotation:expire"
)

// QuotationExpirePayload configures the expiry sweep. A zero AsOf means the
// handler uses the current time.
type QuotationExpirePayload struct {
	AsOf time.Time `json:"as_of,omitempty"`
}

// NewQuotationExpireTask constructs an Asynq task for the expiry sweep.
func NewQuotationExpireTask(payload QuotationExpirePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskQuotationExpire, data), nil
}
