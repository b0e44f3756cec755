// Package jobs runs the scheduled ledger integrity checks on asynq.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue every ledger task is enqueued on.
	QueueDefault = "default"
	// TaskLedgerIntegrity recomputes the trial balance and balance sheet of
	// each workplace and reports imbalances.
	TaskLedgerIntegrity = "ledger:integrity"
)

// IntegrityPayload scopes one integrity run. An empty WorkplaceID checks every
// workplace; an empty AsOf checks as of the run date.
type IntegrityPayload struct {
	WorkplaceID string `json:"workplaceID,omitempty"`
	AsOf        string `json:"asOf,omitempty"` // YYYY-MM-DD
}

// NewIntegrityTask constructs a ledger integrity task.
func NewIntegrityTask(payload IntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrity, data, asynq.Queue(QueueDefault), asynq.Timeout(10*time.Minute)), nil
}
