package dto

import (
	"time"

	"github.com/SscSPs/ledger_aggregator/internal/apperrors"
	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
)

// IntegrityCheckRequest is the body of an on-demand integrity check. AsOf
// defaults to the current date.
type IntegrityCheckRequest struct {
	AsOf string `json:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// AsOfDate parses AsOf, falling back to today's date in UTC.
func (r IntegrityCheckRequest) AsOfDate(now time.Time) (time.Time, error) {
	if r.AsOf == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	asOf, err := time.Parse(DateFormat, r.AsOf)
	if err != nil {
		return time.Time{}, apperrors.NewInputError("asOf", "use YYYY-MM-DD")
	}
	return asOf, nil
}

// IntegrityCheckResponse acknowledges a queued integrity check.
type IntegrityCheckResponse struct {
	TaskID      string `json:"taskID"`
	Queue       string `json:"queue"`
	WorkplaceID string `json:"workplaceID"`
	AsOf        string `json:"asOf"`
}

// ToIntegrityCheckResponse converts the queued request to its response body.
func ToIntegrityCheckResponse(r *domain.IntegrityRequest) IntegrityCheckResponse {
	return IntegrityCheckResponse{
		TaskID:      r.TaskID,
		Queue:       r.Queue,
		WorkplaceID: r.WorkplaceID,
		AsOf:        r.AsOf.Format(DateFormat),
	}
}
