package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntegrityReport summarises a scheduled ledger health check for one workplace.
type IntegrityReport struct {
	WorkplaceID            string          `json:"workplaceID"`
	AsOf                   time.Time       `json:"asOf"`
	TrialBalanceDifference decimal.Decimal `json:"trialBalanceDifference"`
	BalanceSheetDifference decimal.Decimal `json:"balanceSheetDifference"` // Assets minus liabilities and equity
	UnbalancedEntries      int             `json:"unbalancedEntries"`
	UncategorizedAccounts  int             `json:"uncategorizedAccounts"`
	Warnings               []string        `json:"warnings"`
}

// Healthy reports whether the check found nothing to investigate.
func (r IntegrityReport) Healthy() bool {
	return r.TrialBalanceDifference.IsZero() && r.BalanceSheetDifference.IsZero() && len(r.Warnings) == 0
}

// IntegrityRequest acknowledges an on-demand integrity check handed to the
// background worker.
type IntegrityRequest struct {
	TaskID      string    `json:"taskID"`
	Queue       string    `json:"queue"`
	WorkplaceID string    `json:"workplaceID"`
	AsOf        time.Time `json:"asOf"`
}
