package ledger

import (
	"iter"

	"github.com/SscSPs/ledger_aggregator/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeIncomeStatement reports revenue and expense balances for posted lines
// dated inside period. NetIncomePercentage is net income as a percentage of
// total revenue, rounded to two places, and is zero when there is no revenue.
func ComputeIncomeStatement(lines iter.Seq[domain.LedgerLine], period domain.Period) (*domain.IncomeStatement, error) {
	if err := validatePeriod(period); err != nil {
		return nil, err
	}

	acc := newAccumulator(true)
	err := acc.consume(lines, func(l domain.LedgerLine) bool {
		return period.Contains(l.EntryDate)
	})
	if err != nil {
		return nil, err
	}

	is := &domain.IncomeStatement{
		Period:   period,
		Revenue:  newSection(domain.Revenue),
		Expenses: newSection(domain.Expense),
	}
	for _, t := range acc.sortedTotals() {
		if t.account.Category != domain.Revenue && t.account.Category != domain.Expense {
			continue
		}
		if !t.hasActivity() {
			continue
		}
		b, err := t.balance()
		if err != nil {
			return nil, err
		}
		if t.account.Category == domain.Revenue {
			addToSection(&is.Revenue, b)
		} else {
			addToSection(&is.Expenses, b)
		}
	}

	is.TotalRevenue = is.Revenue.Total
	is.TotalExpenses = is.Expenses.Total
	is.NetIncome = is.TotalRevenue.Sub(is.TotalExpenses)
	is.NetIncomePercentage = percentage(is.NetIncome, is.TotalRevenue)
	is.Warnings = acc.warnings()
	return is, nil
}

// percentage returns part/whole*100 rounded to two places, or zero when whole
// is zero.
func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
