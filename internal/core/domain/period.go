package domain

import "time"

// Period is a half-open date range [Start, End) used to scope aggregation.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriodInclusive builds a period covering the calendar dates from..to,
// both inclusive, as used by the fromDate/toDate query parameters.
func NewPeriodInclusive(from, to time.Time) Period {
	return Period{Start: truncateDay(from), End: truncateDay(to).AddDate(0, 0, 1)}
}

// IsValid reports whether the period bounds are ordered.
func (p Period) IsValid() bool {
	return !p.Start.After(p.End)
}

// Contains reports whether t falls inside [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
