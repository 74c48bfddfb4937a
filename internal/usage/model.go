package usage

import "time"

// DayFormat is the UTC calendar-day key format for ledger rows.
const DayFormat = "2006-01-02"

// Day returns the UTC calendar day a moment belongs to. Requests one second
// apart across UTC midnight land on different days and independent budgets.
func Day(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// NextReset returns the next UTC midnight after t, when a fresh budget starts.
func NextReset(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// Consumption is the outcome of one atomic test-and-increment against the ledger.
type Consumption struct {
	Allowed   bool
	Remaining int
}
