package cashflow

import (
	"time"

	"github.com/shopspring/decimal"
)

// OccursOn reports whether the entry contributes on day and returns its full
// signed value when it does.
//
// Only DAILY and WEEKLY have their own rule. Every other tag, BIWEEKLY and
// YEARLY included, matches on the start's day of month; a start on the 31st
// never substitutes for shorter months. EndedOn is not consulted here.
func OccursOn(e Entry, day time.Time) (decimal.Decimal, bool) {
	day = Day(day)
	if day.Before(e.StartedOn) {
		return decimal.Zero, false
	}

	var hit bool
	switch e.Frequency {
	case Daily:
		hit = true
	case Weekly:
		hit = day.Weekday() == e.StartedOn.Weekday()
	default:
		hit = day.Day() == e.StartedOn.Day()
	}
	if !hit {
		return decimal.Zero, false
	}
	return e.Value, true
}
