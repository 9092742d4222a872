package cashflow

import "time"

// BuildWindow returns every day from the first of the month before anchor's
// month through the last day of the month after it, in ascending order.
func BuildWindow(anchor time.Time) []time.Time {
	first := MonthStart(anchor)
	start := first.AddDate(0, -1, 0)
	end := first.AddDate(0, 2, -1)

	days := make([]time.Time, 0, 92)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthStart normalizes t to the first day of its month
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ShiftAnchor moves an anchor by delta months, re-centering the window
func ShiftAnchor(anchor time.Time, delta int) time.Time {
	return MonthStart(anchor).AddDate(0, delta, 0)
}
