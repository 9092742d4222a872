package cashflow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// DayLayout is the key format of a calendar day
const DayLayout = "2006-01-02"

// Entry is an adjustment with its value and dates parsed
type Entry struct {
	ID          int64
	Label       string
	AccountName string
	Value       decimal.Decimal
	Frequency   Frequency
	StartedOn   time.Time
	EndedOn     *time.Time
}

// Rejection records an adjustment that could not be parsed
type Rejection struct {
	AdjustmentID int64
	Err          error
}

// ParseAdjustment parses the value and dates of a stored adjustment. Failures
// wrap models.ErrMalformedAdjustment.
func ParseAdjustment(a models.Adjustment) (Entry, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(a.Value))
	if err != nil {
		return Entry{}, fmt.Errorf("%w: adjustment %d value %q", models.ErrMalformedAdjustment, a.ID, a.Value)
	}
	startedOn, err := ParseDay(a.StartedOn)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: adjustment %d started_on: %v", models.ErrMalformedAdjustment, a.ID, err)
	}

	entry := Entry{
		ID:          a.ID,
		Label:       a.Label,
		AccountName: a.AccountName,
		Value:       value,
		Frequency:   ParseFrequency(a.Frequency),
		StartedOn:   startedOn,
	}
	if a.EndedOn != "" {
		endedOn, err := ParseDay(a.EndedOn)
		if err != nil {
			return Entry{}, fmt.Errorf("%w: adjustment %d ended_on: %v", models.ErrMalformedAdjustment, a.ID, err)
		}
		entry.EndedOn = &endedOn
	}
	return entry, nil
}

// ParseAdjustments parses a batch, keeping the input order of the valid ones
func ParseAdjustments(adjs []models.Adjustment) ([]Entry, []Rejection) {
	entries := make([]Entry, 0, len(adjs))
	var rejected []Rejection
	for _, a := range adjs {
		e, err := ParseAdjustment(a)
		if err != nil {
			rejected = append(rejected, Rejection{AdjustmentID: a.ID, Err: err})
			continue
		}
		entries = append(entries, e)
	}
	return entries, rejected
}

// DisplayLabel is the label shown for the entry's ledger row
func (e Entry) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return "#" + strconv.FormatInt(e.ID, 10)
}

// ParseDay parses a calendar day. Anything after the date part (a time or
// zone suffix as some drivers render dates) is ignored.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DayLayout) {
		s = s[:len(DayLayout)]
	}
	return time.Parse(DayLayout, s)
}

// Day truncates t to its calendar date as a UTC midnight
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey formats a calendar day as a map key
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}
