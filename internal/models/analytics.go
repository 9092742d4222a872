package models

import "github.com/shopspring/decimal"

// Row labels of the daily ledger table
const (
	RowStartingBalance = "Starting Balance"
	RowTotalIncome     = "Total Income"
	RowTotalOutflow    = "Total Outflow"
	RowDailyNet        = "Daily Net"
	RowEndingBalance   = "Ending Balance"
)

// DailyLedger is the day-by-day cashflow projection over a three month window.
// Day keys use the YYYY-MM-DD format. Income, outflow and per-adjustment series
// are sparse: a missing key means zero.
type DailyLedger struct {
	Anchor          string                     `json:"anchor"`
	Days            []string                   `json:"days"`
	StartingBalance map[string]decimal.Decimal `json:"starting_balance"`
	Income          map[string]decimal.Decimal `json:"income"`
	Adjustments     []AdjustmentSeries         `json:"adjustments"`
	Outflow         map[string]decimal.Decimal `json:"outflow"`
	Net             map[string]decimal.Decimal `json:"net"`
	EndingBalance   map[string]decimal.Decimal `json:"ending_balance"`
}

// AdjustmentSeries holds the contributions of one adjustment by day
type AdjustmentSeries struct {
	AdjustmentID int64                      `json:"adjustment_id"`
	Label        string                     `json:"label"`
	Values       map[string]decimal.Decimal `json:"values"`
}

// LedgerRow is one metric of the ledger laid out over the window's days
type LedgerRow struct {
	Label  string            `json:"label"`
	Values []decimal.Decimal `json:"values"`
}

// Rows lays the ledger out as a table: one row per metric, one column per day,
// in display order.
func (l *DailyLedger) Rows() []LedgerRow {
	rows := make([]LedgerRow, 0, len(l.Adjustments)+5)
	rows = append(rows, l.row(RowStartingBalance, l.StartingBalance))
	rows = append(rows, l.row(RowTotalIncome, l.Income))
	for _, s := range l.Adjustments {
		rows = append(rows, l.row(s.Label, s.Values))
	}
	rows = append(rows, l.row(RowTotalOutflow, l.Outflow))
	rows = append(rows, l.row(RowDailyNet, l.Net))
	rows = append(rows, l.row(RowEndingBalance, l.EndingBalance))
	return rows
}

func (l *DailyLedger) row(label string, byDay map[string]decimal.Decimal) LedgerRow {
	values := make([]decimal.Decimal, len(l.Days))
	for i, day := range l.Days {
		values[i] = byDay[day]
	}
	return LedgerRow{Label: label, Values: values}
}

// MonthlyStatement is the normalized monthly-average income statement
type MonthlyStatement struct {
	Date           string          `json:"date"` // Format: YYYY-MM-DD
	IncomeMonthly  decimal.Decimal `json:"income_monthly"`
	ChargesMonthly decimal.Decimal `json:"charges_monthly"` // Always >= 0
	NetMonthly     decimal.Decimal `json:"net_monthly"`
	DailyNetAvg    decimal.Decimal `json:"daily_net_avg"` // NetMonthly / 30
	Items          []StatementItem `json:"items"`
}

// StatementItem is one adjustment's contribution to the monthly statement
type StatementItem struct {
	AdjustmentID   int64           `json:"adjustment_id"`
	Label          string          `json:"label"`
	AccountName    string          `json:"account_name,omitempty"`
	Frequency      string          `json:"frequency"`
	Value          decimal.Decimal `json:"value"`
	MonthlyAverage decimal.Decimal `json:"monthly_average"`
	StartedOn      string          `json:"started_on"`
	EndedOn        string          `json:"ended_on,omitempty"`
}
