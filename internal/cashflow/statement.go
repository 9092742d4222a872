package cashflow

import (
	"sort"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// DaysPerMonth is the fixed month length behind the average daily net
const DaysPerMonth = 30

// Reconcile normalizes every entry active on today to a monthly average and
// sums them into an income statement.
//
// Entries starting after today or ended before today are left out. The
// frequency is read through the annualization table, independently of the
// day matching rule the daily ledger uses.
func Reconcile(entries []Entry, today time.Time) models.MonthlyStatement {
	today = Day(today)
	months := decimal.NewFromInt(MonthsPerYear)

	income := decimal.Zero
	charges := decimal.Zero
	items := make([]models.StatementItem, 0, len(entries))
	for _, e := range entries {
		if e.StartedOn.After(today) {
			continue
		}
		if e.EndedOn != nil && e.EndedOn.Before(today) {
			continue
		}

		avg := e.Value.Mul(decimal.NewFromInt(e.Frequency.AnnualFactor())).Div(months)
		item := models.StatementItem{
			AdjustmentID:   e.ID,
			Label:          e.Label,
			AccountName:    e.AccountName,
			Frequency:      string(e.Frequency),
			Value:          e.Value,
			MonthlyAverage: avg,
			StartedOn:      DayKey(e.StartedOn),
		}
		if e.EndedOn != nil {
			item.EndedOn = DayKey(*e.EndedOn)
		}
		items = append(items, item)

		if avg.IsNegative() {
			charges = charges.Add(avg.Neg())
		} else {
			income = income.Add(avg)
		}
	}

	sortItems(items)
	net := income.Sub(charges)
	return models.MonthlyStatement{
		Date:           DayKey(today),
		IncomeMonthly:  income,
		ChargesMonthly: charges,
		NetMonthly:     net,
		DailyNetAvg:    net.Div(decimal.NewFromInt(DaysPerMonth)),
		Items:          items,
	}
}

// sortItems puts income first, largest first, then charges, largest charge
// first. Equal averages keep their input order.
func sortItems(items []models.StatementItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].MonthlyAverage, items[j].MonthlyAverage
		aIncome, bIncome := !a.IsNegative(), !b.IsNegative()
		if aIncome != bIncome {
			return aIncome
		}
		if aIncome {
			return a.GreaterThan(b)
		}
		return a.LessThan(b)
	})
}
