package cashflow

import (
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultStartingBalance seeds the running balance on the window's first day
var DefaultStartingBalance = decimal.NewFromInt(10000)

// DailyLedger builds the three month window around anchor and aggregates the
// entries over it.
func DailyLedger(entries []Entry, anchor time.Time, startingBalance decimal.Decimal) models.DailyLedger {
	ledger := Aggregate(entries, BuildWindow(anchor), startingBalance)
	ledger.Anchor = DayKey(MonthStart(anchor))
	return ledger
}

// Aggregate folds the entries over days, which must be ascending and gap-free.
func Aggregate(entries []Entry, days []time.Time, startingBalance decimal.Decimal) models.DailyLedger {
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = DayKey(d)
	}

	series := make([]models.AdjustmentSeries, len(entries))
	for i, e := range entries {
		series[i] = models.AdjustmentSeries{
			AdjustmentID: e.ID,
			Label:        e.DisplayLabel(),
			Values:       expand(e, days),
		}
	}

	income := sumWhere(entries, series, decimal.Decimal.IsPositive)
	outflow := sumWhere(entries, series, decimal.Decimal.IsNegative)
	net := dailyNet(keys, income, outflow)
	starting := runningBalance(keys, net, startingBalance)

	return models.DailyLedger{
		Days:            keys,
		StartingBalance: starting,
		Income:          income,
		Adjustments:     series,
		Outflow:         outflow,
		Net:             net,
		EndingBalance:   endingBalance(keys, starting, net),
	}
}

// expand maps each day the entry occurs on to its contribution
func expand(e Entry, days []time.Time) map[string]decimal.Decimal {
	values := make(map[string]decimal.Decimal)
	for _, d := range days {
		if v, ok := OccursOn(e, d); ok {
			values[DayKey(d)] = v
		}
	}
	return values
}

// sumWhere adds up the series of the entries whose value satisfies keep.
// Classification is by the entry's value sign, not by a day's total.
func sumWhere(entries []Entry, series []models.AdjustmentSeries, keep func(decimal.Decimal) bool) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for i, e := range entries {
		if !keep(e.Value) {
			continue
		}
		for k, v := range series[i].Values {
			totals[k] = totals[k].Add(v)
		}
	}
	return totals
}

func dailyNet(keys []string, income, outflow map[string]decimal.Decimal) map[string]decimal.Decimal {
	net := make(map[string]decimal.Decimal, len(keys))
	for _, k := range keys {
		net[k] = income[k].Add(outflow[k])
	}
	return net
}

// runningBalance is an ordered left fold over keys: each day starts with the
// previous day's starting balance plus the previous day's net.
func runningBalance(keys []string, net map[string]decimal.Decimal, seed decimal.Decimal) map[string]decimal.Decimal {
	starting := make(map[string]decimal.Decimal, len(keys))
	running := seed
	for _, k := range keys {
		starting[k] = running
		running = running.Add(net[k])
	}
	return starting
}

func endingBalance(keys []string, starting, net map[string]decimal.Decimal) map[string]decimal.Decimal {
	ending := make(map[string]decimal.Decimal, len(keys))
	for _, k := range keys {
		ending[k] = starting[k].Add(net[k])
	}
	return ending
}
