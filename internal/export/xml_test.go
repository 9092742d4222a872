package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/cashflow"
	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLedger(t *testing.T) {
	entries, rejected := cashflow.ParseAdjustments([]models.Adjustment{
		{ID: 1, Label: "Salary", Value: "3000", Frequency: "MONTHLY", StartedOn: "2024-01-15"},
		{ID: 2, Label: "Groceries & more", Value: "-350", Frequency: "WEEKLY", StartedOn: "2024-01-01"},
	})
	require.Empty(t, rejected)
	anchor := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	ledger := cashflow.DailyLedger(entries, anchor, cashflow.DefaultStartingBalance)

	var buf bytes.Buffer
	require.NoError(t, WriteLedger(&buf, &ledger))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	sheet := doc.FindElement("//Worksheet")
	require.NotNil(t, sheet)
	assert.Equal(t, "Cashflow 2024-02-01", sheet.SelectAttrValue("ss:Name", ""))

	rows := doc.FindElements("//Table/Row")
	// header + starting, income, 2 adjustments, outflow, net, ending
	require.Len(t, rows, 8)
	assert.Len(t, rows[0].SelectElements("Cell"), len(ledger.Days)+1)

	labels := []string{}
	for _, r := range rows[1:] {
		labels = append(labels, r.FindElement("./Cell/Data").Text())
	}
	assert.Equal(t, []string{
		models.RowStartingBalance, models.RowTotalIncome, "Salary", "Groceries & more",
		models.RowTotalOutflow, models.RowDailyNet, models.RowEndingBalance,
	}, labels)

	first := rows[1].FindElements("./Cell/Data")
	assert.Equal(t, "Number", first[1].SelectAttrValue("ss:Type", ""))
	assert.Equal(t, "10000", first[1].Text())
}
