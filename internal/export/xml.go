// Package export renders a daily ledger as a SpreadsheetML workbook that
// spreadsheet applications open directly.
package export

import (
	"fmt"
	"io"

	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/beevik/etree"
)

const spreadsheetNS = "urn:schemas-microsoft-com:office:spreadsheet"

// LedgerDocument builds the workbook: a header row of days followed by one row
// per ledger metric.
func LedgerDocument(l *models.DailyLedger) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	workbook := doc.CreateElement("Workbook")
	workbook.CreateAttr("xmlns", spreadsheetNS)
	workbook.CreateAttr("xmlns:ss", spreadsheetNS)

	sheet := workbook.CreateElement("Worksheet")
	sheet.CreateAttr("ss:Name", fmt.Sprintf("Cashflow %s", l.Anchor))
	table := sheet.CreateElement("Table")

	header := table.CreateElement("Row")
	addCell(header, "String", "")
	for _, day := range l.Days {
		addCell(header, "String", day)
	}

	for _, row := range l.Rows() {
		r := table.CreateElement("Row")
		addCell(r, "String", row.Label)
		for _, v := range row.Values {
			addCell(r, "Number", v.String())
		}
	}
	return doc
}

// WriteLedger writes the indented workbook to w
func WriteLedger(w io.Writer, l *models.DailyLedger) error {
	doc := LedgerDocument(l)
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write ledger XML: %w", err)
	}
	return nil
}

func addCell(row *etree.Element, kind, value string) {
	cell := row.CreateElement("Cell")
	data := cell.CreateElement("Data")
	data.CreateAttr("ss:Type", kind)
	data.SetText(value)
}
