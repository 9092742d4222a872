package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/cashflow"
	"github.com/Dan9191/cashflow-dashboard/internal/export"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ledgerCmd)
	rootCmd.AddCommand(statementCmd)

	ledgerCmd.Flags().String("anchor", "", "Any day of the window's middle month (YYYY-MM-DD, default today)")
	ledgerCmd.Flags().Bool("xml", false, "Print a SpreadsheetML workbook instead of JSON")
	statementCmd.Flags().String("date", "", "Reference day (YYYY-MM-DD, default today)")
}

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Print the daily cashflow ledger",
	Long: `Print the day-by-day cashflow projection over the previous, current and
next month around the anchor date.`,
	Args: cobra.NoArgs,
	RunE: runLedger,
}

var statementCmd = &cobra.Command{
	Use:   "statement",
	Short: "Print the monthly income statement",
	Args:  cobra.NoArgs,
	RunE:  runStatement,
}

func runLedger(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	anchor, err := dayFlag(cmd, "anchor", a.svc.Today())
	if err != nil {
		return fail(err)
	}
	ledger, err := a.svc.DailyLedger(cmd.Context(), anchor)
	if err != nil {
		return fail(err)
	}
	if asXML, _ := cmd.Flags().GetBool("xml"); asXML {
		return export.WriteLedger(cmd.OutOrStdout(), ledger)
	}
	return printJSON(cmd.OutOrStdout(), ledger)
}

func runStatement(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return fail(err)
	}
	defer a.Close()

	date, err := dayFlag(cmd, "date", a.svc.Today())
	if err != nil {
		return fail(err)
	}
	st, err := a.svc.MonthlyStatement(cmd.Context(), date)
	if err != nil {
		return fail(err)
	}
	return printJSON(cmd.OutOrStdout(), st)
}

func dayFlag(cmd *cobra.Command, name string, fallback time.Time) (time.Time, error) {
	v, _ := cmd.Flags().GetString(name)
	if v == "" {
		return fallback, nil
	}
	d, err := cashflow.ParseDay(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD: %w", name, err)
	}
	return d, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
