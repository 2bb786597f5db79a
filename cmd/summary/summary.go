// Package summary prints the campaign totals and the expense breakdown
package summary

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ieee-sl/relief-ledger/cmd/root"
	"github.com/ieee-sl/relief-ledger/internal/ledger"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/spf13/cobra"
)

var asJSON bool

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Print total collected, total spent and the expense breakdown",
	Long: `Fetch both feeds once and print the financial summary followed by the
debit breakdown by category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap := root.GetContainer().GetService().Load(cmd.Context())
		return Write(cmd.OutOrStdout(), snap, root.GetConfig().Ledger.Currency, asJSON)
	},
}

func init() {
	Cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
}

type report struct {
	Summary     models.FinancialSummary `json:"summary"`
	Breakdown   []models.CategoryShare  `json:"breakdown"`
	Diagnostics []string                `json:"diagnostics,omitempty"`
}

// Write renders the summary of snap to w.
func Write(w io.Writer, snap models.Snapshot, currency string, asJSON bool) error {
	shares := ledger.CategoryBreakdown(snap.Transactions)

	if asJSON {
		if shares == nil {
			shares = []models.CategoryShare{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report{Summary: snap.Summary, Breakdown: shares, Diagnostics: snap.Diagnostics})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Total collected\t%s\t\n", models.NewMoney(snap.Summary.TotalCollected, currency))
	fmt.Fprintf(tw, "Total spent\t%s\t\n", models.NewMoney(snap.Summary.TotalSpent, currency))
	fmt.Fprintf(tw, "Remaining balance\t%s\t\n", models.NewMoney(snap.Summary.RemainingBalance, currency))
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(shares) > 0 {
		fmt.Fprintln(w)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tAMOUNT\tSHARE")
		for _, s := range shares {
			fmt.Fprintf(tw, "%s\t%s\t%.1f%%\n", s.Name, models.NewMoney(s.Amount, currency), s.Percentage)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, d := range snap.Diagnostics {
		fmt.Fprintf(w, "warning: %s\n", d)
	}
	return nil
}
