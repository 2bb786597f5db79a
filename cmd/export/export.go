// Package export writes the ledger as a CSV file
package export

import (
	"fmt"
	"os"

	"github.com/ieee-sl/relief-ledger/cmd/root"
	"github.com/ieee-sl/relief-ledger/internal/ledger"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/spf13/cobra"
)

var (
	output string
	search string
	txType string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to a CSV file",
	Long: `Fetch the transaction feed and write it as CSV with the columns
Date, Description, Category, Amount, Type and ProofLink. Use -o - for stdout.`,
	RunE: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", ledger.ExportFileName, "Output CSV file, - for stdout")
	Cmd.Flags().StringVarP(&search, "query", "q", "", "Only rows whose description or category contains this text")
	Cmd.Flags().StringVarP(&txType, "type", "t", "all", "Only rows of this type: all, credit or debit")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	typ, err := ledger.ParseType(txType)
	if err != nil {
		return err
	}
	snap := root.GetContainer().GetService().Load(cmd.Context())
	rows := ledger.Filter(snap.Transactions, ledger.Query{Search: search, Type: typ})

	if output == "-" {
		return ledger.WriteCSV(cmd.OutOrStdout(), rows)
	}
	if err := WriteFile(output, rows); err != nil {
		return err
	}
	root.Log.Info("Ledger exported",
		logging.F(logging.FieldOutputFile, output),
		logging.F(logging.FieldCount, len(rows)))
	return nil
}

// WriteFile writes txs to path as CSV.
func WriteFile(path string, txs []models.Transaction) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, models.PermissionReportFile)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing output file: %w", cerr)
		}
	}()
	if err := ledger.WriteCSV(f, txs); err != nil {
		return fmt.Errorf("error exporting ledger: %w", err)
	}
	return nil
}
