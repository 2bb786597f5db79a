// Package columns prints the effective header alias table
package columns

import (
	"github.com/ieee-sl/relief-ledger/cmd/root"
	"github.com/ieee-sl/relief-ledger/internal/store"
	"github.com/spf13/cobra"
)

// Cmd represents the columns command
var Cmd = &cobra.Command{
	Use:   "columns",
	Short: "Print the accepted spreadsheet header spellings",
	Long: `Print the alias table used to match spreadsheet headers, including any
overrides from columns.aliases_file. The output is a valid alias file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return store.WriteTable(cmd.OutOrStdout(), root.GetContainer().GetTable())
	},
}
