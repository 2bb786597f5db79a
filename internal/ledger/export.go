package ledger

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/ieee-sl/relief-ledger/internal/textutils"
)

// ExportFileName is the suggested name for a downloaded ledger.
const ExportFileName = "relief_ledger.csv"

// exportRow is the column layout of the downloadable ledger.
type exportRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Category    string `csv:"Category"`
	Amount      string `csv:"Amount"`
	Type        string `csv:"Type"`
	ProofLink   string `csv:"ProofLink"`
}

// WriteCSV writes txs as a CSV document. Amounts keep two decimal places and
// every text cell is guarded against spreadsheet formula injection.
func WriteCSV(w io.Writer, txs []models.Transaction) error {
	rows := make([]exportRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, exportRow{
			Date:        textutils.SanitizeForFormulaInjection(tx.Date),
			Description: textutils.SanitizeForFormulaInjection(tx.Description),
			Category:    textutils.SanitizeForFormulaInjection(tx.Category),
			Amount:      tx.Amount.StringFixed(2),
			Type:        tx.Type.String(),
			ProofLink:   textutils.SanitizeForFormulaInjection(tx.ProofLink),
		})
	}

	csvWriter := csv.NewWriter(w)
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	csvWriter.Flush()
	return csvWriter.Error()
}
