package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/feederror"
	"github.com/ieee-sl/relief-ledger/internal/models"
)

// Parse reads a CSV document into rows keyed by normalized header.
//
// The reader tolerates quoted fields with embedded commas, pasted HTML
// (e.g. <iframe> tags), ragged rows and trailing blank lines. The header row
// must resolve every required canonical field through table, otherwise the
// document is rejected with an InvalidFormatError; this catches HTML pages
// served in place of the CSV export.
func Parse(r io.Reader, source string, table columns.Table, required ...string) ([]models.RawRow, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &feederror.InvalidFormatError{Source: source, Err: feederror.ErrEmptyFeed}
	}
	if err != nil {
		return nil, &feederror.InvalidFormatError{Source: source, Err: fmt.Errorf("error reading CSV header: %w", err)}
	}

	keys := make([]string, len(header))
	present := make(map[string]bool, len(header))
	for i, h := range header {
		keys[i] = columns.NormalizeHeader(h)
		present[keys[i]] = true
	}

	var missing []string
	for _, field := range required {
		if !table.Has(present, field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, &feederror.InvalidFormatError{Source: source, MissingColumns: missing}
	}

	var rows []models.RawRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &feederror.InvalidFormatError{Source: source, Err: fmt.Errorf("error reading CSV record: %w", err)}
		}

		row := make(models.RawRow, len(keys))
		for i, key := range keys {
			if key == "" {
				continue
			}
			val := ""
			if i < len(record) {
				val = record[i]
			}
			// a duplicated header keeps its first non-empty cell
			if existing, ok := row[key]; ok && existing != "" {
				continue
			}
			row[key] = val
		}
		if row.IsBlank() {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
