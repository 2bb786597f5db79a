// Package rowmapper converts raw feed rows into typed ledger entries and
// impact stories. Rows that do not meet the minimal shape are dropped and
// reported at debug level only.
package rowmapper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/feederror"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/media"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/ieee-sl/relief-ledger/internal/textutils"
	"github.com/shopspring/decimal"
)

var amountNoise = regexp.MustCompile(`[^0-9.\-]`)

// creditTokens are the type cells that mark received funds.
var creditTokens = map[string]bool{
	"credit":   true,
	"incoming": true,
}

// MapTransactions converts rows into transactions, preserving row order.
// A row whose amount does not parse is skipped.
func MapTransactions(rows []models.RawRow, table columns.Table, logger logging.Logger) []models.Transaction {
	if table == nil {
		table = columns.DefaultTable()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	txs := make([]models.Transaction, 0, len(rows))
	dropped := 0
	for i, row := range rows {
		tx, err := mapTransaction(i, row, table)
		if err != nil {
			dropped++
			logger.Debug("Skipping ledger row", logging.F(logging.FieldReason, err.Error()))
			continue
		}
		txs = append(txs, tx)
	}

	logger.Info("Mapped ledger rows",
		logging.F(logging.FieldFeed, models.FeedTransactions),
		logging.F(logging.FieldCount, len(txs)),
		logging.F(logging.FieldDropped, dropped))
	return txs
}

func mapTransaction(i int, row models.RawRow, table columns.Table) (models.Transaction, error) {
	rawAmount := table.Lookup(row, columns.Amount)
	amount, err := ParseAmount(rawAmount)
	if err != nil {
		return models.Transaction{}, &feederror.RowError{
			Feed:   models.FeedTransactions,
			Row:    i,
			Field:  columns.Amount,
			Value:  rawAmount,
			Reason: err.Error(),
		}
	}

	tx := models.Transaction{
		ID:          table.Lookup(row, columns.ID),
		Date:        textutils.CleanCell(table.Lookup(row, columns.Date)),
		Description: textutils.CleanCell(table.Lookup(row, columns.Description)),
		Category:    textutils.CleanCell(table.Lookup(row, columns.Category)),
		Amount:      amount,
		Type:        MapType(table.Lookup(row, columns.Type)),
	}
	if tx.ID == "" {
		tx.ID = models.TransactionIDPrefix + strconv.Itoa(i)
	}
	if link, ok := media.ValidateURL(table.Lookup(row, columns.ProofLink), false); ok {
		tx.ProofLink = link
	}
	return tx, nil
}

// ParseAmount strips everything but digits, '.' and '-' from s and parses the
// rest as a decimal. The result is the absolute value: direction is carried
// by the transaction type, not the sign.
//
//	"LKR 1,250,000.50" -> 1250000.50
//	"(45,000)"         -> 45000
//	"Rs. 1,000"        -> 0.1 (the abbreviation's dot survives)
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountNoise.ReplaceAllString(s, "")
	if cleaned == "" {
		return decimal.Zero, feederror.ErrEmptyAmount
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Abs(), nil
}

// MapType classifies a type cell. Anything not recognized as credit is DEBIT.
func MapType(s string) models.TransactionType {
	if creditTokens[strings.ToLower(strings.TrimSpace(s))] {
		return models.Credit
	}
	return models.Debit
}
