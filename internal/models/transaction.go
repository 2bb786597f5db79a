// Package models provides the data structures shared by the feed pipeline, the
// aggregations and the presentation layer.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType is the two-valued ledger classification.
type TransactionType string

const (
	// Credit means funds received.
	Credit TransactionType = "CREDIT"
	// Debit means funds disbursed.
	Debit TransactionType = "DEBIT"
)

// String returns the wire name of the type.
func (t TransactionType) String() string {
	return string(t)
}

// ParseTransactionType parses a filter value ("credit", "DEBIT", ...).
// Unlike the row classification this is strict: unknown values are an error.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Credit):
		return Credit, nil
	case string(Debit):
		return Debit, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction is one normalized ledger row.
type Transaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"` // always >= 0, direction is carried by Type
	Type        TransactionType `json:"type"`
	ProofLink   string          `json:"proofLink,omitempty"` // validated http(s) URL or empty
}

// IsCredit returns true for incoming funds.
func (t Transaction) IsCredit() bool {
	return t.Type == Credit
}

// IsDebit returns true for disbursed funds.
func (t Transaction) IsDebit() bool {
	return t.Type == Debit
}

// HasProof reports whether a usable proof link survived validation.
func (t Transaction) HasProof() bool {
	return t.ProofLink != ""
}
