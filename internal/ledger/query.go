package ledger

import (
	"strings"

	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/ieee-sl/relief-ledger/internal/textutils"
)

// Page size bounds for Paginate.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Query narrows the ledger table. Zero values match everything.
type Query struct {
	Search string                 // case-insensitive substring of description or category
	Type   models.TransactionType // empty for both directions
}

// ParseType converts a filter value ("all", "credit", "DEBIT") into a type.
// "all" and the empty string map to the zero value.
func ParseType(s string) (models.TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return "", nil
	}
	return models.ParseTransactionType(s)
}

// Filter returns the transactions matching q, in their original order.
func Filter(txs []models.Transaction, q Query) []models.Transaction {
	search := strings.TrimSpace(q.Search)
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if search != "" &&
			!textutils.ContainsFold(tx.Description, search) &&
			!textutils.ContainsFold(tx.Category, search) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Page is one window of a transaction list.
type Page struct {
	Items      []models.Transaction `json:"items"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"totalPages"`
}

// Paginate returns the 1-based page of txs. page < 1 is treated as 1; size is
// clamped to [1, MaxPageSize] with 0 or less selecting DefaultPageSize. A
// page past the end has no items.
func Paginate(txs []models.Transaction, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(txs)
	p := Page{
		Items:      []models.Transaction{},
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}

	start := (page - 1) * size
	if start >= total {
		return p
	}
	end := start + size
	if end > total {
		end = total
	}
	p.Items = txs[start:end]
	return p
}
