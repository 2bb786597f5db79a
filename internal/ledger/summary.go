// Package ledger derives the figures shown on the transparency pages from a
// loaded transaction and story set. Every function here is pure.
package ledger

import (
	"sort"

	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/ieee-sl/relief-ledger/internal/textutils"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize totals credits and debits in a single pass.
func Summarize(txs []models.Transaction) models.FinancialSummary {
	collected := decimal.Zero
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.IsCredit() {
			collected = collected.Add(tx.Amount)
		} else {
			spent = spent.Add(tx.Amount)
		}
	}
	return models.FinancialSummary{
		TotalCollected:   collected,
		TotalSpent:       spent,
		RemainingBalance: collected.Sub(spent),
	}
}

// NormalizeCategory trims a category and upper-cases its first letter. An
// empty category becomes models.DefaultCategory.
func NormalizeCategory(category string) string {
	name := textutils.CapitalizeFirst(category)
	if name == "" {
		return models.DefaultCategory
	}
	return name
}

// CategoryBreakdown groups debits by normalized category, ordered by amount
// descending. Groups with equal amounts keep their first-encounter order.
func CategoryBreakdown(txs []models.Transaction) []models.CategoryShare {
	var shares []models.CategoryShare
	index := make(map[string]int)
	total := decimal.Zero

	for _, tx := range txs {
		if !tx.IsDebit() {
			continue
		}
		name := NormalizeCategory(tx.Category)
		i, ok := index[name]
		if !ok {
			i = len(shares)
			index[name] = i
			shares = append(shares, models.CategoryShare{Name: name, Amount: decimal.Zero})
		}
		shares[i].Amount = shares[i].Amount.Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	for i := range shares {
		shares[i].Percentage = Percentage(shares[i].Amount, total)
	}

	sort.SliceStable(shares, func(a, b int) bool {
		return shares[a].Amount.GreaterThan(shares[b].Amount)
	})
	return shares
}

// Percentage returns part as a percentage of total, rounded to one decimal
// place. A zero total yields 0.
func Percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	f, _ := part.Mul(hundred).Div(total).Round(1).Float64()
	return f
}
