package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSummary is a reduction over a transaction set.
type FinancialSummary struct {
	TotalCollected   decimal.Decimal `json:"totalCollected"`
	TotalSpent       decimal.Decimal `json:"totalSpent"`
	RemainingBalance decimal.Decimal `json:"remainingBalance"`
}

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"` // of total debits, one decimal place
}

// Snapshot is everything produced by one load of both feeds.
type Snapshot struct {
	Transactions []Transaction    `json:"transactions"`
	Stories      []ImpactStory    `json:"stories"`
	Summary      FinancialSummary `json:"summary"`
	LoadedAt     time.Time        `json:"loadedAt"`
	Diagnostics  []string         `json:"diagnostics,omitempty"`
}

// Degraded reports whether at least one feed fell back to an empty result.
func (s Snapshot) Degraded() bool {
	return len(s.Diagnostics) > 0
}
