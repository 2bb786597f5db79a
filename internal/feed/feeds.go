package feed

import (
	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/models"
)

// Transactions describes the ledger feed at url.
func Transactions(url string) Feed {
	return Feed{
		Name:     models.FeedTransactions,
		URL:      url,
		Required: []string{columns.Date, columns.Amount},
	}
}

// Stories describes the impact-story feed at url.
func Stories(url string) Feed {
	return Feed{
		Name:     models.FeedStories,
		URL:      url,
		Required: []string{columns.Title},
	}
}
