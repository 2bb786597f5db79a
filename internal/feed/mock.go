package feed

import (
	"context"
	"strings"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
)

// Demo documents served when mock data is enabled. They go through the same
// parser and mappers as live feeds.
const (
	mockTransactionsCSV = `Date,Description,Category,Amount,Type,Proof Link
2023-10-01,Initial Donation from IEEE R10,Grant,"500,000",Credit,
2023-10-02,Public Donation Campaign,Donation,150000,Credit,
2023-10-05,Emergency Dry Rations (500 packs),Food Relief,200000,Debit,https://example.org/receipts/rations.pdf
2023-10-07,Medical Supplies for Base Hospital,Medical,120000,Debit,https://example.org/receipts/medical.pdf
2023-10-10,Transport Logistics for Relief Team,Logistics,25000,Debit,
2023-10-12,Corporate CSR Donation,Donation,300000,Incoming,
2023-10-15,Temporary Shelter Material (Tarps/Ropes),Shelter,180000,Debit,
`
	mockStoriesCSV = `Date,End Date,Title,Description,Location,Latitude,Longitude,Image URL,Gallery,Videos
2023-10-05,2023-10-06,First Batch of Rations Delivered,"Volunteers distributed 500 packs of dry rations to families displaced in the Kalutara district. Each pack contains rice, dhal, sugar and canned fish sufficient for 1 week.",Kalutara,6.5854,79.9607,https://picsum.photos/800/600?random=1,"https://picsum.photos/800/600?random=2,https://picsum.photos/800/600?random=3",
2023-10-08,,Medical Aid Handover,Essential medicines and first aid kits were handed over to the regional hospital to treat flood-related injuries.,Ratnapura,,,,,
`
)

// MockSource serves the built-in demo feeds.
type MockSource struct {
	table  columns.Table
	logger logging.Logger
}

// NewMockSource creates a MockSource.
func NewMockSource(table columns.Table, logger logging.Logger) *MockSource {
	if table == nil {
		table = columns.DefaultTable()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &MockSource{table: table, logger: logger}
}

// Fetch returns the demo rows for the named feed.
func (s *MockSource) Fetch(_ context.Context, f Feed) Result {
	var doc string
	switch f.Name {
	case models.FeedTransactions:
		doc = mockTransactionsCSV
	case models.FeedStories:
		doc = mockStoriesCSV
	default:
		return Result{Feed: f.Name}
	}

	rows, err := Parse(strings.NewReader(doc), f.Name, s.table, f.Required...)
	if err != nil {
		s.logger.WithError(err).Warn("Mock feed failed to parse", logging.F(logging.FieldFeed, f.Name))
		return Result{Feed: f.Name, Err: err}
	}
	s.logger.Debug("Serving mock feed",
		logging.F(logging.FieldFeed, f.Name),
		logging.F(logging.FieldCount, len(rows)))
	return Result{Feed: f.Name, Rows: rows}
}
