package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ieee-sl/relief-ledger/internal/feed"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ledgerCSV = "Date,Description,Category,Amount,Type,Receipt\n" +
		"2024-01-01,Grant,Grant,\"1,000\",Credit,\n" +
		"2024-01-02,Rice,Food,100,Debit,https://example.org/1\n" +
		"2024-01-03,Dhal,food,50,Debit,\n" +
		"2024-01-04,Bandages,Medical,30,Debit,\n" +
		",,,TOTAL,,\n"
	storiesCSV = "Title,Description,Date,Lat,Lng,Image URL\n" +
		"Rations Delivered,\"Rice, dhal\",2024-01-05,6.9,79.8,https://youtu.be/dQw4w9WgXcQ\n" +
		"Rations Delivered,Second visit,2024-01-09,,,\n" +
		",No title,2024-01-10,,,\n"
)

func newFeedServer(t *testing.T, storiesStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ledger.csv", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ledgerCSV))
	})
	mux.HandleFunc("/stories.csv", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(storiesStatus)
		if storiesStatus == http.StatusOK {
			_, _ = w.Write([]byte(storiesCSV))
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestService_Load(t *testing.T) {
	srv := newFeedServer(t, http.StatusOK)
	logger := logging.NewMockLogger()
	source := feed.NewHTTPSource(srv.Client(), nil, logger, 0, 0)

	svc := NewService(source, Options{
		TransactionsURL: srv.URL + "/ledger.csv",
		StoriesURL:      srv.URL + "/stories.csv",
	}, logger)

	snap := svc.Load(context.Background())

	require.Len(t, snap.Transactions, 4, "the TOTAL artifact row is dropped")
	assert.True(t, decimal.NewFromInt(1000).Equal(snap.Summary.TotalCollected))
	assert.True(t, decimal.NewFromInt(180).Equal(snap.Summary.TotalSpent))
	assert.True(t, decimal.NewFromInt(820).Equal(snap.Summary.RemainingBalance))

	require.Len(t, snap.Stories, 2)
	assert.Equal(t, "Rice, dhal", snap.Stories[0].Description)
	assert.True(t, snap.Stories[0].HasCoordinates())
	assert.False(t, snap.Degraded())
	assert.False(t, snap.LoadedAt.IsZero())
	assert.True(t, logger.HasEntry("DEBUG", "Stories share a slug, only the first is reachable by slug"))
}

func TestService_Load_FailingFeedDegrades(t *testing.T) {
	srv := newFeedServer(t, http.StatusInternalServerError)
	source := feed.NewHTTPSource(srv.Client(), nil, nil, 0, 0)

	svc := NewService(source, Options{
		TransactionsURL: srv.URL + "/missing.csv",
		StoriesURL:      srv.URL + "/stories.csv",
	}, nil)

	snap := svc.Load(context.Background())

	assert.Empty(t, snap.Transactions)
	assert.Empty(t, snap.Stories)
	assert.True(t, snap.Summary.TotalCollected.IsZero())
	assert.True(t, snap.Summary.TotalSpent.IsZero())
	assert.True(t, snap.Summary.RemainingBalance.IsZero())
	assert.True(t, snap.Degraded())
	assert.Len(t, snap.Diagnostics, 2)
}

func TestService_Load_UnconfiguredFeeds(t *testing.T) {
	svc := NewService(feed.NewHTTPSource(nil, nil, nil, 0, 0), Options{}, nil)
	snap := svc.Load(context.Background())
	assert.Empty(t, snap.Transactions)
	assert.Empty(t, snap.Stories)
	assert.False(t, snap.Degraded())
}

func TestService_Load_MockData(t *testing.T) {
	svc := NewService(feed.NewMockSource(nil, nil), Options{}, nil)
	snap := svc.Load(context.Background())

	require.Len(t, snap.Transactions, 7)
	assert.Equal(t, "950000", snap.Summary.TotalCollected.String())
	assert.Equal(t, "525000", snap.Summary.TotalSpent.String())
	assert.Equal(t, "425000", snap.Summary.RemainingBalance.String())
	assert.Len(t, snap.Stories, 2)
}
