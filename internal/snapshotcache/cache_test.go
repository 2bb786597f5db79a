package snapshotcache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ieee-sl/relief-ledger/internal/feed"
	"github.com/ieee-sl/relief-ledger/internal/ingest"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLoader struct {
	calls atomic.Int32
	delay time.Duration
}

func (l *countingLoader) Load(_ context.Context) models.Snapshot {
	n := l.calls.Add(1)
	time.Sleep(l.delay)
	return models.Snapshot{
		Transactions: []models.Transaction{{ID: "trans-0", Amount: decimal.NewFromInt(int64(n)), Type: models.Credit}},
		LoadedAt:     time.Now(),
	}
}

func TestCache_ServesFromStore(t *testing.T) {
	loader := &countingLoader{}
	c := New(loader, NewMemoryStore(time.Minute), nil)

	first := c.Snapshot(context.Background())
	second := c.Snapshot(context.Background())

	assert.Equal(t, int32(1), loader.calls.Load())
	assert.Equal(t, first.LoadedAt, second.LoadedAt)
}

func TestCache_Refresh(t *testing.T) {
	loader := &countingLoader{}
	c := New(loader, NewMemoryStore(time.Minute), nil)

	c.Snapshot(context.Background())
	snap := c.Refresh(context.Background())

	assert.Equal(t, int32(2), loader.calls.Load())
	assert.Equal(t, "2", snap.Transactions[0].Amount.String())
	c.Snapshot(context.Background())
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestCache_NilStoreAlwaysLoads(t *testing.T) {
	loader := &countingLoader{}
	c := New(loader, nil, nil)

	c.Snapshot(context.Background())
	c.Snapshot(context.Background())
	assert.Equal(t, int32(2), loader.calls.Load())
}

func TestCache_ConcurrentMissesShareLoad(t *testing.T) {
	loader := &countingLoader{delay: 50 * time.Millisecond}
	c := New(loader, NewMemoryStore(time.Minute), nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Snapshot(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), loader.calls.Load())
}

func TestMemoryStore_Expires(t *testing.T) {
	s := NewMemoryStore(20 * time.Millisecond)
	s.Set(context.Background(), models.Snapshot{Diagnostics: []string{"x"}})

	_, ok := s.Get(context.Background())
	require.True(t, ok)

	time.Sleep(40 * time.Millisecond)
	_, ok = s.Get(context.Background())
	assert.False(t, ok)
}

func TestMemoryStore_Invalidate(t *testing.T) {
	s := NewMemoryStore(time.Minute)
	s.Set(context.Background(), models.Snapshot{})
	s.Invalidate(context.Background())
	_, ok := s.Get(context.Background())
	assert.False(t, ok)
}

func TestRedisStore_UnreachableServerIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	logger := logging.NewMockLogger()
	s := NewRedisStore(client, time.Minute, logger)

	s.Set(context.Background(), models.Snapshot{})
	_, ok := s.Get(context.Background())

	assert.False(t, ok)
	assert.Len(t, logger.GetEntriesByLevel("WARN"), 2)
}

func TestParseRedisURL(t *testing.T) {
	assert.Equal(t, "cache.internal:6380", ParseRedisURL("redis://cache.internal:6380/0").Addr)
	assert.Equal(t, "localhost:6379", ParseRedisURL("localhost:6379").Addr)
}

func TestCache_CallerDeadlineDoesNotEmptyTheStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		_, _ = w.Write([]byte("Date,Description,Category,Amount,Type\n" +
			"2024-01-01,Grant,Grant,500,Credit\n" +
			"2024-01-02,Rice,Food,100,Debit\n"))
	}))
	t.Cleanup(srv.Close)

	source := feed.NewHTTPSource(srv.Client(), nil, nil, 0, 0)
	svc := ingest.NewService(source, ingest.Options{TransactionsURL: srv.URL}, nil)
	c := New(svc, NewMemoryStore(time.Minute), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	first := c.Snapshot(ctx)
	assert.False(t, first.Degraded(), "the shared load outlives the caller deadline")

	next := c.Snapshot(context.Background())
	assert.False(t, next.Degraded())
	assert.Len(t, next.Transactions, 2)
	assert.True(t, decimal.NewFromInt(400).Equal(next.Summary.RemainingBalance))
}

func TestSnapshotCodec_RoundTrip(t *testing.T) {
	lat, lng := 6.9271, 79.8612
	snap := models.Snapshot{
		Transactions: []models.Transaction{
			{ID: "trans-0", Date: "2024-01-01", Category: "Grant", Amount: decimal.RequireFromString("1000.5"), Type: models.Credit},
			{ID: "trans-1", Category: "Food", Amount: decimal.RequireFromString("0.1"), Type: models.Debit, ProofLink: "https://example.org/slip"},
		},
		Stories: []models.ImpactStory{
			{
				ID: "story-0", Slug: "rations", Title: "Rations", Latitude: &lat, Longitude: &lng,
				Image: &models.Media{
					Kind: models.MediaVideo, Platform: models.PlatformYouTube,
					URL: "https://youtu.be/dQw4w9WgXcQ", VideoID: "dQw4w9WgXcQ",
					ThumbnailURL: "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
				},
				Gallery: []string{"https://example.org/1.jpg"},
			},
			{ID: "story-1", Slug: "medical", Title: "Medical"},
		},
		Summary: models.FinancialSummary{
			TotalCollected:   decimal.RequireFromString("1000.5"),
			TotalSpent:       decimal.RequireFromString("0.1"),
			RemainingBalance: decimal.RequireFromString("1000.4"),
		},
		LoadedAt:    time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC),
		Diagnostics: []string{"stories: unexpected status 404"},
	}

	data, err := encodeSnapshot(snap)
	require.NoError(t, err)
	got, err := decodeSnapshot(data)
	require.NoError(t, err)

	require.Len(t, got.Transactions, 2)
	for i, tx := range got.Transactions {
		assert.True(t, snap.Transactions[i].Amount.Equal(tx.Amount))
		tx.Amount = snap.Transactions[i].Amount
		assert.Equal(t, snap.Transactions[i], tx)
	}
	assert.Equal(t, snap.Stories, got.Stories)
	assert.True(t, snap.Summary.RemainingBalance.Equal(got.Summary.RemainingBalance))
	assert.True(t, snap.LoadedAt.Equal(got.LoadedAt))
	assert.Equal(t, snap.Diagnostics, got.Diagnostics)
	assert.True(t, got.Degraded())
}

func TestDecodeSnapshot_Invalid(t *testing.T) {
	_, err := decodeSnapshot([]byte(`{"transactions": [{"amount": "abc"}]}`))
	assert.ErrorContains(t, err, "error decoding snapshot")
}
