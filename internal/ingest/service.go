// Package ingest performs one load of the site's data: both feeds are fetched
// together, mapped, and reduced into a models.Snapshot.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/feed"
	"github.com/ieee-sl/relief-ledger/internal/ledger"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/media"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/ieee-sl/relief-ledger/internal/rowmapper"
	"golang.org/x/sync/errgroup"
)

// Options configures a Service.
type Options struct {
	TransactionsURL string
	StoriesURL      string
	Table           columns.Table
	// Prober, when set, checks YouTube thumbnails after mapping.
	Prober *media.ThumbnailProber
}

// Service loads snapshots from a feed source.
type Service struct {
	source       feed.Source
	transactions feed.Feed
	stories      feed.Feed
	table        columns.Table
	prober       *media.ThumbnailProber
	logger       logging.Logger
	now          func() time.Time
}

// NewService creates a Service reading from source.
func NewService(source feed.Source, opts Options, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	table := opts.Table
	if table == nil {
		table = columns.DefaultTable()
	}
	return &Service{
		source:       source,
		transactions: feed.Transactions(opts.TransactionsURL),
		stories:      feed.Stories(opts.StoriesURL),
		table:        table,
		prober:       opts.Prober,
		logger:       logger.WithField(logging.FieldComponent, "ingest"),
		now:          time.Now,
	}
}

// Load fetches both feeds concurrently and builds a snapshot once both have
// completed. A failing feed contributes no rows and one diagnostic; Load
// itself never fails.
func (s *Service) Load(ctx context.Context) models.Snapshot {
	start := s.now()

	var txResult, storyResult feed.Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		txResult = s.source.Fetch(gctx, s.transactions)
		return nil
	})
	g.Go(func() error {
		storyResult = s.source.Fetch(gctx, s.stories)
		return nil
	})
	_ = g.Wait()

	snap := models.Snapshot{
		Transactions: rowmapper.MapTransactions(txResult.Rows, s.table, s.logger),
		Stories:      rowmapper.MapStories(storyResult.Rows, s.table, s.logger),
		LoadedAt:     start.UTC(),
	}
	snap.Summary = ledger.Summarize(snap.Transactions)

	for _, res := range []feed.Result{txResult, storyResult} {
		if res.Err != nil {
			snap.Diagnostics = append(snap.Diagnostics, fmt.Sprintf("%s: %v", res.Feed, res.Err))
		}
	}

	if dups := ledger.DuplicateSlugs(snap.Stories); len(dups) > 0 {
		s.logger.Debug("Stories share a slug, only the first is reachable by slug",
			logging.F(logging.FieldSlug, dups))
	}

	if s.prober != nil {
		s.prober.ResolveStories(ctx, snap.Stories)
	}

	s.logger.Info("Snapshot loaded",
		logging.F("transactions", len(snap.Transactions)),
		logging.F("stories", len(snap.Stories)),
		logging.F("degraded", snap.Degraded()),
		logging.F(logging.FieldDuration, s.now().Sub(start).Milliseconds()))
	return snap
}
