package media

import (
	"context"
	"net/http"
	"time"

	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	// probeConcurrency caps simultaneous HEAD requests per ResolveStories call.
	probeConcurrency = 8
	// probeBudget bounds a whole ResolveStories call.
	probeBudget = 10 * time.Second
)

// ThumbnailProber checks that a video's preferred thumbnail exists and swaps
// in the fallback when the host answers 404. YouTube only publishes the
// high-resolution thumbnail for HD uploads.
type ThumbnailProber struct {
	client *http.Client
	logger logging.Logger
	budget time.Duration
}

// NewThumbnailProber creates a prober. A nil client gets a short-timeout default.
func NewThumbnailProber(client *http.Client, logger logging.Logger) *ThumbnailProber {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &ThumbnailProber{client: client, logger: logger, budget: probeBudget}
}

// Resolve updates m in place. Only a definitive 404 triggers the swap; any
// other outcome, network errors included, leaves m unchanged.
func (p *ThumbnailProber) Resolve(ctx context.Context, m *models.Media) {
	if m == nil || m.ThumbnailURL == "" || m.FallbackThumbnailURL == "" {
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, m.ThumbnailURL, nil)
	if err != nil {
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.WithError(err).Debug("Thumbnail probe failed",
			logging.F(logging.FieldURL, m.ThumbnailURL))
		return
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		p.logger.Debug("Preferred thumbnail missing, using fallback",
			logging.F(logging.FieldURL, m.ThumbnailURL))
		m.ThumbnailURL = m.FallbackThumbnailURL
		m.FallbackThumbnailURL = ""
	}
}

// ResolveStories probes the primary media of every story concurrently.
// Probes still pending when the budget runs out leave their media unchanged.
func (p *ThumbnailProber) ResolveStories(ctx context.Context, stories []models.ImpactStory) {
	ctx, cancel := context.WithTimeout(ctx, p.budget)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)
	for i := range stories {
		m := stories[i].Image
		if m == nil || m.FallbackThumbnailURL == "" {
			continue
		}
		g.Go(func() error {
			if ctx.Err() == nil {
				p.Resolve(ctx, m)
			}
			return nil
		})
	}
	_ = g.Wait()
}
