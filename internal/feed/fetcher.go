// Package feed retrieves the published spreadsheet CSV feeds and turns them
// into raw rows. Fetching is best-effort: every failure degrades to an empty
// Result carrying a logged diagnostic, never to an error the caller must handle.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/feederror"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
)

// DefaultMaxBytes caps the size of a feed body.
const DefaultMaxBytes int64 = 10 << 20

const snippetLen = 64

// Feed describes one remote CSV document.
type Feed struct {
	Name     string   // models.FeedTransactions or models.FeedStories
	URL      string   // empty means "not configured"
	Required []string // canonical fields the header must resolve
}

// Result is the outcome of fetching one feed. Rows is empty whenever Err is
// set; Err is informational and has already been logged.
type Result struct {
	Feed string
	Rows []models.RawRow
	Err  error
}

// OK reports whether the feed was read without a diagnostic.
func (r Result) OK() bool {
	return r.Err == nil
}

// Source yields raw rows for a feed.
type Source interface {
	Fetch(ctx context.Context, f Feed) Result
}

// HTTPSource fetches feeds over HTTP.
type HTTPSource struct {
	client   *http.Client
	table    columns.Table
	logger   logging.Logger
	maxBytes int64
}

// NewHTTPSource creates an HTTP feed source. A zero timeout keeps the client's
// own setting; maxBytes <= 0 selects DefaultMaxBytes.
func NewHTTPSource(client *http.Client, table columns.Table, logger logging.Logger, timeout time.Duration, maxBytes int64) *HTTPSource {
	if client == nil {
		client = &http.Client{}
	}
	if timeout > 0 {
		c := *client
		c.Timeout = timeout
		client = &c
	}
	if table == nil {
		table = columns.DefaultTable()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPSource{client: client, table: table, logger: logger, maxBytes: maxBytes}
}

// Fetch performs one GET and parses the body. It never fails: see Result.
func (s *HTTPSource) Fetch(ctx context.Context, f Feed) Result {
	log := s.logger.WithFields(
		logging.F(logging.FieldFeed, f.Name),
		logging.F(logging.FieldURL, f.URL))

	if f.URL == "" {
		log.Debug("Feed URL not configured, skipping")
		return Result{Feed: f.Name}
	}

	start := time.Now()
	body, err := s.get(ctx, f.URL)
	if err != nil {
		log.WithError(err).Warn("Failed to fetch feed, continuing with no rows")
		return Result{Feed: f.Name, Err: err}
	}

	rows, err := Parse(bytes.NewReader(body), f.Name, s.table, f.Required...)
	if err != nil {
		var formatErr *feederror.InvalidFormatError
		if errors.As(err, &formatErr) {
			formatErr.ContentSnippet = snippet(body)
		}
		log.WithError(err).Warn("Feed is not a usable CSV document, continuing with no rows")
		return Result{Feed: f.Name, Err: err}
	}

	log.Info("Feed fetched",
		logging.F(logging.FieldCount, len(rows)),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return Result{Feed: f.Name, Rows: rows}
}

func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &feederror.FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &feederror.FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &feederror.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, &feederror.FetchError{URL: url, Err: fmt.Errorf("error reading body: %w", err)}
	}
	if int64(len(body)) > s.maxBytes {
		return nil, &feederror.FetchError{URL: url, Err: fmt.Errorf("body exceeds %d bytes", s.maxBytes)}
	}
	return body, nil
}

func snippet(body []byte) string {
	if len(body) > snippetLen {
		body = body[:snippetLen]
	}
	return string(bytes.TrimSpace(body))
}
