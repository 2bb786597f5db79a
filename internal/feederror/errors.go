// Package feederror defines the diagnostics produced while ingesting a feed.
// None of these ever escape the ingestion boundary as failures: they are logged
// and carried on results so callers can report a degraded feed.
package feederror

import (
	"errors"
	"fmt"
)

// ErrEmptyFeed marks a feed document without even a header row.
var ErrEmptyFeed = errors.New("feed document is empty")

// ErrEmptyAmount marks an amount cell with no numeric content.
var ErrEmptyAmount = errors.New("amount is empty")

// FetchError represents a failed network read of a feed.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never got a response
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents a document that is not the tabular text we
// expect, typically an HTML page served in place of the CSV export.
type InvalidFormatError struct {
	Source         string
	MissingColumns []string
	ContentSnippet string // optional, first bytes of the body for debugging
	Err            error
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("invalid feed format in %s", e.Source)
	if len(e.MissingColumns) > 0 {
		msg += fmt.Sprintf(": missing columns %v", e.MissingColumns)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if e.ContentSnippet != "" {
		msg += fmt.Sprintf(" (content snippet: '%s')", e.ContentSnippet)
	}
	return msg
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// RowError describes why a single row was left out of the mapped output.
type RowError struct {
	Feed   string
	Row    int
	Field  string
	Value  string
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s row %d: %s='%s': %s", e.Feed, e.Row, e.Field, e.Value, e.Reason)
}
