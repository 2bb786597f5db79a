package feederror

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &FetchError{URL: "https://example.com/a.csv", StatusCode: 500}
		assert.Equal(t, "fetch https://example.com/a.csv: unexpected status 500", err.Error())
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("with transport error", func(t *testing.T) {
		err := &FetchError{URL: "https://example.com/a.csv", Err: io.ErrUnexpectedEOF}
		assert.Contains(t, err.Error(), "unexpected EOF")
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	})
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		Source:         "transactions",
		MissingColumns: []string{"date", "amount"},
		ContentSnippet: "<!DOCTYPE html>",
	}
	assert.Contains(t, err.Error(), "transactions")
	assert.Contains(t, err.Error(), "[date amount]")
	assert.Contains(t, err.Error(), "<!DOCTYPE html>")

	wrapped := &InvalidFormatError{Source: "stories", Err: ErrEmptyFeed}
	assert.True(t, errors.Is(wrapped, ErrEmptyFeed))

	var target *InvalidFormatError
	assert.True(t, errors.As(error(wrapped), &target))
	assert.Equal(t, "stories", target.Source)
}

func TestRowError(t *testing.T) {
	err := &RowError{Feed: "transactions", Row: 4, Field: "amount", Value: "n/a", Reason: "not a number"}
	assert.Equal(t, "transactions row 4: amount='n/a': not a number", err.Error())
}
