package feed

import (
	"errors"
	"strings"
	"testing"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/feederror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ToleratesSpreadsheetQuirks(t *testing.T) {
	doc := "\ufeff DATE ,Description,Proof_Link,Video\n" +
		"2024-01-02,\"Rice, dhal and sugar\",https://example.com/a,\"<iframe src=\"\"https://www.youtube.com/embed/AbCdEfGhIjK\"\" allowfullscreen></iframe>\"\n" +
		"2024-01-03,Short row\n" +
		",,,\n" +
		"\n"

	rows, err := Parse(strings.NewReader(doc), "test", columns.DefaultTable(), columns.Date)
	require.NoError(t, err)
	require.Len(t, rows, 2, "blank and all-empty rows are skipped")

	assert.Equal(t, "2024-01-02", rows[0]["date"])
	assert.Equal(t, "Rice, dhal and sugar", rows[0]["description"])
	assert.Equal(t, "https://example.com/a", rows[0]["prooflink"])
	assert.Equal(t, `<iframe src="https://www.youtube.com/embed/AbCdEfGhIjK" allowfullscreen></iframe>`, rows[0]["video"])

	assert.Equal(t, "Short row", rows[1]["description"])
	assert.Equal(t, "", rows[1]["prooflink"], "short rows are padded")
}

func TestParse_AliasHeadersSatisfyRequired(t *testing.T) {
	doc := "Start Date,Headline\n2024-02-01,Water tanks installed\n"
	rows, err := Parse(strings.NewReader(doc), "stories", columns.DefaultTable(), columns.Date, columns.Title)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Water tanks installed", rows[0]["headline"])
}

func TestParse_MissingRequiredHeaders(t *testing.T) {
	doc := "<!DOCTYPE html><html><head><title>Sign in</title></head></html>\n"
	rows, err := Parse(strings.NewReader(doc), "transactions", columns.DefaultTable(), columns.Date, columns.Amount)
	assert.Nil(t, rows)

	var formatErr *feederror.InvalidFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, []string{columns.Date, columns.Amount}, formatErr.MissingColumns)
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := Parse(strings.NewReader(""), "stories", columns.DefaultTable())
	assert.True(t, errors.Is(err, feederror.ErrEmptyFeed))
}

func TestParse_HeaderOnly(t *testing.T) {
	rows, err := Parse(strings.NewReader("Date,Amount\n"), "transactions", columns.DefaultTable(), columns.Date)
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParse_DuplicateHeaderKeepsFirstNonEmpty(t *testing.T) {
	doc := "Date,Link,link\n2024-01-01,,https://example.com/b\n2024-01-02,https://example.com/a,https://example.com/c\n"
	rows, err := Parse(strings.NewReader(doc), "transactions", columns.DefaultTable())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "https://example.com/b", rows[0]["link"])
	assert.Equal(t, "https://example.com/a", rows[1]["link"])
}
