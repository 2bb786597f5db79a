// Package columns maps canonical field names to the header spellings a
// user-edited spreadsheet may use for them. Both row mappers resolve cells
// through the same Table, so accepting a new spelling is a one-line change.
package columns

import (
	"strings"
	"unicode"

	"github.com/ieee-sl/relief-ledger/internal/models"
)

// Canonical field names.
const (
	ID          = "id"
	Date        = "date"
	EndDate     = "enddate"
	Description = "description"
	Category    = "category"
	Amount      = "amount"
	Type        = "type"
	ProofLink   = "prooflink"
	Title       = "title"
	Slug        = "slug"
	Location    = "location"
	Latitude    = "latitude"
	Longitude   = "longitude"
	Image       = "image"
	Gallery     = "gallery"
	Videos      = "videos"
)

// Table maps a canonical field to its accepted header aliases in priority
// order. Aliases are stored normalized.
type Table map[string][]string

// DefaultTable returns the built-in alias table.
func DefaultTable() Table {
	return Table{
		ID:          {"id", "transactionid", "storyid", "ref", "reference"},
		Date:        {"date", "startdate", "transactiondate", "day"},
		EndDate:     {"enddate", "to", "until"},
		Description: {"description", "details", "narrative", "summary", "note", "notes"},
		Category:    {"category", "expensecategory", "purpose"},
		Amount:      {"amount", "amountlkr", "value", "total", "sum"},
		Type:        {"type", "transactiontype", "direction", "flow"},
		ProofLink: {
			"prooflink", "proof", "proofurl", "paymentproof", "receipt",
			"slip", "link", "url", "document",
		},
		Title:     {"title", "headline", "name"},
		Slug:      {"slug", "permalink"},
		Location:  {"location", "place", "district", "area"},
		Latitude:  {"latitude", "lat"},
		Longitude: {"longitude", "lng", "lon", "long"},
		Image: {
			"imageurl", "image", "media", "mediaurl", "photo", "photourl",
			"thumbnail", "picture", "cover", "video", "videourl",
		},
		Gallery: {"gallery", "additionalimages", "images", "photos", "moreimages"},
		Videos:  {"videos", "videolinks", "videourls", "youtube"},
	}
}

// NormalizeHeader trims and case-folds a header and drops spaces, underscores,
// hyphens and dots, so "Proof Link", "proof_link" and "PROOF-LINK" compare equal.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	var b strings.Builder
	for _, r := range strings.TrimSpace(h) {
		switch {
		case unicode.IsSpace(r), r == '_', r == '-', r == '.', r == '"':
			continue
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Merge appends extra aliases after the built-in ones, skipping duplicates.
// Unknown canonical fields are added as new entries.
func (t Table) Merge(extra map[string][]string) Table {
	out := make(Table, len(t)+len(extra))
	for field, aliases := range t {
		out[field] = append([]string(nil), aliases...)
	}
	for field, aliases := range extra {
		key := NormalizeHeader(field)
		seen := make(map[string]bool, len(out[key]))
		for _, a := range out[key] {
			seen[a] = true
		}
		for _, a := range aliases {
			n := NormalizeHeader(a)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			out[key] = append(out[key], n)
		}
	}
	return out
}

// Aliases returns the aliases for a field, falling back to the field name itself.
func (t Table) Aliases(field string) []string {
	if aliases, ok := t[field]; ok && len(aliases) > 0 {
		return aliases
	}
	return []string{field}
}

// Lookup returns the first non-empty cell among the field's aliases.
func (t Table) Lookup(row models.RawRow, field string) string {
	for _, alias := range t.Aliases(field) {
		if v := row.Get(alias); v != "" {
			return v
		}
	}
	return ""
}

// Has reports whether any of the field's aliases is among the headers.
func (t Table) Has(headers map[string]bool, field string) bool {
	for _, alias := range t.Aliases(field) {
		if headers[alias] {
			return true
		}
	}
	return false
}
