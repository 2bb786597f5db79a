package models

import "strings"

// RawRow is one CSV data row keyed by normalized header name. It is the only
// untyped value in the pipeline and is consumed exclusively by the row mappers.
type RawRow map[string]string

// Get returns the trimmed cell for an already normalized key.
func (r RawRow) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// IsBlank reports whether every cell of the row is empty.
func (r RawRow) IsBlank() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
