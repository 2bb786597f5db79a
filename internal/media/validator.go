// Package media decides whether a free-text spreadsheet cell is usable as a
// link and, for the primary media field of a story, recognizes the hosting
// platform well enough to render a thumbnail and a playable embed.
//
// Only http and https URLs are ever returned. This is the single place where
// untrusted links are screened before they reach an href or src attribute.
package media

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// schemePattern matches a leading URI scheme. Dots are excluded so that
// "example.com:8080/x" is read as a bare host. A dotless host with a port
// ("localhost:8080/x") still reads as a scheme and is rejected.
var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+\-]*:`)

// ValidateURL returns the cleaned absolute URL for raw, or false when the cell
// cannot be used as a link.
//
// When allowIframe is set and raw is embed markup (<iframe src="...">), the src
// attribute is validated instead and returned as the stored value; the markup
// itself is never returned. Scheme-less input is prefixed with https://.
func ValidateURL(raw string, allowIframe bool) (string, bool) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", false
	}

	if IsIframe(candidate) {
		if !allowIframe {
			return "", false
		}
		src, ok := ExtractIframeSrc(candidate)
		if !ok {
			return "", false
		}
		candidate = src
	}

	if strings.ContainsAny(candidate, "<>\"") {
		return "", false
	}

	switch {
	case strings.HasPrefix(candidate, "//"):
		candidate = "https:" + candidate
	case !schemePattern.MatchString(candidate):
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", false
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return "", false
	}
	if u.Hostname() == "" || strings.ContainsAny(u.Host, " \t") {
		return "", false
	}
	return candidate, true
}

// IsIframe reports whether s looks like pasted <iframe> embed markup.
func IsIframe(s string) bool {
	return strings.Contains(strings.ToLower(s), "<iframe")
}

// ExtractIframeSrc returns the src attribute of the first iframe tag in s.
func ExtractIframeSrc(s string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return "", false
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "iframe" {
				continue
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "src" {
					src := strings.TrimSpace(string(val))
					return src, src != ""
				}
			}
			return "", false
		}
	}
}

// SplitList splits a comma-delimited cell into validated URLs, preserving
// order and dropping anything invalid. Embed markup is not accepted here.
func SplitList(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if u, ok := ValidateURL(part, false); ok {
			out = append(out, u)
		}
	}
	return out
}
