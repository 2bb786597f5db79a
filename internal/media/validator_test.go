package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		allowIframe bool
		expected    string
		valid       bool
	}{
		{name: "https url", input: "https://example.com/receipt.pdf", expected: "https://example.com/receipt.pdf", valid: true},
		{name: "http url", input: "http://example.com/a", expected: "http://example.com/a", valid: true},
		{name: "upper case scheme", input: "HTTPS://Example.com/a", expected: "HTTPS://Example.com/a", valid: true},
		{name: "surrounding space", input: "  https://example.com/a  ", expected: "https://example.com/a", valid: true},
		{name: "bare domain", input: "example.com/img.png", expected: "https://example.com/img.png", valid: true},
		{name: "bare domain with port", input: "example.com:8080/img.png", expected: "https://example.com:8080/img.png", valid: true},
		{name: "dotless host with port reads as a scheme", input: "localhost:8080/x", valid: false},
		{name: "dotless host with port and scheme", input: "http://localhost:8080/x", expected: "http://localhost:8080/x", valid: true},
		{name: "www host", input: "www.example.org", expected: "https://www.example.org", valid: true},
		{name: "protocol relative", input: "//cdn.example.com/x.jpg", expected: "https://cdn.example.com/x.jpg", valid: true},
		{name: "empty", input: "", valid: false},
		{name: "blank", input: "   ", valid: false},
		{name: "javascript", input: "javascript:alert(1)", valid: false},
		{name: "javascript mixed case", input: "JaVaScRiPt:alert(document.cookie)", valid: false},
		{name: "data uri", input: "data:text/html;base64,PHNjcmlwdD4=", valid: false},
		{name: "file uri", input: "file:///etc/passwd", valid: false},
		{name: "mailto", input: "mailto:treasurer@example.com", valid: false},
		{name: "ftp", input: "ftp://example.com/file", valid: false},
		{name: "hash placeholder", input: "#", valid: false},
		{name: "control character", input: "java\tscript:alert(1)", valid: false},
		{name: "markup", input: "<img src=x onerror=alert(1)>", valid: false},
		{name: "iframe rejected when not allowed", input: `<iframe src="https://www.youtube.com/embed/AbCdEfGhIjK"></iframe>`, valid: false},
		{
			name:        "iframe src extracted",
			input:       `<iframe width="560" height="315" src="https://www.youtube.com/embed/AbCdEfGhIjK?si=x&amp;t=3" frameborder="0" allowfullscreen></iframe>`,
			allowIframe: true,
			expected:    "https://www.youtube.com/embed/AbCdEfGhIjK?si=x&t=3",
			valid:       true,
		},
		{name: "iframe without src", input: `<iframe width="560"></iframe>`, allowIframe: true, valid: false},
		{name: "iframe with javascript src", input: `<iframe src="javascript:alert(1)"></iframe>`, allowIframe: true, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ValidateURL(tt.input, tt.allowIframe)
			assert.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.Equal(t, tt.expected, got)
			} else {
				assert.Empty(t, got, "invalid input must never be echoed back")
			}
		})
	}
}

func TestExtractIframeSrc(t *testing.T) {
	src, ok := ExtractIframeSrc(`<IFRAME SRC='https://player.vimeo.com/video/1'/>`)
	assert.True(t, ok)
	assert.Equal(t, "https://player.vimeo.com/video/1", src)

	_, ok = ExtractIframeSrc(`<div src="https://example.com"></div>`)
	assert.False(t, ok)
}

func TestSplitList(t *testing.T) {
	cell := "https://example.com/1.jpg, javascript:alert(1),example.com/2.jpg , ,<iframe src=\"https://example.com/3\"></iframe>"
	assert.Equal(t, []string{"https://example.com/1.jpg", "https://example.com/2.jpg"}, SplitList(cell))
	assert.Nil(t, SplitList("   "))
}
