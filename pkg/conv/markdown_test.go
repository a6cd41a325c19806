package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdownToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		absent   []string
	}{
		{
			name:     "emphasis",
			input:    "**Verdict:** *misleading*",
			contains: []string{"<strong>Verdict:</strong>", "<em>misleading</em>"},
		},
		{
			name:     "headings and lists kept",
			input:    "## Evidence\n\n- first\n- second",
			contains: []string{"<h2", "Evidence</h2>", "<li>first</li>"},
		},
		{
			name:     "code block keeps language class",
			input:    "```go\nfunc main() {}\n```",
			contains: []string{`<code class="language-go">`},
		},
		{
			name:     "http link kept",
			input:    "[source](https://example.org/a)",
			contains: []string{`href="https://example.org/a"`, ">source</a>"},
		},
		{
			name:     "javascript link dropped",
			input:    "[click](javascript:alert(1))",
			contains: []string{"click"},
			absent:   []string{"javascript:"},
		},
		{
			name:   "script removed",
			input:  "<script>alert('xss')</script>",
			absent: []string{"<script", "alert("},
		},
		{
			name:     "inline handler removed",
			input:    `<p onclick="steal()">text</p>`,
			contains: []string{"text"},
			absent:   []string{"onclick", "steal"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MarkdownToHTML([]byte(tt.input))
			for _, s := range tt.contains {
				assert.Contains(t, got, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, got, s)
			}
		})
	}
}

func TestHTMLDocument(t *testing.T) {
	doc := HTMLDocument("Claim <check>", "<p>body</p>\n")

	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "<title>Claim &lt;check&gt;</title>")
	assert.Contains(t, doc, "<p>body</p>\n</body>")
}
