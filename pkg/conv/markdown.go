package conv

import (
	"html"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions   = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags    = mdhtml.CommonFlags | mdhtml.HrefTargetBlank
	reportPolicy = bluemonday.NewPolicy()
)

func init() {
	reportPolicy.AllowElements(
		"p", "br", "hr", "h1", "h2", "h3", "h4", "ul", "ol", "li",
		"b", "strong", "i", "em", "u", "s", "del", "code", "pre", "blockquote",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	reportPolicy.AllowAttrs("href").OnElements("a")
	reportPolicy.AllowURLSchemes("http", "https")
	reportPolicy.RequireParseableURLs(true)
	reportPolicy.RequireNoFollowOnLinks(true)
	reportPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	reportPolicy.AllowAttrs("class").OnElements("code")
}

// MarkdownToHTML renders model-written markdown and strips anything outside a
// small document policy. Scripts, inline handlers and non-http links never survive.
func MarkdownToHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(reportPolicy.SanitizeBytes(unsafeHTML))
}

// HTMLDocument wraps an already sanitized body into a standalone page.
func HTMLDocument(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	b.WriteString("<style>body{font-family:system-ui,sans-serif;max-width:46rem;margin:2rem auto;line-height:1.5}code{background:#f3f3f3}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
