// Package render turns generated Markdown into sanitized HTML for the detail
// views.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// wordsPerMinute is the reading speed behind ReadingTime.
const wordsPerMinute = 200

// Heading is one h2/h3 entry of a document outline.
type Heading struct {
	Level int
	ID    string
	Text  string
}

// Document is a rendered Markdown body.
type Document struct {
	HTML    template.HTML
	Outline []Heading
	Words   int
}

// ReadingTime estimates the reading time as "N min", at least one minute.
func (d Document) ReadingTime() string {
	return fmt.Sprintf("%d min", max(1, int(math.Ceil(float64(d.Words)/wordsPerMinute))))
}

// Renderer converts Markdown to HTML and strips anything unsafe from it.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a Renderer with GitHub-flavoured Markdown and the UGC policy.
func New() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
		policy: policy,
	}
}

// Render converts source to sanitized HTML and collects its outline and word count.
func (r *Renderer) Render(source string) (Document, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return Document{}, fmt.Errorf("rendering markdown: %w", err)
	}
	safe := r.policy.SanitizeBytes(buf.Bytes())

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(safe))
	if err != nil {
		return Document{}, fmt.Errorf("parsing rendered html: %w", err)
	}

	var outline []Heading
	doc.Find("h2, h3").Each(func(_ int, s *goquery.Selection) {
		level := 2
		if goquery.NodeName(s) == "h3" {
			level = 3
		}
		id, _ := s.Attr("id")
		outline = append(outline, Heading{Level: level, ID: id, Text: strings.TrimSpace(s.Text())})
	})

	return Document{
		HTML:    template.HTML(safe), //nolint:gosec // sanitized by bluemonday above
		Outline: outline,
		Words:   len(strings.Fields(doc.Text())),
	}, nil
}

// Excerpt returns the first n runes of the plain text of source.
func (r *Renderer) Excerpt(source string, n int) string {
	d, err := r.Render(source)
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(d.HTML)))
	if err != nil {
		return ""
	}
	text := strings.Join(strings.Fields(doc.Text()), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return strings.TrimSpace(string(runes[:n])) + "…"
}
