package content

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Style flags inline emphasis in a body span.
type Style uint8

const (
	StylePlain  Style = 0
	StyleStrong Style = 1 << iota
	StyleEmphasis
)

// Span is a run of body text sharing one style.
type Span struct {
	Text  string
	Style Style
}

var markdown = goldmark.New()

// Spans splits the body into styled runs. Only inline emphasis is kept;
// block structure collapses into a single paragraph.
func (s Section) Spans() []Span {
	return ParseSpans(s.Body)
}

// PlainBody returns the body with markup removed.
func (s Section) PlainBody() string {
	var b strings.Builder
	for _, sp := range s.Spans() {
		b.WriteString(sp.Text)
	}
	return b.String()
}

// ParseSpans parses inline Markdown emphasis in src.
func ParseSpans(src string) []Span {
	if src == "" {
		return nil
	}
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var (
		spans  []Span
		strong int
		em     int
		blocks int
	)
	emit := func(s string) {
		if s == "" {
			return
		}
		style := StylePlain
		if strong > 0 {
			style |= StyleStrong
		}
		if em > 0 {
			style |= StyleEmphasis
		}
		if n := len(spans); n > 0 && spans[n-1].Style == style {
			spans[n-1].Text += s
			return
		}
		spans = append(spans, Span{Text: s, Style: style})
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch node := n.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
			if entering {
				if blocks > 0 {
					emit(" ")
				}
				blocks++
			}
		case *ast.Emphasis:
			d := 1
			if !entering {
				d = -1
			}
			if node.Level >= 2 {
				strong += d
			} else {
				em += d
			}
		case *ast.Text:
			if !entering {
				return ast.WalkContinue, nil
			}
			emit(string(node.Segment.Value(source)))
			if node.SoftLineBreak() || node.HardLineBreak() {
				emit(" ")
			}
		case *ast.String:
			if entering {
				emit(string(node.Value))
			}
		}
		return ast.WalkContinue, nil
	})

	if n := len(spans); n > 0 {
		spans[n-1].Text = strings.TrimRight(spans[n-1].Text, " ")
		if spans[n-1].Text == "" {
			spans = spans[:n-1]
		}
	}
	return spans
}
