package outline

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MaxLevel is the deepest heading level recognised by the scanners.
const MaxLevel = 6

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// ScanHeadings extracts headings from doc line by line.
// Blank lines and every line that is not a heading are skipped, as are
// headings whose text is empty after trimming.
func ScanHeadings(doc string) []Heading {
	var headings []Heading
	for _, line := range strings.Split(doc, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[2])
		if title == "" {
			continue
		}
		headings = append(headings, Heading{Level: len(m[1]), Text: title})
	}
	return headings
}

// ScanMarkdown extracts headings from a parsed goldmark document.
// Unlike [ScanHeadings] it recognises setext headings and ignores heading-like
// lines inside code blocks.
func ScanMarkdown(src []byte) []Heading {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := strings.TrimSpace(string(h.Text(src)))
		if title != "" && h.Level <= MaxLevel {
			headings = append(headings, Heading{Level: h.Level, Text: title})
		}
		return ast.WalkSkipChildren, nil
	})
	return headings
}
