package md2rst

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-md2rst/internal/fileutil"
	"github.com/alnah/go-md2rst/internal/pipeline"
)

// markdownParser parses sources for metadata lookups only. Conversion itself
// does not go through the goldmark AST.
var markdownParser = goldmark.New().Parser()

// ExtractTitle returns a title for source: the front matter "title" field,
// else the text of the first level-1 heading. It returns "" when neither
// exists.
func ExtractTitle(source string) string {
	if title := pipeline.FrontMatterTitle(source); title != "" {
		return title
	}

	body := splitBody(source)
	doc := markdownParser.Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			title = strings.TrimSpace(nodeText(h, body))
			if title != "" {
				return ast.WalkStop, nil
			}
		}
		return ast.WalkContinue, nil
	})
	return title
}

// ImageReferences lists the distinct local image paths referenced by source,
// in order of first appearance. Remote URLs are skipped.
func ImageReferences(source string) []string {
	body := splitBody(source)
	doc := markdownParser.Parse(text.NewReader(body))

	var refs []string
	seen := make(map[string]bool)
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		img, ok := n.(*ast.Image)
		if !entering || !ok {
			return ast.WalkContinue, nil
		}
		dest := string(img.Destination)
		if dest == "" || fileutil.IsURL(dest) || seen[dest] {
			return ast.WalkContinue, nil
		}
		seen[dest] = true
		refs = append(refs, dest)
		return ast.WalkContinue, nil
	})
	return refs
}

// splitBody drops front matter so goldmark does not read it as a
// setext heading.
func splitBody(source string) []byte {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")
	_, body, _, ok, err := pipeline.SplitFrontMatter(lines)
	if !ok || err != nil {
		return []byte(strings.Join(lines, "\n"))
	}
	return []byte(strings.Join(body, "\n"))
}

// nodeText concatenates the inline text below n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
