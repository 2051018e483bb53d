package pipeline

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// Indent is the fixed indentation unit for directive bodies.
const Indent = "   "

// CodeBlockDirective introduces a literal code block.
const CodeBlockDirective = ".. code-block::"

// plainLanguages are accepted by Sphinx without a lexer.
var plainLanguages = map[string]bool{
	"text":    true,
	"none":    true,
	"default": true,
}

// KnownLanguage reports whether tag names a lexer in the chroma registry,
// which mirrors Pygments lexer names and aliases.
func KnownLanguage(tag string) bool {
	if plainLanguages[tag] {
		return true
	}
	return lexers.Get(tag) != nil
}

// fenceStage converts fenced code blocks into code-block directives.
// Tagged and untagged fences are handled by two independent instances.
type fenceStage struct {
	tagged    bool
	checkLang func(string) bool // nil disables language checks
}

func (f fenceStage) Name() string {
	if f.tagged {
		return "fence-tagged"
	}
	return "fence-untagged"
}

func (f fenceStage) apply(d *document) {
	for i := range d.segments {
		seg := &d.segments[i]
		if seg.Kind != KindFence || (seg.Fence.Lang != "") != f.tagged {
			continue
		}

		if isBlank(seg.Fence.Body) {
			d.warn(seg.Line, WarnEmptyCodeBlock, "empty code block dropped")
			seg.Kind, seg.Lines = KindLiteral, nil
			continue
		}

		if f.tagged && f.checkLang != nil && !f.checkLang(seg.Fence.Lang) {
			d.warn(seg.Line, WarnUnknownLanguage,
				fmt.Sprintf("language %q has no known lexer", seg.Fence.Lang))
		}

		var lines []string
		if prev, ok := d.lastLineBefore(i); ok && strings.TrimSpace(prev) != "" {
			lines = append(lines, "")
		}
		lines = append(lines, codeBlock(seg.Fence)...)
		seg.Kind, seg.Lines = KindLiteral, lines
	}
}

// codeBlock renders a fence as a directive line, a blank line, the body
// indented one unit past the fence, and a trailing blank line.
func codeBlock(f *Fence) []string {
	directive := f.Indent + CodeBlockDirective
	if f.Lang != "" {
		directive += " " + f.Lang
	}

	lines := make([]string, 0, len(f.Body)+3)
	lines = append(lines, directive, "")
	for _, line := range f.Body {
		if strings.TrimSpace(line) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, f.Indent+Indent+trimIndent(line, len(f.Indent)))
	}
	return append(lines, "")
}

// trimIndent removes up to n leading spaces or tabs from line.
func trimIndent(line string, n int) string {
	i := 0
	for i < n && i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[i:]
}

func isBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
