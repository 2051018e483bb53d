package pipeline

import (
	"regexp"
	"strings"
)

var directivePattern = regexp.MustCompile(`^([ \t]*)\.\. ([A-Za-z][\w-]*)::`)

// bodyDirectives take indented content after a blank line. Directives such as
// image or include take none, so a paragraph after them is left alone.
var bodyDirectives = map[string]bool{
	"code-block":     true,
	"code":           true,
	"sourcecode":     true,
	"note":           true,
	"warning":        true,
	"tip":            true,
	"hint":           true,
	"important":      true,
	"caution":        true,
	"attention":      true,
	"danger":         true,
	"error":          true,
	"admonition":     true,
	"topic":          true,
	"sidebar":        true,
	"parsed-literal": true,
}

// Reindent shifts the paragraph that follows a body-taking directive and a
// blank line to one indentation unit past the directive, when the paragraph
// is not already indented beneath it. Applying it twice changes nothing.
func Reindent(s string) string {
	if !strings.Contains(s, ".. ") {
		return s
	}

	lines := strings.Split(s, "\n")
	for i := 0; i+2 < len(lines); i++ {
		m := directivePattern.FindStringSubmatch(lines[i])
		if m == nil || !bodyDirectives[m[2]] || strings.TrimSpace(lines[i+1]) != "" {
			continue
		}
		start := i + 2
		if strings.TrimSpace(lines[start]) == "" {
			continue
		}

		directiveIndent := indentWidth(m[1])
		first := indentWidth(leadingSpace(lines[start]))
		if first > directiveIndent {
			continue
		}

		pad := strings.Repeat(" ", directiveIndent+len(Indent)-first)
		end := start
		for end < len(lines) && strings.TrimSpace(lines[end]) != "" {
			lines[end] = pad + lines[end]
			end++
		}
		// The shifted block may open a body directive of its own.
		i = start - 1
	}
	return strings.Join(lines, "\n")
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

// indentWidth counts columns, with a tab advancing to the next multiple of 8.
func indentWidth(ws string) int {
	width := 0
	for _, c := range ws {
		if c == '\t' {
			width += 8 - width%8
			continue
		}
		width++
	}
	return width
}
