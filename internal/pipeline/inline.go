package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// Image alone on its line, optionally indented, optional "title".
	blockImagePattern = regexp.MustCompile(`(?m)^([ \t]*)!\[([^\]\n]*)\]\(([^)\s]+)(?:[ \t]+"[^"\n]*")?\)[ \t]*$`)

	// Image inside running text.
	inlineImagePattern = regexp.MustCompile(`!\[([^\]\n]*)\]\(([^)\s]+)(?:[ \t]+"[^"\n]*")?\)`)

	// [text](url) with an optional "title".
	linkPattern = regexp.MustCompile(`\[([^\]\n]+)\]\(([^)\s]+)(?:[ \t]+"[^"\n]*")?\)`)

	// <http://example.com> autolinks.
	autolinkPattern = regexp.MustCompile(`<(https?://[^>\s]+)>`)

	// Characters that cannot appear in a substitution name.
	badSubstitutionName = regexp.MustCompile("[|`*\n]")
)

// codeSpans converts backtick code spans to double-backtick inline literals.
// The span content is shielded from the span rules that run afterwards.
// Unmatched backticks are left as they are.
func codeSpans(s string) string {
	return mapLines(s, codeSpansLine)
}

func codeSpansLine(line string) string {
	if !strings.Contains(line, "`") {
		return line
	}

	var b strings.Builder
	for i := 0; i < len(line); {
		if line[i] != '`' {
			b.WriteByte(line[i])
			i++
			continue
		}
		n := runLength(line, i, '`')
		end := findRun(line, i+n, '`', n)
		if end < 0 {
			b.WriteString(line[i : i+n])
			i += n
			continue
		}
		content := line[i+n : end]
		if strings.TrimSpace(content) == "" {
			b.WriteString(line[i : end+n])
			i = end + n
			continue
		}
		if len(content) > 2 && content[0] == ' ' && content[len(content)-1] == ' ' {
			content = content[1 : len(content)-1]
		}
		b.WriteString("``" + shield(content) + "``")
		i = end + n
	}
	return b.String()
}

// emphasis re-emits delimiter runs of exactly n asterisks around non-blank
// content. Runs of other lengths are skipped, so the italic pass never splits
// a bold span.
func emphasis(n int) func(string) string {
	delim := strings.Repeat("*", n)
	return func(s string) string {
		return mapLines(s, func(line string) string {
			return rewriteDelimited(line, '*', n, func(content string) string {
				return delim + content + delim
			})
		})
	}
}

// rewriteDelimited rewrites spans enclosed by runs of exactly n delim bytes.
// The opener must be followed by, and the closer preceded by, a non-space.
func rewriteDelimited(line string, delim byte, n int, wrap func(string) string) string {
	if !strings.Contains(line, strings.Repeat(string(delim), n)) {
		return line
	}

	var b strings.Builder
	for i := 0; i < len(line); {
		if line[i] != delim {
			b.WriteByte(line[i])
			i++
			continue
		}
		run := runLength(line, i, delim)
		if run != n || i+n >= len(line) || isSpace(line[i+n]) {
			b.WriteString(line[i : i+run])
			i += run
			continue
		}
		end := -1
		for j := findRun(line, i+n, delim, n); j >= 0; j = findRun(line, j+n, delim, n) {
			if !isSpace(line[j-1]) {
				end = j
				break
			}
		}
		if end < 0 {
			b.WriteString(line[i : i+run])
			i += run
			continue
		}
		b.WriteString(wrap(line[i+n : end]))
		i = end + n
	}
	return b.String()
}

// imageStage converts images. A standalone image line becomes an image
// directive; an image inside text becomes a substitution reference whose
// definition is appended to the document.
type imageStage struct{}

func (imageStage) Name() string { return "images" }

func (imageStage) apply(d *document) {
	for i := range d.segments {
		seg := &d.segments[i]
		if seg.Kind != KindProse || len(seg.Lines) == 0 {
			continue
		}
		text := strings.Join(seg.Lines, "\n")
		text = blockImagePattern.ReplaceAllStringFunc(text, func(m string) string {
			sub := blockImagePattern.FindStringSubmatch(m)
			return imageDirective(sub[1], sub[3], sub[2])
		})
		text = inlineImagePattern.ReplaceAllStringFunc(text, func(m string) string {
			sub := inlineImagePattern.FindStringSubmatch(m)
			return "|" + d.substitutionFor(sub[1], sub[2]) + "|"
		})
		seg.Lines = strings.Split(text, "\n")
	}
}

func imageDirective(indent, url, alt string) string {
	directive := indent + ".. image:: " + url
	if alt = strings.TrimSpace(alt); alt != "" {
		directive += "\n" + indent + Indent + ":alt: " + alt
	}
	return directive
}

// substitutionFor returns the substitution name for an inline image,
// reusing an existing definition for the same alt text and url.
func (d *document) substitutionFor(alt, url string) string {
	alt = strings.TrimSpace(alt)
	name := alt
	if badSubstitutionName.MatchString(name) {
		name = ""
	}
	for _, sub := range d.substitutions {
		if sub.name == name && sub.url == url {
			return name
		}
		if sub.name == name {
			name = ""
		}
	}
	if name == "" {
		name = fmt.Sprintf("image-%d", len(d.substitutions)+1)
	}
	d.substitutions = append(d.substitutions, substitution{name: name, url: url, alt: alt})
	return name
}

// SubstitutionDefinition renders one image substitution definition.
func SubstitutionDefinition(name, url, alt string) string {
	def := ".. |" + name + "| image:: " + url
	if alt != "" {
		def += "\n" + Indent + ":alt: " + alt
	}
	return def
}

// links converts Markdown links to hyperlinks with embedded targets.
// Autolinks run first: the embedded target form contains <url> itself.
func links(anonymous bool) func(string) string {
	suffix := "_"
	if anonymous {
		suffix = "__"
	}
	return func(s string) string {
		s = autolinkPattern.ReplaceAllString(s, "$1")
		return linkPattern.ReplaceAllString(s, "`$1 <$2>`"+suffix)
	}
}

// mapLines applies fn to every line of s.
func mapLines(s string, fn func(string) string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	return strings.Join(lines, "\n")
}

// runLength counts consecutive c bytes starting at i.
func runLength(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// findRun returns the start of the next run of exactly n c bytes at or
// after from, or -1.
func findRun(s string, from int, c byte, n int) int {
	for i := from; i < len(s); {
		if s[i] != c {
			i++
			continue
		}
		run := runLength(s, i, c)
		if run == n {
			return i
		}
		i += run
	}
	return -1
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
