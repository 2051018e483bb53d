package pipeline

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Section adornment characters, one per heading level.
const (
	GlyphLevel1 = '='
	GlyphLevel2 = '-'
	GlyphLevel3 = '~'
)

// minAdornmentWidth is the shortest heading over/underline emitted.
const minAdornmentWidth = 10

var (
	titlePattern    = regexp.MustCompile(`^#[ \t]+\S`)
	heading3Pattern = regexp.MustCompile(`(?m)^###[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)
	heading2Pattern = regexp.MustCompile(`(?m)^##[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)
	heading1Pattern = regexp.MustCompile(`(?m)^#[ \t]+(.+?)(?:[ \t]+#+)?[ \t]*$`)
)

// TitleBlock renders the document title and its level-1 underline.
// The underline has exactly as many characters as the title.
func TitleBlock(title string) string {
	return title + "\n" + strings.Repeat(string(GlyphLevel1), utf8.RuneCountInString(title)) + "\n\n"
}

// titleStage removes the leading level-1 heading and the blank line after
// it. The title is rendered from the caller's title instead.
type titleStage struct{}

func (titleStage) Name() string { return "strip-title" }

func (titleStage) apply(d *document) {
	for i := range d.segments {
		seg := &d.segments[i]
		if len(seg.Lines) == 0 {
			continue
		}
		if seg.Kind != KindProse || !titlePattern.MatchString(seg.Lines[0]) {
			return
		}
		seg.Lines = seg.Lines[1:]
		if len(seg.Lines) > 0 && strings.TrimSpace(seg.Lines[0]) == "" {
			seg.Lines = seg.Lines[1:]
		}
		return
	}
}

// headingRule converts one heading level to an overlined section title.
func headingRule(id string, pattern *regexp.Regexp, glyph rune) Rule {
	return Rule{
		ID:    id,
		Scope: ScopeLine,
		Apply: func(s string) string {
			return pattern.ReplaceAllStringFunc(s, func(line string) string {
				text := strings.TrimSpace(pattern.FindStringSubmatch(line)[1])
				return headingBlock(text, glyph)
			})
		},
	}
}

func headingBlock(text string, glyph rune) string {
	width := max(minAdornmentWidth, utf8.RuneCountInString(text))
	rule := strings.Repeat(string(glyph), width)
	return rule + "\n" + text + "\n" + rule
}

// fitAdornments widens heading over/underlines that became shorter than their
// text after inline rewriting (``code`` and link spans grow the text).
func fitAdornments(s string) string {
	lines := strings.Split(s, "\n")
	for i := 0; i+2 < len(lines); i++ {
		glyph, ok := adornmentGlyph(lines[i])
		if !ok || lines[i+2] != lines[i] || strings.TrimSpace(lines[i+1]) == "" {
			continue
		}
		if width := utf8.RuneCountInString(lines[i+1]); width > len(lines[i]) {
			rule := strings.Repeat(string(glyph), width)
			lines[i], lines[i+2] = rule, rule
		}
		i += 2
	}
	return strings.Join(lines, "\n")
}

// adornmentGlyph reports whether line is a run of one heading glyph at
// least minAdornmentWidth long.
func adornmentGlyph(line string) (rune, bool) {
	if len(line) < minAdornmentWidth {
		return 0, false
	}
	glyph := rune(line[0])
	if glyph != GlyphLevel1 && glyph != GlyphLevel2 && glyph != GlyphLevel3 {
		return 0, false
	}
	return glyph, strings.Trim(line, string(glyph)) == ""
}
