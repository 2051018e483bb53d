package pipeline

import (
	"regexp"
	"strings"
)

// NoteDirective introduces an admonition converted from a block quote.
const NoteDirective = ".. note::"

// Transition replaces a spaced thematic break such as "- - -".
const Transition = "----"

var (
	bulletPattern   = regexp.MustCompile(`(?m)^([ \t]*)[-+][ \t]+(\S.*)$`)
	numberedPattern = regexp.MustCompile(`(?m)^([ \t]*)[0-9]+[.)][ \t]+(\S.*)$`)

	// - - -  (unspaced "---" is left alone; heading adornments look like it)
	dashBreakPattern = regexp.MustCompile(`^[ ]{0,3}-[ \t]+-(?:[ \t]*-)+[ \t]*$`)

	// > **Warning** rest  ->  note with the bold markers removed.
	boldQuotePattern = regexp.MustCompile(`(?m)^>[ \t]?\*\*([^*\n]+?)\*\*(.*)$`)
	// > text
	plainQuotePattern = regexp.MustCompile(`(?m)^>[ \t]?(.*)$`)
)

func bullets(s string) string {
	if strings.Contains(s, "- ") || strings.Contains(s, "-\t") {
		s = dashBreaks(s)
	}
	return bulletPattern.ReplaceAllString(s, "$1* $2")
}

// dashBreaks turns spaced dash thematic breaks into transitions, which need
// a blank line on each side.
func dashBreaks(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if !dashBreakPattern.MatchString(line) {
			out = append(out, line)
			continue
		}
		if n := len(out); n > 0 && strings.TrimSpace(out[n-1]) != "" {
			out = append(out, "")
		}
		out = append(out, Transition)
		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			out = append(out, "")
		}
	}
	return strings.Join(out, "\n")
}

func numbered(s string) string {
	return numberedPattern.ReplaceAllString(s, "$1#. $2")
}

func boldQuotes(s string) string {
	return boldQuotePattern.ReplaceAllString(s, NoteDirective+"\n"+Indent+"$1$2")
}

func plainQuotes(s string) string {
	return plainQuotePattern.ReplaceAllString(s, NoteDirective+"\n"+Indent+"$1")
}

// joinNotes merges the one-line notes produced from consecutive quoted lines
// into a single note and separates each note from a preceding paragraph.
func joinNotes(s string) string {
	if !strings.Contains(s, NoteDirective) {
		return s
	}

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines)+2)
	inNote := false
	for i := 0; i < len(lines); i++ {
		if lines[i] != NoteDirective || i+1 >= len(lines) || !strings.HasPrefix(lines[i+1], Indent) {
			inNote = false
			out = append(out, lines[i])
			continue
		}

		body := strings.TrimRight(lines[i+1], " \t")
		i++
		if inNote {
			out = append(out, body)
			continue
		}
		if n := len(out); n > 0 && strings.TrimSpace(out[n-1]) != "" {
			out = append(out, "")
		}
		out = append(out, NoteDirective, body)
		inNote = true
	}
	return strings.Join(out, "\n")
}
