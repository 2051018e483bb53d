package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind classifies a segment of the document body.
type Kind int

const (
	// KindProse is ordinary text rewritten by the line and span rules.
	KindProse Kind = iota
	// KindFence is a terminated fenced code block awaiting conversion.
	KindFence
	// KindLiteral is a converted directive block. No stage rewrites it.
	KindLiteral
	// KindInert is an unconverted region passed through verbatim.
	KindInert
)

// Segment is a run of whole lines of the document body.
type Segment struct {
	Kind  Kind
	Lines []string
	Line  int // 1-based source line of the first line
	Fence *Fence
}

// Fence describes a fenced code block found by scan.
type Fence struct {
	Indent string   // leading whitespace of the opening line
	Marker string   // opening delimiter run, e.g. "```" or "~~~~"
	Lang   string   // first word of the info string, may be empty
	Body   []string // lines between the delimiters
}

var (
	fenceOpenPattern   = regexp.MustCompile("^([ \t]*)(`{3,}|~{3,})(.*)$")
	deepHeadingPattern = regexp.MustCompile(`^#{4,6}[ \t]+\S`)
)

// parseFenceOpen reports whether line opens a fenced code block.
func parseFenceOpen(line string) (*Fence, bool) {
	m := fenceOpenPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	info := strings.TrimSpace(m[3])
	// A backtick info string cannot contain backticks: ```a``` is inline code.
	if m[2][0] == '`' && strings.Contains(info, "`") {
		return nil, false
	}
	f := &Fence{Indent: m[1], Marker: m[2]}
	if fields := strings.Fields(info); len(fields) > 0 {
		f.Lang = strings.ToLower(strings.Trim(fields[0], "{}."))
	}
	return f, true
}

// isFenceClose reports whether line closes f: the same delimiter character,
// at least as long as the opener, and nothing else on the line.
func (f *Fence) isFenceClose(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(f.Marker) {
		return false
	}
	return strings.Trim(trimmed, f.Marker[:1]) == ""
}

// scan splits lines into prose, fence and inert segments. Each fence is
// bounded by the nearest closing delimiter, so a fence never spans another
// block. An opener without a closer becomes a one-line inert segment.
// first is the source line number of lines[0].
func scan(lines []string, first int) ([]Segment, []Warning) {
	var (
		segs  []Segment
		warns []Warning
		prose = Segment{Kind: KindProse, Line: first}
	)

	flush := func(next int) {
		if len(prose.Lines) > 0 {
			segs = append(segs, prose)
		}
		prose = Segment{Kind: KindProse, Line: next}
	}

	for i := 0; i < len(lines); i++ {
		lineNo := first + i
		fence, ok := parseFenceOpen(lines[i])
		if !ok {
			if deepHeadingPattern.MatchString(lines[i]) {
				warns = append(warns, Warning{
					Line:    lineNo,
					Kind:    WarnUnsupportedHeading,
					Message: "heading deeper than level 3 left unconverted",
				})
			}
			prose.Lines = append(prose.Lines, lines[i])
			continue
		}

		end := -1
		for j := i + 1; j < len(lines); j++ {
			if fence.isFenceClose(lines[j]) {
				end = j
				break
			}
		}

		flush(lineNo)
		if end < 0 {
			warns = append(warns, Warning{
				Line:    lineNo,
				Kind:    WarnUnterminatedFence,
				Message: fmt.Sprintf("no closing %s, fence left as text", fence.Marker),
			})
			segs = append(segs, Segment{Kind: KindInert, Lines: []string{lines[i]}, Line: lineNo})
			prose.Line = lineNo + 1
			continue
		}

		fence.Body = lines[i+1 : end]
		segs = append(segs, Segment{Kind: KindFence, Lines: lines[i : end+1], Line: lineNo, Fence: fence})
		i = end
		prose.Line = first + end + 1
	}
	flush(0)

	return segs, warns
}
