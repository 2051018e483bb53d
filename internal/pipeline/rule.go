package pipeline

import "strings"

// Scope describes how a rule's pattern is anchored.
type Scope int

const (
	// ScopeLine rules match whole lines (headings, lists, quotes).
	ScopeLine Scope = iota
	// ScopeSpan rules match inline spans inside a line.
	ScopeSpan
	// ScopeBlock rules look at runs of lines (directive bodies).
	ScopeBlock
)

// String returns the scope name used in stage listings.
func (s Scope) String() string {
	switch s {
	case ScopeLine:
		return "line"
	case ScopeSpan:
		return "span"
	case ScopeBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Rule is a pure text rewrite applied to every prose segment.
type Rule struct {
	ID    string
	Scope Scope
	Apply func(string) string
}

// Stage is one element of the ordered pipeline.
type Stage interface {
	Name() string
	apply(d *document)
}

// Name returns the rule name.
func (r Rule) Name() string { return r.ID }

func (r Rule) apply(d *document) {
	for i := range d.segments {
		seg := &d.segments[i]
		if seg.Kind != KindProse || len(seg.Lines) == 0 {
			continue
		}
		seg.Lines = strings.Split(r.Apply(strings.Join(seg.Lines, "\n")), "\n")
	}
}

// document is the per-run working state. It never outlives a Run call.
type document struct {
	segments      []Segment
	warnings      []Warning
	substitutions []substitution
}

// substitution is an image substitution definition collected from inline images.
type substitution struct {
	name string
	url  string
	alt  string
}

func (d *document) warn(line int, kind WarningKind, msg string) {
	d.warnings = append(d.warnings, Warning{Line: line, Kind: kind, Message: msg})
}

// lastLineBefore returns the last output line preceding segment i.
func (d *document) lastLineBefore(i int) (string, bool) {
	for j := i - 1; j >= 0; j-- {
		if n := len(d.segments[j].Lines); n > 0 {
			return d.segments[j].Lines[n-1], true
		}
	}
	return "", false
}

// body joins all segment lines.
func (d *document) body() string {
	var lines []string
	for _, seg := range d.segments {
		lines = append(lines, seg.Lines...)
	}
	return strings.Join(lines, "\n")
}
