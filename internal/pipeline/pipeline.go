package pipeline

import (
	"fmt"
	"sort"
	"strings"
)

// WarningKind classifies an unconverted or degraded region.
type WarningKind string

// Warning kinds reported by the pipeline.
const (
	WarnUnterminatedFence  WarningKind = "unterminated-fence"
	WarnEmptyCodeBlock     WarningKind = "empty-code-block"
	WarnUnknownLanguage    WarningKind = "unknown-language"
	WarnUnsupportedHeading WarningKind = "unsupported-heading"
	WarnFrontMatter        WarningKind = "front-matter"
)

// Warning describes a region the pipeline left unconverted or degraded.
type Warning struct {
	Line    int // 1-based line in the source
	Kind    WarningKind
	Message string
}

// String formats the warning as "line N: kind: message".
func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s: %s", w.Line, w.Kind, w.Message)
}

// Options configures the stages built by New.
type Options struct {
	AnonymousLinks bool              // emit `text <url>`__ instead of `text <url>`_
	CheckLanguage  func(string) bool // nil disables fence language checks
}

// Output is the result of running the pipeline over one source text.
type Output struct {
	Body     string
	Warnings []Warning
	Meta     map[string]any // decoded front matter, nil when absent
}

// Pipeline is an ordered, immutable list of stages.
type Pipeline struct {
	stages []Stage
}

// New builds the pipeline in its fixed order.
func New(opts Options) *Pipeline {
	return &Pipeline{stages: []Stage{
		titleStage{},
		headingRule("heading-3", heading3Pattern, GlyphLevel3),
		headingRule("heading-2", heading2Pattern, GlyphLevel2),
		headingRule("heading-1", heading1Pattern, GlyphLevel1),
		fenceStage{tagged: true, checkLang: opts.CheckLanguage},
		fenceStage{tagged: false},
		Rule{ID: "inline-code", Scope: ScopeSpan, Apply: codeSpans},
		imageStage{},
		Rule{ID: "links", Scope: ScopeSpan, Apply: links(opts.AnonymousLinks)},
		Rule{ID: "bold", Scope: ScopeSpan, Apply: emphasis(2)},
		Rule{ID: "italic", Scope: ScopeSpan, Apply: emphasis(1)},
		Rule{ID: "bullet-list", Scope: ScopeLine, Apply: bullets},
		Rule{ID: "numbered-list", Scope: ScopeLine, Apply: numbered},
		Rule{ID: "bold-quote", Scope: ScopeLine, Apply: boldQuotes},
		Rule{ID: "plain-quote", Scope: ScopeLine, Apply: plainQuotes},
		Rule{ID: "join-notes", Scope: ScopeBlock, Apply: joinNotes},
		Rule{ID: "reindent", Scope: ScopeBlock, Apply: Reindent},
		Rule{ID: "fit-adornments", Scope: ScopeBlock, Apply: fitAdornments},
	}}
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.Name()
	}
	return names
}

// Run converts a Markdown source into a reStructuredText body. The title
// block is not included; see TitleBlock.
func (p *Pipeline) Run(source string) Output {
	d := &document{}
	lines := strings.Split(normalizeSource(source), "\n")

	meta, body, first, found, err := SplitFrontMatter(lines)
	if found && err != nil {
		d.warn(1, WarnFrontMatter, "front matter is not a YAML mapping, left as text")
		d.segments = append(d.segments, Segment{Kind: KindInert, Lines: lines[:first-1], Line: 1})
	}

	segs, warns := scan(body, first)
	for i := range segs {
		if segs[i].Kind == KindProse {
			for j, line := range segs[i].Lines {
				segs[i].Lines[j] = escapeShields(line)
			}
		}
	}
	d.segments = append(d.segments, segs...)
	d.warnings = append(d.warnings, warns...)

	for _, st := range p.stages {
		st.apply(d)
	}

	return Output{
		Body:     d.finish(),
		Warnings: d.sortedWarnings(),
		Meta:     meta,
	}
}

// finish restores shielded characters and appends substitution definitions.
func (d *document) finish() string {
	body := d.body()
	if containsShield(body) {
		for i := range d.segments {
			if d.segments[i].Kind == KindProse {
				for j, line := range d.segments[i].Lines {
					d.segments[i].Lines[j] = unshield(line)
				}
			}
		}
		body = d.body()
	}
	if len(d.substitutions) == 0 {
		return body
	}

	defs := make([]string, len(d.substitutions))
	for i, sub := range d.substitutions {
		defs[i] = unshield(SubstitutionDefinition(sub.name, sub.url, sub.alt))
	}
	return strings.TrimRight(body, "\n") + "\n\n" + strings.Join(defs, "\n\n") + "\n"
}

func (d *document) sortedWarnings() []Warning {
	sort.SliceStable(d.warnings, func(i, j int) bool {
		return d.warnings[i].Line < d.warnings[j].Line
	})
	return d.warnings
}
