package md2rst

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-md2rst/internal/pipeline"
)

// Transcoder runs the Markdown-to-reStructuredText pipeline.
// Create with NewTranscoder and reuse it; it is safe for concurrent use.
type Transcoder struct {
	cfg      transcoderConfig
	pipeline *pipeline.Pipeline
}

// defaultTranscoder backs the package-level Transcode function.
var defaultTranscoder = NewTranscoder()

// NewTranscoder creates a Transcoder with default configuration.
func NewTranscoder(opts ...Option) *Transcoder {
	t := &Transcoder{
		cfg: transcoderConfig{checkLanguages: true},
	}
	for _, opt := range opts {
		opt(&t.cfg)
	}

	pipeOpts := pipeline.Options{AnonymousLinks: t.cfg.anonymousLinks}
	if t.cfg.checkLanguages {
		pipeOpts.CheckLanguage = pipeline.KnownLanguage
	}
	t.pipeline = pipeline.New(pipeOpts)
	return t
}

// Transcode converts source to reStructuredText under the given title.
// Malformed constructs are left as text; invalid UTF-8 is replaced with
// U+FFFD. Use Transcoder.Convert to get warnings and encoding errors.
func Transcode(source, title string) string {
	if !utf8.ValidString(source) {
		source = strings.ToValidUTF8(source, "\uFFFD")
	}
	return defaultTranscoder.render(source, title).RST
}

// Convert converts one document. It returns ErrInvalidEncoding when the
// source is not valid UTF-8, and the context error if ctx is already done.
// Malformed Markdown never causes an error; see Result.Warnings.
func (t *Transcoder) Convert(ctx context.Context, input Input) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(input.Markdown) || !utf8.ValidString(input.Title) {
		return nil, ErrInvalidEncoding
	}
	return t.render(input.Markdown, input.Title), nil
}

// Stages returns the pipeline stage names in execution order.
func (t *Transcoder) Stages() []string {
	return t.pipeline.Stages()
}

func (t *Transcoder) render(source, title string) *Result {
	out := t.pipeline.Run(source)
	return &Result{
		RST:      pipeline.TitleBlock(title) + out.Body,
		Warnings: out.Warnings,
		Meta:     out.Meta,
	}
}
