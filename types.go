package md2rst

import "github.com/alnah/go-md2rst/internal/pipeline"

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown source
	Title    string // Document title, rendered above the body
}

// Result holds the converted document.
type Result struct {
	RST      string         // Title block followed by the converted body
	Warnings []Warning      // Regions left unconverted, ordered by line
	Meta     map[string]any // Decoded YAML front matter, nil when absent
}

// Warning describes a region of the source left unconverted or degraded.
type Warning = pipeline.Warning

// WarningKind classifies a Warning.
type WarningKind = pipeline.WarningKind

// Warning kinds.
const (
	WarnUnterminatedFence  = pipeline.WarnUnterminatedFence
	WarnEmptyCodeBlock     = pipeline.WarnEmptyCodeBlock
	WarnUnknownLanguage    = pipeline.WarnUnknownLanguage
	WarnUnsupportedHeading = pipeline.WarnUnsupportedHeading
	WarnFrontMatter        = pipeline.WarnFrontMatter
)

// Option configures a Transcoder.
type Option func(*transcoderConfig)

// transcoderConfig holds internal configuration for Transcoder.
type transcoderConfig struct {
	anonymousLinks bool
	checkLanguages bool
}

// WithAnonymousLinks emits anonymous hyperlinks (`text <url>`__).
// Anonymous links avoid duplicate target errors when the same link text
// points to different URLs within one document.
func WithAnonymousLinks(enabled bool) Option {
	return func(c *transcoderConfig) {
		c.anonymousLinks = enabled
	}
}

// WithLanguageCheck enables or disables the check of fence language tags
// against known lexers. Enabled by default.
func WithLanguageCheck(enabled bool) Option {
	return func(c *transcoderConfig) {
		c.checkLanguages = enabled
	}
}
