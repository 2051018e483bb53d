// Package md2rst converts Markdown documents to reStructuredText.
//
// # Quick Start
//
// For a one-off conversion, call Transcode with the source text and title:
//
//	rst := md2rst.Transcode(markdown, "User Manual")
//	os.WriteFile("user-manual.rst", []byte(rst), 0644)
//
// To inspect unconverted regions, use a Transcoder:
//
//	tr := md2rst.NewTranscoder(md2rst.WithAnonymousLinks(true))
//	result, err := tr.Convert(ctx, md2rst.Input{
//	    Markdown: markdown,
//	    Title:    "User Manual",
//	})
//	if err != nil {
//	    log.Fatal(err) // only ErrInvalidEncoding
//	}
//	for _, w := range result.Warnings {
//	    log.Println(w)
//	}
//
// # Conversion Pipeline
//
// The body is rewritten by a fixed sequence of stages, structural before
// inline:
//
//  1. Title stripping (the leading "# " heading is replaced by Input.Title)
//  2. Headings, level 3 to level 1, as overlined section titles
//  3. Fenced code blocks as code-block directives, tagged then untagged
//  4. Inline code as ``literal`` spans
//  5. Images as image directives or substitutions
//  6. Links as `text <url>`_ hyperlinks
//  7. Bold and italic emphasis
//  8. Bullet and auto-numbered lists
//  9. Block quotes as note directives
//  10. Reindentation of directive bodies
//
// The output starts with the title, an "=" underline of the same length,
// and a blank line.
//
// # Malformed Input
//
// Conversion never fails on malformed Markdown. An unterminated fence, a
// heading deeper than level 3, or front matter that is not a YAML mapping is
// left as plain text and reported in Result.Warnings. Only input that is not
// valid UTF-8 is rejected, with ErrInvalidEncoding.
//
// # Concurrency
//
// A Transcoder holds no per-call state. One instance can serve any number
// of goroutines.
package md2rst
