// Package pipeline implements the Markdown-to-reStructuredText rewrite pipeline.
//
// A document body is first split into segments (prose, fenced code, inert
// regions), then an ordered list of stages rewrites it:
//
//  1. Title stripping (leading level-1 heading)
//  2. Heading conversion, level 3 down to level 1
//  3. Fenced code blocks, tagged then untagged
//  4. Inline code spans
//  5. Images (before links, since image syntax contains link syntax)
//  6. Links and autolinks
//  7. Emphasis, bold before italic
//  8. Bullet and numbered lists
//  9. Block quotes, bold quotes before plain quotes
//  10. Reindentation of directive bodies
//
// Structural stages run before inline stages so heading text is still
// subject to inline conversion. Converted code blocks become literal
// segments that no later stage rewrites.
//
// Every stage is a pure function of the text it receives. A Pipeline holds
// no per-call state and is safe for concurrent use.
package pipeline
