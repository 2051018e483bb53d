package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)
)

// byteOrderMark is stripped from the start of the source.
const byteOrderMark = "\uFEFF"

// Shield characters live in the Unicode Private Use Area starting at U+E100.
// Inline literal content is shielded so that the span stages running after
// inline code conversion (images, links, emphasis) cannot match inside it.
// finish restores the original characters once all stages have run.
const shieldBase = '\uE100'

// shielded lists the characters that later span stages treat as syntax.
const shielded = "*[]()!<>_|"

// shieldEscape precedes a shield-range rune that was already in the source,
// so unshield keeps it as written.
const shieldEscape = '\uE10F'

// normalizeSource strips a leading byte order mark and converts \r\n and \r to \n.
func normalizeSource(content string) string {
	content = strings.TrimPrefix(content, byteOrderMark)
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// shield replaces span syntax characters with private placeholders.
func shield(s string) string {
	if !strings.ContainsAny(s, shielded) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if i := strings.IndexRune(shielded, r); i >= 0 {
			b.WriteRune(shieldBase + rune(i))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeShields marks source runes that collide with the shield range.
func escapeShields(s string) string {
	if !containsShield(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		if isShieldRune(r) {
			b.WriteRune(shieldEscape)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// unshield reverses shield and escapeShields.
func unshield(s string) string {
	if !containsShield(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		switch {
		case escaped:
			b.WriteRune(r)
			escaped = false
		case r == shieldEscape:
			escaped = true
		case r >= shieldBase && r < shieldBase+rune(len(shielded)):
			b.WriteByte(shielded[r-shieldBase])
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isShieldRune(r rune) bool {
	return r == shieldEscape || (r >= shieldBase && r < shieldBase+rune(len(shielded)))
}

func containsShield(s string) bool {
	return strings.IndexFunc(s, isShieldRune) >= 0
}
