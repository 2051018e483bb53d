// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"sort"
	"strings"
)

// warningHints maps a warning kind to the action that silences it.
var warningHints = map[string]string{
	"unterminated-fence":  "close every ``` fence with a matching line",
	"empty-code-block":    "remove empty fences or add content",
	"unknown-language":    "use --no-lang-check to keep unrecognized fence languages quietly",
	"unsupported-heading": "only #, ## and ### headings are converted",
	"front-matter":        "front matter between --- lines must be a YAML mapping",
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2rst/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-md2rst) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2rst") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForInvalidEncoding returns hints for sources that are not UTF-8.
func ForInvalidEncoding() string {
	return format("re-encode the file as UTF-8, e.g. iconv -t UTF-8")
}

// ForWarnings returns one combined hint for the given warning kinds.
// Unknown kinds are ignored; each kind is mentioned once.
func ForWarnings(kinds []string) string {
	seen := make(map[string]bool, len(kinds))
	var hints []string
	for _, k := range kinds {
		hint, ok := warningHints[k]
		if !ok || seen[k] {
			continue
		}
		seen[k] = true
		hints = append(hints, hint)
	}
	sort.Strings(hints)
	return formatHints(hints)
}

// ForStrict returns a hint for runs that failed because of --strict.
func ForStrict() string {
	return format("fix the reported lines or rerun without --strict")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
