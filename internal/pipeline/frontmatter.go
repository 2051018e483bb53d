package pipeline

import (
	"strings"

	"github.com/alnah/go-md2rst/internal/yamlutil"
)

// frontMatterDelimiter opens a YAML front matter block on the first line.
const frontMatterDelimiter = "---"

// SplitFrontMatter separates a leading YAML front matter block from the body.
// The block must start on the first line with "---" and end with a "---" or
// "..." line. Blank lines after the block are dropped from the body.
//
// ok is false when there is no front matter; body is then lines unchanged and
// first is 1. When the block exists but does not decode to a YAML mapping,
// err is set, body starts after the closing delimiter, and the caller decides
// what to do with lines[:first-1].
func SplitFrontMatter(lines []string) (meta map[string]any, body []string, first int, ok bool, err error) {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != frontMatterDelimiter {
		return nil, lines, 1, false, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		trimmed := strings.TrimRight(lines[i], " \t")
		if trimmed == frontMatterDelimiter || trimmed == "..." {
			end = i
			break
		}
	}
	if end < 0 {
		return nil, lines, 1, false, nil
	}

	meta = map[string]any{}
	raw := strings.Join(lines[1:end], "\n")
	if strings.TrimSpace(raw) != "" {
		if meta, err = yamlutil.UnmarshalMapping([]byte(raw)); err != nil {
			return nil, lines[end+1:], end + 2, true, err
		}
	}

	rest := end + 1
	for rest < len(lines) && strings.TrimSpace(lines[rest]) == "" && rest < len(lines)-1 {
		rest++
	}
	return meta, lines[rest:], rest + 1, true, nil
}

// FrontMatterTitle returns the "title" field of the front matter, if any.
func FrontMatterTitle(source string) string {
	lines := strings.Split(normalizeSource(source), "\n")
	meta, _, _, ok, err := SplitFrontMatter(lines)
	if !ok || err != nil {
		return ""
	}
	if title, isString := meta["title"].(string); isString {
		return strings.TrimSpace(title)
	}
	return ""
}
