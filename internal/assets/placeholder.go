package assets

import (
	"fmt"
	"strings"
	"text/template"
	"unicode/utf8"
)

// PlaceholderLink is a labeled hyperlink in the contact block.
type PlaceholderLink struct {
	Label string
	URL   string
}

// PlaceholderData holds the values rendered into a placeholder page.
type PlaceholderData struct {
	Title string
	Text  string
	Email string
	Phone string
	Links []PlaceholderLink
}

// HasContact reports whether the contact block is rendered.
func (d PlaceholderData) HasContact() bool {
	return d.Email != "" || d.Phone != "" || len(d.Links) > 0
}

// templateFuncs are available to page templates.
var templateFuncs = template.FuncMap{
	// underline repeats glyph once per rune of s.
	"underline": func(s, glyph string) string {
		return strings.Repeat(glyph, utf8.RuneCountInString(s))
	},
}

// RenderPlaceholder loads the placeholder template through loader and
// executes it with data.
func RenderPlaceholder(loader AssetLoader, data PlaceholderData) (string, error) {
	src, err := loader.LoadTemplate(PlaceholderTemplateName)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(PlaceholderTemplateName).Funcs(templateFuncs).Parse(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	data.Text = strings.TrimSpace(data.Text)

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return b.String(), nil
}
