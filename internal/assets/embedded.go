package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed styles/* scripts/* templates/*
var embedded embed.FS

// EmbeddedLoader loads assets from embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle loads a style sheet from embedded assets by name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	return e.load(styleKind, name)
}

// LoadScript loads a script from embedded assets by name.
func (e *EmbeddedLoader) LoadScript(name string) (string, error) {
	return e.load(scriptKind, name)
}

// LoadTemplate loads a page template from embedded assets by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	return e.load(templateKind, name)
}

func (e *EmbeddedLoader) load(kind assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	// embed.FS always uses forward slashes.
	content, err := embedded.ReadFile(kind.dir + "/" + name + kind.ext)
	if err != nil {
		return "", fmt.Errorf("%w: %q", kind.notFound, name)
	}

	return string(content), nil
}

// EmbeddedStyles returns the names of the embedded style sheets, sorted.
func EmbeddedStyles() []string {
	entries, err := embedded.ReadDir(styleKind.dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), styleKind.ext); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
