package assets

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a style sheet by name using the default embedded loader.
// The name should not include the .css extension or path components.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadScript loads a script by name using the default embedded loader.
func LoadScript(name string) (string, error) {
	return defaultLoader.LoadScript(name)
}

// LoadTemplate loads a page template by name using the default embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
