package assets

// AssetLoader defines the contract for loading style sheets, scripts and
// page templates. Implementations may load from embedded assets, the
// filesystem, or elsewhere.
type AssetLoader interface {
	// LoadStyle loads a style sheet by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadScript loads a script by name (without .js extension).
	// Returns ErrScriptNotFound if the script doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadScript(name string) (string, error)

	// LoadTemplate loads a page template by name (without .rst extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// assetKind locates one type of asset: {dir}/{name}{ext}.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	scriptKind   = assetKind{dir: "scripts", ext: ".js", notFound: ErrScriptNotFound}
	templateKind = assetKind{dir: "templates", ext: ".rst", notFound: ErrTemplateNotFound}
)

// Names of the built-in assets.
const (
	DefaultStyleName        = "default"
	DefaultScriptName       = "default"
	PlaceholderTemplateName = "placeholder"
)
