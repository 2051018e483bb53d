// Package assets provides the style sheet, script and page templates written
// next to converted documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (defaults)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is the loader used by the build command. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the asset
// is not found. This enables overriding specific assets while keeping defaults.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # copied to _static/css/custom.css
//	├── scripts/
//	│   └── {name}.js        # copied to _static/js/custom.js
//	└── templates/
//	    └── placeholder.rst  # text/template for placeholder pages
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
