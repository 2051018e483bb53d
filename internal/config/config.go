package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2rst/internal/fileutil"
	"github.com/alnah/go-md2rst/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidMapping  = errors.New("invalid mapping")
)

// appDirName is the directory under os.UserConfigDir searched for named configs.
const appDirName = "go-md2rst"

// Field length limits.
const (
	MaxPathLength  = 4096 // Source, target and asset paths
	MaxTitleLength = 200  // Document and placeholder titles
	MaxEmailLength = 254  // RFC 5321
	MaxPhoneLength = 50   // "+1 555 0100 ext. 42"
	MaxURLLength   = 2048 // Browser limit
	MaxLabelLength = 100  // Link label
	MaxTextLength  = 2000 // Placeholder body text
	MaxNameLength  = 100  // Style and script names
)

// DefaultPlaceholderText is the body of generated placeholder pages.
const DefaultPlaceholderText = "This section is under development. Please check back later for updates."

// Config holds all configuration for a documentation build.
type Config struct {
	Input           InputConfig     `yaml:"input"`
	Output          OutputConfig    `yaml:"output"`
	Transcode       TranscodeConfig `yaml:"transcode"`
	Documents       []Document      `yaml:"documents"`
	Placeholders    []Placeholder   `yaml:"placeholders"`
	PlaceholderText string          `yaml:"placeholderText"`
	Contact         ContactConfig   `yaml:"contact"`
	Static          StaticConfig    `yaml:"static"`

	// Dir is the directory of the loaded file. Relative paths resolve against it.
	Dir string `yaml:"-"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to source)
}

// TranscodeConfig holds converter options.
type TranscodeConfig struct {
	AnonymousLinks bool  `yaml:"anonymousLinks"`
	CheckLanguages *bool `yaml:"checkLanguages"` // nil = enabled
}

// LanguageCheck reports whether fence languages are checked. Enabled unless
// explicitly set to false.
func (t TranscodeConfig) LanguageCheck() bool {
	return t.CheckLanguages == nil || *t.CheckLanguages
}

// Document maps one Markdown source to an output file and its title.
type Document struct {
	Source string `yaml:"source"` // Markdown file, relative to the config file
	Target string `yaml:"target"` // .rst file, relative to the output directory
	Title  string `yaml:"title"`  // Empty = front matter title, first H1, file name
}

// Placeholder is a page written only when its target does not exist yet.
type Placeholder struct {
	Target string `yaml:"target"`
	Title  string `yaml:"title"`
}

// ContactConfig is rendered at the end of placeholder pages.
type ContactConfig struct {
	Email string `yaml:"email"`
	Phone string `yaml:"phone"`
	Links []Link `yaml:"links"`
}

// Link represents a labeled hyperlink in the contact block.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// StaticConfig defines the static asset tree written next to the documents.
type StaticConfig struct {
	Dir       string   `yaml:"dir"`       // Relative to the output directory (default "_static")
	Images    []string `yaml:"images"`    // Image files, or directories whose images are copied
	Style     string   `yaml:"style"`     // Style sheet name (empty = none)
	Script    string   `yaml:"script"`    // Script name (empty = none)
	AssetPath string   `yaml:"assetPath"` // Custom asset directory (empty = embedded only)
}

// IsEmpty reports whether the contact block has nothing to render.
func (c ContactConfig) IsEmpty() bool {
	return c.Email == "" && c.Phone == "" && len(c.Links) == 0
}

// Resolve returns path relative to the config file directory. Absolute
// paths and paths of a manually built Config (empty Dir) are returned as is.
func (c *Config) Resolve(path string) string {
	if path == "" || c.Dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// Validate checks field lengths and mapping consistency.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	targets := make(map[string]string, len(c.Documents)+len(c.Placeholders))

	for i, doc := range c.Documents {
		field := fmt.Sprintf("documents[%d]", i)
		if doc.Source == "" || doc.Target == "" {
			return fmt.Errorf("%w: %s: source and target are required", ErrInvalidMapping, field)
		}
		if err := validateTarget(field, doc.Target, targets); err != nil {
			return err
		}
		if err := validateFieldLength(field+".source", doc.Source, MaxPathLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".title", doc.Title, MaxTitleLength); err != nil {
			return err
		}
	}

	for i, ph := range c.Placeholders {
		field := fmt.Sprintf("placeholders[%d]", i)
		if ph.Target == "" || ph.Title == "" {
			return fmt.Errorf("%w: %s: target and title are required", ErrInvalidMapping, field)
		}
		if err := validateTarget(field, ph.Target, targets); err != nil {
			return err
		}
		if err := validateFieldLength(field+".title", ph.Title, MaxTitleLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("placeholderText", c.PlaceholderText, MaxTextLength); err != nil {
		return err
	}

	// Validate contact fields
	if err := validateFieldLength("contact.email", c.Contact.Email, MaxEmailLength); err != nil {
		return err
	}
	if err := validateFieldLength("contact.phone", c.Contact.Phone, MaxPhoneLength); err != nil {
		return err
	}
	for i, link := range c.Contact.Links {
		if err := validateFieldLength(fmt.Sprintf("contact.links[%d].label", i), link.Label, MaxLabelLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("contact.links[%d].url", i), link.URL, MaxURLLength); err != nil {
			return err
		}
	}

	// Validate static fields
	if err := validateFieldLength("static.dir", c.Static.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("static.style", c.Static.Style, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("static.script", c.Static.Script, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("static.assetPath", c.Static.AssetPath, MaxPathLength); err != nil {
		return err
	}
	for i, img := range c.Static.Images {
		field := fmt.Sprintf("static.images[%d]", i)
		if err := validateFieldLength(field, img, MaxPathLength); err != nil {
			return err
		}
		// Entries without an extension are directories.
		if filepath.Ext(img) != "" && !strings.HasSuffix(img, "/") && !fileutil.IsImage(img) {
			return fmt.Errorf("%w: %s: %q is not an image", ErrInvalidMapping, field, img)
		}
	}

	return nil
}

// validateTarget rejects non-.rst targets, targets escaping the output
// directory, and targets already claimed by another mapping.
func validateTarget(field, target string, seen map[string]string) error {
	if err := validateFieldLength(field+".target", target, MaxPathLength); err != nil {
		return err
	}
	if !strings.EqualFold(filepath.Ext(target), ".rst") {
		return fmt.Errorf("%w: %s.target: %q must end in .rst", ErrInvalidMapping, field, target)
	}
	clean := filepath.Clean(target)
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s.target: %q must stay inside the output directory", ErrInvalidMapping, field, target)
	}
	if other, dup := seen[clean]; dup {
		return fmt.Errorf("%w: %s.target: %q already used by %s", ErrInvalidMapping, field, target, other)
	}
	seen[clean] = field
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: no mappings, no contact
// block, embedded default style and script.
func DefaultConfig() *Config {
	return &Config{
		PlaceholderText: DefaultPlaceholderText,
		Static: StaticConfig{
			Dir:    "_static",
			Style:  "default",
			Script: "default",
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if abs, err := filepath.Abs(filepath.Dir(configPath)); err == nil {
		cfg.Dir = abs
	} else {
		cfg.Dir = filepath.Dir(configPath)
	}

	return &cfg, nil
}

// applyDefaults fills fields left empty in the file.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.PlaceholderText == "" {
		c.PlaceholderText = def.PlaceholderText
	}
	if c.Static.Dir == "" {
		c.Static.Dir = def.Static.Dir
	}
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// current directory, then ~/.config/go-md2rst/, each with .yaml then .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	// User config directory is skipped when it cannot be determined
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
