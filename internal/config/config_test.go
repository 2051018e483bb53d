package config

// Notes:
// - Tests that chdir or write to the user config directory do not call
//   t.Parallel(); the rest of the package follows the same convention.
// - The unreadable-file case is skipped as root, where chmod 0000 does not
//   prevent reading.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes content to dir/name and returns the path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func boolPtr(b bool) *bool { return &b }

// ---------------------------------------------------------------------------
// TestDefaultConfig - Neutral defaults
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if len(cfg.Documents) != 0 || len(cfg.Placeholders) != 0 {
		t.Error("default config should have no mappings")
	}
	if cfg.PlaceholderText != DefaultPlaceholderText {
		t.Errorf("PlaceholderText = %q, want default", cfg.PlaceholderText)
	}
	if cfg.Static.Dir != "_static" {
		t.Errorf("Static.Dir = %q, want %q", cfg.Static.Dir, "_static")
	}
	if cfg.Static.Style != "default" || cfg.Static.Script != "default" {
		t.Errorf("Static style/script = %q/%q, want default/default", cfg.Static.Style, cfg.Static.Script)
	}
	if !cfg.Transcode.LanguageCheck() {
		t.Error("LanguageCheck() = false, want true by default")
	}
	if !cfg.Contact.IsEmpty() {
		t.Error("Contact.IsEmpty() = false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestTranscodeConfig_LanguageCheck(t *testing.T) {
	tests := []struct {
		name  string
		value *bool
		want  bool
	}{
		{"unset", nil, true},
		{"true", boolPtr(true), true},
		{"false", boolPtr(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranscodeConfig{CheckLanguages: tt.value}.LanguageCheck()
			if got != tt.want {
				t.Errorf("LanguageCheck() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), tt.fieldName) {
					t.Errorf("error = %v, want field name %q", err, tt.fieldName)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Mapping and length checks
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Documents = []Document{
			{Source: "../README.md", Target: "readme.rst", Title: "Project Overview"},
			{Source: "wiki/FAQ.md", Target: "faq.rst"},
		}
		cfg.Placeholders = []Placeholder{{Target: "docs/contact.rst", Title: "Contact"}}
		cfg.Contact = ContactConfig{
			Email: "team@example.com",
			Phone: "+1 555 0100",
			Links: []Link{{Label: "Issues", URL: "https://example.com/issues"}},
		}
		cfg.Static.Images = []string{"../images/logo.jpg", "../images/screenshots/", "../images/icons"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "document without source",
			mutate:  func(c *Config) { c.Documents[0].Source = "" },
			wantErr: ErrInvalidMapping,
		},
		{
			name:    "document without target",
			mutate:  func(c *Config) { c.Documents[0].Target = "" },
			wantErr: ErrInvalidMapping,
		},
		{
			name:    "target not rst",
			mutate:  func(c *Config) { c.Documents[0].Target = "readme.md" },
			wantErr: ErrInvalidMapping,
		},
		{
			name:    "target escapes output directory",
			mutate:  func(c *Config) { c.Documents[0].Target = "../outside.rst" },
			wantErr: ErrInvalidMapping,
		},
		{
			name:    "duplicate target",
			mutate:  func(c *Config) { c.Documents[1].Target = "./readme.rst" },
			wantErr: ErrInvalidMapping,
		},
		{
			name:    "placeholder collides with document",
			mutate:  func(c *Config) { c.Placeholders[0].Target = "faq.rst" },
			wantErr: ErrInvalidMapping,
		},
		{
			name:    "placeholder without title",
			mutate:  func(c *Config) { c.Placeholders[0].Title = "" },
			wantErr: ErrInvalidMapping,
		},
		{
			name:    "non-image static file",
			mutate:  func(c *Config) { c.Static.Images = append(c.Static.Images, "notes.txt") },
			wantErr: ErrInvalidMapping,
		},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Documents[0].Title = strings.Repeat("x", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "email too long",
			mutate:  func(c *Config) { c.Contact.Email = strings.Repeat("a", MaxEmailLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "link url too long",
			mutate:  func(c *Config) { c.Contact.Links[0].URL = "https://" + strings.Repeat("a", MaxURLLength) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "placeholder text too long",
			mutate:  func(c *Config) { c.PlaceholderText = strings.Repeat("x", MaxTextLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "style name too long",
			mutate:  func(c *Config) { c.Static.Style = strings.Repeat("s", MaxNameLength+1) },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Resolve(t *testing.T) {
	abs, _ := filepath.Abs("/srv/docs")
	cfg := &Config{Dir: abs}

	tests := []struct {
		name string
		cfg  *Config
		path string
		want string
	}{
		{"relative joins config dir", cfg, "../README.md", filepath.Join(abs, "..", "README.md")},
		{"absolute unchanged", cfg, abs, abs},
		{"empty unchanged", cfg, "", ""},
		{"manual config unchanged", &Config{}, "wiki/FAQ.md", "wiki/FAQ.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Resolve(tt.path); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and lookup
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		dir := t.TempDir()
		configPath := writeConfig(t, dir, "docs.yaml", `output:
  defaultDir: build
transcode:
  anonymousLinks: true
  checkLanguages: false
documents:
  - source: ../README.md
    target: readme.rst
    title: Project Overview
placeholders:
  - target: docs/faq.rst
    title: FAQ
contact:
  email: team@example.com
  links:
    - label: Issues
      url: https://example.com/issues
static:
  images: [../images/logo.jpg]
  style: default
`)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.DefaultDir != "build" {
			t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "build")
		}
		if !cfg.Transcode.AnonymousLinks {
			t.Error("Transcode.AnonymousLinks = false, want true")
		}
		if cfg.Transcode.LanguageCheck() {
			t.Error("LanguageCheck() = true, want false")
		}
		if len(cfg.Documents) != 1 || cfg.Documents[0].Title != "Project Overview" {
			t.Errorf("Documents = %+v", cfg.Documents)
		}
		if len(cfg.Placeholders) != 1 || cfg.Placeholders[0].Target != "docs/faq.rst" {
			t.Errorf("Placeholders = %+v", cfg.Placeholders)
		}
		if cfg.Contact.Email != "team@example.com" || len(cfg.Contact.Links) != 1 {
			t.Errorf("Contact = %+v", cfg.Contact)
		}
		if cfg.PlaceholderText != DefaultPlaceholderText {
			t.Errorf("PlaceholderText = %q, want default", cfg.PlaceholderText)
		}
		if cfg.Static.Dir != "_static" {
			t.Errorf("Static.Dir = %q, want default _static", cfg.Static.Dir)
		}
		if cfg.Static.Script != "" {
			t.Errorf("Static.Script = %q, want empty when not set in file", cfg.Static.Script)
		}

		wantDir, _ := filepath.Abs(dir)
		if cfg.Dir != wantDir {
			t.Errorf("Dir = %q, want %q", cfg.Dir, wantDir)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		configPath := writeConfig(t, t.TempDir(), "invalid.yaml", "documents: [unclosed")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		configPath := writeConfig(t, t.TempDir(), "unknown.yaml", "placeholderText: hi\nunknownField: x\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid mapping returns ErrInvalidMapping", func(t *testing.T) {
		configPath := writeConfig(t, t.TempDir(), "bad.yaml", "documents:\n  - source: a.md\n    target: a.txt\n")

		_, err := LoadConfig(configPath)
		if !errors.Is(err, ErrInvalidMapping) {
			t.Errorf("error = %v, want ErrInvalidMapping", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root can read files regardless of mode")
		}
		configPath := writeConfig(t, t.TempDir(), "unreadable.yaml", "placeholderText: x\n")
		if err := os.Chmod(configPath, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(configPath, 0600)

		_, err := LoadConfig(configPath)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})

	t.Run("config name resolves yml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "myconfig.yml", "placeholderText: from name\n")

		originalWd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("chdir: %v", err)
		}

		cfg, err := LoadConfig("myconfig")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.PlaceholderText != "from name" {
			t.Errorf("PlaceholderText = %q, want %q", cfg.PlaceholderText, "from name")
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		_, err := LoadConfig("no-such-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-name.yaml") {
			t.Errorf("error should list tried paths, got %v", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("docs")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "docs.yaml" || paths[1] != "docs.yml" {
		t.Errorf("local candidates = %v, want [docs.yaml docs.yml]", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join(appDirName, "docs.y")) {
			t.Errorf("user candidate %q not under %s", p, appDirName)
		}
	}
}
