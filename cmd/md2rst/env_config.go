package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-md2rst/internal/config"
)

const envPrefix = "MD2RST_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2RST_CONFIG: config file name or path
	InputDir   string // MD2RST_INPUT_DIR: default input directory
	OutputDir  string // MD2RST_OUTPUT_DIR: default output directory
	Style      string // MD2RST_STYLE: style sheet name
	AssetPath  string // MD2RST_ASSET_PATH: custom asset directory
	Workers    int    // MD2RST_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2RST_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2RST_CONFIG":     true,
	"MD2RST_INPUT_DIR":  true,
	"MD2RST_OUTPUT_DIR": true,
	"MD2RST_STYLE":      true,
	"MD2RST_ASSET_PATH": true,
	"MD2RST_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath: env.Getenv("MD2RST_CONFIG"),
		InputDir:   env.Getenv("MD2RST_INPUT_DIR"),
		OutputDir:  env.Getenv("MD2RST_OUTPUT_DIR"),
		Style:      env.Getenv("MD2RST_STYLE"),
		AssetPath:  env.Getenv("MD2RST_ASSET_PATH"),
	}

	// Invalid or non-positive values are ignored
	if workers := env.Getenv("MD2RST_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2RST_* variables.
// Helps catch typos like MD2RST_OUTPUT instead of MD2RST_OUTPUT_DIR.
func warnUnknownEnvVars(env *Environment) {
	for _, kv := range env.Environ() {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig fills config fields the config file left empty.
// CLI flags are applied later via mergeFlags and win over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Static.AssetPath == "" {
		cfg.Static.AssetPath = env.AssetPath
	}
	// The env style replaces the configured one, even a deliberate "none"
	if env.Style != "" {
		cfg.Static.Style = env.Style
	}
}
