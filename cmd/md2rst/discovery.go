package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2rst/internal/config"
	"github.com/alnah/go-md2rst/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrNoMarkdownFiles    = errors.New("no markdown files found")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// maxWorkers bounds --workers and MD2RST_WORKERS.
const maxWorkers = 64

const rstExt = ".rst"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	Title      string // empty = front matter title, first H1, file name
}

// discoverFiles finds all markdown files to convert.
// Directory walks are lexical, so the order is stable across runs.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the .rst output path for a markdown file.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), base+rstExt)
	}

	if strings.HasSuffix(outputDir, rstExt) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, base+rstExt)
		}
	}

	return filepath.Join(outputDir, base+rstExt)
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Resolve(cfg.Input.DefaultDir), nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Resolve(cfg.Output.DefaultDir)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdown(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// titleFromFilename is the last-resort document title.
func titleFromFilename(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
