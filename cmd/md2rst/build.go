package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2rst/internal/assets"
	"github.com/alnah/go-md2rst/internal/config"
	"github.com/alnah/go-md2rst/internal/fileutil"
	"github.com/alnah/go-md2rst/internal/hints"
	flag "github.com/spf13/pflag"
)

// defaultConfigName is looked up when neither --config nor MD2RST_CONFIG is set.
const defaultConfigName = "md2rst"

// Static output layout under static.dir.
const (
	imagesDir     = "images"
	customCSSPath = "css/custom.css"
	customJSPath  = "js/custom.js"
)

// runBuildCmd parses build flags and runs the documentation build.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: build takes no arguments, got %q", ErrUsage, positional[0])
	}
	return runBuild(ctx, flags, env)
}

// builder carries the resolved settings of one build.
type builder struct {
	cfg       *config.Config
	outputDir string
	staticDir string
	loader    assets.AssetLoader
	quiet     bool
	verbose   bool
	env       *Environment
}

// runBuild converts the configured documents, then writes placeholder pages,
// images, style sheet and script. Static files are written even when some
// documents fail; the failures are reported in the returned error.
func runBuild(ctx context.Context, flags *buildFlags, env *Environment) error {
	envCfg := loadEnvConfig(env)

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}
	if configName == "" {
		configName = defaultConfigName
	}
	cfg, err := loadConfig(configName)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags.transcode, cfg)

	assetPath := flags.assetPath
	if assetPath == "" {
		assetPath = cfg.Resolve(cfg.Static.AssetPath)
	}
	loader, err := assets.NewAssetResolver(assetPath)
	if err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}

	outputDir := resolveOutputDir(flags.output, cfg)
	if outputDir == "" {
		outputDir = cfg.Dir
	}

	b := &builder{
		cfg:       cfg,
		outputDir: outputDir,
		staticDir: filepath.Join(outputDir, cfg.Static.Dir),
		loader:    loader,
		quiet:     flags.common.quiet,
		verbose:   flags.common.verbose,
		env:       env,
	}

	files := b.documentFiles()
	poolSize := resolvePoolSize(workers)
	if b.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d document(s) with %d worker(s)\n", len(files), poolSize)
	}
	results := convertBatch(ctx, newTranscoder(cfg), files, poolSize, flags.transcode.strict)
	summary := printResultsWithWriter(results, b.quiet, b.verbose, env)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := b.writePlaceholders(); err != nil {
		return err
	}
	if err := b.copyImages(results); err != nil {
		return err
	}
	if err := b.writeStatic(); err != nil {
		return err
	}

	return batchError(summary)
}

// documentFiles maps the configured documents to files to convert.
// Missing sources are reported and skipped.
func (b *builder) documentFiles() []FileToConvert {
	files := make([]FileToConvert, 0, len(b.cfg.Documents))
	for _, doc := range b.cfg.Documents {
		src := b.cfg.Resolve(doc.Source)
		if !fileutil.FileExists(src) {
			fmt.Fprintf(b.env.Stderr, "SKIPPED %s: source not found\n", src)
			continue
		}
		files = append(files, FileToConvert{
			InputPath:  src,
			OutputPath: filepath.Join(b.outputDir, doc.Target),
			Title:      doc.Title,
		})
	}
	return files
}

// writePlaceholders renders placeholder pages that do not exist yet.
// Existing pages are never overwritten.
func (b *builder) writePlaceholders() error {
	links := make([]assets.PlaceholderLink, len(b.cfg.Contact.Links))
	for i, l := range b.cfg.Contact.Links {
		links[i] = assets.PlaceholderLink{Label: l.Label, URL: l.URL}
	}

	for _, ph := range b.cfg.Placeholders {
		path := filepath.Join(b.outputDir, ph.Target)
		if fileutil.FileExists(path) {
			if b.verbose {
				fmt.Fprintf(b.env.Stdout, "Kept %s\n", path)
			}
			continue
		}

		page, err := assets.RenderPlaceholder(b.loader, assets.PlaceholderData{
			Title: ph.Title,
			Text:  b.cfg.PlaceholderText,
			Email: b.cfg.Contact.Email,
			Phone: b.cfg.Contact.Phone,
			Links: links,
		})
		if err != nil {
			return fmt.Errorf("placeholder %s: %w", ph.Target, err)
		}
		if err := writeOutput(path, []byte(page)); err != nil {
			return err
		}
		if !b.quiet {
			fmt.Fprintf(b.env.Stdout, "Created %s\n", path)
		}
	}
	return nil
}

// copyImages copies configured images and the local images referenced by
// converted documents into <static>/images. Configured directories keep
// their structure under their own name; other images are copied flat.
// A referenced image that is missing, or whose name is already taken by
// another file, is reported and skipped.
func (b *builder) copyImages(results []ConversionResult) error {
	dst := filepath.Join(b.staticDir, imagesDir)
	copied := make(map[string]string) // destination -> source

	copyOne := func(src, target string) error {
		if prev, ok := copied[target]; ok {
			if prev != src {
				fmt.Fprintf(b.env.Stderr, "warning: %s not copied, %s already uses %s\n", src, prev, target)
			}
			return nil
		}
		if err := fileutil.CopyFile(src, target); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		copied[target] = src
		return nil
	}

	for _, img := range b.cfg.Static.Images {
		src := b.cfg.Resolve(img)
		info, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("static image %s: %w", img, err)
		}
		if !info.IsDir() {
			if err := copyOne(src, filepath.Join(dst, filepath.Base(src))); err != nil {
				return err
			}
			continue
		}
		root := filepath.Base(src)
		err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !fileutil.IsImage(path) {
				return nil
			}
			rel, err := filepath.Rel(src, path)
			if err != nil {
				return err
			}
			return copyOne(path, filepath.Join(dst, root, rel))
		})
		if err != nil {
			return err
		}
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		for _, img := range r.Images {
			if !fileutil.FileExists(img) {
				fmt.Fprintf(b.env.Stderr, "warning: %s: image %s not found\n", r.InputPath, img)
				continue
			}
			if err := copyOne(img, filepath.Join(dst, filepath.Base(img))); err != nil {
				return err
			}
		}
	}

	if len(copied) > 0 && !b.quiet {
		fmt.Fprintf(b.env.Stdout, "Copied %d image(s) to %s\n", len(copied), dst)
	}
	return nil
}

// writeStatic writes the configured style sheet and script.
// An empty name skips the file.
func (b *builder) writeStatic() error {
	if name := b.cfg.Static.Style; name != "" {
		css, err := b.loader.LoadStyle(name)
		if err != nil {
			hint := ""
			if errors.Is(err, assets.ErrStyleNotFound) {
				hint = hints.ForStyleNotFound(assets.EmbeddedStyles())
			}
			return fmt.Errorf("loading style: %w%s", err, hint)
		}
		if err := b.writeStaticFile(customCSSPath, css); err != nil {
			return err
		}
	}

	if name := b.cfg.Static.Script; name != "" {
		js, err := b.loader.LoadScript(name)
		if err != nil {
			return fmt.Errorf("loading script: %w", err)
		}
		if err := b.writeStaticFile(customJSPath, js); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) writeStaticFile(rel, content string) error {
	path := filepath.Join(b.staticDir, filepath.FromSlash(rel))
	if err := writeOutput(path, []byte(content)); err != nil {
		return err
	}
	if b.verbose {
		fmt.Fprintf(b.env.Stdout, "Created %s\n", path)
	}
	return nil
}
