package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	md2rst "github.com/alnah/go-md2rst"
	"github.com/alnah/go-md2rst/internal/config"
	"github.com/alnah/go-md2rst/internal/fileutil"
	"github.com/alnah/go-md2rst/internal/hints"
	flag "github.com/spf13/pflag"
)

// runConvertCmd parses convert flags and runs the conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
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
	cfg := config.DefaultConfig()
	if configName != "" {
		var err error
		if cfg, err = loadConfig(configName); err != nil {
			return err
		}
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags.transcode, cfg)

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}
	for i := range files {
		files[i].Title = flags.title
	}

	start := env.Now()
	poolSize := resolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d file(s) with %d worker(s)\n", len(files), poolSize)
	}

	results := convertBatch(ctx, newTranscoder(cfg), files, poolSize, flags.transcode.strict)
	summary := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %v\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	return batchError(summary)
}

// loadConfig loads a config by name or path, adding a hint when a name
// could not be found.
func loadConfig(nameOrPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(nameOrPath)
	if err == nil {
		return cfg, nil
	}
	hint := ""
	if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(nameOrPath) {
		hint = hints.ForConfigNotFound(config.SearchPaths(nameOrPath))
	}
	return nil, fmt.Errorf("loading config: %w%s", err, hint)
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags transcodeFlags, cfg *config.Config) {
	if flags.anonymousLinks {
		cfg.Transcode.AnonymousLinks = true
	}
	if flags.noLangCheck {
		disabled := false
		cfg.Transcode.CheckLanguages = &disabled
	}
}

// newTranscoder builds the transcoder described by cfg.
func newTranscoder(cfg *config.Config) *md2rst.Transcoder {
	return md2rst.NewTranscoder(
		md2rst.WithAnonymousLinks(cfg.Transcode.AnonymousLinks),
		md2rst.WithLanguageCheck(cfg.Transcode.LanguageCheck()),
	)
}
