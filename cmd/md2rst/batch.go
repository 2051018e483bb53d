package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	md2rst "github.com/alnah/go-md2rst"
	"github.com/alnah/go-md2rst/internal/fileutil"
	"github.com/alnah/go-md2rst/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrStrictWarnings   = errors.New("conversion warnings in strict mode")
	ErrConversionFailed = errors.New("conversion failed")
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input md2rst.Input) (*md2rst.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*md2rst.Transcoder)(nil)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Title      string
	Warnings   []md2rst.Warning
	Images     []string // local image files referenced by the source
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently with a fixed number of workers
// sharing one converter. Results keep the order of files.
func convertBatch(ctx context.Context, conv Converter, files []FileToConvert, workers int, strict bool) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], strict)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
// In strict mode a document with warnings is not written.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, strict bool) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered or configured path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadMarkdown, err))
	}
	source := string(content)

	result.Title = f.Title
	if result.Title == "" {
		result.Title = md2rst.ExtractTitle(source)
	}
	if result.Title == "" {
		result.Title = titleFromFilename(f.InputPath)
	}

	res, err := conv.Convert(ctx, md2rst.Input{Markdown: source, Title: result.Title})
	if err != nil {
		return finish(err)
	}
	result.Warnings = res.Warnings

	if strict && len(res.Warnings) > 0 {
		return finish(fmt.Errorf("%w: %d warning(s)", ErrStrictWarnings, len(res.Warnings)))
	}

	result.Images = localImages(f.InputPath, md2rst.ImageReferences(source))

	if err := writeOutput(f.OutputPath, []byte(res.RST)); err != nil {
		return finish(err)
	}
	return finish(nil)
}

// localImages resolves image references against the source directory and
// keeps those with an image extension.
func localImages(sourcePath string, refs []string) []string {
	var images []string
	for _, ref := range refs {
		if ref == "" || !fileutil.IsImage(ref) {
			continue
		}
		if !filepath.IsAbs(ref) {
			ref = filepath.Join(filepath.Dir(sourcePath), filepath.FromSlash(ref))
		}
		images = append(images, ref)
	}
	return images
}

// writeOutput atomically writes content, creating parent directories.
func writeOutput(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating directory: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(path, content, filePermissions); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteOutput, path, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Warnings  int
	Strict    int // failures caused by --strict
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		summary.Warnings += len(r.Warnings)
		switch {
		case r.Err == nil:
			summary.Succeeded++
		case errors.Is(r.Err, ErrStrictWarnings):
			summary.Failed++
			summary.Strict++
		default:
			summary.Failed++
		}
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// Warnings of failed documents are always shown; those of converted documents
// only with verbose.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) ResultSummary {
	summary := countResults(results)
	kinds := make(map[string]bool)

	for _, r := range results {
		for _, w := range r.Warnings {
			kinds[string(w.Kind)] = true
		}

		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, errorHint(r.Err))
			printWarnings(env, r)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
			printWarnings(env, r)
		} else if n := len(r.Warnings); n > 0 {
			fmt.Fprintf(env.Stdout, "Created %s (%d warning(s))\n", r.OutputPath, n)
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if !quiet && summary.Warnings > 0 {
		list := make([]string, 0, len(kinds))
		for k := range kinds {
			list = append(list, k)
		}
		sort.Strings(list)
		fmt.Fprintf(env.Stderr, "%d warning(s)%s\n", summary.Warnings, hints.ForWarnings(list))
	}

	return summary
}

func printWarnings(env *Environment, r ConversionResult) {
	for _, w := range r.Warnings {
		fmt.Fprintf(env.Stderr, "  %s:%s\n", r.InputPath, strings.TrimPrefix(w.String(), "line "))
	}
}

// errorHint returns the hint matching a per-document error.
func errorHint(err error) string {
	if errors.Is(err, md2rst.ErrInvalidEncoding) {
		return hints.ForInvalidEncoding()
	}
	return ""
}

// batchError converts a summary into the command error, nil when
// every document converted.
func batchError(summary ResultSummary) error {
	if summary.Failed == 0 {
		return nil
	}
	hint := ""
	if summary.Strict > 0 {
		hint = hints.ForStrict()
	}
	return fmt.Errorf("%w: %d of %d document(s)%s", ErrConversionFailed, summary.Failed, summary.Failed+summary.Succeeded, hint)
}
