package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// transcodeFlags holds flags that shape the transcoder and its warnings.
type transcodeFlags struct {
	anonymousLinks bool
	noLangCheck    bool
	strict         bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	title     string
	workers   int
	transcode transcodeFlags
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	output    string
	workers   int
	assetPath string
	transcode transcodeFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and warning details")
}

// addTranscodeFlags adds transcoder flags to a FlagSet.
func addTranscodeFlags(fs *flag.FlagSet, f *transcodeFlags) {
	fs.BoolVar(&f.anonymousLinks, "anonymous-links", false, "emit anonymous hyperlinks ending in __")
	fs.BoolVar(&f.noLangCheck, "no-lang-check", false, "do not warn about unknown fence languages")
	fs.BoolVar(&f.strict, "strict", false, "treat conversion warnings as failures")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.title, "title", "", "document title (\"\" = front matter, H1, file name)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	addCommonFlags(fs, &f.common)
	addTranscodeFlags(fs, &f.transcode)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addCommonFlags(fs, &f.common)
	addTranscodeFlags(fs, &f.transcode)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
