package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2rst <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to reStructuredText")
	fmt.Fprintln(w, "  build      Build a documentation tree from a config file")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2rst help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2rst convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to reStructuredText.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to each source)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --title <s>           Document title (\"\" = front matter, H1, file name)")
	printTranscodeUsage(w)
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2rst build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert the documents mapped in a config file, write placeholder pages,")
	fmt.Fprintln(w, "and copy images, style sheet and script into the static directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: md2rst)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: output.defaultDir)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/, scripts/ and templates/")
	printTranscodeUsage(w)
}

func printTranscodeUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --anonymous-links     Emit `text <url>`__ hyperlinks")
	fmt.Fprintln(w, "      --no-lang-check       Keep unknown fence languages without warning")
	fmt.Fprintln(w, "      --strict              Fail documents that produce warnings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and warning details")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2RST_CONFIG, MD2RST_INPUT_DIR, MD2RST_OUTPUT_DIR, MD2RST_STYLE,")
	fmt.Fprintln(w, "  MD2RST_ASSET_PATH, MD2RST_WORKERS")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "build":
		printBuildUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2rst version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2rst help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
