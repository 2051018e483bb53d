package main

// Notes:
// - runMain: exit codes and output for every command. convert and build run
//   end to end against t.TempDir() trees.
// - main() itself is not tested: it only wires automaxprocs, signals and
//   os.Exit around runMain.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"md2rst"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: md2rst"},
		},
		{
			name:         "version",
			args:         []string{"md2rst", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"md2rst " + Version},
		},
		{
			name:         "help",
			args:         []string{"md2rst", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2rst", "Commands:", "build"},
		},
		{
			name:         "help convert",
			args:         []string{"md2rst", "help", "convert"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2rst convert", "--strict"},
		},
		{
			name:         "help build",
			args:         []string{"md2rst", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: md2rst build", "--asset-path"},
		},
		{
			name:         "help unknown command",
			args:         []string{"md2rst", "help", "nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Unknown command: nope"},
		},
		{
			name:         "unknown command",
			args:         []string{"md2rst", "unknown"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:     "convert --help",
			args:     []string{"md2rst", "convert", "--help"},
			wantCode: ExitSuccess,
		},
		{
			name:         "convert unknown flag",
			args:         []string{"md2rst", "convert", "--margin", "1"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"invalid usage"},
		},
		{
			name:         "convert nonexistent file",
			args:         []string{"md2rst", "convert", "nonexistent.md"},
			wantCode:     ExitIO,
			wantInStderr: []string{"nonexistent.md"},
		},
		{
			name:         "convert without input",
			args:         []string{"md2rst", "convert"},
			wantCode:     ExitIO,
			wantInStderr: []string{"no input specified"},
		},
		{
			name:     "convert invalid workers",
			args:     []string{"md2rst", "convert", "--workers=-3", "doc.md"},
			wantCode: ExitUsage,
		},
		{
			name:         "convert config name not found",
			args:         []string{"md2rst", "convert", "-c", "no-such-config-xyz", "doc.md"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "hint: use --config"},
		},
		{
			name:         "build takes no arguments",
			args:         []string{"md2rst", "build", "extra"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"build takes no arguments"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(context.Background(), tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain(%v) = %d, want %d\nstderr: %s", tt.args, code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"md2rst", "convert", "-v", "a.md"}, true},
		{[]string{"md2rst", "build", "--verbose"}, true},
		{[]string{"md2rst", "convert", "a.md"}, false},
		{[]string{"md2rst", "convert", "--", "-v"}, false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Convert - End-to-end directory conversion
// ---------------------------------------------------------------------------

func TestRunMain_Convert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "wiki/guide.md", "# Guide\n\nSee [docs](https://example.com).\n")
	writeFile(t, dir, "wiki/sub/api.md", "# API\n\n```go\nfunc main() {}\n```\n")
	out := filepath.Join(dir, "out")

	env, stdout, stderr := testEnv(nil)
	code := runMain(context.Background(), []string{"md2rst", "convert", filepath.Join(dir, "wiki"), "-o", out, "-w", "2"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	want := "Guide\n=====\n\nSee `docs <https://example.com>`_.\n"
	if got := readFile(t, filepath.Join(out, "guide.rst")); got != want {
		t.Errorf("guide.rst =\n%q\nwant\n%q", got, want)
	}
	if got := readFile(t, filepath.Join(out, "sub", "api.rst")); !strings.Contains(got, ".. code-block:: go") {
		t.Errorf("api.rst = %q", got)
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunMain_ConvertVerbose(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "notes.md", "# Notes\n")

	env, _, stderr := testEnv(nil)
	code := runMain(context.Background(), []string{"md2rst", "convert", "-v", "-w", "1", src}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	// Fixed clock in testEnv.
	for _, want := range []string{"Converting 1 file(s) with 1 worker(s)", "Done in 0s"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr = %q, want it to contain %q", stderr.String(), want)
		}
	}
}

func TestRunMain_ConvertStrict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeFile(t, dir, "broken.md", "# Broken\n\n```python\nprint(1)\n")

	env, _, stderr := testEnv(nil)
	code := runMain(context.Background(), []string{"md2rst", "convert", "--strict", src}, env)

	if code != ExitGeneral {
		t.Errorf("runMain() = %d, want %d", code, ExitGeneral)
	}
	if fileExists(filepath.Join(dir, "broken.rst")) {
		t.Error("strict failure must not write output")
	}
	for _, want := range []string{"FAILED", "unterminated-fence", "hint: fix the reported lines"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr should contain %q, got %q", want, stderr.String())
		}
	}
}

func TestRunMain_ConvertFromEnvironment(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "in/a.md", "# A\n")
	env, _, stderr := testEnv(map[string]string{
		"MD2RST_INPUT_DIR":  filepath.Join(dir, "in"),
		"MD2RST_OUTPUT_DIR": filepath.Join(dir, "out"),
		"MD2RST_WORKERS":    "1",
	})

	code := runMain(context.Background(), []string{"md2rst", "convert", "-q"}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}
	if !fileExists(filepath.Join(dir, "out", "a.rst")) {
		t.Error("a.rst not written to MD2RST_OUTPUT_DIR")
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_Build - End-to-end documentation build
// ---------------------------------------------------------------------------

const buildConfig = `output:
  defaultDir: site
documents:
  - source: src/README.md
    target: readme.rst
    title: Project Overview
  - source: src/missing.md
    target: missing.rst
placeholders:
  - target: faq.rst
    title: FAQ
  - target: kept.rst
    title: Kept
contact:
  email: team@example.com
static:
  images: [assets/logo.png, assets/shots]
  style: default
  script: default
`

func TestRunMain_Build(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "md2rst.yaml", buildConfig)
	writeFile(t, dir, "src/README.md", "# Readme\n\n![diagram](img/diagram.png)\n\nText.\n")
	writeFile(t, dir, "src/img/diagram.png", "png")
	writeFile(t, dir, "assets/logo.png", "png")
	writeFile(t, dir, "assets/shots/one.png", "png")
	writeFile(t, dir, "assets/shots/notes.txt", "skip")
	writeFile(t, dir, "site/kept.rst", "custom\n")

	env, _, stderr := testEnv(nil)
	code := runMain(context.Background(), []string{"md2rst", "build", "-c", cfgPath}, env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d\nstderr: %s", code, stderr.String())
	}

	site := filepath.Join(dir, "site")

	readme := readFile(t, filepath.Join(site, "readme.rst"))
	if !strings.HasPrefix(readme, "Project Overview\n================\n\n") {
		t.Errorf("readme.rst title block wrong: %q", readme)
	}
	if !strings.Contains(readme, ".. image:: img/diagram.png") {
		t.Errorf("readme.rst should reference the image: %q", readme)
	}

	if !strings.Contains(stderr.String(), "SKIPPED") || !strings.Contains(stderr.String(), "missing.md") {
		t.Errorf("missing source should be reported, stderr: %q", stderr.String())
	}
	if fileExists(filepath.Join(site, "missing.rst")) {
		t.Error("missing source must not produce output")
	}

	faq := readFile(t, filepath.Join(site, "faq.rst"))
	for _, want := range []string{"FAQ\n===\n", "under development", "* **Email**: team@example.com"} {
		if !strings.Contains(faq, want) {
			t.Errorf("faq.rst should contain %q, got %q", want, faq)
		}
	}
	if got := readFile(t, filepath.Join(site, "kept.rst")); got != "custom\n" {
		t.Errorf("existing placeholder overwritten: %q", got)
	}

	static := filepath.Join(site, "_static")
	for _, rel := range []string{
		"images/logo.png",
		"images/shots/one.png",
		"images/diagram.png",
		"css/custom.css",
		"js/custom.js",
	} {
		if !fileExists(filepath.Join(static, filepath.FromSlash(rel))) {
			t.Errorf("%s not written", rel)
		}
	}
	if fileExists(filepath.Join(static, "images", "shots", "notes.txt")) {
		t.Error("non-image files must not be copied")
	}
}

func TestRunMain_BuildUnknownStyle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "md2rst.yaml", "static:\n  style: neon\n")

	env, _, stderr := testEnv(nil)
	code := runMain(context.Background(), []string{"md2rst", "build", "-c", cfgPath, "-o", filepath.Join(dir, "out")}, env)

	if code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "available: default") {
		t.Errorf("stderr should list available styles, got %q", stderr.String())
	}
}

func TestRunMain_BuildInvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "md2rst.yaml", "documents:\n  - source: a.md\n    target: a.html\n")

	env, _, _ := testEnv(nil)
	if code := runMain(context.Background(), []string{"md2rst", "build", "-c", cfgPath}, env); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
}

func TestMain(m *testing.M) {
	// Builds without --config look up md2rst.yaml in the working directory;
	// run from an empty one so a stray file cannot leak into tests.
	dir, err := os.MkdirTemp("", "md2rst-cli-*")
	if err != nil {
		panic(err)
	}
	if err := os.Chdir(dir); err != nil {
		panic(err)
	}
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}
