package main

// Notes:
// - Runs the convert command end to end against fakes: the printer never
//   launches a browser and the writer keeps outputs in memory.
// - Inputs are real files in t.TempDir() so resolution and glob expansion
//   go through the production code.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// Batch behavior
// ---------------------------------------------------------------------------

func TestConvert_PartialFailureContinues(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.html", "c.html")
	te.printer.pdfErr = failOn("b.html", errors.New("net::ERR_ABORTED"))

	code := te.run(context.Background(), "a.html", "b.html", "c.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
	}

	if _, ok := te.writer.files[te.path("a.pdf")]; !ok {
		t.Errorf("a.pdf not written; got %v", te.writer.order)
	}
	if _, ok := te.writer.files[te.path("c.pdf")]; !ok {
		t.Errorf("c.pdf not written; got %v", te.writer.order)
	}
	if _, ok := te.writer.files[te.path("b.pdf")]; ok {
		t.Error("b.pdf written for a failed render")
	}

	stderr := te.stderr.String()
	if !strings.Contains(stderr, "conversion failed") || !strings.Contains(stderr, "b.html") {
		t.Errorf("stderr missing diagnostic for b.html: %s", stderr)
	}
	if len(te.printer.closedPages) != 3 {
		t.Errorf("closed pages = %v, want all 3", te.printer.closedPages)
	}
	if te.printer.closeCalls != 1 {
		t.Errorf("printer Close calls = %d, want 1", te.printer.closeCalls)
	}
	if !strings.Contains(te.stdout.String(), "Saved to") || !strings.Contains(te.stdout.String(), "(2/3)") {
		t.Errorf("stdout missing batch summary: %q", te.stdout)
	}
	if !strings.Contains(te.stdout.String(), "1 failed") {
		t.Errorf("stdout missing failure count: %q", te.stdout)
	}
}

func TestConvert_OrderFollowsInputs(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "z.html", "docs/a.html", "docs/b.html")

	code := te.run(context.Background(), "z.html", "docs/*.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}

	want := []string{te.uri("z.html"), te.uri("docs/a.html"), te.uri("docs/b.html")}
	if fmt.Sprint(te.printer.pdfCalls) != fmt.Sprint(want) {
		t.Errorf("render order = %v, want %v", te.printer.pdfCalls, want)
	}
	if te.progress.total != 3 || te.progress.current != 3 {
		t.Errorf("progress = %d/%d, want 3/3", te.progress.current, te.progress.total)
	}
	if te.progress.indeterminate {
		t.Error("multi-item batch should use a determinate bar")
	}
	if !te.progress.stopped {
		t.Error("progress not stopped")
	}
}

func TestConvert_URLInputPassesThrough(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)

	code := te.run(context.Background(), "https://example.com/")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if len(te.printer.pdfCalls) != 1 || te.printer.pdfCalls[0] != "https://example.com/" {
		t.Errorf("pdf calls = %v", te.printer.pdfCalls)
	}
	if _, ok := te.writer.files[te.path("example.com.pdf")]; !ok {
		t.Errorf("example.com.pdf not written; got %v", te.writer.order)
	}
	if !te.progress.indeterminate {
		t.Error("single-item batch should use the indeterminate spinner")
	}
}

func TestConvert_SingleItemConfirmation(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "page.html")

	code := te.run(context.Background(), "page.html", "-o", "report")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}

	want := te.path("report.pdf")
	if _, ok := te.writer.files[want]; !ok {
		t.Fatalf("%s not written; got %v", want, te.writer.order)
	}
	if !strings.Contains(te.stdout.String(), "Saved to "+want) {
		t.Errorf("stdout = %q, want confirmation for %s", te.stdout, want)
	}
}

func TestConvert_PassThroughToStdout(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "page.html")

	code := te.run(context.Background(), "page.html", "--out-file", "-")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if got, want := te.stdout.String(), "%PDF-1.7 "+te.uri("page.html"); got != want {
		t.Errorf("stdout = %q, want raw PDF bytes %q", got, want)
	}
	if len(te.writer.order) != 0 {
		t.Errorf("writer used in pass-through mode: %v", te.writer.order)
	}
}

func TestConvert_HTMLMode(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.htm")

	code := te.run(context.Background(), "--html", "--out-dir", "out", "a.html", "b.htm")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if len(te.printer.pdfCalls) != 0 {
		t.Errorf("PDF called in HTML mode: %v", te.printer.pdfCalls)
	}
	for _, name := range []string{"out/a.html", "out/b.html"} {
		if _, ok := te.writer.files[te.path(name)]; !ok {
			t.Errorf("%s not written; got %v", name, te.writer.order)
		}
	}
}

func TestConvert_DebugModeWritesNothing(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.html")

	code := te.run(context.Background(), "--debug", "a.html", "b.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if len(te.printer.renderCalls) != 2 {
		t.Errorf("render calls = %v, want 2", te.printer.renderCalls)
	}
	if len(te.writer.order) != 0 {
		t.Errorf("debug mode wrote %v", te.writer.order)
	}
	if te.progress.current != 0 {
		t.Errorf("progress = %d, want 0 in debug mode", te.progress.current)
	}
	if strings.Contains(te.stdout.String(), "Saved to") {
		t.Errorf("debug mode printed a summary: %q", te.stdout)
	}
	if len(te.printerOpts) != 1 || !te.printerOpts[0].Debug {
		t.Errorf("printer options = %+v, want Debug", te.printerOpts)
	}
}

func TestConvert_AbsoluteOutDir(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.html")
	outDir := t.TempDir()

	code := te.run(context.Background(), "-d", outDir, "a.html", "b.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if _, ok := te.writer.files[filepath.Join(outDir, "a.pdf")]; !ok {
		t.Errorf("a.pdf not written under %s; got %v", outDir, te.writer.order)
	}
}

// ---------------------------------------------------------------------------
// Fatal paths
// ---------------------------------------------------------------------------

func TestConvert_EmptyInputs(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)

	code := te.run(context.Background(), "convert")
	if code != ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, ExitFatal)
	}
	if len(te.printerOpts) != 0 {
		t.Error("printer created for an empty input list")
	}
	if !strings.Contains(te.stderr.String(), ErrNoInput.Error()) {
		t.Errorf("stderr = %q, want %q", te.stderr, ErrNoInput)
	}
}

func TestConvert_InvalidExtensionAbortsBeforeRender(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "notes.txt")

	code := te.run(context.Background(), "a.html", "notes.txt")
	if code != ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, ExitFatal)
	}
	if len(te.printerOpts) != 0 || len(te.printer.pdfCalls) != 0 {
		t.Error("printer used despite invalid input")
	}
	if !strings.Contains(te.stderr.String(), "accepted extensions") {
		t.Errorf("stderr missing extension hint: %q", te.stderr)
	}
}

func TestConvert_MissingInput(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)

	code := te.run(context.Background(), "missing/page.html")
	if code != ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, ExitFatal)
	}
	if !strings.Contains(te.stderr.String(), ErrInputNotFound.Error()) {
		t.Errorf("stderr = %q, want %q", te.stderr, ErrInputNotFound)
	}
}

func TestConvert_WriteFailureIsFatal(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.html")
	te.writer.err = errors.New("disk full")

	code := te.run(context.Background(), "a.html", "b.html")
	if code != ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, ExitFatal)
	}
	if len(te.printer.pdfCalls) != 1 {
		t.Errorf("pdf calls = %v, want the batch to stop after the first item", te.printer.pdfCalls)
	}
	if te.printer.closeCalls != 1 {
		t.Errorf("printer Close calls = %d, want 1", te.printer.closeCalls)
	}
	if !strings.Contains(te.stderr.String(), ErrWriteOutput.Error()) {
		t.Errorf("stderr = %q, want %q", te.stderr, ErrWriteOutput)
	}
}

func TestConvert_BrowserConnectIsFatal(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.html")
	te.printer.pdfErr = func(string) error {
		return fmt.Errorf("%w: no chrome", html2pdf.ErrBrowserConnect)
	}

	code := te.run(context.Background(), "a.html", "b.html")
	if code != ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, ExitFatal)
	}
	if len(te.printer.pdfCalls) != 1 {
		t.Errorf("pdf calls = %v, want 1", te.printer.pdfCalls)
	}
}

func TestConvert_CancelledContext(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := te.run(ctx, "a.html")
	if code != ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, ExitFatal)
	}
	if len(te.printer.pdfCalls) != 0 {
		t.Errorf("pdf calls = %v, want none", te.printer.pdfCalls)
	}
	if te.printer.closeCalls != 1 {
		t.Errorf("printer Close calls = %d, want 1", te.printer.closeCalls)
	}
	if !strings.Contains(te.stderr.String(), ErrInterrupted.Error()) {
		t.Errorf("stderr = %q, want %q", te.stderr, ErrInterrupted)
	}
}

func TestConvert_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"timeout", []string{"--timeout", "soon"}},
		{"negative timeout", []string{"--timeout", "-5s"}},
		{"margin", []string{"--margin", "top=wide"}},
		{"page size", []string{"--page-size", "b5"}},
		{"media", []string{"--media", "tv"}},
		{"scale", []string{"--scale", "3"}},
		{"nan scale", []string{"--scale", "nan"}},
		{"nan margin", []string{"--margin", "top=nan"}},
		{"infinite width", []string{"--width", "inf", "--height", "10cm"}},
		{"width without height", []string{"--width", "10cm"}},
		{"debug with html", []string{"--debug", "--html"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(t)
			te.touch(t, "a.html")

			code := te.run(context.Background(), append(tt.args, "a.html")...)
			if code != ExitFatal {
				t.Fatalf("exit code = %d, want %d", code, ExitFatal)
			}
			if !strings.Contains(te.stderr.String(), ErrInvalidOption.Error()) {
				t.Errorf("stderr = %q, want %q", te.stderr, ErrInvalidOption)
			}
			if len(te.printerOpts) != 0 {
				t.Error("printer created despite invalid options")
			}
		})
	}
}

func TestConvert_UnknownFlag(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)

	code := te.run(context.Background(), "convert", "--nope")
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(te.stderr.String(), "help convert") {
		t.Errorf("stderr = %q, want usage pointer", te.stderr)
	}
}

func TestConvert_HelpFlag(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)

	code := te.run(context.Background(), "convert", "--help")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if !strings.Contains(te.stdout.String(), "Usage: html2pdf convert") {
		t.Errorf("stdout = %q, want convert usage", te.stdout)
	}
}

// ---------------------------------------------------------------------------
// Configuration sources
// ---------------------------------------------------------------------------

func TestConvert_ConfigFile(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html")
	cfgPath := te.path("html2pdf.yaml")
	yaml := "input:\n  paths: [a.html]\nprint:\n  pageSize: a4\n  margin: top=1cm\nbrowser:\n  timeout: 45s\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	code := te.run(context.Background(), "convert", "--config", cfgPath)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if got := te.printer.lastOpts.PageSize; got != "a4" {
		t.Errorf("PageSize = %q, want a4", got)
	}
	if got := te.printer.lastOpts.Margin.Top; got != "1cm" {
		t.Errorf("Margin.Top = %q, want 1cm", got)
	}
	if got := te.printerOpts[0].Timeout; got != 45*time.Second {
		t.Errorf("Timeout = %v, want 45s", got)
	}
}

func TestConvert_ConfigNotFound(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)

	code := te.run(context.Background(), "convert", "--config", te.path("missing.yaml"))
	if code != ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, ExitFatal)
	}
	if !strings.Contains(te.stderr.String(), "hint:") {
		t.Errorf("stderr = %q, want a hint", te.stderr)
	}
}

func TestConvert_EnvironmentOverridesConfig(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.html")
	te.vars["HTML2PDF_OUT_DIR"] = "from-env"
	te.vars["HTML2PDF_PAGE_SIZE"] = "legal"

	code := te.run(context.Background(), "a.html", "b.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if _, ok := te.writer.files[te.path("from-env/a.pdf")]; !ok {
		t.Errorf("a.pdf not under HTML2PDF_OUT_DIR; got %v", te.writer.order)
	}
	if got := te.printer.lastOpts.PageSize; got != "legal" {
		t.Errorf("PageSize = %q, want legal", got)
	}
}

func TestConvert_FlagsOverrideEnvironment(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.html")
	te.vars["HTML2PDF_OUT_DIR"] = "from-env"

	code := te.run(context.Background(), "-d", "from-flag", "a.html", "b.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if _, ok := te.writer.files[te.path("from-flag/a.pdf")]; !ok {
		t.Errorf("a.pdf not under --out-dir; got %v", te.writer.order)
	}
}

func TestConvert_DotEnvFile(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html", "b.html")
	if err := os.WriteFile(te.path(".env"), []byte("HTML2PDF_OUT_DIR=dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	code := te.run(context.Background(), "a.html", "b.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if _, ok := te.writer.files[te.path("dotenv/a.pdf")]; !ok {
		t.Errorf("a.pdf not under .env out dir; got %v", te.writer.order)
	}
}

func TestConvert_QuietHidesProgress(t *testing.T) {
	t.Parallel()

	te := newTestEnv(t)
	te.touch(t, "a.html")

	code := te.run(context.Background(), "-q", "a.html")
	if code != ExitSuccess {
		t.Fatalf("exit code = %d; stderr: %s", code, te.stderr)
	}
	if len(te.progressOuts) != 1 || te.progressOuts[0] != io.Discard {
		t.Errorf("progress writer = %v, want io.Discard", te.progressOuts)
	}
}

// ---------------------------------------------------------------------------
// mergeFlags / buildSettings
// ---------------------------------------------------------------------------

func TestMergeFlags_CLIWins(t *testing.T) {
	t.Parallel()

	flags, _, err := parseConvertFlags([]string{
		"--page-size", "a5", "--headless=false", "--print-background=false",
		"--outline-tags", "h2", "--block-remote", "--allowed-domains", "cdn.example.com",
	})
	if err != nil {
		t.Fatal(err)
	}

	yes := true
	cfg := &config.Config{
		Print:   config.PrintConfig{PageSize: "letter", PrintBackground: true},
		Browser: config.BrowserConfig{Headless: &yes},
		Outline: config.OutlineConfig{Tags: []string{"h1"}},
	}
	mergeFlags(flags, cfg)

	if cfg.Print.PageSize != "a5" {
		t.Errorf("PageSize = %q, want a5", cfg.Print.PageSize)
	}
	if cfg.Print.PrintBackground {
		t.Error("explicit --print-background=false did not override config")
	}
	if cfg.Browser.Headless == nil || *cfg.Browser.Headless {
		t.Error("explicit --headless=false did not override config")
	}
	if fmt.Sprint(cfg.Outline.Tags) != "[h2]" {
		t.Errorf("Outline.Tags = %v, want [h2]", cfg.Outline.Tags)
	}
	if !cfg.Access.BlockRemote || fmt.Sprint(cfg.Access.AllowedDomains) != "[cdn.example.com]" {
		t.Errorf("Access = %+v", cfg.Access)
	}
}

func TestMergeFlags_UnsetKeepsConfig(t *testing.T) {
	t.Parallel()

	flags, _, err := parseConvertFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	no := false
	cfg := &config.Config{
		Print:   config.PrintConfig{Landscape: true, Scale: 0.8},
		Browser: config.BrowserConfig{Headless: &no},
	}
	mergeFlags(flags, cfg)

	if !cfg.Print.Landscape || cfg.Print.Scale != 0.8 {
		t.Errorf("Print = %+v, want config values kept", cfg.Print)
	}
	if cfg.Browser.Headless == nil || *cfg.Browser.Headless {
		t.Error("default --headless overrode the config file")
	}
}

func TestBuildSettings_Defaults(t *testing.T) {
	t.Parallel()

	flags, _, err := parseConvertFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	s, err := buildSettings(flags, config.DefaultConfig())
	if err != nil {
		t.Fatalf("buildSettings() error = %v", err)
	}

	if !s.printer.Headless {
		t.Error("Headless = false, want true by default")
	}
	if s.printer.Timeout != html2pdf.DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", s.printer.Timeout, html2pdf.DefaultTimeout)
	}
	if s.printer.Media != html2pdf.MediaPrint {
		t.Errorf("Media = %q, want print", s.printer.Media)
	}
	if s.pdf.PageSize != html2pdf.DefaultPageSize {
		t.Errorf("PageSize = %q, want %q", s.pdf.PageSize, html2pdf.DefaultPageSize)
	}
	if fmt.Sprint(s.pdf.Outline.Tags) != "[h1 h2 h3]" {
		t.Errorf("Outline.Tags = %v, want [h1 h2 h3]", s.pdf.Outline.Tags)
	}
	if s.pdf.PrintBackground {
		t.Error("PrintBackground = true, want false by default")
	}
}

func TestBuildSettings_DimensionsSkipDefaultPageSize(t *testing.T) {
	t.Parallel()

	flags, _, err := parseConvertFlags([]string{"--width", "210mm", "--height", "297mm"})
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	mergeFlags(flags, cfg)

	s, err := buildSettings(flags, cfg)
	if err != nil {
		t.Fatalf("buildSettings() error = %v", err)
	}
	if s.pdf.PageSize != "" {
		t.Errorf("PageSize = %q, want empty when dimensions are set", s.pdf.PageSize)
	}
}

// ---------------------------------------------------------------------------
// parseTimeout / resolveRawInputs / hintFor
// ---------------------------------------------------------------------------

func TestParseTimeout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", html2pdf.DefaultTimeout, false},
		{"2m", 2 * time.Minute, false},
		{"0s", 0, true},
		{"-1s", 0, true},
		{"later", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := parseTimeout(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOption) {
					t.Errorf("parseTimeout(%q) error = %v, want ErrInvalidOption", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseTimeout(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestResolveRawInputs(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Input: config.InputConfig{Paths: []string{"cfg.html"}}}

	if got := resolveRawInputs([]string{"flag.html"}, []string{"pos.html"}, cfg); fmt.Sprint(got) != "[flag.html]" {
		t.Errorf("flag inputs: got %v", got)
	}
	if got := resolveRawInputs(nil, []string{"pos.html"}, cfg); fmt.Sprint(got) != "[pos.html]" {
		t.Errorf("positional inputs: got %v", got)
	}
	if got := resolveRawInputs(nil, nil, cfg); fmt.Sprint(got) != "[cfg.html]" {
		t.Errorf("config inputs: got %v", got)
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	flags := &convertFlags{browser: browserFlags{endpoint: "http://chrome:9222"}}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"browser", fmt.Errorf("x: %w", html2pdf.ErrBrowserConnect), "http://chrome:9222"},
		{"not found", ErrInputNotFound, "relative to the working directory"},
		{"extension", ErrInvalidExtension, ".xhtml"},
		{"write", ErrWriteOutput, "--out-dir"},
		{"timeout", fmt.Errorf("x: %w", context.DeadlineExceeded), "--timeout"},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err, flags)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}
