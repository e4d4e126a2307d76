package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput          = errors.New("no input specified")
	ErrInvalidExtension = errors.New("input must have an .htm, .html or .xhtml extension")
	ErrInputNotFound    = errors.New("input not found")
	ErrWriteOutput      = errors.New("failed to write output")
	ErrGetwd            = errors.New("cannot determine working directory")
	ErrInvalidOption    = errors.New("invalid option")
	ErrInterrupted      = errors.New("interrupted")
)

// stdoutName as --out-file writes a single result to standard output.
const stdoutName = "-"

// runSettings is the resolved, validated configuration of one run.
type runSettings struct {
	inputs  []string
	outFile string
	outDir  string
	html    bool
	debug   bool
	pdf     html2pdf.PDFOptions
	printer html2pdf.Options
}

// runConvertCmd parses flags, runs the batch and maps the result to an exit code.
func runConvertCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "%s %v\n", color.RedString("error:"), fmt.Errorf("%w: %v", ErrUsage, err))
		fmt.Fprintln(env.Stderr, "Run 'html2pdf help convert' for usage.")
		return ExitUsage
	}

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintf(env.Stderr, "%s %v%s\n", color.RedString("error:"), err, hintFor(err, flags))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	cwd, err := env.Getwd()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGetwd, err)
	}

	getenv := withDotEnv(cwd, env.Getenv)
	envCfg := loadEnvConfig(getenv)

	log, err := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose, envCfg.LogLevel)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(log, env.Environ())

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS value,
	// in which case the runtime default applies.
	_, _ = maxprocs.Set(maxprocs.Logger(log.Debugf))

	// Load configuration
	cfg, err := loadConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}

	// Environment over config file, then CLI over both
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	settings, err := buildSettings(flags, cfg)
	if err != nil {
		return err
	}
	settings.inputs = resolveRawInputs(flags.inputs, positionalArgs, cfg)
	settings.printer.Logger = log

	items, err := resolveInputs(settings.inputs, cwd, env.Glob)
	if err != nil {
		return err
	}
	log.WithField("count", len(items)).Debug("inputs resolved")

	progressOut := env.Stderr
	if flags.common.quiet {
		progressOut = io.Discard
	}

	b := &batch{
		printer:  env.NewPrinter(settings.printer),
		writer:   env.Writer,
		progress: env.NewProgress(progressOut, len(items) == 1),
		log:      log,
		stdout:   env.Stdout,
		cwd:      cwd,
		settings: settings,
	}
	return b.run(ctx, items)
}

// loadConfig loads the config named by the flag, else by HTML2PDF_CONFIG.
// With neither set, the empty default configuration is used.
func loadConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveRawInputs picks the raw input list: --inputs, else positional
// arguments, else the config file's input paths.
func resolveRawInputs(flagInputs, positional []string, cfg *config.Config) []string {
	switch {
	case len(flagInputs) > 0:
		return flagInputs
	case len(positional) > 0:
		return positional
	default:
		return cfg.Input.Paths
	}
}

// mergeFlags merges CLI flags into config. CLI values override config values.
// Booleans only override when given explicitly, so "--headless=false" and
// "--print-background=false" still beat the file.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	// Output flags
	if flags.output.file != "" {
		cfg.Output.File = flags.output.file
	}
	if flags.output.dir != "" {
		cfg.Output.Dir = flags.output.dir
	}
	if flags.isSet("html") {
		cfg.Output.HTML = flags.output.html
	}

	// Print flags
	p := &flags.print
	if p.pageSize != "" {
		cfg.Print.PageSize = p.pageSize
	}
	if p.width != "" {
		cfg.Print.Width = p.width
	}
	if p.height != "" {
		cfg.Print.Height = p.height
	}
	if flags.isSet("landscape") {
		cfg.Print.Landscape = p.landscape
	}
	if flags.isSet("scale") {
		cfg.Print.Scale = p.scale
	}
	if p.margin != "" {
		cfg.Print.Margin = p.margin
	}
	if flags.isSet("print-background") {
		cfg.Print.PrintBackground = p.printBackground
	}
	if flags.isSet("omit-background") {
		cfg.Print.OmitBackground = p.omitBackground
	}
	if flags.isSet("prefer-css-page-size") {
		cfg.Print.PreferCSSPageSize = p.preferCSSPageSize
	}
	if p.pageRanges != "" {
		cfg.Print.PageRanges = p.pageRanges
	}
	if p.headerTemplate != "" {
		cfg.Print.HeaderTemplate = p.headerTemplate
	}
	if p.footerTemplate != "" {
		cfg.Print.FooterTemplate = p.footerTemplate
	}
	if p.media != "" {
		cfg.Print.Media = p.media
	}

	// Browser flags
	b := &flags.browser
	if b.endpoint != "" {
		cfg.Browser.Endpoint = b.endpoint
	}
	if len(b.args) > 0 {
		cfg.Browser.Args = b.args
	}
	if flags.isSet("headless") {
		headless := b.headless
		cfg.Browser.Headless = &headless
	}
	if b.timeout != "" {
		cfg.Browser.Timeout = b.timeout
	}
	if flags.isSet("ignore-https-errors") {
		cfg.Browser.IgnoreHTTPSErrors = b.ignoreHTTPSErrors
	}

	// Access flags
	a := &flags.access
	if flags.isSet("block-local") {
		cfg.Access.BlockLocal = a.blockLocal
	}
	if flags.isSet("block-remote") {
		cfg.Access.BlockRemote = a.blockRemote
	}
	if len(a.allowedPaths) > 0 {
		cfg.Access.AllowedPaths = a.allowedPaths
	}
	if len(a.allowedDomains) > 0 {
		cfg.Access.AllowedDomains = a.allowedDomains
	}

	// Injection flags
	if len(flags.inject.scripts) > 0 {
		cfg.Inject.Scripts = flags.inject.scripts
	}
	if len(flags.inject.styles) > 0 {
		cfg.Inject.Styles = flags.inject.styles
	}

	// Outline flags
	if flags.outline.containerSelector != "" {
		cfg.Outline.ContainerSelector = flags.outline.containerSelector
	}
	if len(flags.outline.tags) > 0 {
		cfg.Outline.Tags = flags.outline.tags
	}
}

// buildSettings applies defaults to the merged config and validates every
// option that would otherwise fail on each item separately.
func buildSettings(flags *convertFlags, cfg *config.Config) (*runSettings, error) {
	timeout, err := parseTimeout(cfg.Browser.Timeout)
	if err != nil {
		return nil, err
	}

	headless := true
	if cfg.Browser.Headless != nil {
		headless = *cfg.Browser.Headless
	}

	margin := html2pdf.ParseMargin(cfg.Print.Margin)
	if err := margin.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}

	pageSize := strings.ToLower(cfg.Print.PageSize)
	if pageSize == "" && cfg.Print.Width == "" && cfg.Print.Height == "" {
		pageSize = html2pdf.DefaultPageSize
	}

	tags := cfg.Outline.Tags
	if len(tags) == 0 {
		tags = html2pdf.DefaultOutlineTags
	}

	s := &runSettings{
		outFile: cfg.Output.File,
		outDir:  cfg.Output.Dir,
		html:    cfg.Output.HTML,
		debug:   flags.browser.debug,
		pdf: html2pdf.PDFOptions{
			PageSize:          pageSize,
			Width:             cfg.Print.Width,
			Height:            cfg.Print.Height,
			Landscape:         cfg.Print.Landscape,
			Scale:             cfg.Print.Scale,
			Margin:            margin,
			PrintBackground:   cfg.Print.PrintBackground,
			OmitBackground:    cfg.Print.OmitBackground,
			PreferCSSPageSize: cfg.Print.PreferCSSPageSize,
			PageRanges:        cfg.Print.PageRanges,
			HeaderTemplate:    cfg.Print.HeaderTemplate,
			FooterTemplate:    cfg.Print.FooterTemplate,
			Outline: html2pdf.OutlineOptions{
				ContainerSelector: cfg.Outline.ContainerSelector,
				Tags:              tags,
			},
		},
		printer: html2pdf.Options{
			Headless:          headless,
			Debug:             flags.browser.debug,
			Timeout:           timeout,
			BrowserEndpoint:   cfg.Browser.Endpoint,
			BrowserArgs:       cfg.Browser.Args,
			IgnoreHTTPSErrors: cfg.Browser.IgnoreHTTPSErrors,
			Media:             strings.ToLower(cfg.Print.Media),
			Access: html2pdf.AccessPolicy{
				BlockLocal:     cfg.Access.BlockLocal,
				BlockRemote:    cfg.Access.BlockRemote,
				AllowedPaths:   cfg.Access.AllowedPaths,
				AllowedDomains: cfg.Access.AllowedDomains,
			},
			Scripts: cfg.Inject.Scripts,
			Styles:  cfg.Inject.Styles,
			Warn:    flags.warn,
		},
	}
	if s.printer.Media == "" {
		s.printer.Media = html2pdf.DefaultMedia
	}

	if err := validateSettings(s); err != nil {
		return nil, err
	}
	return s, nil
}

// parseTimeout parses a per-item timeout; empty means the default.
func parseTimeout(value string) (time.Duration, error) {
	if value == "" {
		return html2pdf.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q (use a duration like 30s or 2m)", ErrInvalidOption, value)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidOption, value)
	}
	return d, nil
}

// validateSettings rejects print options the browser would refuse.
func validateSettings(s *runSettings) error {
	if err := s.printer.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	if err := html2pdf.ValidatePageSize(s.pdf.PageSize); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	if (s.pdf.Width == "") != (s.pdf.Height == "") {
		return fmt.Errorf("%w: --width and --height must be set together", ErrInvalidOption)
	}
	for _, v := range []string{s.pdf.Width, s.pdf.Height} {
		if v == "" {
			continue
		}
		if _, err := html2pdf.ParseLength(v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOption, err)
		}
	}
	if s.pdf.Scale != 0 && !(s.pdf.Scale >= config.MinScale && s.pdf.Scale <= config.MaxScale) {
		return fmt.Errorf("%w: scale must be between %.1f and %.1f, got %.2f",
			ErrInvalidOption, config.MinScale, config.MaxScale, s.pdf.Scale)
	}
	if s.debug && s.html {
		return fmt.Errorf("%w: --debug and --html cannot be combined", ErrInvalidOption)
	}
	return nil
}

// hintFor returns the actionable hint for a fatal error, if any.
func hintFor(err error, flags *convertFlags) string {
	switch {
	case errors.Is(err, html2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect(flags.browser.endpoint)
	case errors.Is(err, ErrInputNotFound):
		return hints.ForInputNotFound()
	case errors.Is(err, ErrInvalidExtension):
		return hints.ForExtension(allowedExtensions)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if flags.common.config != "" {
			searched = config.SearchPaths(flags.common.config)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	}
	return ""
}
