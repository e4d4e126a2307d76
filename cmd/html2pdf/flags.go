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

// outputFlags holds destination flags.
type outputFlags struct {
	file string // single-input name, "-" for stdout
	dir  string
	html bool // capture HTML instead of printing PDF
}

// printFlags holds print-layout flags passed to the browser.
type printFlags struct {
	pageSize          string
	width             string
	height            string
	landscape         bool
	scale             float64
	margin            string
	printBackground   bool
	omitBackground    bool
	preferCSSPageSize bool
	pageRanges        string
	headerTemplate    string
	footerTemplate    string
	media             string
}

// browserFlags holds rendering engine flags.
type browserFlags struct {
	endpoint          string
	args              []string
	headless          bool
	debug             bool
	timeout           string
	ignoreHTTPSErrors bool
}

// accessFlags holds sub-resource access flags.
type accessFlags struct {
	blockLocal     bool
	blockRemote    bool
	allowedPaths   []string
	allowedDomains []string
}

// injectFlags holds content injection flags.
type injectFlags struct {
	scripts []string
	styles  []string
}

// outlineFlags holds PDF bookmark flags.
type outlineFlags struct {
	containerSelector string
	tags              []string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	inputs  []string
	output  outputFlags
	print   printFlags
	browser browserFlags
	access  accessFlags
	inject  injectFlags
	outline outlineFlags
	warn    bool

	// changed records the flags set on the command line, so that explicit
	// zero values ("--headless=false") still override the config file.
	changed map[string]bool
}

// isSet reports whether the named flag was given on the command line.
func (f *convertFlags) isSet(name string) bool {
	return f.changed[name]
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addOutputFlags adds destination flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.StringVarP(&f.file, "out-file", "o", "", "output file name for a single input (\"-\" = stdout)")
	fs.StringVarP(&f.dir, "out-dir", "d", "", "output directory")
	fs.BoolVar(&f.html, "html", false, "save rendered HTML instead of PDF")
}

// addPrintFlags adds print-layout flags to a FlagSet.
func addPrintFlags(fs *flag.FlagSet, f *printFlags) {
	fs.StringVarP(&f.pageSize, "page-size", "s", "", "paper format: letter, legal, tabloid, ledger, a0-a6")
	fs.StringVarP(&f.width, "width", "w", "", "paper width (px, in, cm, mm)")
	fs.StringVar(&f.height, "height", "", "paper height (px, in, cm, mm)")
	fs.BoolVarP(&f.landscape, "landscape", "l", false, "landscape orientation")
	fs.Float64Var(&f.scale, "scale", 0, "rendering scale (0.1-2)")
	fs.StringVarP(&f.margin, "margin", "m", "", "margins: top=1cm,bottom=1cm,left=1cm,right=1cm")
	fs.BoolVar(&f.printBackground, "print-background", false, "print background graphics")
	fs.BoolVar(&f.omitBackground, "omit-background", false, "transparent default background")
	fs.BoolVar(&f.preferCSSPageSize, "prefer-css-page-size", false, "let CSS @page size win")
	fs.StringVar(&f.pageRanges, "page-ranges", "", "pages to print, e.g. 1-5, 8")
	fs.StringVar(&f.headerTemplate, "header-template", "", "HTML template for the page header")
	fs.StringVar(&f.footerTemplate, "footer-template", "", "HTML template for the page footer")
	fs.StringVar(&f.media, "media", "", "emulated media: print, screen")
}

// addBrowserFlags adds rendering engine flags to a FlagSet.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.endpoint, "browser-endpoint", "", "DevTools endpoint of a running browser")
	fs.StringArrayVar(&f.args, "browser-args", nil, "extra browser flag, e.g. --browser-args=--lang=fr (repeatable)")
	fs.BoolVar(&f.headless, "headless", true, "run the browser without a window")
	fs.BoolVar(&f.debug, "debug", false, "show each page in a browser window instead of saving")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-item render timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.ignoreHTTPSErrors, "ignore-https-errors", false, "accept invalid TLS certificates")
}

// addAccessFlags adds sub-resource access flags to a FlagSet.
func addAccessFlags(fs *flag.FlagSet, f *accessFlags) {
	fs.BoolVar(&f.blockLocal, "block-local", false, "block file: sub-resources")
	fs.BoolVar(&f.blockRemote, "block-remote", false, "block http(s) sub-resources")
	fs.StringSliceVar(&f.allowedPaths, "allowed-paths", nil, "paths exempt from --block-local")
	fs.StringSliceVar(&f.allowedDomains, "allowed-domains", nil, "domains exempt from --block-remote")
}

// addInjectFlags adds content injection flags to a FlagSet.
func addInjectFlags(fs *flag.FlagSet, f *injectFlags) {
	fs.StringArrayVar(&f.scripts, "additional-script", nil, "script URL or file added after load (repeatable)")
	fs.StringArrayVar(&f.styles, "additional-style", nil, "stylesheet URL or file added after load (repeatable)")
}

// addOutlineFlags adds PDF bookmark flags to a FlagSet.
func addOutlineFlags(fs *flag.FlagSet, f *outlineFlags) {
	fs.StringVar(&f.containerSelector, "outline-container-selector", "", "CSS selector of the element holding the headings")
	fs.StringSliceVar(&f.tags, "outline-tags", nil, "heading tags turned into bookmarks (default h1,h2,h3)")
}

// newConvertFlagSet registers every convert flag into f. Completion
// scripts are generated from the same set.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringSliceVarP(&f.inputs, "inputs", "i", nil, "inputs (URLs or glob patterns)")
	fs.BoolVar(&f.warn, "warn", false, "log page console warnings and blocked requests")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addOutputFlags(fs, &f.output)
	addPrintFlags(fs, &f.print)
	addBrowserFlags(fs, &f.browser)
	addAccessFlags(fs, &f.access)
	addInjectFlags(fs, &f.inject)
	addOutlineFlags(fs, &f.outline)

	// Callers print usage themselves: to stdout for --help, stderr otherwise.
	fs.Usage = func() {}
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{changed: make(map[string]bool)}
	fs := newConvertFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}
