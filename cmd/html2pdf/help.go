package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert HTML files or URLs to PDF (default)")
	fmt.Fprintln(w, "  doctor     Check the browser and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf convert <inputs...> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML files, glob patterns or URLs to PDF, one output per input.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  inputs    URLs or .htm/.html/.xhtml paths; quote globs such as 'docs/**/*.html'")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --inputs <list>            Inputs (replaces positional arguments)")
	fmt.Fprintln(w, "  -o, --out-file <name>          Output name for a single input (\"-\" = stdout)")
	fmt.Fprintln(w, "  -d, --out-dir <dir>            Output directory")
	fmt.Fprintln(w, "      --html                     Save rendered HTML instead of PDF")
	fmt.Fprintln(w, "  -c, --config <name>            Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -s, --page-size <s>            letter, legal, tabloid, ledger, a0-a6")
	fmt.Fprintln(w, "  -w, --width <len>              Paper width (px, in, cm, mm)")
	fmt.Fprintln(w, "      --height <len>             Paper height")
	fmt.Fprintln(w, "  -l, --landscape                Landscape orientation")
	fmt.Fprintln(w, "  -m, --margin <list>            top=1cm,bottom=1cm,left=1cm,right=1cm")
	fmt.Fprintln(w, "      --scale <f>                Rendering scale (0.1-2)")
	fmt.Fprintln(w, "      --page-ranges <s>          Pages to print, e.g. 1-5, 8")
	fmt.Fprintln(w, "      --header-template <html>   Page header template")
	fmt.Fprintln(w, "      --footer-template <html>   Page footer template")
	fmt.Fprintln(w, "      --print-background         Print background graphics")
	fmt.Fprintln(w, "      --omit-background          Transparent default background")
	fmt.Fprintln(w, "      --prefer-css-page-size     Let CSS @page size win")
	fmt.Fprintln(w, "      --media <s>                Emulated media: print, screen")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Outline:")
	fmt.Fprintln(w, "      --outline-tags <list>      Heading tags for bookmarks (default h1,h2,h3)")
	fmt.Fprintln(w, "      --outline-container-selector <css>")
	fmt.Fprintln(w, "                                 Element holding the headings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "  -t, --timeout <d>              Per-item timeout (default 30s)")
	fmt.Fprintln(w, "      --headless=false           Show the browser window")
	fmt.Fprintln(w, "      --debug                    Open each page for inspection, save nothing")
	fmt.Fprintln(w, "      --browser-endpoint <url>   Attach to a running browser (ws:// or http://)")
	fmt.Fprintln(w, "      --browser-args <flag>      Extra browser flag (repeatable)")
	fmt.Fprintln(w, "      --ignore-https-errors      Accept invalid TLS certificates")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Access:")
	fmt.Fprintln(w, "      --block-local              Block file: sub-resources")
	fmt.Fprintln(w, "      --block-remote             Block http(s) sub-resources")
	fmt.Fprintln(w, "      --allowed-paths <list>     Paths exempt from --block-local")
	fmt.Fprintln(w, "      --allowed-domains <list>   Domains exempt from --block-remote")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Injection:")
	fmt.Fprintln(w, "      --additional-script <ref>  Script URL or file (repeatable)")
	fmt.Fprintln(w, "      --additional-style <ref>   Stylesheet URL or file (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --warn                     Log page warnings and blocked requests")
	fmt.Fprintln(w, "  -q, --quiet                    Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                  Show debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2PDF_CONFIG, HTML2PDF_OUT_DIR, HTML2PDF_TIMEOUT, HTML2PDF_PAGE_SIZE,")
	fmt.Fprintln(w, "  HTML2PDF_MEDIA, HTML2PDF_BROWSER_ENDPOINT, HTML2PDF_BROWSER_ARGS,")
	fmt.Fprintln(w, "  HTML2PDF_LOG_LEVEL (also read from ./.env)")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that a browser can be found or reached and that output can be written.")
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
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
