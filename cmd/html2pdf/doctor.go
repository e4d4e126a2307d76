package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string      `json:"status"`
	Browser  browserInfo `json:"browser"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

// browserInfo holds local browser discovery or remote endpoint results.
type browserInfo struct {
	Endpoint  string `json:"endpoint,omitempty"`
	Reachable bool   `json:"reachable,omitempty"`
	Found     bool   `json:"found"`
	Path      string `json:"path,omitempty"`
	Version   string `json:"version,omitempty"`
	Sandbox   bool   `json:"sandbox"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds filesystem check results.
type systemInfo struct {
	TempWritable bool   `json:"temp_writable"`
	OutDir       string `json:"out_dir,omitempty"`
	OutWritable  bool   `json:"out_writable,omitempty"`
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json     bool
	outDir   string
	endpoint string
}

// doctorChecks are the checks the doctor runs; tests replace them.
type doctorChecks struct {
	lookPath   func() (string, bool)
	version    func(ctx context.Context, bin string) (string, error)
	resolveURL func(endpoint string) (string, error)
}

func defaultDoctorChecks() doctorChecks {
	return doctorChecks{
		lookPath: launcher.LookPath,
		version: func(ctx context.Context, bin string) (string, error) {
			out, err := exec.CommandContext(ctx, bin, "--version").Output() // #nosec G204 -- browser binary chosen by the user
			return strings.TrimSpace(string(out)), err
		},
		resolveURL: launcher.ResolveURL,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	var f doctorFlags
	fs := newDoctorFlagSet(&f)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "%s %v\n", color.RedString("error:"), fmt.Errorf("%w: %v", ErrUsage, err))
		return ExitUsage
	}

	result := runDoctor(ctx, &f, env, defaultDoctorChecks())

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitFatal
	}
	return ExitSuccess
}

// newDoctorFlagSet registers the doctor flags into f.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	fs.BoolVar(&f.json, "json", false, "machine-readable output")
	fs.StringVarP(&f.outDir, "out-dir", "d", "", "also check this output directory")
	fs.StringVar(&f.endpoint, "browser-endpoint", "", "check a running browser instead of a local one")
	return fs
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, f *doctorFlags, env *Environment, checks doctorChecks) *doctorResult {
	cwd, _ := env.Getwd()
	getenv := env.Getenv
	if cwd != "" {
		getenv = withDotEnv(cwd, env.Getenv)
	}

	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  getenv("ROD_NO_SANDBOX"),
			BrowserBin: getenv("ROD_BROWSER_BIN"),
		},
	}

	endpoint := f.endpoint
	if endpoint == "" {
		endpoint = getenv("HTML2PDF_BROWSER_ENDPOINT")
	}
	outDir := f.outDir
	if outDir == "" {
		outDir = getenv("HTML2PDF_OUT_DIR")
	}

	if endpoint != "" {
		checkEndpoint(result, endpoint, checks)
	} else {
		checkBrowser(ctx, result, checks)
	}
	checkEnvironment(result, getenv)
	checkSystem(result, cwd, outDir)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkBrowser detects a local Chrome/Chromium installation.
func checkBrowser(ctx context.Context, result *doctorResult, checks doctorChecks) {
	bin := result.Env.BrowserBin

	if bin == "" {
		var found bool
		bin, found = checks.lookPath()
		if !found {
			result.Errors = append(result.Errors,
				"Chrome/Chromium not found. Install Chrome, set ROD_BROWSER_BIN or use --browser-endpoint")
			return
		}
	}

	if !fileutil.FileExists(bin) {
		result.Errors = append(result.Errors, fmt.Sprintf("browser not found at %s", bin))
		return
	}

	result.Browser.Found = true
	result.Browser.Path = bin

	if v, err := checks.version(ctx, bin); err == nil {
		result.Browser.Version = v
	} else {
		result.Warnings = append(result.Warnings, fmt.Sprintf("could not get browser version: %v", err))
	}

	result.Browser.Sandbox = !sandboxDisabled(result.Env.NoSandbox)
}

// checkEndpoint verifies a DevTools endpoint. ws:// endpoints are used as
// given by the converter, so only http(s) endpoints can be queried here.
func checkEndpoint(result *doctorResult, endpoint string, checks doctorChecks) {
	result.Browser.Endpoint = endpoint

	if strings.HasPrefix(endpoint, "ws://") || strings.HasPrefix(endpoint, "wss://") {
		result.Browser.Reachable = true
		result.Warnings = append(result.Warnings,
			"websocket endpoint not queried; it is checked on the first conversion")
		return
	}

	if _, err := checks.resolveURL(endpoint); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("browser endpoint %s unreachable: %v", endpoint, err))
		return
	}
	result.Browser.Reachable = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// A remote browser runs its own sandbox.
	if result.Browser.Endpoint != "" {
		return
	}
	if (result.Env.Container || result.Env.CI) && !sandboxDisabled(result.Env.NoSandbox) {
		result.Warnings = append(result.Warnings,
			"container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// sandboxDisabled reports whether ROD_NO_SANDBOX turns the sandbox off.
func sandboxDisabled(v string) bool {
	return v == "1" || v == "true"
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer(getenv func(string) string) (bool, string) {
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory and, when given, the output
// directory accept new files.
func checkSystem(result *doctorResult, cwd, outDir string) {
	tmpDir := os.TempDir()
	if canWrite(tmpDir) {
		result.System.TempWritable = true
	} else {
		result.Errors = append(result.Errors, fmt.Sprintf("temp directory not writable: %s", tmpDir))
	}

	if outDir == "" {
		return
	}
	dir := outputPath(cwd, outDir, "")
	result.System.OutDir = dir
	switch {
	case !fileutil.DirExists(dir):
		result.Warnings = append(result.Warnings, fmt.Sprintf("output directory %s does not exist yet; it will be created", dir))
	case canWrite(dir):
		result.System.OutWritable = true
	default:
		result.Errors = append(result.Errors, fmt.Sprintf("output directory not writable: %s", dir))
	}
}

// canWrite creates and removes a file in dir.
func canWrite(dir string) bool {
	f, err := os.CreateTemp(dir, ".html2pdf-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	ok := color.GreenString("[OK]")
	bad := color.RedString("[ERROR]")
	warn := color.YellowString("[WARN]")

	fmt.Fprintln(w, "html2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Browser")
	switch {
	case r.Browser.Endpoint != "":
		if r.Browser.Reachable {
			fmt.Fprintf(w, "  %s Endpoint: %s\n", ok, r.Browser.Endpoint)
		} else {
			fmt.Fprintf(w, "  %s Endpoint: %s unreachable\n", bad, r.Browser.Endpoint)
		}
	case r.Browser.Found:
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Browser.Path)
		if r.Browser.Version != "" {
			fmt.Fprintf(w, "  %s Version: %s\n", ok, r.Browser.Version)
		}
		if r.Browser.Sandbox {
			fmt.Fprintf(w, "  %s Sandbox: enabled\n", ok)
		} else {
			fmt.Fprintf(w, "  %s Sandbox: disabled (ROD_NO_SANDBOX)\n", ok)
		}
	default:
		fmt.Fprintf(w, "  %s Not found\n", bad)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  %s Container: detected (%s)\n", ok, r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", ok)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", ok)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable\n", bad)
	}
	if r.System.OutWritable {
		fmt.Fprintf(w, "  %s Output directory: %s writable\n", ok, r.System.OutDir)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warn, msg)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", bad, msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
