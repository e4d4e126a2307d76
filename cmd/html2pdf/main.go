package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommand names.
var commands = []string{"convert", "doctor", "version", "help", "completion"}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), stopSignals...)
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args (including the program name) and returns the
// process exit code. convert is the default command.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		return runConvertCmd(ctx, nil, env)
	}

	cmd, rest := args[1], args[2:]
	switch cmd {
	case "convert":
		return runConvertCmd(ctx, rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "html2pdf %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	case "completion":
		return runCompletionCmd(rest, env)
	}

	if looksLikeInput(cmd) {
		return runConvertCmd(ctx, args[1:], env)
	}

	fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
	printUsage(env.Stderr)
	return ExitUsage
}

// isCommand reports whether name is a subcommand.
func isCommand(name string) bool {
	return slices.Contains(commands, name)
}

// looksLikeInput reports whether a first argument that is not a command
// starts a convert invocation: a flag, a URL, a glob, or a file path.
func looksLikeInput(arg string) bool {
	if isCommand(arg) {
		return false
	}
	return strings.HasPrefix(arg, "-") ||
		fileutil.IsURL(arg) ||
		fileutil.HasMeta(arg) ||
		filepath.Ext(arg) != "" ||
		strings.ContainsAny(arg, `/\`)
}
