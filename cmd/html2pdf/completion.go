package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var supportedShells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagValue flagType = iota // free-form value
	flagBool
	flagEnum // has predefined values
	flagFile // file with given extensions
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string
	Short  string // empty if none
	Type   flagType
	Desc   string
	Values []string // enum values
	Exts   []string // file extensions, without the dot
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
}

// completionMeta holds completion hints the FlagSet cannot express.
type completionMeta struct {
	Values []string
	Exts   []string
	IsDir  bool
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"page-size":         {Values: html2pdf.PageSizes()},
	"media":             {Values: []string{html2pdf.MediaPrint, html2pdf.MediaScreen}},
	"config":            {Exts: []string{"yaml", "yml"}},
	"additional-style":  {Exts: []string{"css"}},
	"additional-script": {Exts: []string{"js"}},
	"out-dir":           {IsDir: true},
	"allowed-paths":     {IsDir: true},
}

// inputExts are the file arguments offered for convert.
var inputExts = []string{"htm", "html", "xhtml"}

// extractFlags reads flag definitions from fs, enriched with
// flagCompletionMeta.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var defs []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}
		if f.Value.Type() == "bool" {
			fd.Type = flagBool
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type, fd.Values = flagEnum, meta.Values
			case len(meta.Exts) > 0:
				fd.Type, fd.Exts = flagFile, meta.Exts
			case meta.IsDir:
				fd.Type = flagDir
			}
		}
		defs = append(defs, fd)
	})

	return defs
}

// getCommands returns the command registry for completion. Flags come
// from the same FlagSets the commands parse with.
func getCommands() []commandDef {
	return []commandDef{
		{Name: "convert", Desc: "Convert HTML files or URLs to PDF", Flags: extractFlags(newConvertFlagSet(&convertFlags{}))},
		{Name: "doctor", Desc: "Check the browser and environment", Flags: extractFlags(newDoctorFlagSet(&doctorFlags{}))},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	cmds := getCommands()
	switch shell {
	case ShellBash:
		return writeScript(w, bashScript(cmds))
	case ShellZsh:
		return writeScript(w, zshScript(cmds))
	case ShellFish:
		return writeScript(w, fishScript(cmds))
	case ShellPowerShell:
		return writeScript(w, powerShellScript(cmds))
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

func writeScript(w io.Writer, script string) error {
	_, err := io.WriteString(w, script)
	return err
}

// runCompletionCmd handles the completion command.
func runCompletionCmd(args []string, env *Environment) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printCompletionUsage(env.Stdout)
		return ExitSuccess
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}
	return ExitSuccess
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a shell completion script for bash, zsh, fish or powershell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:        eval \"$(html2pdf completion bash)\"          # in ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:         eval \"$(html2pdf completion zsh)\"           # in ~/.zshrc, after compinit")
	fmt.Fprintln(w, "  Fish:        html2pdf completion fish > ~/.config/fish/completions/html2pdf.fish")
	fmt.Fprintln(w, "  PowerShell:  html2pdf completion powershell | Out-String | Invoke-Expression")
}

// ---------------------------------------------------------------------------
// Script generators
// ---------------------------------------------------------------------------

// plainDesc strips characters that need quoting in any of the shells.
func plainDesc(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\'', '"', '[', ']', ':', '\\', '`', '$':
			return -1
		}
		return r
	}, s)
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func findCommand(cmds []commandDef, name string) commandDef {
	for _, c := range cmds {
		if c.Name == name {
			return c
		}
	}
	return commandDef{}
}

// flagWords lists every spelling of the flags, short forms included.
func flagWords(defs []flagDef) []string {
	var words []string
	for _, f := range defs {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return words
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	convert := findCommand(cmds, "convert")
	doctor := findCommand(cmds, "doctor")

	b.WriteString("# bash completion for html2pdf\n")
	b.WriteString("shopt -s extglob\n\n")
	b.WriteString("_html2pdf_completions() {\n")
	b.WriteString("    local cur prev flags\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	fmt.Fprintf(&b, "    local commands=%q\n\n", strings.Join(commandNames(cmds), " "))

	b.WriteString("    case \"${prev}\" in\n")
	seen := map[string]bool{}
	for _, f := range append(convert.Flags, doctor.Flags...) {
		if seen[f.Long] {
			continue
		}
		seen[f.Long] = true
		var action string
		switch f.Type {
		case flagEnum:
			action = fmt.Sprintf("COMPREPLY=( $(compgen -W %q -- \"${cur}\") )", strings.Join(f.Values, " "))
		case flagFile:
			action = fmt.Sprintf("COMPREPLY=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") )", strings.Join(f.Exts, "|"))
		case flagDir:
			action = "COMPREPLY=( $(compgen -d -- \"${cur}\") )"
		default:
			continue
		}
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		fmt.Fprintf(&b, "        %s) %s; return ;;\n", pattern, action)
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${COMP_WORDS[1]}\" in\n")
	fmt.Fprintf(&b, "        doctor) flags=%q ;;\n", strings.Join(flagWords(doctor.Flags), " "))
	b.WriteString("        completion) COMPREPLY=( $(compgen -W \"bash zsh fish powershell\" -- \"${cur}\") ); return ;;\n")
	b.WriteString("        help) COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") ); return ;;\n")
	b.WriteString("        version) return ;;\n")
	fmt.Fprintf(&b, "        *) flags=%q ;;\n", strings.Join(flagWords(convert.Flags), " "))
	b.WriteString("    esac\n\n")

	b.WriteString("    if [[ \"${cur}\" == -* ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${flags}\" -- \"${cur}\") )\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	b.WriteString("        COMPREPLY=( $(compgen -W \"${commands}\" -- \"${cur}\") )\n")
	b.WriteString("    fi\n")
	fmt.Fprintf(&b, "    COMPREPLY+=( $(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\") )\n", strings.Join(inputExts, "|"))
	b.WriteString("}\n\n")
	b.WriteString("complete -F _html2pdf_completions html2pdf\n")
	return b.String()
}

// zshFlagSpec renders one _arguments spec.
func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"*.(" + strings.Join(f.Exts, "|") + ")\""
	case flagDir:
		action = ":dir:_files -/"
	default:
		action = ":value:"
	}
	desc := "[" + plainDesc(f.Desc) + "]"
	if f.Short == "" {
		return "'--" + f.Long + desc + action + "'"
	}
	return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef html2pdf\n\n")
	b.WriteString("_html2pdf() {\n")
	b.WriteString("  local -a commands convert_flags doctor_flags\n")
	b.WriteString("  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, plainDesc(c.Desc))
	}
	b.WriteString("  )\n")
	for _, name := range []string{"convert", "doctor"} {
		fmt.Fprintf(&b, "  %s_flags=(\n", name)
		for _, f := range findCommand(cmds, name).Flags {
			fmt.Fprintf(&b, "    %s\n", zshFlagSpec(f))
		}
		b.WriteString("  )\n")
	}
	inputs := "'*:input:_files -g \"*.(" + strings.Join(inputExts, "|") + ")\"'"
	b.WriteString("\n  if (( CURRENT == 2 )) && [[ ${words[CURRENT]} != -* ]]; then\n")
	b.WriteString("    _describe -t commands 'html2pdf command' commands\n")
	fmt.Fprintf(&b, "    _files -g \"*.(%s)\"\n", strings.Join(inputExts, "|"))
	b.WriteString("    return\n")
	b.WriteString("  fi\n\n")
	b.WriteString("  case ${words[2]} in\n")
	b.WriteString("    doctor) _arguments -s $doctor_flags ;;\n")
	b.WriteString("    completion) _values 'shell' bash zsh fish powershell ;;\n")
	b.WriteString("    help) _describe -t commands 'command' commands ;;\n")
	b.WriteString("    version) ;;\n")
	fmt.Fprintf(&b, "    *) _arguments -s $convert_flags %s ;;\n", inputs)
	b.WriteString("  esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _html2pdf html2pdf\n")
	return b.String()
}

// fishFlagLine renders one complete command for a flag.
func fishFlagLine(cond string, f flagDef) string {
	line := fmt.Sprintf("complete -c html2pdf -n '%s'", cond)
	if f.Short != "" {
		line += " -s " + f.Short
	}
	line += " -l " + f.Long
	switch f.Type {
	case flagBool:
	case flagEnum:
		line += " -x -a '" + strings.Join(f.Values, " ") + "'"
	case flagFile:
		line += " -r -F"
	case flagDir:
		line += " -x -a '(__fish_complete_directories)'"
	default:
		line += " -r"
	}
	return line + " -d '" + plainDesc(f.Desc) + "'"
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	others := "doctor version help completion"

	b.WriteString("# fish completion for html2pdf\n\n")
	b.WriteString("function __fish_html2pdf_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_html2pdf_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c html2pdf -n __fish_html2pdf_needs_command -f -a %s -d '%s'\n", c.Name, plainDesc(c.Desc))
	}
	b.WriteString("\n")

	// convert is the default command, so its flags apply unless another
	// command was given.
	convertCond := "not __fish_seen_subcommand_from " + others
	for _, f := range findCommand(cmds, "convert").Flags {
		b.WriteString(fishFlagLine(convertCond, f) + "\n")
	}
	for _, f := range findCommand(cmds, "doctor").Flags {
		b.WriteString(fishFlagLine("__fish_html2pdf_using_command doctor", f) + "\n")
	}
	b.WriteString("\n")
	b.WriteString("complete -c html2pdf -n '__fish_html2pdf_using_command completion' -f -a 'bash zsh fish powershell'\n")
	fmt.Fprintf(&b, "complete -c html2pdf -n '__fish_html2pdf_using_command help' -f -a '%s'\n", strings.Join(commandNames(cmds), " "))
	return b.String()
}

// psList renders a PowerShell array literal.
func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# PowerShell completion for html2pdf\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName html2pdf -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	fmt.Fprintf(&b, "    $commands = %s\n", psList(commandNames(cmds)))
	fmt.Fprintf(&b, "    $convertFlags = %s\n", psList(flagWords(findCommand(cmds, "convert").Flags)))
	fmt.Fprintf(&b, "    $doctorFlags = %s\n", psList(flagWords(findCommand(cmds, "doctor").Flags)))
	fmt.Fprintf(&b, "    $shells = %s\n\n", psList([]string{"bash", "zsh", "fish", "powershell"}))
	b.WriteString("    $elements = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $command = if ($elements.Count -gt 1) { $elements[1] } else { '' }\n\n")
	b.WriteString("    $candidates = switch ($command) {\n")
	b.WriteString("        'doctor' { $doctorFlags }\n")
	b.WriteString("        'completion' { $shells }\n")
	b.WriteString("        'help' { $commands }\n")
	b.WriteString("        'version' { @() }\n")
	b.WriteString("        default { if ($wordToComplete.StartsWith('-')) { $convertFlags } else { $commands } }\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}
