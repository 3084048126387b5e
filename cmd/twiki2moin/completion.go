package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell names a shell the completion command can generate a script for.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

var shells = []Shell{ShellBash, ShellZsh, ShellFish, ShellPowerShell}

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType is the kind of value a flag completes to.
type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagEnum
	flagFile
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // flagEnum
	FileGlob string   // flagFile, comma separated
}

// takesValue reports whether the flag consumes the following word.
func (f flagDef) takesValue() bool {
	return f.Type != flagBool
}

// commandDef describes a command for completion.
type commandDef struct {
	Name      string
	Desc      string
	Flags     []flagDef
	TakesDirs bool // positional arguments are directories
	Words     []string
}

// completionMeta holds what the FlagSet cannot express about a flag's value.
type completionMeta struct {
	Values   []string
	FileGlob string
}

var flagCompletionMeta = map[string]completionMeta{
	"encoding": {Values: []string{"latin1", "utf-8", "auto"}},
	"config":   {FileGlob: "*.yaml,*.yml"},
	"logfile":  {FileGlob: "*.log"},
}

// extractFlags turns the flags registered on fs into completion definitions.
func extractFlags(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int64", "uint", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type, fd.Values = flagEnum, meta.Values
			case meta.FileGlob != "":
				fd.Type, fd.FileGlob = flagFile, meta.FileGlob
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion. The convert and
// config flags come from the same FlagSet the commands parse with.
func getCommands() []commandDef {
	flags := extractFlags(newConvertFlagSet("convert", &convertFlags{}))

	shellWords := make([]string, len(shells))
	for i, s := range shells {
		shellWords[i] = string(s)
	}

	cmds := []commandDef{
		{Name: "convert", Desc: "Convert a TWiki web to MoinMoin pages", Flags: flags, TakesDirs: true},
		{Name: "config", Desc: "Print the effective configuration as YAML", Flags: flags, TakesDirs: true},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script", Words: shellWords},
	}
	for i := range cmds {
		if cmds[i].Name == "help" {
			cmds[i].Words = commandNames(cmds)
		}
	}
	return cmds
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var b strings.Builder
	cmds := getCommands()

	switch shell {
	case ShellBash:
		writeBash(&b, cmds)
	case ShellZsh:
		writeZsh(&b, cmds)
	case ShellFish:
		writeFish(&b, cmds)
	case ShellPowerShell:
		writePowerShell(&b, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// ---------------------------------------------------------------------------
// Bash
// ---------------------------------------------------------------------------

func writeBash(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# bash completion for twiki2moin\n\n")
	b.WriteString("_twiki2moin_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")

	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\") $(compgen -d -- \"${cur}\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n    fi\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	for _, f := range cmds[0].Flags {
		if !f.takesValue() {
			continue
		}
		fmt.Fprintf(b, "        %s)\n", bashFlagPattern(f))
		switch f.Type {
		case flagEnum:
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(f.Values, " "))
		case flagFile:
			b.WriteString("            COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
		default:
			b.WriteString("            COMPREPLY=()\n")
		}
		b.WriteString("            return\n            ;;\n")
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		switch {
		case len(c.Flags) > 0:
			fmt.Fprintf(b, "        %s)\n", c.Name)
			b.WriteString("            if [[ \"${cur}\" == -* ]]; then\n")
			fmt.Fprintf(b, "                COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(longFlagWords(c.Flags), " "))
			b.WriteString("            else\n")
			b.WriteString("                COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
			b.WriteString("            fi\n            ;;\n")
		case len(c.Words) > 0:
			fmt.Fprintf(b, "        %s)\n", c.Name)
			fmt.Fprintf(b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(c.Words, " "))
			b.WriteString("            ;;\n")
		}
	}
	b.WriteString("        *)\n")
	b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
	b.WriteString("            ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _twiki2moin_completions twiki2moin\n")
}

func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "--" + f.Long + "|-" + f.Short
	}
	return "--" + f.Long
}

func longFlagWords(flags []flagDef) []string {
	words := make([]string, 0, len(flags)+1)
	for _, f := range flags {
		words = append(words, "--"+f.Long)
	}
	return append(words, "--help")
}

// ---------------------------------------------------------------------------
// Zsh
// ---------------------------------------------------------------------------

func writeZsh(b *strings.Builder, cmds []commandDef) {
	b.WriteString("#compdef twiki2moin\n\n")
	b.WriteString("_twiki2moin() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")

	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        _files -/\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		switch {
		case len(c.Flags) > 0:
			fmt.Fprintf(b, "        %s)\n", c.Name)
			b.WriteString("            shift words\n")
			b.WriteString("            (( CURRENT-- ))\n")
			b.WriteString("            _arguments \\\n")
			for _, f := range c.Flags {
				fmt.Fprintf(b, "                %s \\\n", zshFlagSpec(f))
			}
			b.WriteString("                '*:directory:_files -/'\n")
			b.WriteString("            ;;\n")
		case len(c.Words) > 0:
			fmt.Fprintf(b, "        %s)\n", c.Name)
			fmt.Fprintf(b, "            _values '%s' %s\n", c.Name, strings.Join(c.Words, " "))
			b.WriteString("            ;;\n")
		}
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_twiki2moin \"$@\"\n")
}

func zshFlagSpec(f flagDef) string {
	var action string
	switch f.Type {
	case flagBool:
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		action = ":file:_files -g \"" + zshGlob(f.FileGlob) + "\""
	default:
		action = ":" + f.Long + ":"
	}

	arg := "[" + zshEscape(f.Desc) + "]" + action
	if f.Short != "" {
		return "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'" + arg + "'"
	}
	return "'--" + f.Long + arg + "'"
}

// zshGlob turns "*.yaml,*.yml" into "*.(yaml|yml)".
func zshGlob(globs string) string {
	parts := strings.Split(globs, ",")
	exts := make([]string, 0, len(parts))
	for _, p := range parts {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	if len(exts) == 1 {
		return "*." + exts[0]
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

var zshReplacer = strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)

func zshEscape(s string) string {
	return zshReplacer.Replace(s)
}

// ---------------------------------------------------------------------------
// Fish
// ---------------------------------------------------------------------------

func writeFish(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# fish completion for twiki2moin\n\n")
	b.WriteString("function __fish_twiki2moin_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_twiki2moin_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test \"$argv[1]\" = \"$cmd[2]\"\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c twiki2moin -f\n")

	for _, c := range cmds {
		fmt.Fprintf(b, "complete -c twiki2moin -n __fish_twiki2moin_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := "'__fish_twiki2moin_using_command " + c.Name + "'"
		for _, f := range c.Flags {
			b.WriteString("complete -c twiki2moin -n " + cond)
			if f.Short != "" {
				b.WriteString(" -s " + f.Short)
			}
			b.WriteString(" -l " + f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				b.WriteString(" -x -a '" + strings.Join(f.Values, " ") + "'")
			case flagFile:
				b.WriteString(" -r -F")
			default:
				b.WriteString(" -x")
			}
			fmt.Fprintf(b, " -d '%s'\n", fishEscape(f.Desc))
		}
		if c.TakesDirs {
			fmt.Fprintf(b, "complete -c twiki2moin -n %s -a '(__fish_complete_directories)'\n", cond)
		}
		if len(c.Words) > 0 {
			fmt.Fprintf(b, "complete -c twiki2moin -n %s -a '%s'\n", cond, strings.Join(c.Words, " "))
		}
	}
}

var fishReplacer = strings.NewReplacer(`\`, `\\`, "'", `\'`)

func fishEscape(s string) string {
	return fishReplacer.Replace(s)
}

// ---------------------------------------------------------------------------
// PowerShell
// ---------------------------------------------------------------------------

func writePowerShell(b *strings.Builder, cmds []commandDef) {
	b.WriteString("# PowerShell completion for twiki2moin\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName twiki2moin -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n")
	b.WriteString("    $commands = @(\n")
	for _, c := range cmds {
		fmt.Fprintf(b, "        @{ Name = '%s'; Desc = '%s' }\n", c.Name, psEscape(c.Desc))
	}
	b.WriteString("    )\n")
	b.WriteString("    $words = @{\n")
	for _, c := range cmds {
		var words []string
		if len(c.Flags) > 0 {
			words = longFlagWords(c.Flags)
		} else {
			words = c.Words
		}
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = "'" + psEscape(w) + "'"
		}
		fmt.Fprintf(b, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    if ($elements.Count -le 1 -or ($elements.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $commands | Where-Object { $_.Name -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterValue', $_.Desc)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    if ($words.ContainsKey($cmd)) {\n")
	b.WriteString("        $words[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
}

func psEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// ---------------------------------------------------------------------------
// Command
// ---------------------------------------------------------------------------

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: twiki2moin completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a completion script for bash, zsh, fish or powershell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:        eval \"$(twiki2moin completion bash)\"              # ~/.bashrc")
	fmt.Fprintln(w, "  Zsh:         eval \"$(twiki2moin completion zsh)\"               # ~/.zshrc, before compinit")
	fmt.Fprintln(w, "  Fish:        twiki2moin completion fish > ~/.config/fish/completions/twiki2moin.fish")
	fmt.Fprintln(w, "  PowerShell:  twiki2moin completion powershell | Out-String | Invoke-Expression")
}
