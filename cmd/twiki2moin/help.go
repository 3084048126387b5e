package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: twiki2moin <command> [flags] [args]")
	fmt.Fprintln(w, "       twiki2moin [flags] <twiki_page_dir> <twiki_data_dir> <moin_page_dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert a TWiki web to MoinMoin pages")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'twiki2moin help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: twiki2moin convert [flags] <twiki_page_dir> <twiki_data_dir> <moin_page_dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert every TWiki topic under twiki_page_dir to a MoinMoin page and copy")
	fmt.Fprintln(w, "its attachments from twiki_data_dir. Sub-directories are converted as webs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example:")
	fmt.Fprintln(w, "  twiki2moin convert twiki/data/Main twiki/pub/Main moin/wiki/data/pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments may be omitted when the config file sets source and target.")
	fmt.Fprintln(w)
	printFlagHelp(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TWIKI2MOIN_CONFIG, TWIKI2MOIN_PREFIX, TWIKI2MOIN_ENCODING,")
	fmt.Fprintln(w, "  TWIKI2MOIN_WORKERS, TWIKI2MOIN_LOGFILE")
	fmt.Fprintln(w, "  Flags override environment, environment overrides the config file.")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: twiki2moin config [flags] [<twiki_page_dir> <twiki_data_dir> <moin_page_dir>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration a convert run with the same flags would use.")
	fmt.Fprintln(w)
	printFlagHelp(w)
}

func printFlagHelp(w io.Writer) {
	fmt.Fprintln(w, "Source:")
	fmt.Fprintln(w, "  -p, --prefix <web>        Web path prepended to every topic (e.g. Main)")
	fmt.Fprintln(w, "  -e, --encoding <name>     Page encoding: latin1, utf-8, auto (default latin1)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -n, --dry-run             Convert without writing pages or attachments")
	fmt.Fprintln(w, "      --trace <topic>       Log each stage's output for a topic")
	fmt.Fprintln(w, "                            (WebHome, or a Moin page name like Main(2f)WebHome)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -l, --logfile <path>      Also log to a file, with timestamps")
	fmt.Fprintln(w, "  -v, --verbose             Log additional detail during conversion")
}

// printCommandUsage prints usage for the command parsed by name.
func printCommandUsage(w io.Writer, name string) {
	if name == "config" {
		printConfigUsage(w)
		return
	}
	printConvertUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: twiki2moin version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: twiki2moin help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
