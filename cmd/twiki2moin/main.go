package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// commands lists the subcommand names. Anything else as the first
// argument starts a conversion, matching the historical invocation
// "twiki2moin [options] <pages> <data> <moin>".
var commands = map[string]bool{
	"convert":    true,
	"config":     true,
	"version":    true,
	"help":       true,
	"completion": true,
}

// isCommand reports whether arg names a subcommand.
func isCommand(arg string) bool {
	return commands[arg]
}

// runMain dispatches to a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		cmd, rest = "convert", args[1:]
	}

	var err error
	switch cmd {
	case "convert":
		ctx, stop := notifyContext(context.Background())
		defer stop()
		err = runConvert(ctx, rest, env)
	case "config":
		err = runConfig(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "twiki2moin %s\n", Version)
	case "help":
		runHelp(rest, env)
	case "completion":
		err = runCompletion(rest, env)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	var logged *loggedError
	if err != nil && !errors.As(err, &logged) {
		fmt.Fprintln(env.Stderr, "error:", err)
	}
	return exitCodeFor(err)
}

// loggedError marks an error already written to the run log.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }
func (e *loggedError) Unwrap() error { return e.err }
