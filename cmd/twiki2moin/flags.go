package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	verbose bool
}

// convertFlags holds all flags for the convert and config commands.
type convertFlags struct {
	common   commonFlags
	prefix   string
	logFile  string
	encoding string
	workers  int
	dryRun   bool
	trace    string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log additional detail during conversion")
}

// addSourceFlags adds the flags describing how pages are read.
func addSourceFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.StringVarP(&f.prefix, "prefix", "p", "", "web path prepended to every topic (e.g. Main)")
	fs.StringVarP(&f.encoding, "encoding", "e", "", "page encoding: latin1, utf-8, auto (default latin1)")
}

// addRunFlags adds the flags controlling the run itself.
func addRunFlags(fs *flag.FlagSet, f *convertFlags) {
	fs.StringVarP(&f.logFile, "logfile", "l", "", "optional log file, appended to")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "convert without writing pages or attachments")
	fs.StringVar(&f.trace, "trace", "", "log each stage's output for a topic")
}

// newConvertFlagSet registers every convert flag on a new FlagSet bound to f.
func newConvertFlagSet(name string, f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, f)
	addRunFlags(fs, f)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
// Usage and parse errors go to stderr.
func parseConvertFlags(name string, args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(name, f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printCommandUsage(stderr, name) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, err
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrUsage, err)
	}

	return f, fs.Args(), nil
}
