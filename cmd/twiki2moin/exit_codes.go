package main

import (
	"errors"
	"os"

	twiki2moin "github.com/lhrc-mikeyp/TWiki-To-Moin"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/config"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/twiki"
	flag "github.com/spf13/pflag"
)

// Exit codes for the twiki2moin CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All pages converted
	ExitGeneral = 1 // Some pages failed, or unexpected error
	ExitUsage   = 2 // Invalid flags, config, or arguments
	ExitIO      = 3 // Source missing, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, twiki.ErrNotDirectory) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrSameDirectory) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidPrefix) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, twiki2moin.ErrUnknownEncoding) {
		return ExitUsage
	}

	return ExitGeneral
}
