// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/fileutil"
)

// Encodings lists the page encodings a hint may suggest.
var Encodings = []string{"latin1", "utf-8", "auto"}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when userDir is known, where a named config goes.
func ForConfigNotFound(name, userDir string) string {
	hint := "use --config /path/to/file.yaml"
	if userDir != "" && name != "" && !fileutil.IsFilePath(name) {
		hint += " or create " + filepath.Join(userDir, name+".yaml")
	}
	return format(hint)
}

// ForSourceNotFound returns hints for a missing TWiki directory.
func ForSourceNotFound() string {
	return format("pass one web's directories, e.g. twiki/data/Main twiki/pub/Main")
}

// ForSameDirectory returns hints when the target overlaps a source.
func ForSameDirectory() string {
	return format("the target is the MoinMoin data/pages directory, outside the TWiki tree")
}

// ForEncoding returns hints for unknown encoding errors.
func ForEncoding() string {
	return format("available: " + strings.Join(Encodings, ", "))
}

// ForFailedPages returns hints after a run where some pages failed.
func ForFailedPages(logFile string, verbose bool) string {
	var hints []string
	if logFile != "" {
		hints = append(hints, "per-page errors are in "+logFile)
	}
	if !verbose {
		hints = append(hints, "rerun with --verbose for more detail")
	}
	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
