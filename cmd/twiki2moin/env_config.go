package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/config"
)

// envPrefix starts every variable the tool reads.
const envPrefix = "TWIKI2MOIN_"

// envConfig holds configuration from environment variables.
// Provides cron- and CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // TWIKI2MOIN_CONFIG: config file name or path
	Prefix     string // TWIKI2MOIN_PREFIX: root web path
	Encoding   string // TWIKI2MOIN_ENCODING: latin1, utf-8, auto
	LogFile    string // TWIKI2MOIN_LOGFILE: log file path
	Workers    int    // TWIKI2MOIN_WORKERS: parallel workers
}

// knownEnvVars lists valid TWIKI2MOIN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"TWIKI2MOIN_CONFIG":   true,
	"TWIKI2MOIN_PREFIX":   true,
	"TWIKI2MOIN_ENCODING": true,
	"TWIKI2MOIN_LOGFILE":  true,
	"TWIKI2MOIN_WORKERS":  true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("TWIKI2MOIN_CONFIG"),
		Prefix:     os.Getenv("TWIKI2MOIN_PREFIX"),
		Encoding:   os.Getenv("TWIKI2MOIN_ENCODING"),
		LogFile:    os.Getenv("TWIKI2MOIN_LOGFILE"),
	}

	// Invalid or non-positive values are ignored, like unset ones.
	if workers := os.Getenv("TWIKI2MOIN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for each unrecognized TWIKI2MOIN_* variable.
// Helps catch typos like TWIKI2MOIN_PREFX.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with the environment.
// Order: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Prefix != "" {
		cfg.Prefix = env.Prefix
	}
	if env.Encoding != "" {
		cfg.Encoding = env.Encoding
	}
	if env.LogFile != "" {
		cfg.Log.File = env.LogFile
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
