package main

// Notes:
// - loadEnvConfig: invalid and non-positive worker counts are ignored, not errors.
// - applyEnvConfig: we test that environment values override the config
//   file and that unset variables leave it alone.
// - Tests use t.Setenv() which prevents t.Parallel().
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("TWIKI2MOIN_CONFIG", "/etc/twiki2moin.yaml")
		t.Setenv("TWIKI2MOIN_PREFIX", "Main")
		t.Setenv("TWIKI2MOIN_ENCODING", "utf-8")
		t.Setenv("TWIKI2MOIN_LOGFILE", "/var/log/twiki2moin.log")
		t.Setenv("TWIKI2MOIN_WORKERS", "6")

		cfg := loadEnvConfig()

		want := envConfig{
			ConfigPath: "/etc/twiki2moin.yaml",
			Prefix:     "Main",
			Encoding:   "utf-8",
			LogFile:    "/var/log/twiki2moin.log",
			Workers:    6,
		}
		if *cfg != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
		}
	})

	workerTests := []struct {
		value string
		want  int
	}{
		{"abc", 0},
		{"-2", 0},
		{"0", 0},
		{"3", 3},
	}
	for _, tt := range workerTests {
		t.Run("workers "+tt.value, func(t *testing.T) {
			t.Setenv("TWIKI2MOIN_WORKERS", tt.value)

			if got := loadEnvConfig().Workers; got != tt.want {
				t.Errorf("Workers = %d, want %d", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("TWIKI2MOIN_PREFX", "Main")
	t.Setenv("TWIKI2MOIN_PREFIX", "Main")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	out := buf.String()
	if !strings.Contains(out, "TWIKI2MOIN_PREFX") {
		t.Errorf("expected warning for TWIKI2MOIN_PREFX, got %q", out)
	}
	if strings.Contains(out, "TWIKI2MOIN_PREFIX ") {
		t.Errorf("known variable should not warn, got %q", out)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Environment over config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("overrides config file", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Prefix = "FromFile"
		cfg.Workers = 2

		applyEnvConfig(&envConfig{Prefix: "FromEnv", Encoding: "auto", LogFile: "run.log", Workers: 5}, cfg)

		if cfg.Prefix != "FromEnv" || cfg.Encoding != "auto" || cfg.Log.File != "run.log" || cfg.Workers != 5 {
			t.Errorf("applyEnvConfig() = %+v", cfg)
		}
	})

	t.Run("unset keeps config file", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Prefix = "FromFile"
		cfg.Workers = 2

		applyEnvConfig(&envConfig{}, cfg)

		if cfg.Prefix != "FromFile" || cfg.Workers != 2 || cfg.Encoding != "latin1" {
			t.Errorf("applyEnvConfig() = %+v", cfg)
		}
	})
}
