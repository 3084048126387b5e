package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/fileutil"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/twiki"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidPrefix   = errors.New("invalid prefix")
	ErrInvalidWorkers  = errors.New("invalid worker count")
)

// Field length limits.
const (
	MaxPathLength   = 4096 // PATH_MAX on Linux
	MaxPrefixLength = 255  // one Moin page name
)

// appDir is the directory searched under the user config dir.
const appDir = "twiki2moin"

// Config holds all configuration for a conversion run.
type Config struct {
	Source   SourceConfig `yaml:"source"`
	Target   TargetConfig `yaml:"target"`
	Prefix   string       `yaml:"prefix"`   // web path prepended to every topic
	Encoding string       `yaml:"encoding"` // "latin1", "utf-8", "auto" (default: "latin1")
	Workers  int          `yaml:"workers"`  // 0 = auto
	Log      LogConfig    `yaml:"log"`
}

// SourceConfig locates the TWiki tree.
type SourceConfig struct {
	PagesDir       string `yaml:"pagesDir"`       // twiki/data/<Web>
	AttachmentsDir string `yaml:"attachmentsDir"` // twiki/pub/<Web>
}

// TargetConfig locates the MoinMoin tree.
type TargetConfig struct {
	PagesDir string `yaml:"pagesDir"` // moin/data/pages
}

// LogConfig defines logging options.
type LogConfig struct {
	File    string `yaml:"file"` // Optional, appended to
	Verbose bool   `yaml:"verbose"`
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	paths := []struct {
		name  string
		value string
	}{
		{"source.pagesDir", c.Source.PagesDir},
		{"source.attachmentsDir", c.Source.AttachmentsDir},
		{"target.pagesDir", c.Target.PagesDir},
		{"log.file", c.Log.File},
	}
	for _, p := range paths {
		if err := validateFieldLength(p.name, p.value, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateFieldLength("prefix", c.Prefix, MaxPrefixLength); err != nil {
		return err
	}
	if err := ValidatePrefix(c.Prefix); err != nil {
		return err
	}

	if _, err := twiki.ParseEncoding(c.Encoding); err != nil {
		return fmt.Errorf("encoding: %w", err)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkers, c.Workers)
	}

	return nil
}

// ValidatePrefix checks that prefix is a relative, slash separated web
// path such as "Main" or "Main/Sub".
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if strings.HasPrefix(prefix, "/") || strings.HasSuffix(prefix, "/") || strings.Contains(prefix, `\`) {
		return fmt.Errorf("%w: %q (use a relative web path like Main/Sub)", ErrInvalidPrefix, prefix)
	}
	for _, seg := range strings.Split(prefix, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("%w: %q (empty or dot segment)", ErrInvalidPrefix, prefix)
		}
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Encoding: twiki.DefaultEncoding,
		Workers:  0,
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/twiki2moin/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
