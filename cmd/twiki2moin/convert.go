package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	twiki2moin "github.com/lhrc-mikeyp/TWiki-To-Moin"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/config"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/fileutil"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/hints"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/logging"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/moin"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/twiki"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid arguments")
	ErrSourceNotFound = errors.New("source directory does not exist")
	ErrSameDirectory  = errors.New("target directory is the same as a source directory")
	ErrPagesFailed    = errors.New("some pages could not be converted")
)

// positionalArgs is the number of directory arguments of convert.
const positionalArgs = 3

// runConvert converts a TWiki web into a MoinMoin page directory.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags("convert", args, env.Stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags, positional, env)
	if err != nil {
		return err
	}
	if cfg.Source.PagesDir == "" || cfg.Target.PagesDir == "" {
		return fmt.Errorf("%w: three arguments are required: <twiki_page_dir> <twiki_data_dir> <moin_page_dir>", ErrUsage)
	}

	logger, closeLog, err := logging.New(logging.Options{
		Console: env.Stderr,
		File:    cfg.Log.File,
		Verbose: cfg.Log.Verbose,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	logger.Debug("Enabled verbose logging.")
	if cfg.Log.File != "" {
		logger.Info("Enabled logging to file.", logging.Path(cfg.Log.File))
	}

	if err := convertRun(ctx, cfg, flags, logger, env); err != nil {
		logger.Error(err.Error())
		logger.Info("Conversion completed with errors.")
		if h := runHint(err, cfg); h != "" {
			fmt.Fprintln(env.Stderr, strings.TrimPrefix(h, "\n"))
		}
		return &loggedError{err: err}
	}

	logger.Info("Successfully completed conversion run.")
	return nil
}

// runHint returns the hint for an error logged by a conversion run.
func runHint(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, ErrSourceNotFound):
		return hints.ForSourceNotFound()
	case errors.Is(err, ErrSameDirectory):
		return hints.ForSameDirectory()
	case errors.Is(err, ErrPagesFailed):
		return hints.ForFailedPages(cfg.Log.File, cfg.Log.Verbose)
	}
	return ""
}

// convertRun validates the directories, then discovers and converts every
// topic.
func convertRun(ctx context.Context, cfg *config.Config, flags *convertFlags, logger *slog.Logger, env *Environment) error {
	logger.Info("Beginning conversion run")
	logger.Info("Running with arguments",
		slog.String("pages", cfg.Source.PagesDir),
		slog.String("data", cfg.Source.AttachmentsDir),
		slog.String("target", cfg.Target.PagesDir),
		logging.Prefix(cfg.Prefix),
		logging.Encoding(cfg.Encoding),
	)

	if err := validateDirs(cfg, logger); err != nil {
		return err
	}

	conv, err := newConverter(cfg.Encoding, flags.trace, logger)
	if err != nil {
		return err
	}

	pages, err := twiki.Discover(ctx, cfg.Source.PagesDir, cfg.Source.AttachmentsDir, cfg.Prefix)
	if err != nil {
		return fmt.Errorf("discovering topics: %w", err)
	}
	if len(pages) == 0 {
		logger.Warn("No TWiki topics found", logging.Path(cfg.Source.PagesDir))
		return nil
	}

	workers := twiki2moin.ResolveWorkers(cfg.Workers)
	logger.Debug("Starting workers", slog.Int("workers", workers), logging.Count(len(pages)))
	if flags.dryRun {
		logger.Info("Dry run: nothing will be written")
	}

	b := &batch{
		conv:   conv,
		store:  moin.NewStore(cfg.Target.PagesDir),
		logger: logger,
		dryRun: flags.dryRun,
	}

	start := env.Now()
	results := b.run(ctx, pages, workers)
	summary := countResults(results)
	logger.Info("Conversion summary",
		slog.Int("pages", summary.Succeeded),
		slog.Int("failed", summary.Failed),
		slog.Int("attachments", summary.Attachments),
		slog.Int("missingAttachments", summary.MissingAttachments),
		slog.Duration("elapsed", env.Now().Sub(start)),
	)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("conversion interrupted: %w", err)
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrPagesFailed, summary.Failed, len(results))
	}
	return nil
}

// resolveConfig builds the run configuration.
// Order: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *convertFlags, positional []string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg := config.DefaultConfig()
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(name, userConfigDir()))
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)

	if err := mergeFlags(flags, positional, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, twiki2moin.ErrUnknownEncoding) {
			return nil, fmt.Errorf("%w%s", err, hints.ForEncoding())
		}
		return nil, err
	}
	return cfg, nil
}

// userConfigDir returns where named config files are looked up, or "".
func userConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "twiki2moin")
}

// mergeFlags merges CLI flags and directory arguments into config.
// CLI values override config values.
func mergeFlags(flags *convertFlags, positional []string, cfg *config.Config) error {
	switch len(positional) {
	case 0:
	case positionalArgs:
		cfg.Source.PagesDir = positional[0]
		cfg.Source.AttachmentsDir = positional[1]
		cfg.Target.PagesDir = positional[2]
	default:
		return fmt.Errorf("%w: three arguments are required, got %d", ErrUsage, len(positional))
	}

	if flags.prefix != "" {
		cfg.Prefix = flags.prefix
	}
	if flags.encoding != "" {
		cfg.Encoding = flags.encoding
	}
	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	if flags.logFile != "" {
		cfg.Log.File = flags.logFile
	}
	if flags.common.verbose {
		cfg.Log.Verbose = true
	}
	return nil
}

// validateDirs checks the source directories exist and differ from the
// target. A missing target is created on first write.
func validateDirs(cfg *config.Config, logger *slog.Logger) error {
	if !fileutil.DirExists(cfg.Source.PagesDir) {
		return fmt.Errorf("%w: the TWiki page directory %s does not exist", ErrSourceNotFound, cfg.Source.PagesDir)
	}
	if cfg.Source.AttachmentsDir != "" && !fileutil.DirExists(cfg.Source.AttachmentsDir) {
		return fmt.Errorf("%w: the TWiki data directory %s does not exist", ErrSourceNotFound, cfg.Source.AttachmentsDir)
	}
	if !fileutil.DirExists(cfg.Target.PagesDir) {
		logger.Info("The MoinMoin data directory does not exist.", logging.Path(cfg.Target.PagesDir))
		logger.Info("The MoinMoin data directory will be created if possible.")
	}

	if fileutil.SamePath(cfg.Source.PagesDir, cfg.Target.PagesDir) {
		return fmt.Errorf("%w: the target directory is the same as the twiki page directory", ErrSameDirectory)
	}
	if cfg.Source.AttachmentsDir != "" && fileutil.SamePath(cfg.Source.AttachmentsDir, cfg.Target.PagesDir) {
		return fmt.Errorf("%w: the target directory is the same as the twiki data directory", ErrSameDirectory)
	}
	return nil
}

// newConverter builds the page converter. When traceTopic is set, every
// stage's output for that topic is logged.
func newConverter(encoding, traceTopic string, logger *slog.Logger) (*twiki2moin.Converter, error) {
	opts := []twiki2moin.Option{twiki2moin.WithEncoding(encoding)}
	if traceTopic != "" {
		opts = append(opts, twiki2moin.WithTrace(func(topic, stage, text string) {
			if !traceMatches(topic, traceTopic) {
				return
			}
			logger.Info("Stage output", logging.Topic(topic), logging.Stage(stage), slog.String("text", text))
		}))
	}
	return twiki2moin.NewConverter(opts...)
}

// traceMatches reports whether the Moin page name topic is the one asked
// for: either the full page name or a TWiki topic name in any web.
func traceMatches(topic, want string) bool {
	escaped := twiki.TopicName("", want)
	return topic == want || topic == escaped || strings.HasSuffix(topic, "(2f)"+escaped)
}
