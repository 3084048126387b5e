// Package logging builds the run logger: plain text on the console and,
// optionally, timestamped text in a log file.
package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Canonical log field names.
const (
	KeyTopic      = "topic"
	KeyPrefix     = "prefix"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyAttachment = "attachment"
	KeyEncoding   = "encoding"
	KeyCount      = "count"
	KeyError      = "error"
)

// Topic is the MoinMoin page name of the topic being converted.
func Topic(name string) slog.Attr { return slog.String(KeyTopic, name) }

// Prefix is the web path qualifying the topic's links.
func Prefix(p string) slog.Attr { return slog.String(KeyPrefix, p) }

// Path is a file or directory on disk.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Stage is the name of a pipeline stage.
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }

// Attachment is the file name of a topic attachment.
func Attachment(name string) slog.Attr { return slog.String(KeyAttachment, name) }

// Encoding is the source encoding a page was decoded with.
func Encoding(name string) slog.Attr { return slog.String(KeyEncoding, name) }

// Count is a number of items, such as pages or attachments.
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }

// Error is the message of err, empty when err is nil.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Options configures New.
type Options struct {
	// Console receives level and message without timestamps.
	Console io.Writer

	// File, when set, is opened in append mode and receives every record
	// with a timestamp.
	File string

	// Verbose enables debug records.
	Verbose bool
}

// New returns the logger and a close function for the log file.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: dropTime,
		}),
	}

	closeFn := func() error { return nil }
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) // #nosec G304 -- operator supplied log path
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
		closeFn = f.Close
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeFn, nil
	}
	return slog.New(teeHandler(handlers)), closeFn, nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func dropTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.Attr{}
	}
	return a
}

// teeHandler sends each record to every handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithAttrs(attrs)
	}
	return next
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	next := make(teeHandler, len(t))
	for i, h := range t {
		next[i] = h.WithGroup(name)
	}
	return next
}
