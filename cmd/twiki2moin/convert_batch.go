package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	twiki2moin "github.com/lhrc-mikeyp/TWiki-To-Moin"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/logging"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/moin"
	"github.com/lhrc-mikeyp/TWiki-To-Moin/internal/twiki"
)

// Sentinel errors for batch operations.
var (
	ErrReadPage    = errors.New("failed to read TWiki page")
	ErrWritePage   = errors.New("failed to write MoinMoin page")
	ErrAttachments = errors.New("failed to copy attachments")
)

// PageConverter is the interface for the page conversion service.
type PageConverter interface {
	Convert(ctx context.Context, input twiki2moin.Input) (*twiki2moin.Result, error)
}

// Compile-time interface implementation check.
var _ PageConverter = (*twiki2moin.Converter)(nil)

// PageResult holds the outcome of a single page conversion.
type PageResult struct {
	Page               twiki.Page
	Attachments        int
	MissingAttachments int
	Err                error
	Duration           time.Duration
}

// batch converts discovered pages into a Moin store.
type batch struct {
	conv   PageConverter
	store  *moin.Store
	logger *slog.Logger
	dryRun bool
}

// run processes pages concurrently and returns one result per page, in
// page order. Pages not started before ctx is canceled fail with ctx.Err().
func (b *batch) run(ctx context.Context, pages []twiki.Page, workers int) []PageResult {
	if len(pages) == 0 {
		return nil
	}

	concurrency := min(max(workers, 1), len(pages))

	results := make([]PageResult, len(pages))
	var wg sync.WaitGroup
	jobs := make(chan int, len(pages))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = PageResult{Page: pages[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = b.convertPage(ctx, pages[idx])
			}
		}()
	}

	for i := range pages {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertPage converts one topic, writes it and copies its attachments.
// A missing attachment is logged and counted, not returned as an error.
func (b *batch) convertPage(ctx context.Context, p twiki.Page) PageResult {
	start := time.Now()
	result := PageResult{Page: p}
	logger := b.logger.With(logging.Topic(p.Topic))

	logger.Info("Converting TWiki page", logging.Path(p.Path), logging.Prefix(p.Prefix))

	raw, err := os.ReadFile(p.Path) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadPage, err)
		return b.finish(logger, result, start)
	}

	converted, err := b.conv.Convert(ctx, twiki2moin.Input{
		Source: raw,
		Prefix: p.Prefix,
		Topic:  p.Topic,
	})
	if err != nil {
		result.Err = fmt.Errorf("converting %s: %w", p.Path, err)
		return b.finish(logger, result, start)
	}
	logger.Debug("Decoded page", logging.Encoding(converted.Encoding), logging.Count(len(converted.Attachments)))

	if b.dryRun {
		result.Attachments = len(converted.Attachments)
		return b.finish(logger, result, start)
	}

	if err := b.store.WritePage(p.Topic, converted.Text); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWritePage, err)
		return b.finish(logger, result, start)
	}

	if p.AttachmentDir == "" || len(converted.Attachments) == 0 {
		return b.finish(logger, result, start)
	}

	copied, failed, err := b.store.CopyAttachments(p.Topic, p.AttachmentDir, converted.Attachments)
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrAttachments, err)
		return b.finish(logger, result, start)
	}
	for _, name := range copied {
		logger.Debug("Copied attachment", logging.Attachment(name))
	}
	for _, f := range failed {
		logger.Warn("Could not copy attachment", logging.Attachment(f.Name), logging.Error(f.Err))
	}
	result.Attachments = len(copied)
	result.MissingAttachments = len(failed)

	return b.finish(logger, result, start)
}

func (b *batch) finish(logger *slog.Logger, result PageResult, start time.Time) PageResult {
	result.Duration = time.Since(start)
	if result.Err != nil {
		logger.Error("Page failed", logging.Error(result.Err))
		return result
	}
	logger.Debug("Page done", slog.Duration("elapsed", result.Duration))
	return result
}

// ResultSummary holds the totals of a run.
type ResultSummary struct {
	Succeeded          int
	Failed             int
	Attachments        int
	MissingAttachments int
}

// countResults tallies page and attachment outcomes.
func countResults(results []PageResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Attachments += r.Attachments
		summary.MissingAttachments += r.MissingAttachments
	}
	return summary
}
