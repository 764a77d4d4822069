package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/recrawl/internal/checksum"
	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/core/ports/driven"
	"github.com/custodia-labs/recrawl/internal/core/ports/driving"
	"github.com/custodia-labs/recrawl/internal/logger"
)

// Ensure ChangeDetector implements the interface.
var _ driving.ChangeDetectionService = (*ChangeDetector)(nil)

// ChangeDetector classifies documents against checksums recorded by
// earlier crawl passes. It holds no per-document state; concurrent
// Detect calls on independent documents are safe.
type ChangeDetector struct {
	checksummer *checksum.Checksummer
	store       driven.ChecksumStore
}

// NewChangeDetector creates a change detector.
func NewChangeDetector(checksummer *checksum.Checksummer, store driven.ChecksumStore) *ChangeDetector {
	return &ChangeDetector{
		checksummer: checksummer,
		store:       store,
	}
}

// Detect checksums one document, classifies it against the stored value,
// and upserts the new checksum. A skipped document (no checksum produced)
// leaves any stored value untouched.
func (d *ChangeDetector) Detect(ctx context.Context, doc *domain.Document) (domain.ChangeResult, error) {
	return d.detect(ctx, doc, "")
}

func (d *ChangeDetector) detect(ctx context.Context, doc *domain.Document, runID string) (domain.ChangeResult, error) {
	sum, err := d.checksummer.Checksum(doc)
	if err != nil {
		return domain.ChangeResult{}, fmt.Errorf("checksum document: %w", err)
	}

	result := domain.ChangeResult{
		Reference: doc.Reference,
		Checksum:  sum,
	}

	prev, err := d.store.Get(ctx, doc.Reference)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.ChangeResult{}, fmt.Errorf("get stored checksum: %w", err)
	}
	if prev != nil {
		result.Previous = prev.Checksum
	}

	switch {
	case sum == "":
		result.Type = domain.ChangeSkipped
	case prev == nil:
		result.Type = domain.ChangeCreated
	case prev.Checksum == sum:
		result.Type = domain.ChangeUnmodified
	default:
		result.Type = domain.ChangeModified
	}

	if sum != "" {
		entry := domain.ChecksumEntry{
			Reference: doc.Reference,
			Checksum:  sum,
			Algorithm: algorithmLabel(d.checksummer.Config().Algorithm),
			RunID:     runID,
			UpdatedAt: time.Now().UTC(),
		}
		if err := d.store.Save(ctx, entry); err != nil {
			return domain.ChangeResult{}, fmt.Errorf("save checksum: %w", err)
		}
	}

	logger.Debug("detect %s: %s", doc.Reference, result.Type)
	return result, nil
}

// Scan drains a document source through Detect, aggregates per-document
// outcomes, and records the run. Per-document failures are counted and
// logged rather than aborting the whole scan.
func (d *ChangeDetector) Scan(ctx context.Context, source driving.SourceScanner) (*driving.ScanReport, error) {
	run := domain.CrawlRun{
		ID:        uuid.NewString(),
		Root:      source.Root(),
		StartedAt: time.Now().UTC(),
	}
	logger.Section("scan " + run.Root)

	report := &driving.ScanReport{}
	docs, errs := source.Documents(ctx)

	for docs != nil || errs != nil {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case doc, ok := <-docs:
			if !ok {
				docs = nil
				continue
			}
			result, err := d.detect(ctx, &doc, run.ID)
			if err != nil {
				run.ErrorCount++
				logger.Warn("scan %s: %v", doc.Reference, err)
				continue
			}
			switch result.Type {
			case domain.ChangeCreated:
				run.Created++
			case domain.ChangeModified:
				run.Modified++
			case domain.ChangeUnmodified:
				run.Unmodified++
			case domain.ChangeSkipped:
				run.Skipped++
			}
			report.Results = append(report.Results, result)

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				run.ErrorCount++
				logger.Warn("scan %s: %v", run.Root, err)
			}
		}
	}

	run.FinishedAt = time.Now().UTC()
	if err := d.store.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("save crawl run: %w", err)
	}

	report.Run = run
	logger.Info("scan %s: %d created, %d modified, %d unmodified, %d skipped, %d errors",
		run.Root, run.Created, run.Modified, run.Unmodified, run.Skipped, run.ErrorCount)
	return report, nil
}

// Status returns recorded checksums and past crawl runs.
func (d *ChangeDetector) Status(ctx context.Context) ([]domain.ChecksumEntry, []domain.CrawlRun, error) {
	entries, err := d.store.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list checksums: %w", err)
	}
	runs, err := d.store.ListRuns(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list crawl runs: %w", err)
	}
	return entries, runs, nil
}

// Forget removes the stored checksum for a reference.
func (d *ChangeDetector) Forget(ctx context.Context, reference string) error {
	if err := d.store.Delete(ctx, reference); err != nil {
		return fmt.Errorf("delete checksum: %w", err)
	}
	return nil
}

// algorithmLabel names the algorithm for persistence, resolving the
// empty default.
func algorithmLabel(algo checksum.Algorithm) string {
	if algo == "" {
		return string(checksum.AlgorithmMD5)
	}
	return string(algo)
}
