package driving

import (
	"context"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

// ScanReport summarises one scan over a document source.
type ScanReport struct {
	// Run is the persisted crawl-run record.
	Run domain.CrawlRun

	// Results holds the per-document outcomes in emission order.
	Results []domain.ChangeResult
}

// ChangeDetectionService detects document changes across crawl passes.
// This is used by the CLI adapter.
type ChangeDetectionService interface {
	// Detect checksums one document, classifies it against the stored
	// checksum, and records the new value.
	Detect(ctx context.Context, doc *domain.Document) (domain.ChangeResult, error)

	// Scan drains a document source through Detect and records the run.
	Scan(ctx context.Context, source SourceScanner) (*ScanReport, error)

	// Status returns recorded checksums and past runs.
	Status(ctx context.Context) ([]domain.ChecksumEntry, []domain.CrawlRun, error)

	// Forget removes the stored checksum for a reference, forcing the
	// next pass to classify it as created.
	Forget(ctx context.Context, reference string) error
}

// SourceScanner is the subset of a document source a scan needs.
// Declared here so driving stays free of driven imports.
type SourceScanner interface {
	Root() string
	Documents(ctx context.Context) (<-chan domain.Document, <-chan error)
}
