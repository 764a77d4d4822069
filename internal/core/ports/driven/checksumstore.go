package driven

import (
	"context"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

// ChecksumStore persists document checksums across crawl passes.
// The checksum value itself is opaque to the store; comparison
// semantics belong to the change detection service.
type ChecksumStore interface {
	// Get retrieves the entry for a document reference.
	// Returns domain.ErrNotFound if no checksum is recorded.
	Get(ctx context.Context, reference string) (*domain.ChecksumEntry, error)

	// Save stores or updates an entry, keyed by reference.
	Save(ctx context.Context, entry domain.ChecksumEntry) error

	// Delete removes the entry for a reference.
	Delete(ctx context.Context, reference string) error

	// List returns all recorded entries.
	List(ctx context.Context) ([]domain.ChecksumEntry, error)

	// SaveRun records a completed crawl run.
	SaveRun(ctx context.Context, run domain.CrawlRun) error

	// ListRuns returns recorded crawl runs, most recent first.
	ListRuns(ctx context.Context) ([]domain.CrawlRun, error)
}
