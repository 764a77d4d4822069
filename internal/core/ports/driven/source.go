package driven

import (
	"context"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

// DocumentSource streams documents out of a crawl root.
// Each source type (filesystem, remote fetcher, etc.) implements this
// interface.
type DocumentSource interface {
	// Root returns the location this source crawls.
	Root() string

	// Validate checks the source is ready to crawl.
	// For the filesystem source this checks the root exists and is
	// a readable directory.
	Validate(ctx context.Context) error

	// Documents walks the source and emits every document.
	// Both channels are closed when the walk finishes; the error
	// channel carries per-document failures and walk failures.
	Documents(ctx context.Context) (<-chan domain.Document, <-chan error)

	// Watch emits documents as they change, until ctx is cancelled.
	Watch(ctx context.Context) (<-chan domain.Document, error)

	// Close releases resources.
	Close() error
}
