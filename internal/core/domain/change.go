package domain

import "time"

// ChangeType classifies a document relative to the previous crawl pass.
type ChangeType int

const (
	// ChangeCreated indicates no checksum was recorded for the reference.
	ChangeCreated ChangeType = iota

	// ChangeModified indicates the checksum differs from the recorded one.
	ChangeModified

	// ChangeUnmodified indicates the checksum matches the recorded one.
	ChangeUnmodified

	// ChangeSkipped indicates no checksum was produced (checksummer
	// disabled, or configured fields contributed nothing).
	ChangeSkipped
)

// String returns a human-readable label for the change type.
func (t ChangeType) String() string {
	switch t {
	case ChangeCreated:
		return "created"
	case ChangeModified:
		return "modified"
	case ChangeUnmodified:
		return "unmodified"
	case ChangeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// ChangeResult is the outcome of change detection for one document.
type ChangeResult struct {
	// Reference identifies the document.
	Reference string

	// Type is the classification against the stored checksum.
	Type ChangeType

	// Checksum is the newly computed value. Empty when Type is ChangeSkipped.
	Checksum string

	// Previous is the checksum recorded by an earlier pass, if any.
	Previous string
}

// ChecksumEntry is a persisted checksum for a document reference.
type ChecksumEntry struct {
	// Reference identifies the document.
	Reference string

	// Checksum is the recorded hex digest.
	Checksum string

	// Algorithm names the digest algorithm that produced the value.
	Algorithm string

	// RunID is the crawl run that last touched this entry.
	RunID string

	// UpdatedAt is when the entry was last written.
	UpdatedAt time.Time
}

// CrawlRun records one scan over a document source.
type CrawlRun struct {
	// ID is the unique identifier for the run.
	ID string

	// Root is the source location that was scanned.
	Root string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed.
	FinishedAt time.Time

	// Created, Modified, Unmodified and Skipped count documents by outcome.
	Created    int
	Modified   int
	Unmodified int
	Skipped    int

	// ErrorCount is the number of documents that failed to checksum.
	ErrorCount int
}
