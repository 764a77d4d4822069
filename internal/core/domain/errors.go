package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoContent indicates a document has no body to read.
	ErrNoContent = errors.New("document has no content")

	// ErrSourceClosed indicates the document source has been closed.
	ErrSourceClosed = errors.New("document source closed")

	// ErrUnsupportedAlgorithm indicates an unknown digest algorithm name.
	ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")
)
