package domain

import (
	"bytes"
	"io"
	"os"
)

// Document is the unit of content being fingerprinted during a crawl pass.
// The pipeline owns the document; consumers read it and never mutate it
// beyond metadata they are explicitly configured to write.
type Document struct {
	// Reference is the document's identifier within its source
	// (file path, URL, etc). Unique per source.
	Reference string

	// Metadata holds the fields extracted for this document.
	Metadata Metadata

	// Body provides access to the raw content bytes.
	// May be nil for metadata-only documents.
	Body ContentReader
}

// ContentReader provides reopenable access to a document's body.
// Each Open call returns a fresh stream positioned at the start;
// the caller owns the returned stream and must close it.
type ContentReader interface {
	Open() (io.ReadCloser, error)
}

// BytesContent is an in-memory ContentReader, used for small documents
// and in tests.
type BytesContent []byte

// Open returns a reader over the byte slice.
func (b BytesContent) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// FileContent streams a document body from a file on disk.
// The file is opened lazily on each Open call, so arbitrarily large
// documents never need to be buffered in memory.
type FileContent struct {
	// Path is the location of the file on disk.
	Path string
}

// Open opens the underlying file for reading.
func (f FileContent) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}
