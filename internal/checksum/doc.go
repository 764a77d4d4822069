// Package checksum computes stable fingerprints for crawled documents.
//
// A Checksummer produces a lowercase hex digest for a document, used by
// the pipeline to detect whether content changed since a prior pass.
// Two strategies exist, selected per call from the configuration:
//
//   - Content mode (default): the digest covers every byte of the
//     document body, streamed so large documents are never buffered.
//   - Field mode: when source fields are configured, the digest covers
//     a deterministic concatenation of those metadata field values.
//
// Field mode sorts the configured field names before accumulation, so
// the result is independent of both metadata iteration order and the
// order fields appear in configuration. An empty result ("") means no
// checksum was produced; it is deliberate (disabled, or nothing to
// digest) and distinct from the digest of empty input.
//
// Digests here serve change detection, not security. The default
// algorithm is md5 for parity with historically stored checksums;
// sha256 and xxhash64 are available where parity does not matter.
package checksum
