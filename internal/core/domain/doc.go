// Package domain defines the core business entities for recrawl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: The unit of content flowing through a crawl pass
//   - Metadata: Multi-valued field store attached to a document
//   - ContentReader: Reopenable access to a document's body bytes
//   - ChangeType / ChangeResult: Outcome of comparing a document
//     against its previously recorded checksum
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
