// Package file provides a TOML-backed implementation of the ConfigStore
// port, plus typed loaders that turn stored keys into the checksum and
// scan configuration structs the core consumes.
//
// Configuration lives at ~/.recrawl/config.toml by default. Nested TOML
// tables are flattened to dot-notation keys, so [checksum] algorithm
// becomes "checksum.algorithm".
package file
