// Package filesystem implements the DocumentSource port over a local
// directory tree. A walk emits one document per regular file, with the
// file body exposed as a reopenable stream and basic file attributes
// copied into metadata. Hidden files and directories (dot-prefixed)
// are skipped.
//
// Emission can be throttled with a token bucket so large trees do not
// monopolise downstream stores. Watch mode uses fsnotify to re-emit
// documents as files are created or written.
package filesystem
