package filesystem

import (
	"path/filepath"
	"strings"
)

// Reference converts a local path to the file:// reference recorded in
// the checksum store. Paths are normalised to forward slashes so the
// same tree produces the same references on every platform.
func Reference(path string) string {
	return "file://" + filepath.ToSlash(path)
}

// ResolvePath converts a document reference back to a local path for
// opening. Handles file:// references and bare paths.
func ResolvePath(ref string) string {
	if strings.HasPrefix(ref, "file://") {
		return filepath.FromSlash(strings.TrimPrefix(ref, "file://"))
	}
	// Bare paths pass through unchanged
	return ref
}
