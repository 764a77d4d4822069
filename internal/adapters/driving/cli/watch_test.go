package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatchCmd_RejectsMissingRoot(t *testing.T) {
	_, err := execute(t, &fakeDetector{}, "watch", filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWatchCmd_RejectsUnknownAlgorithm(t *testing.T) {
	_, err := execute(t, &fakeDetector{}, "watch", t.TempDir(), "--algorithm", "rot13")
	assert.Error(t, err)
}
