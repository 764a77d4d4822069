package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recrawl/internal/connectors/filesystem"
)

func TestForgetCmd_FileReference(t *testing.T) {
	fake := &fakeDetector{}

	out, err := execute(t, fake, "forget", "file:///data/doc.txt")

	require.NoError(t, err)
	assert.Equal(t, []string{"file:///data/doc.txt"}, fake.forgotten)
	assert.Contains(t, out, "Forgot checksum")
}

func TestForgetCmd_BarePathBecomesReference(t *testing.T) {
	fake := &fakeDetector{}
	path := filepath.Join(t.TempDir(), "doc.txt")

	_, err := execute(t, fake, "forget", path)

	require.NoError(t, err)
	require.Len(t, fake.forgotten, 1)
	assert.Equal(t, filesystem.Reference(path), fake.forgotten[0])
}
