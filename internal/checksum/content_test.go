package checksum

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/logger"
)

func TestFromContent_KnownDigest(t *testing.T) {
	doc := contentDoc("doc-1", "hello world")

	sum, err := fromContent(doc, AlgorithmMD5)
	require.NoError(t, err)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", sum)
}

func TestFromContent_EmptyContentIsRealDigest(t *testing.T) {
	doc := contentDoc("doc-1", "")

	// Zero bytes digest to md5's empty-input value, not to absence.
	sum, err := fromContent(doc, AlgorithmMD5)
	require.NoError(t, err)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", sum)
}

func TestFromContent_DeterministicForIdenticalBytes(t *testing.T) {
	first, err := fromContent(contentDoc("a", "same bytes"), AlgorithmMD5)
	require.NoError(t, err)
	second, err := fromContent(contentDoc("b", "same bytes"), AlgorithmMD5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFromContent_StreamsLargeBody(t *testing.T) {
	// 8 MiB body streamed through the digest.
	body := strings.Repeat("0123456789abcdef", 512*1024)
	doc := contentDoc("big", body)

	streamed, err := fromContent(doc, AlgorithmSHA256)
	require.NoError(t, err)

	buffered, err := AlgorithmSHA256.Sum([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, buffered, streamed)
}

func TestFromContent_ClosesStreamOnSuccess(t *testing.T) {
	stream := &trackedStream{reader: bytes.NewReader([]byte("body"))}
	doc := &domain.Document{
		Reference: "doc-1",
		Body:      &trackedContent{stream: stream},
	}

	_, err := fromContent(doc, AlgorithmMD5)
	require.NoError(t, err)
	assert.True(t, stream.wasClosed)
}

func TestFromContent_ClosesStreamOnReadFailure(t *testing.T) {
	readErr := errors.New("read failed")
	stream := &trackedStream{readErr: readErr}
	doc := &domain.Document{
		Reference: "doc-1",
		Body:      &trackedContent{stream: stream},
	}

	_, err := fromContent(doc, AlgorithmMD5)
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.True(t, stream.wasClosed)
}

func TestFromContent_CloseFailureDoesNotMaskResult(t *testing.T) {
	var logged bytes.Buffer
	logger.SetOutput(&logged)
	logger.SetVerbose(true)
	t.Cleanup(func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	stream := &trackedStream{
		reader:   bytes.NewReader([]byte("hello world")),
		closeErr: errors.New("close failed"),
	}
	doc := &domain.Document{
		Reference: "doc-1",
		Body:      &trackedContent{stream: stream},
	}

	sum, err := fromContent(doc, AlgorithmMD5)
	require.NoError(t, err)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", sum)
	assert.Contains(t, logged.String(), "close failed")
}

func TestFromContent_OpenFailureCarriesReference(t *testing.T) {
	openErr := errors.New("no such file")
	doc := &domain.Document{
		Reference: "file:///gone.txt",
		Body:      &trackedContent{openErr: openErr},
	}

	_, err := fromContent(doc, AlgorithmMD5)
	require.Error(t, err)
	assert.ErrorIs(t, err, openErr)
	assert.Contains(t, err.Error(), "file:///gone.txt")
}

func TestFromContent_NilBody(t *testing.T) {
	doc := &domain.Document{Reference: "doc-1"}

	_, err := fromContent(doc, AlgorithmMD5)
	assert.ErrorIs(t, err, domain.ErrNoContent)
}
