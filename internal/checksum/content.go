package checksum

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/logger"
)

// fromContent digests the whole document body, streamed. Empty content
// yields the algorithm's digest of zero bytes, which is a valid
// checksum; only the field path has an absent outcome.
func fromContent(doc *domain.Document, algo Algorithm) (string, error) {
	if doc.Body == nil {
		return "", fmt.Errorf("checksum content for %q: %w", doc.Reference, domain.ErrNoContent)
	}

	h, err := algo.newHash()
	if err != nil {
		return "", err
	}

	rc, err := doc.Body.Open()
	if err != nil {
		return "", fmt.Errorf("checksum content for %q: %w", doc.Reference, err)
	}

	_, copyErr := io.Copy(h, rc)
	closeErr := rc.Close()

	if copyErr != nil {
		return "", fmt.Errorf("checksum content for %q: %w", doc.Reference, copyErr)
	}
	if closeErr != nil {
		// The digest is already complete; a close failure must not
		// discard it.
		logger.Warn("closing content stream for %s: %v", doc.Reference, closeErr)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
