package checksum

import (
	"crypto/md5"    //nolint:gosec // change detection, not security
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"github.com/cespare/xxhash/v2"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

// Algorithm identifies a digest algorithm. All algorithms render their
// output as lowercase hexadecimal and produce identical results for
// identical bytes whether fed from memory or streamed.
type Algorithm string

const (
	// AlgorithmMD5 is the default. It matches the 128-bit digests
	// produced by earlier versions of the pipeline, so previously
	// stored checksums remain comparable.
	AlgorithmMD5 Algorithm = "md5"

	// AlgorithmSHA256 trades speed for a larger digest.
	AlgorithmSHA256 Algorithm = "sha256"

	// AlgorithmXXHash64 is a fast non-cryptographic 64-bit digest.
	AlgorithmXXHash64 Algorithm = "xxhash64"
)

// ParseAlgorithm validates an algorithm name from configuration.
// An empty name selects the default.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case "":
		return AlgorithmMD5, nil
	case AlgorithmMD5, AlgorithmSHA256, AlgorithmXXHash64:
		return Algorithm(name), nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedAlgorithm, name)
	}
}

// newHash returns a fresh hash state for the algorithm.
func (a Algorithm) newHash() (hash.Hash, error) {
	switch a {
	case "", AlgorithmMD5:
		return md5.New(), nil //nolint:gosec // change detection, not security
	case AlgorithmSHA256:
		return sha256.New(), nil
	case AlgorithmXXHash64:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedAlgorithm, string(a))
	}
}

// Sum returns the lowercase hex digest of an in-memory buffer.
func (a Algorithm) Sum(data []byte) (string, error) {
	h, err := a.newHash()
	if err != nil {
		return "", err
	}
	h.Write(data) // hash.Hash.Write never returns an error
	return hex.EncodeToString(h.Sum(nil)), nil
}
