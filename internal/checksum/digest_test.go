package checksum

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		name string
		want Algorithm
	}{
		{"", AlgorithmMD5},
		{"md5", AlgorithmMD5},
		{"sha256", AlgorithmSHA256},
		{"xxhash64", AlgorithmXXHash64},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.name)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseAlgorithm_Unknown(t *testing.T) {
	_, err := ParseAlgorithm("crc32")
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
}

func TestSum_LowercaseHexFixedLength(t *testing.T) {
	tests := []struct {
		algo   Algorithm
		hexLen int
	}{
		{AlgorithmMD5, 32},
		{AlgorithmSHA256, 64},
		{AlgorithmXXHash64, 16},
	}
	for _, tt := range tests {
		sum, err := tt.algo.Sum([]byte("hello world"))
		require.NoError(t, err)
		assert.Len(t, sum, tt.hexLen)
		assert.Equal(t, strings.ToLower(sum), sum)
	}
}

func TestSum_KnownValues(t *testing.T) {
	md5Sum, err := AlgorithmMD5.Sum([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", md5Sum)

	shaSum, err := AlgorithmSHA256.Sum([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t,
		"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9", shaSum)

	// XXH64 of zero bytes with seed 0.
	xxSum, err := AlgorithmXXHash64.Sum(nil)
	require.NoError(t, err)
	assert.Equal(t, "ef46db3751d8e999", xxSum)
}

func TestSum_DefaultAlgorithmIsMD5(t *testing.T) {
	def, err := Algorithm("").Sum([]byte("x"))
	require.NoError(t, err)
	md5Sum, err := AlgorithmMD5.Sum([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, md5Sum, def)
}

func TestSum_UnknownAlgorithm(t *testing.T) {
	_, err := Algorithm("whirlpool").Sum([]byte("x"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedAlgorithm)
}
