package file

import (
	"fmt"

	"github.com/custodia-labs/recrawl/internal/checksum"
	"github.com/custodia-labs/recrawl/internal/core/ports/driven"
)

// Configuration keys for the [checksum] table.
const (
	KeyChecksumAlgorithm    = "checksum.algorithm"
	KeyChecksumSourceFields = "checksum.source_fields"
	KeyChecksumDisabled     = "checksum.disabled"
	KeyChecksumKeep         = "checksum.keep"
	KeyChecksumTargetField  = "checksum.target_field"
)

// Configuration keys for the [scan] table.
const (
	KeyScanDocsPerSecond = "scan.docs_per_second"
	KeyScanBurst         = "scan.burst"
)

// ScanConfig holds throttling settings for directory walking.
type ScanConfig struct {
	// DocsPerSecond limits emission rate. Zero means unlimited.
	DocsPerSecond int

	// Burst is the token bucket size when throttled.
	Burst int
}

// LoadChecksumConfig builds a validated checksum.Config from stored keys.
// Missing keys fall back to defaults (content mode, md5, enabled).
func LoadChecksumConfig(store driven.ConfigStore) (checksum.Config, error) {
	algo, err := checksum.ParseAlgorithm(store.GetString(KeyChecksumAlgorithm))
	if err != nil {
		return checksum.Config{}, fmt.Errorf("loading %s: %w", KeyChecksumAlgorithm, err)
	}

	return checksum.Config{
		SourceFields: store.GetStringSlice(KeyChecksumSourceFields),
		Disabled:     store.GetBool(KeyChecksumDisabled),
		Algorithm:    algo,
		Keep:         store.GetBool(KeyChecksumKeep),
		TargetField:  store.GetString(KeyChecksumTargetField),
	}, nil
}

// LoadScanConfig builds a ScanConfig from stored keys.
func LoadScanConfig(store driven.ConfigStore) ScanConfig {
	cfg := ScanConfig{
		DocsPerSecond: store.GetInt(KeyScanDocsPerSecond),
		Burst:         store.GetInt(KeyScanBurst),
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	return cfg
}
