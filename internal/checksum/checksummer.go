package checksum

import (
	"strings"
	"sync"

	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/logger"
)

// DefaultTargetField is the metadata field that receives the checksum
// when Keep is enabled and no target field is configured.
const DefaultTargetField = "recrawl.checksum"

// Config holds checksummer settings. Values arrive already parsed and
// validated from the configuration layer.
type Config struct {
	// SourceFields selects field mode when non-empty. The checksum is
	// then built from these metadata fields instead of the body.
	SourceFields []string

	// Disabled short-circuits checksum computation entirely.
	Disabled bool

	// Algorithm selects the digest. Empty means AlgorithmMD5.
	Algorithm Algorithm

	// Keep stores a produced checksum in the document's metadata.
	Keep bool

	// TargetField is where Keep stores the checksum.
	// Empty means DefaultTargetField.
	TargetField string
}

// Checksummer computes document checksums according to its configuration.
// It holds no per-document state, so concurrent calls on independent
// documents are safe; configuration reads and updates are guarded.
type Checksummer struct {
	mu  sync.RWMutex
	cfg Config
}

// New creates a checksummer with the given configuration.
func New(cfg Config) *Checksummer {
	return &Checksummer{cfg: cfg}
}

// Config returns a copy of the current configuration.
func (c *Checksummer) Config() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cfg := c.cfg
	if cfg.SourceFields != nil {
		fields := make([]string, len(cfg.SourceFields))
		copy(fields, cfg.SourceFields)
		cfg.SourceFields = fields
	}
	return cfg
}

// SetConfig replaces the configuration. Safe between calls on a
// long-lived instance; in-flight computations keep the snapshot they
// started with.
func (c *Checksummer) SetConfig(cfg Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = cfg
}

// SourceFields returns the configured source fields.
func (c *Checksummer) SourceFields() []string {
	return c.Config().SourceFields
}

// SetSourceFields replaces the configured source fields.
// Passing none switches back to content mode.
func (c *Checksummer) SetSourceFields(fields ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.SourceFields = fields
}

// Disabled reports whether the checksummer is disabled.
func (c *Checksummer) Disabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.Disabled
}

// SetDisabled enables or disables the checksummer.
func (c *Checksummer) SetDisabled(disabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Disabled = disabled
}

// Checksum computes the document's checksum, or "" when none should be
// produced. Mode selection happens on every call: disabled wins, then
// field mode if any source fields are configured, otherwise the digest
// covers the whole body content.
//
// When no checksum is produced ("", nil) no content was read and the
// document is untouched. When Keep is configured, a produced checksum
// is also added to the document's metadata.
func (c *Checksummer) Checksum(doc *domain.Document) (string, error) {
	cfg := c.Config()

	if cfg.Disabled {
		return "", nil
	}

	var (
		sum string
		err error
	)
	if len(cfg.SourceFields) > 0 {
		sum, err = fromFields(doc.Metadata, cfg.SourceFields, cfg.Algorithm)
		if err == nil && sum != "" {
			logger.Debug("checksum for %s from fields %s: %s",
				doc.Reference, strings.Join(cfg.SourceFields, ","), sum)
		}
	} else {
		sum, err = fromContent(doc, cfg.Algorithm)
		if err == nil {
			logger.Debug("checksum for %s from content: %s", doc.Reference, sum)
		}
	}
	if err != nil {
		return "", err
	}

	if sum != "" && cfg.Keep {
		target := cfg.TargetField
		if target == "" {
			target = DefaultTargetField
		}
		if doc.Metadata == nil {
			doc.Metadata = domain.NewMetadata()
		}
		doc.Metadata.Add(target, sum)
	}

	return sum, nil
}
