package checksum

import (
	"sort"
	"strings"

	"github.com/custodia-labs/recrawl/internal/core/domain"
)

// fromFields digests a deterministic concatenation of metadata field
// values. Returns "" when no field contributes a non-blank value.
func fromFields(meta domain.Metadata, fields []string, algo Algorithm) (string, error) {
	// Sort a copy so neither configuration order nor metadata iteration
	// order affects the checksum. Duplicate names are kept and processed
	// again; existing stored checksums depend on that.
	sorted := make([]string, len(fields))
	copy(sorted, fields)
	sort.Strings(sorted)

	var b strings.Builder
	for _, field := range sorted {
		values, ok := meta.Values(field)
		if !ok {
			// Absent field contributes nothing. Not an error.
			continue
		}
		for _, value := range values {
			if strings.TrimSpace(value) == "" {
				continue
			}
			b.WriteString(field)
			b.WriteByte('=')
			b.WriteString(value)
			b.WriteByte(';')
		}
	}

	combined := b.String()
	if strings.TrimSpace(combined) == "" {
		// Nothing contributed: the result is absent, not the digest of "".
		return "", nil
	}
	return algo.Sum([]byte(combined))
}
