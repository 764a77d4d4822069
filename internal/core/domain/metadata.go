package domain

import "sort"

// Metadata maps a field name to an ordered sequence of string values.
//
// Field names are unique keys; iteration order over names is undefined,
// as with any Go map. Value order within a field IS meaningful and is
// preserved exactly as inserted. A field that is absent from the map is
// distinct from a field present with zero values: checksum computation
// depends on that distinction.
type Metadata map[string][]string

// NewMetadata creates an empty metadata container.
func NewMetadata() Metadata {
	return make(Metadata)
}

// Values returns the value sequence for a field and whether the field
// is present at all.
func (m Metadata) Values(name string) ([]string, bool) {
	values, ok := m[name]
	return values, ok
}

// First returns the first value for a field, or "" if the field is
// absent or has no values.
func (m Metadata) First(name string) string {
	values := m[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Set replaces the value sequence for a field.
func (m Metadata) Set(name string, values ...string) {
	m[name] = values
}

// Add appends values to a field, creating it if absent.
func (m Metadata) Add(name string, values ...string) {
	m[name] = append(m[name], values...)
}

// Delete removes a field entirely.
func (m Metadata) Delete(name string) {
	delete(m, name)
}

// Names returns all field names in sorted order.
func (m Metadata) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	clone := make(Metadata, len(m))
	for name, values := range m {
		copied := make([]string, len(values))
		copy(copied, values)
		clone[name] = copied
	}
	return clone
}
