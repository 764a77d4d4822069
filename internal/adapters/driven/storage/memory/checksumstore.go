// Package memory provides in-memory implementations of driven store
// interfaces, used in tests and for throwaway runs.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/core/ports/driven"
)

// Ensure ChecksumStore implements the interface.
var _ driven.ChecksumStore = (*ChecksumStore)(nil)

// ChecksumStore is an in-memory implementation of driven.ChecksumStore.
type ChecksumStore struct {
	mu      sync.RWMutex
	entries map[string]domain.ChecksumEntry
	runs    []domain.CrawlRun
}

// NewChecksumStore creates a new in-memory checksum store.
func NewChecksumStore() *ChecksumStore {
	return &ChecksumStore{
		entries: make(map[string]domain.ChecksumEntry),
	}
}

// Get retrieves the entry for a document reference.
func (s *ChecksumStore) Get(_ context.Context, reference string) (*domain.ChecksumEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[reference]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// Save stores or updates an entry, keyed by reference.
func (s *ChecksumStore) Save(_ context.Context, entry domain.ChecksumEntry) error {
	if entry.Reference == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Reference] = entry
	return nil
}

// Delete removes the entry for a reference.
func (s *ChecksumStore) Delete(_ context.Context, reference string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, reference)
	return nil
}

// List returns all recorded entries, sorted by reference.
func (s *ChecksumStore) List(_ context.Context) ([]domain.ChecksumEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.ChecksumEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Reference < entries[j].Reference
	})
	return entries, nil
}

// SaveRun records a completed crawl run.
func (s *ChecksumStore) SaveRun(_ context.Context, run domain.CrawlRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// ListRuns returns recorded crawl runs, most recent first.
func (s *ChecksumStore) ListRuns(_ context.Context) ([]domain.CrawlRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]domain.CrawlRun, len(s.runs))
	copy(runs, s.runs)
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}
