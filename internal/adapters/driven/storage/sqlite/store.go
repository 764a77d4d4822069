package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/recrawl/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/recrawl/internal/core/domain"
	"github.com/custodia-labs/recrawl/internal/core/ports/driven"
)

// Store is a SQLite-based storage that provides access to the checksum
// store interface through a wrapper type.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.recrawl/data/checksums.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".recrawl", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "checksums.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ChecksumStore returns a ChecksumStore interface backed by this store.
func (s *Store) ChecksumStore() driven.ChecksumStore {
	return &checksumStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Checksum Store ====================

// checksumStore implements driven.ChecksumStore.
type checksumStore struct {
	store *Store
}

var _ driven.ChecksumStore = (*checksumStore)(nil)

// Get retrieves the entry for a document reference.
func (s *checksumStore) Get(ctx context.Context, reference string) (*domain.ChecksumEntry, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT reference, checksum, algorithm, run_id, updated_at
		FROM checksums WHERE reference = ?
	`, reference)

	var entry domain.ChecksumEntry
	var runID sql.NullString
	var updatedAt sql.NullTime
	if err := row.Scan(&entry.Reference, &entry.Checksum, &entry.Algorithm,
		&runID, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning checksum: %w", err)
	}

	entry.RunID = runID.String
	if updatedAt.Valid {
		entry.UpdatedAt = updatedAt.Time
	}

	return &entry, nil
}

// Save stores or updates an entry, keyed by reference.
func (s *checksumStore) Save(ctx context.Context, entry domain.ChecksumEntry) error {
	if entry.Reference == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO checksums (reference, checksum, algorithm, run_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(reference) DO UPDATE SET
			checksum = excluded.checksum,
			algorithm = excluded.algorithm,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at
	`, entry.Reference, entry.Checksum, entry.Algorithm,
		nullString(entry.RunID), entry.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving checksum: %w", err)
	}
	return nil
}

// Delete removes the entry for a reference.
func (s *checksumStore) Delete(ctx context.Context, reference string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM checksums WHERE reference = ?", reference)
	if err != nil {
		return fmt.Errorf("deleting checksum: %w", err)
	}
	return nil
}

// List returns all recorded entries, sorted by reference.
func (s *checksumStore) List(ctx context.Context) ([]domain.ChecksumEntry, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT reference, checksum, algorithm, run_id, updated_at
		FROM checksums ORDER BY reference
	`)
	if err != nil {
		return nil, fmt.Errorf("querying checksums: %w", err)
	}
	defer rows.Close()

	var checksums []domain.ChecksumEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.ChecksumEntry
		var runID sql.NullString
		var updatedAt sql.NullTime
		if err := rows.Scan(&entry.Reference, &entry.Checksum, &entry.Algorithm,
			&runID, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning checksum: %w", err)
		}
		entry.RunID = runID.String
		if updatedAt.Valid {
			entry.UpdatedAt = updatedAt.Time
		}
		checksums = append(checksums, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checksums: %w", err)
	}

	return checksums, nil
}

// SaveRun records a completed crawl run.
func (s *checksumStore) SaveRun(ctx context.Context, run domain.CrawlRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO crawl_runs
			(id, root, started_at, finished_at, created, modified, unmodified, skipped, error_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			root = excluded.root,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			created = excluded.created,
			modified = excluded.modified,
			unmodified = excluded.unmodified,
			skipped = excluded.skipped,
			error_count = excluded.error_count
	`, run.ID, run.Root, run.StartedAt, run.FinishedAt,
		run.Created, run.Modified, run.Unmodified, run.Skipped, run.ErrorCount)

	if err != nil {
		return fmt.Errorf("saving crawl run: %w", err)
	}
	return nil
}

// ListRuns returns recorded crawl runs, most recent first.
func (s *checksumStore) ListRuns(ctx context.Context) ([]domain.CrawlRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, root, started_at, finished_at, created, modified, unmodified, skipped, error_count
		FROM crawl_runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying crawl runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.CrawlRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.CrawlRun
		var startedAt, finishedAt sql.NullTime
		if err := rows.Scan(&run.ID, &run.Root, &startedAt, &finishedAt,
			&run.Created, &run.Modified, &run.Unmodified, &run.Skipped,
			&run.ErrorCount); err != nil {
			return nil, fmt.Errorf("scanning crawl run: %w", err)
		}
		if startedAt.Valid {
			run.StartedAt = startedAt.Time
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating crawl runs: %w", err)
	}

	return runs, nil
}

// ==================== Helper Functions ====================

// nullString converts an empty string to a NULL-able value.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
