// Package sqlite provides a SQLite-backed result store for discovered
// candidates and search history.
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
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/chanscout/chanscout-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/chanscout/chanscout-cli/internal/core/domain"
	"github.com/chanscout/chanscout-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ResultStore = (*Store)(nil)

// Store is a SQLite-based result store. Candidates are upserted by
// identity, so repeated discoveries refresh rather than duplicate.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.chanscout/data/results.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".chanscout", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "results.db")

	// WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

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

// migrate applies any pending migrations from the embedded filesystem.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_init.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// SaveCandidates upserts discovered candidates keyed by identity.
func (s *Store) SaveCandidates(ctx context.Context, query string, candidates []domain.SearchCandidate) error {
	if len(candidates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO search_results
			(channel_id, query, title, handle, kind, participants, description, category, verified, found_by, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(channel_id) DO UPDATE SET
			query        = excluded.query,
			title        = excluded.title,
			handle       = excluded.handle,
			kind         = excluded.kind,
			participants = excluded.participants,
			description  = excluded.description,
			category     = excluded.category,
			verified     = excluded.verified,
			found_by     = excluded.found_by,
			last_updated = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, c := range candidates {
		verified := 0
		if c.Verified {
			verified = 1
		}
		_, err := stmt.ExecContext(ctx,
			c.Identity, query, c.Title, c.Handle, string(c.Kind),
			c.ParticipantCount, c.Description, c.Category, verified,
			strings.Join(c.FoundBy, ","),
		)
		if err != nil {
			return fmt.Errorf("upserting candidate %s: %w", c.Identity, err)
		}
	}

	return tx.Commit()
}

// SaveSearch appends one history record.
func (s *Store) SaveSearch(ctx context.Context, rec driven.SearchRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO search_history (id, query, result_count, created_at)
		VALUES (?, ?, ?, ?)
	`, rec.ID, rec.Query, rec.ResultCount, rec.At.UTC())
	if err != nil {
		return fmt.Errorf("saving search record: %w", err)
	}
	return nil
}

// CandidatesByCategory returns stored candidates in a category,
// largest first.
func (s *Store) CandidatesByCategory(ctx context.Context, category string, minParticipants, limit int) ([]domain.SearchCandidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT channel_id, title, handle, kind, participants, description, category, verified, found_by
		FROM search_results
		WHERE category = ? AND participants >= ?
		ORDER BY participants DESC
		LIMIT ?
	`, category, minParticipants, limit)
	if err != nil {
		return nil, fmt.Errorf("querying by category: %w", err)
	}
	defer rows.Close()

	var candidates []domain.SearchCandidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// CandidateByIdentity looks up one stored candidate.
func (s *Store) CandidateByIdentity(ctx context.Context, identity string) (domain.SearchCandidate, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT channel_id, title, handle, kind, participants, description, category, verified, found_by
		FROM search_results
		WHERE channel_id = ?
	`, domain.NormalizeIdentity(identity))

	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SearchCandidate{}, fmt.Errorf("candidate %s: %w", identity, domain.ErrEntityNotFound)
	}
	return c, err
}

// PopularQueries aggregates history since the given time.
func (s *Store) PopularQueries(ctx context.Context, since time.Time, limit int) ([]driven.PopularQuery, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query, COUNT(*) AS n
		FROM search_history
		WHERE created_at >= ?
		GROUP BY query
		ORDER BY n DESC, query ASC
		LIMIT ?
	`, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("querying popular queries: %w", err)
	}
	defer rows.Close()

	var popular []driven.PopularQuery
	for rows.Next() {
		var p driven.PopularQuery
		if err := rows.Scan(&p.Query, &p.Count); err != nil {
			return nil, fmt.Errorf("scanning popular query: %w", err)
		}
		popular = append(popular, p)
	}
	return popular, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row scanner) (domain.SearchCandidate, error) {
	var (
		c        domain.SearchCandidate
		kind     string
		verified int
		foundBy  string
	)
	err := row.Scan(&c.Identity, &c.Title, &c.Handle, &kind,
		&c.ParticipantCount, &c.Description, &c.Category, &verified, &foundBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.SearchCandidate{}, err
		}
		return domain.SearchCandidate{}, fmt.Errorf("scanning candidate: %w", err)
	}
	c.Kind = domain.EntityKind(kind)
	c.Verified = verified == 1
	if c.Handle != "" {
		c.Link = "https://t.me/" + c.Handle
	}
	if foundBy != "" {
		c.FoundBy = strings.Split(foundBy, ",")
	}
	return c, nil
}
