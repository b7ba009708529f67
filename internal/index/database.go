// Package index handles SQLite database operations for per-user data:
// jump ownership and ratings. The catalog itself stays file-backed; the
// index holds only the data that grows per user.
package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Database is the SQLite database handle.
type Database struct {
	db *sql.DB
}

var (
	// ErrNotOwned indicates the user has no ownership record for the jump.
	ErrNotOwned = errors.New("jump is not owned")
	// ErrAlreadyOwned indicates the user already owns the jump.
	ErrAlreadyOwned = errors.New("jump is already owned")
	// ErrNoProof indicates an ownership record without a proof link.
	ErrNoProof = errors.New("no proof set for that jump")
)

// DB returns the underlying sql.DB for advanced queries.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Open opens or creates the database under the data directory.
func Open(dataDir string) (*Database, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Database, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}

	d := &Database{db: db}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return d, nil
}

// Close closes the database.
func (d *Database) Close() error {
	return d.db.Close()
}

// CurrentDBVersion is the current database schema version.
const CurrentDBVersion = 1

// initialize creates the database schema.
func (d *Database) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		-- One row per (user, jump) ownership claim.
		CREATE TABLE IF NOT EXISTS owned (
			user_id TEXT NOT NULL,
			jump TEXT NOT NULL,
			proof TEXT NOT NULL DEFAULT '',
			time_given TEXT NOT NULL,
			PRIMARY KEY (user_id, jump)
		);

		-- One row per (jump, user, rateable key); value is the internal form.
		CREATE TABLE IF NOT EXISTS ratings (
			jump TEXT NOT NULL,
			user_id TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (jump, user_id, key)
		);

		CREATE INDEX IF NOT EXISTS idx_owned_jump ON owned(jump);
		CREATE INDEX IF NOT EXISTS idx_ratings_jump_key ON ratings(jump, key);
	`

	_, err := d.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	_, err = d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("failed to set database version: %w", err)
	}

	return nil
}

// Stats returns row counts for the index.
func (d *Database) Stats() (*IndexStats, error) {
	var stats IndexStats

	if err := d.db.QueryRow("SELECT COUNT(*) FROM owned").Scan(&stats.OwnedCount); err != nil {
		return nil, err
	}
	if err := d.db.QueryRow("SELECT COUNT(DISTINCT user_id) FROM owned").Scan(&stats.UserCount); err != nil {
		return nil, err
	}
	if err := d.db.QueryRow("SELECT COUNT(*) FROM ratings").Scan(&stats.RatingCount); err != nil {
		return nil, err
	}

	return &stats, nil
}

// IndexStats contains index statistics.
type IndexStats struct {
	OwnedCount  int
	UserCount   int
	RatingCount int
}
