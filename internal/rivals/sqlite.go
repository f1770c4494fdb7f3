package rivals

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the rival set in a SQLite table, one row per abbreviation.
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// OpenSQLiteStore opens or creates the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create rivals dir: %w", err)
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS rivals (
		store_key TEXT NOT NULL,
		abbrev    TEXT NOT NULL,
		PRIMARY KEY (store_key, abbrev)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init rivals schema: %w", err)
	}
	return &SQLiteStore{db: db, key: Key}, nil
}

// Load reads the rows for the store key.
func (s *SQLiteStore) Load(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT abbrev FROM rivals WHERE store_key = ?`, s.key)
	if err != nil {
		return nil, fmt.Errorf("query rivals: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var abbrev string
		if err := rows.Scan(&abbrev); err != nil {
			return nil, fmt.Errorf("scan rival: %w", err)
		}
		out = append(out, abbrev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rivals: %w", err)
	}
	return Normalize(out), nil
}

// Save rewrites the rows for the store key in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, rivals []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rivals tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rivals WHERE store_key = ?`, s.key); err != nil {
		return fmt.Errorf("clear rivals: %w", err)
	}
	for _, abbrev := range Normalize(rivals) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO rivals (store_key, abbrev) VALUES (?, ?)`, s.key, abbrev); err != nil {
			return fmt.Errorf("insert rival %s: %w", abbrev, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rivals: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
