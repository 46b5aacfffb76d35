package gazetteer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS places (
	lookup_key TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	latitude   REAL NOT NULL CHECK (latitude BETWEEN -90 AND 90)
)`

const upsertPlace = `
INSERT INTO places (lookup_key, name, latitude) VALUES (?, ?, ?)
ON CONFLICT(lookup_key) DO UPDATE SET name = excluded.name, latitude = excluded.latitude`

const insertMissingPlace = `
INSERT INTO places (lookup_key, name, latitude) VALUES (?, ?, ?)
ON CONFLICT(lookup_key) DO NOTHING`

// SQLiteStore is a gazetteer persisted in a SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the gazetteer database at path.
// Use ":memory:" for a throwaway store.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer db: %w", err)
	}

	// A single connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)

	if path != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create places table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Seed inserts every place of t that the store does not hold yet. Rows
// already present, including ones changed through Put, are left alone.
func (s *SQLiteStore) Seed(ctx context.Context, t *Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertMissingPlace)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for name, lat := range t.Places() {
		if _, err := stmt.ExecContext(ctx, normalize(name), name, lat); err != nil {
			return fmt.Errorf("seed %s: %w", name, err)
		}
	}

	return tx.Commit()
}

// Put inserts or replaces a single place.
func (s *SQLiteStore) Put(ctx context.Context, name string, lat float64) error {
	name, err := checkPlace(name, lat)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, upsertPlace, normalize(name), name, lat)
	if err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Lookup implements Source.
func (s *SQLiteStore) Lookup(ctx context.Context, name string) (float64, error) {
	var lat float64
	err := s.db.QueryRowContext(ctx, "SELECT latitude FROM places WHERE lookup_key = ?", normalize(name)).Scan(&lat)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPlace, name)
	}
	if err != nil {
		return 0, fmt.Errorf("lookup %s: %w", name, err)
	}
	return lat, nil
}

// Resolve implements Source, returning the stored spelling of the name.
func (s *SQLiteStore) Resolve(ctx context.Context, name string) (Place, error) {
	var p Place
	err := s.db.QueryRowContext(ctx, "SELECT name, latitude FROM places WHERE lookup_key = ?", normalize(name)).Scan(&p.Name, &p.Latitude)
	if errors.Is(err, sql.ErrNoRows) {
		return Place{}, fmt.Errorf("%w: %q", ErrUnknownPlace, name)
	}
	if err != nil {
		return Place{}, fmt.Errorf("resolve %s: %w", name, err)
	}
	return p, nil
}

// Names implements Source. Names are sorted alphabetically.
func (s *SQLiteStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM places ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
