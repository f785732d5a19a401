package project

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/piwi3910/citysnap/internal/catalog"
	"github.com/piwi3910/citysnap/internal/model"
)

// ErrLayoutNotFound is returned when the library has no layout by that name.
var ErrLayoutNotFound = errors.New("layout not found")

const librarySchema = `
CREATE TABLE IF NOT EXISTS layouts (
    name       TEXT PRIMARY KEY,
    saved_at   TEXT NOT NULL,
    piece_count INTEGER NOT NULL,
    pieces     TEXT NOT NULL
);`

// LibraryEntry summarizes one stored layout.
type LibraryEntry struct {
	Name       string
	SavedAt    string
	PieceCount int
}

// Library is a SQLite-backed collection of named layouts.
type Library struct {
	db *sql.DB
}

// DefaultLibraryPath returns ~/.citysnap/library.db.
func DefaultLibraryPath() string {
	return filepath.Join(DefaultConfigDir(), "library.db")
}

// OpenLibrary opens or creates the layout library at dbPath.
func OpenLibrary(ctx context.Context, dbPath string) (*Library, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir library dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, librarySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply library schema: %w", err)
	}
	return &Library{db: db}, nil
}

// Close releases the database handle.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save stores pieces under name, replacing any layout already there.
func (l *Library) Save(ctx context.Context, name string, pieces []model.PlacedPiece) error {
	if name == "" {
		return errors.New("layout name must not be empty")
	}
	if pieces == nil {
		pieces = []model.PlacedPiece{}
	}
	data, err := json.Marshal(pieces)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx, `
        INSERT INTO layouts (name, saved_at, piece_count, pieces)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(name) DO UPDATE SET
            saved_at = excluded.saved_at,
            piece_count = excluded.piece_count,
            pieces = excluded.pieces
    `, name, time.Now().UTC().Format(time.RFC3339), len(pieces), string(data))
	if err != nil {
		return fmt.Errorf("save layout %q: %w", name, err)
	}
	return nil
}

// Load returns the layout stored under name. Every piece must resolve in cat.
func (l *Library) Load(ctx context.Context, name string, cat *catalog.Catalog) ([]model.PlacedPiece, error) {
	var data string
	row := l.db.QueryRowContext(ctx, `SELECT pieces FROM layouts WHERE name = ?`, name)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, name)
		}
		return nil, err
	}

	var pieces []model.PlacedPiece
	if err := json.Unmarshal([]byte(data), &pieces); err != nil {
		return nil, fmt.Errorf("decode layout %q: %w", name, err)
	}
	var errs []error
	for _, p := range pieces {
		if !cat.Has(p.PieceID) {
			errs = append(errs, fmt.Errorf("piece %s: %w %q", p.ID, ErrUnresolvedPiece, p.PieceID))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return pieces, nil
}

// List returns the stored layouts, most recently saved first.
func (l *Library) List(ctx context.Context) ([]LibraryEntry, error) {
	rows, err := l.db.QueryContext(ctx, `
        SELECT name, saved_at, piece_count FROM layouts
        ORDER BY saved_at DESC, name
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []LibraryEntry{}
	for rows.Next() {
		var e LibraryEntry
		if err := rows.Scan(&e.Name, &e.SavedAt, &e.PieceCount); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a stored layout. Returns false if no layout had that name.
func (l *Library) Delete(ctx context.Context, name string) (bool, error) {
	res, err := l.db.ExecContext(ctx, `DELETE FROM layouts WHERE name = ?`, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
