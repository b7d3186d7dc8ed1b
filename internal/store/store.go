package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

var (
	// ErrStorage wraps any database I/O failure. Commits that hit it are
	// retried by the user, never by this package.
	ErrStorage = errors.New("storage failure")

	// ErrNotFound is returned when a lookup yields no rows.
	ErrNotFound = errors.New("not found")
)

// Gateway is the persistence contract the navigation controller consumes.
// Tests substitute an in-memory implementation.
type Gateway interface {
	EnsureArtist(ctx context.Context, id, name string) error
	UpsertAlbum(ctx context.Context, albumID, artistID, title string, year, rating int) error
	Ratings(ctx context.Context, artistID string) (map[string]int, error)
}

// RatedItem is one row of the rated-albums view: an album joined with
// the artist it was rated under.
type RatedItem struct {
	ArtistID   string
	ArtistName string
	AlbumID    string
	Title      string
	Year       int
	Rating     int
}

// Store persists ratings in a local SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

var _ Gateway = (*Store)(nil)

// Open creates or opens the ratings database at path and applies the
// schema. The parent directory is created if missing.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrStorage, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrStorage, err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: apply pragma %q: %v", ErrStorage, pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: apply schema: %v", ErrStorage, err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// EnsureArtist creates the artist row if it does not exist. Calling it
// again with the same id is a no-op; an existing row is never overwritten.
func (s *Store) EnsureArtist(ctx context.Context, id, name string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO artists (artist_id, artist_name) VALUES (?, ?)`,
		id, name,
	)
	if err != nil {
		return fmt.Errorf("%w: insert artist: %v", ErrStorage, err)
	}
	return nil
}

// UpsertAlbum creates or replaces the album row keyed by albumID,
// overwriting title, year, and rating unconditionally. The artist row
// must already exist; rows cascade away if the artist is ever deleted.
func (s *Store) UpsertAlbum(ctx context.Context, albumID, artistID, title string, year, rating int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO albums (album_id, artist_id, album_name, year, rating)
         VALUES (?, ?, ?, ?, ?)`,
		albumID, artistID, title, year, rating,
	)
	if err != nil {
		return fmt.Errorf("%w: upsert album: %v", ErrStorage, err)
	}
	return nil
}

// Ratings returns album id → rating for every rated album of the artist.
// An artist with no rated albums yields an empty map.
func (s *Store) Ratings(ctx context.Context, artistID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT album_id, rating FROM albums WHERE artist_id = ?`,
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query ratings: %v", ErrStorage, err)
	}
	defer rows.Close()

	ratings := make(map[string]int)
	for rows.Next() {
		var (
			albumID string
			rating  int
		)
		if err := rows.Scan(&albumID, &rating); err != nil {
			return nil, fmt.Errorf("%w: scan rating: %v", ErrStorage, err)
		}
		ratings[albumID] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read ratings: %v", ErrStorage, err)
	}

	return ratings, nil
}

// ListRated returns every rated album joined with its artist, ordered by
// artist name then title. Returns ErrNotFound when nothing has been
// rated yet.
func (s *Store) ListRated(ctx context.Context) ([]RatedItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT a.artist_id, a.artist_name, b.album_id, b.album_name, COALESCE(b.year, 0), b.rating
         FROM albums b
         JOIN artists a ON a.artist_id = b.artist_id
         ORDER BY a.artist_name, b.album_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: query rated albums: %v", ErrStorage, err)
	}
	defer rows.Close()

	var items []RatedItem
	for rows.Next() {
		var item RatedItem
		if err := rows.Scan(&item.ArtistID, &item.ArtistName, &item.AlbumID, &item.Title, &item.Year, &item.Rating); err != nil {
			return nil, fmt.Errorf("%w: scan rated album: %v", ErrStorage, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read rated albums: %v", ErrStorage, err)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no rated albums: %w", ErrNotFound)
	}
	return items, nil
}
