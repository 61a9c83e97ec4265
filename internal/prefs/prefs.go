// Package prefs persists per-user preferences: the preferred campus,
// favorite buildings, recent search entries and the theme mode.
// Backed by SQLite so preferences survive restarts.
package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/Jay-z-d/hit-empty-classroom-atomic-service/internal/errors"
)

const (
	// MaxFavoriteBuildings caps the favorite building list. Adding
	// beyond the cap evicts the least recently used entry.
	MaxFavoriteBuildings = 10

	// MaxRecentSearches caps the recent search history.
	MaxRecentSearches = 20
)

const (
	keyFavoriteCampus = "favorite_campus"
	keyThemeMode      = "theme_mode"
)

// ThemeMode values accepted by SetThemeMode.
const (
	ThemeSystem = "system"
	ThemeLight  = "light"
	ThemeDark   = "dark"
)

// SearchEntry is one remembered availability lookup.
type SearchEntry struct {
	Campus     string    `json:"campus"`
	Building   string    `json:"building"`
	Date       string    `json:"date"`
	SearchedAt time.Time `json:"searched_at"`
}

var (
	settingsWrap  = apperrors.NewWrapper("prefs", "settings")
	favoritesWrap = apperrors.NewWrapper("prefs", "favorites")
	searchesWrap  = apperrors.NewWrapper("prefs", "searches")
)

// Store manages preference persistence.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS favorite_buildings (
	campus     TEXT NOT NULL,
	building   TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (campus, building)
);

CREATE TABLE IF NOT EXISTS recent_searches (
	campus      TEXT NOT NULL,
	building    TEXT NOT NULL,
	date        TEXT NOT NULL,
	searched_at INTEGER NOT NULL,
	PRIMARY KEY (campus, building, date)
);
`

// Open opens (creating if needed) the preference database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)")
	if err != nil {
		return nil, fmt.Errorf("prefs: open database: %w", err)
	}
	// modernc.org/sqlite serializes access internally; a single
	// connection avoids SQLITE_BUSY under write contention.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prefs: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// FavoriteCampus returns the preferred campus, or "" when unset.
func (s *Store) FavoriteCampus(ctx context.Context) (string, error) {
	return s.getSetting(ctx, keyFavoriteCampus)
}

// SetFavoriteCampus stores the preferred campus.
func (s *Store) SetFavoriteCampus(ctx context.Context, campus string) error {
	if campus == "" {
		return errors.New("prefs: campus must not be empty")
	}
	return s.setSetting(ctx, keyFavoriteCampus, campus)
}

// ThemeMode returns the stored theme mode, defaulting to ThemeSystem.
func (s *Store) ThemeMode(ctx context.Context) (string, error) {
	mode, err := s.getSetting(ctx, keyThemeMode)
	if err != nil {
		return "", err
	}
	if mode == "" {
		return ThemeSystem, nil
	}
	return mode, nil
}

// SetThemeMode stores the theme mode.
func (s *Store) SetThemeMode(ctx context.Context, mode string) error {
	switch mode {
	case ThemeSystem, ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("prefs: unknown theme mode %q", mode)
	}
	return s.setSetting(ctx, keyThemeMode, mode)
}

func (s *Store) getSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", settingsWrap.Wrapf(err, "failed to read %s", key)
	}
	return value, nil
}

func (s *Store) setSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return settingsWrap.Wrapf(err, "failed to save %s", key)
	}
	return nil
}

// AddFavoriteBuilding records building as a favorite for campus,
// moving it to the front when it already exists and evicting the
// oldest entry past MaxFavoriteBuildings.
func (s *Store) AddFavoriteBuilding(ctx context.Context, campus, building string) error {
	if campus == "" || building == "" {
		return errors.New("prefs: campus and building must not be empty")
	}

	now := time.Now().UnixNano()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorite_buildings (campus, building, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(campus, building) DO UPDATE SET updated_at = excluded.updated_at`,
		campus, building, now)
	if err != nil {
		return favoritesWrap.Wrap(err, "failed to save favorite building")
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM favorite_buildings WHERE rowid NOT IN (
			SELECT rowid FROM favorite_buildings ORDER BY updated_at DESC LIMIT ?
		)`, MaxFavoriteBuildings)
	if err != nil {
		return favoritesWrap.Wrap(err, "failed to trim favorite buildings")
	}
	return nil
}

// RemoveFavoriteBuilding deletes a favorite entry. Removing an entry
// that does not exist is not an error.
func (s *Store) RemoveFavoriteBuilding(ctx context.Context, campus, building string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favorite_buildings WHERE campus = ? AND building = ?`,
		campus, building)
	if err != nil {
		return favoritesWrap.Wrap(err, "failed to remove favorite building")
	}
	return nil
}

// FavoriteBuildings lists favorites for campus, most recent first.
func (s *Store) FavoriteBuildings(ctx context.Context, campus string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT building FROM favorite_buildings
		WHERE campus = ? ORDER BY updated_at DESC`, campus)
	if err != nil {
		return nil, favoritesWrap.Wrap(err, "failed to list favorite buildings")
	}
	defer func() { _ = rows.Close() }()

	buildings := make([]string, 0, MaxFavoriteBuildings)
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, favoritesWrap.Wrap(err, "failed to list favorite buildings")
		}
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, favoritesWrap.Wrap(err, "failed to list favorite buildings")
	}
	return buildings, nil
}

// AddRecentSearch records a search, deduplicating by campus, building
// and date and evicting the oldest entry past MaxRecentSearches.
func (s *Store) AddRecentSearch(ctx context.Context, entry SearchEntry) error {
	if entry.Campus == "" || entry.Building == "" || entry.Date == "" {
		return errors.New("prefs: campus, building and date must not be empty")
	}
	at := entry.SearchedAt
	if at.IsZero() {
		at = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recent_searches (campus, building, date, searched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(campus, building, date) DO UPDATE SET searched_at = excluded.searched_at`,
		entry.Campus, entry.Building, entry.Date, at.UnixNano())
	if err != nil {
		return searchesWrap.Wrap(err, "failed to record search history")
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM recent_searches WHERE rowid NOT IN (
			SELECT rowid FROM recent_searches ORDER BY searched_at DESC LIMIT ?
		)`, MaxRecentSearches)
	if err != nil {
		return searchesWrap.Wrap(err, "failed to trim search history")
	}
	return nil
}

// RecentSearches lists remembered searches, most recent first.
func (s *Store) RecentSearches(ctx context.Context) ([]SearchEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT campus, building, date, searched_at FROM recent_searches
		ORDER BY searched_at DESC`)
	if err != nil {
		return nil, searchesWrap.Wrap(err, "failed to list search history")
	}
	defer func() { _ = rows.Close() }()

	entries := make([]SearchEntry, 0, MaxRecentSearches)
	for rows.Next() {
		var (
			entry SearchEntry
			nanos int64
		)
		if err := rows.Scan(&entry.Campus, &entry.Building, &entry.Date, &nanos); err != nil {
			return nil, searchesWrap.Wrap(err, "failed to list search history")
		}
		entry.SearchedAt = time.Unix(0, nanos)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, searchesWrap.Wrap(err, "failed to list search history")
	}
	return entries, nil
}

// ClearRecentSearches deletes the whole search history.
func (s *Store) ClearRecentSearches(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_searches`); err != nil {
		return searchesWrap.Wrap(err, "failed to clear search history")
	}
	return nil
}
