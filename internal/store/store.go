package store

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/shared"
)

// Store provides access to the shared playlist database.
type Store struct {
	db     *sql.DB
	logger *log.Logger
}

// New creates a Store over an open database connection.
// The schema must already be migrated (see shared.RunMigrations).
func New(db *sql.DB, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Store{db: db, logger: logger}
}

// CreatePlaylist inserts a playlist with its harmonizers and songs.
// Generates an id when the playlist has none. Owner and harmonizer user rows
// are created on first sight.
func (s *Store) CreatePlaylist(playlist *models.Playlist) error {
	if playlist.Name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}
	if playlist.ID == "" {
		playlist.ID = shared.GenerateID()
	}
	if !playlist.OriginPlatform.Valid() {
		playlist.OriginPlatform = models.PlatformHarmonize
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertUser(tx, playlist.Owner); err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO playlists (id, name, description, cover_art, owner_id, origin_platform, original_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, playlist.ID, playlist.Name, playlist.Description, playlist.CoverArt,
		playlist.Owner.ID, string(playlist.OriginPlatform), playlist.OriginalID)
	if err != nil {
		return fmt.Errorf("failed to insert playlist: %w", err)
	}

	for _, h := range playlist.Harmonizers {
		if err := upsertUser(tx, h); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT OR IGNORE INTO harmonizers (playlist_id, user_id) VALUES (?, ?)
		`, playlist.ID, h.ID); err != nil {
			return fmt.Errorf("failed to insert harmonizer: %w", err)
		}
	}

	for position, song := range playlist.Songs {
		if err := insertSong(tx, playlist.ID, position, song); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetPlaylist loads a playlist with its harmonizers and ordered songs.
// Returns shared.ErrPlaylistNotFound when absent.
func (s *Store) GetPlaylist(id string) (*models.Playlist, error) {
	row := s.db.QueryRow(`
		SELECT p.id, p.name, p.description, p.cover_art, p.origin_platform, p.original_id,
		       u.id, u.name, u.token
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = ?
	`, id)

	var playlist models.Playlist
	var origin string
	err := row.Scan(&playlist.ID, &playlist.Name, &playlist.Description, &playlist.CoverArt,
		&origin, &playlist.OriginalID,
		&playlist.Owner.ID, &playlist.Owner.Name, &playlist.Owner.Token)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan playlist: %w", err)
	}
	playlist.OriginPlatform = models.Platform(origin)

	if playlist.Harmonizers, err = s.harmonizers(id); err != nil {
		return nil, err
	}
	if playlist.Songs, err = s.songs(id); err != nil {
		return nil, err
	}
	playlist.SongCount = len(playlist.Songs)

	return &playlist, nil
}

// FindByOriginalID looks a playlist up by its source playlist id.
// Used to prevent importing the same source playlist twice.
func (s *Store) FindByOriginalID(originalID string) (*models.Playlist, error) {
	if originalID == "" {
		return nil, fmt.Errorf("%w: empty original id", shared.ErrInvalidInput)
	}

	var id string
	err := s.db.QueryRow(`SELECT id FROM playlists WHERE original_id = ?`, originalID).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: original id %s", shared.ErrPlaylistNotFound, originalID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist: %w", err)
	}

	return s.GetPlaylist(id)
}

// ListPlaylists returns playlist metadata (no songs) with song counts,
// ordered by creation time.
func (s *Store) ListPlaylists() ([]models.Playlist, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.name, p.description, p.origin_platform,
		       (SELECT COUNT(*) FROM songs sg WHERE sg.playlist_id = p.id)
		FROM playlists p
		ORDER BY p.created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []models.Playlist
	for rows.Next() {
		var pl models.Playlist
		var origin string
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Description, &origin, &pl.SongCount); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		pl.OriginPlatform = models.Platform(origin)
		playlists = append(playlists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// AddHarmonizer grants a user write access to a playlist.
func (s *Store) AddHarmonizer(playlistID string, user models.UserRef) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertUser(tx, user); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO harmonizers (playlist_id, user_id) VALUES (?, ?)
	`, playlistID, user.ID); err != nil {
		return fmt.Errorf("failed to insert harmonizer: %w", err)
	}

	return tx.Commit()
}

// harmonizers loads the collaborator list for a playlist.
func (s *Store) harmonizers(playlistID string) ([]models.UserRef, error) {
	rows, err := s.db.Query(`
		SELECT u.id, u.name, u.token
		FROM harmonizers h
		JOIN users u ON u.id = h.user_id
		WHERE h.playlist_id = ?
		ORDER BY u.name ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query harmonizers: %w", err)
	}
	defer rows.Close()

	var users []models.UserRef
	for rows.Next() {
		var u models.UserRef
		if err := rows.Scan(&u.ID, &u.Name, &u.Token); err != nil {
			return nil, fmt.Errorf("failed to scan harmonizer: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// upsertUser inserts a user if absent, refreshing name and token when present.
func upsertUser(tx *sql.Tx, user models.UserRef) error {
	if user.ID == "" {
		return fmt.Errorf("%w: user id is required", shared.ErrInvalidInput)
	}
	_, err := tx.Exec(`
		INSERT INTO users (id, name, token) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, token = excluded.token
	`, user.ID, user.Name, user.Token)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}
