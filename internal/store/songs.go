package store

import (
	"database/sql"
	"fmt"

	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/shared"
)

// AppendSong adds a song to the end of a playlist.
func (s *Store) AppendSong(playlistID string, song models.Song) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`
		SELECT COALESCE(MAX(position) + 1, 0) FROM songs WHERE playlist_id = ?
	`, playlistID).Scan(&next); err != nil {
		return fmt.Errorf("failed to compute song position: %w", err)
	}

	if err := insertSong(tx, playlistID, next, song); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveSong deletes the song at the given position and shifts later songs up,
// keeping positions contiguous. Removing a song deletes its whole record,
// discovered platform identifiers included.
func (s *Store) RemoveSong(playlistID string, position int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		DELETE FROM songs WHERE playlist_id = ? AND position = ?
	`, playlistID, position)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: playlist %s position %d", shared.ErrSongNotFound, playlistID, position)
	}

	if _, err := tx.Exec(`
		UPDATE songs SET position = position - 1
		WHERE playlist_id = ? AND position > ?
	`, playlistID, position); err != nil {
		return fmt.Errorf("failed to renumber songs: %w", err)
	}

	return tx.Commit()
}

// SetSongPlatformIDs writes a discovered identifier pair through to the store.
//
// The write is keyed by the song's position and guarded in SQL: a non-empty
// identifier is never overwritten, so repeated resolutions and concurrent
// exports of the same playlist stay idempotent. Returns false when the song
// already carried an identifier for the platform.
func (s *Store) SetSongPlatformIDs(playlistID string, position int, platform models.Platform, id, uri string) (bool, error) {
	var query string
	switch platform {
	case models.PlatformSpotify:
		query = `
			UPDATE songs SET spotify_id = ?, spotify_uri = ?
			WHERE playlist_id = ? AND position = ? AND spotify_id = ''
		`
	case models.PlatformAppleMusic:
		query = `
			UPDATE songs SET apple_music_id = ?, apple_uri = ?
			WHERE playlist_id = ? AND position = ? AND apple_music_id = ''
		`
	default:
		return false, fmt.Errorf("%w: platform %q", shared.ErrInvalidInput, platform)
	}

	result, err := s.db.Exec(query, id, uri, playlistID, position)
	if err != nil {
		return false, fmt.Errorf("failed to update song identifiers: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		// either the song does not exist or the identifier was already set;
		// distinguish so callers can surface real misses
		var exists bool
		if err := s.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM songs WHERE playlist_id = ? AND position = ?)
		`, playlistID, position).Scan(&exists); err != nil {
			return false, fmt.Errorf("failed to check song existence: %w", err)
		}
		if !exists {
			return false, fmt.Errorf("%w: playlist %s position %d", shared.ErrSongNotFound, playlistID, position)
		}
		return false, nil
	}

	return true, nil
}

// songs loads a playlist's songs ordered by position.
func (s *Store) songs(playlistID string) ([]models.Song, error) {
	rows, err := s.db.Query(`
		SELECT name, artist, album, duration_ms, cover_art_url,
		       spotify_id, spotify_uri, apple_music_id, apple_uri
		FROM songs
		WHERE playlist_id = ?
		ORDER BY position ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []models.Song
	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.Name, &song.Artist, &song.Album, &song.DurationMS, &song.CoverArtURL,
			&song.SpotifyID, &song.SpotifyURI, &song.AppleMusicID, &song.AppleURI); err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// insertSong writes one song row at an explicit position.
func insertSong(tx *sql.Tx, playlistID string, position int, song models.Song) error {
	if song.Name == "" {
		return fmt.Errorf("%w: song name is required", shared.ErrInvalidInput)
	}
	_, err := tx.Exec(`
		INSERT INTO songs (playlist_id, position, name, artist, album, duration_ms, cover_art_url,
		                   spotify_id, spotify_uri, apple_music_id, apple_uri)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, playlistID, position, song.Name, song.Artist, song.Album, song.DurationMS, song.CoverArtURL,
		song.SpotifyID, song.SpotifyURI, song.AppleMusicID, song.AppleURI)
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}
	return nil
}
