package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/services"
	"github.com/harmonize-music/harmonize/internal/shared"
)

// Import copies a platform playlist into the shared store.
//
// The source playlist id is recorded as OriginalID; importing the same source
// playlist again returns the existing shared playlist instead of creating a
// duplicate. Songs keep the identifiers of their originating platform; the
// counterpart identifiers stay empty until an export resolves them.
func (e *Exporter) Import(ctx context.Context, source services.Catalog, sourcePlaylistID string, owner models.UserRef, progress chan<- ProgressUpdate) (*models.Playlist, error) {
	if existing, err := e.store.FindByOriginalID(sourcePlaylistID); err == nil {
		e.logger.Info("playlist already imported", "original_id", sourcePlaylistID, "playlist", existing.ID)
		return existing, nil
	} else if !errors.Is(err, shared.ErrPlaylistNotFound) {
		return nil, err
	}

	e.sendProgress(progress, fetchSourceUpdate(sourcePlaylistID, source.Name()))
	playlist, err := source.FetchPlaylist(ctx, sourcePlaylistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source playlist: %w", err)
	}

	playlist.ID = ""
	playlist.Owner = owner
	playlist.OriginPlatform = source.Platform()
	playlist.OriginalID = sourcePlaylistID

	e.sendProgress(progress, saveImportUpdate(playlist.Name, len(playlist.Songs)))
	if err := e.store.CreatePlaylist(playlist); err != nil {
		return nil, fmt.Errorf("failed to save imported playlist: %w", err)
	}

	e.logger.Info("imported playlist", "name", playlist.Name, "songs", len(playlist.Songs), "origin", playlist.OriginPlatform)
	return playlist, nil
}
