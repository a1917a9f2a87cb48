package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harmonize-music/harmonize/internal/match"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/services"
	"github.com/harmonize-music/harmonize/internal/shared"
)

// Library is the slice of the shared store the task engine depends on.
// Implemented by store.Store; abstracted for testing.
type Library interface {
	GetPlaylist(id string) (*models.Playlist, error)
	SetSongPlatformIDs(playlistID string, position int, platform models.Platform, id, uri string) (bool, error)
	CreatePlaylist(playlist *models.Playlist) error
	FindByOriginalID(originalID string) (*models.Playlist, error)
}

// ExportResult contains all data from a full playlist export.
type ExportResult struct {
	DestinationID string   // Created destination playlist id
	TotalSongs    int      // Songs processed
	Added         int      // Tracks confirmed added to the destination
	Unmatched     []string // "<name> - <artist>" for songs with no acceptable match
	Skipped       []string // matched tracks dropped by a failed batch flush
	FailedBatches int      // add-tracks calls that failed
}

// Exporter orchestrates playlist exports from the shared store to a catalog.
type Exporter struct {
	store     Library
	catalogs  map[models.Platform]services.Catalog
	batchSize int
	logger    *log.Logger
}

// NewExporter creates an Exporter over the given store and catalog adapters.
func NewExporter(store Library, catalogs []services.Catalog, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	byPlatform := make(map[models.Platform]services.Catalog, len(catalogs))
	for _, c := range catalogs {
		byPlatform[c.Platform()] = c
	}

	return &Exporter{
		store:     store,
		catalogs:  byPlatform,
		batchSize: services.AddTracksBatchLimit,
		logger:    logger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Export pushes a shared playlist onto the target platform.
//
// A new destination playlist named "<name> - Made with Harmonize" is created
// on every call; repeated exports of the same playlist produce repeated
// destination playlists. That is the documented contract, not an oversight:
// deduplicating destinations would silently merge into playlists the user may
// have renamed or edited on the platform since.
//
// Songs are processed strictly sequentially in playlist order. Each match
// discovered over the network is written through to the store immediately so
// a later export (or a crash between write-back and flush) picks it up
// without a second search. Matched identifiers are flushed in batches of 100.
//
// Failure semantics: a missing playlist or a failed destination create aborts
// the export. CatalogUnauthorized aborts too, since every later call on the
// platform would fail the same way. A failed batch flush does not abort:
// the batch is logged, counted in FailedBatches, and its tracks reported in
// Skipped, then the export continues with the next batch.
func (e *Exporter) Export(ctx context.Context, playlistID string, target models.Platform, progress chan<- ProgressUpdate) (*ExportResult, error) {
	catalog, ok := e.catalogs[target]
	if !ok {
		return nil, fmt.Errorf("%w: no catalog for platform %q", shared.ErrInvalidInput, target)
	}

	e.sendProgress(progress, loadPlaylistUpdate(playlistID))
	playlist, err := e.store.GetPlaylist(playlistID)
	if err != nil {
		return nil, err
	}

	destName := fmt.Sprintf("%s - Made with Harmonize", playlist.Name)
	e.sendProgress(progress, createDestinationUpdate(destName, catalog.Name()))
	destID, err := catalog.CreatePlaylist(ctx, destName, playlist.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination playlist: %w", err)
	}

	result := &ExportResult{
		DestinationID: destID,
		TotalSongs:    len(playlist.Songs),
	}
	resolver := match.NewResolver(catalog, e.logger)

	var batch, batchLabels []string
	flush := func(batchNum int) {
		if len(batch) == 0 {
			return
		}
		e.sendProgress(progress, flushBatchUpdate(batchNum, len(batch)))
		if err := catalog.AddTracks(ctx, destID, batch); err != nil {
			e.logger.Error("batch add failed, continuing with next batch",
				"destination", destID, "batch", batchNum, "size", len(batch), "err", err)
			result.FailedBatches++
			result.Skipped = append(result.Skipped, batchLabels...)
		} else {
			result.Added += len(batch)
		}
		batch = batch[:0]
		batchLabels = batchLabels[:0]
	}

	batchNum := 0
	for i, song := range playlist.Songs {
		e.sendProgress(progress, resolveSongUpdate(i+1, len(playlist.Songs), song))

		res, err := resolver.Resolve(ctx, song, target)
		if err != nil {
			// unauthorized: the whole platform call chain is dead
			return result, err
		}
		if !res.Matched {
			result.Unmatched = append(result.Unmatched, song.Label())
			continue
		}

		if !res.Cached {
			if _, err := e.store.SetSongPlatformIDs(playlistID, i, target, res.ID, res.URI); err != nil {
				// the match is still usable for this export; only the cache write was lost
				e.logger.Warn("failed to persist discovered match", "song", song.Label(), "err", err)
			}
		}

		batch = append(batch, res.ID)
		batchLabels = append(batchLabels, song.Label())
		if len(batch) == e.batchSize {
			batchNum++
			flush(batchNum)
		}
	}

	if len(batch) > 0 {
		batchNum++
		flush(batchNum)
	}

	e.sendProgress(progress, doneUpdate(result))
	return result, nil
}
