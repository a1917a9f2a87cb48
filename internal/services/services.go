// package services defines interface Catalog for interacting with streaming catalogs
//
// Spotify, Apple Music
package services

import (
	"context"

	"github.com/harmonize-music/harmonize/internal/match"
	"github.com/harmonize-music/harmonize/internal/models"
)

const (
	// SearchLimit bounds every catalog search to its top results.
	SearchLimit = 10

	// AddTracksBatchLimit is the conservative shared cap on one add-tracks
	// call across both platforms.
	AddTracksBatchLimit = 100
)

// Catalog is the capability contract every streaming platform adapter
// implements. Call sites dispatch through this interface and never branch on
// the platform tag outside adapter constructors.
type Catalog interface {
	// Platform returns the tag of the platform this adapter talks to.
	Platform() models.Platform

	// Name returns the human-readable service name (e.g. "Spotify").
	Name() string

	// Search issues a bounded free-text track search and returns at most
	// [SearchLimit] raw candidates in catalog ranking order.
	Search(ctx context.Context, query match.SearchQuery) ([]models.MatchCandidate, error)

	// CreatePlaylist creates a new playlist on the platform and returns its id.
	CreatePlaylist(ctx context.Context, name, description string) (string, error)

	// AddTracks appends up to [AddTracksBatchLimit] tracks to a playlist in order.
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// FetchPlaylist retrieves a platform playlist with all its tracks,
	// mapped to the canonical model with originating identifiers stamped.
	FetchPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)
}
