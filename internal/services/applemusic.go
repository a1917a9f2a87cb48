// Apple Music API implementation of [Catalog]
//
// Apple Music API response types based on https://developer.apple.com/documentation/applemusicapi
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/harmonize-music/harmonize/internal/match"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/secrets"
	"github.com/harmonize-music/harmonize/internal/shared"
	"golang.org/x/time/rate"
)

const (
	appleMusicBaseURL    = "https://api.music.apple.com"
	defaultStorefront    = "us"
	appleMusicSongType   = "songs"
	appleLibraryPlaylist = "/v1/me/library/playlists"
)

// AppleMusicCredentials carries the per-user half of Apple Music auth.
// The app-level developer token comes from the secrets provider.
type AppleMusicCredentials struct {
	MusicUserToken string
	Storefront     string
}

// appleSongAttributes is the attribute payload of a catalog or library song.
type appleSongAttributes struct {
	Name             string `json:"name"`
	ArtistName       string `json:"artistName"`
	AlbumName        string `json:"albumName"`
	DurationInMillis int    `json:"durationInMillis"`
	URL              string `json:"url"`
	PlayParams       struct {
		ID        string `json:"id"`
		CatalogID string `json:"catalogId"`
	} `json:"playParams"`
}

// appleSong is a single song resource.
type appleSong struct {
	ID         string              `json:"id"`
	Type       string              `json:"type"`
	Attributes appleSongAttributes `json:"attributes"`
}

// applePlaylistAttributes is the attribute payload of a library playlist.
type applePlaylistAttributes struct {
	Name        string `json:"name"`
	Description struct {
		Standard string `json:"standard"`
	} `json:"description"`
	Artwork struct {
		URL string `json:"url"`
	} `json:"artwork"`
}

// AppleMusicCatalog implements the Catalog interface for the Apple Music API.
type AppleMusicCatalog struct {
	creds      AppleMusicCredentials
	devToken   secrets.Provider
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewAppleMusicCatalog creates an Apple Music adapter. The developer token is
// fetched lazily from the provider on every request chain.
func NewAppleMusicCatalog(creds AppleMusicCredentials, devToken secrets.Provider, logger *log.Logger) (*AppleMusicCatalog, error) {
	if devToken == nil {
		return nil, fmt.Errorf("%w: missing developer token provider", shared.ErrMissingCredentials)
	}
	if creds.Storefront == "" {
		creds.Storefront = defaultStorefront
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &AppleMusicCatalog{
		creds:      creds,
		devToken:   devToken,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
		logger:     logger,
	}, nil
}

// Platform returns the Apple Music platform tag.
func (a *AppleMusicCatalog) Platform() models.Platform {
	return models.PlatformAppleMusic
}

// Name returns the service name.
func (a *AppleMusicCatalog) Name() string {
	return "Apple Music"
}

// doRequest performs an authenticated, rate-limited HTTP request to the Apple Music API.
func (a *AppleMusicCatalog) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}

	token, err := a.devToken.DeveloperToken(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnauthorized, err)
	}

	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, appleMusicBaseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	if a.creds.MusicUserToken != "" {
		req.Header.Set("Music-User-Token", a.creds.MusicUserToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: apple music status %d", shared.ErrCatalogUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: apple music status %d", shared.ErrCatalogUnavailable, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search issues a bounded catalog search in the configured storefront.
func (a *AppleMusicCatalog) Search(ctx context.Context, query match.SearchQuery) ([]models.MatchCandidate, error) {
	endpoint := fmt.Sprintf("/v1/catalog/%s/search?types=%s&limit=%d&term=%s",
		url.PathEscape(a.creds.Storefront), appleMusicSongType, SearchLimit, url.QueryEscape(query.Term()))

	var response struct {
		Results struct {
			Songs struct {
				Data []appleSong `json:"data"`
			} `json:"songs"`
		} `json:"results"`
	}

	if err := a.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	hits := response.Results.Songs.Data
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: %q on Apple Music", shared.ErrCatalogEmpty, query.Term())
	}

	candidates := make([]models.MatchCandidate, len(hits))
	for i, song := range hits {
		candidates[i] = appleCandidate(song)
	}
	return candidates, nil
}

// CreatePlaylist creates a new library playlist for the credentialed user.
func (a *AppleMusicCatalog) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	if a.creds.MusicUserToken == "" {
		return "", fmt.Errorf("%w: missing music user token", shared.ErrMissingCredentials)
	}

	body := map[string]any{
		"attributes": map[string]any{
			"name":        name,
			"description": description,
		},
	}

	var created struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := a.doRequest(ctx, http.MethodPost, appleLibraryPlaylist, body, &created); err != nil {
		return "", err
	}
	if len(created.Data) == 0 || created.Data[0].ID == "" {
		return "", fmt.Errorf("%w: create playlist returned no id", shared.ErrCatalogUnavailable)
	}

	return created.Data[0].ID, nil
}

// AddTracks appends one batch of catalog songs to a library playlist.
func (a *AppleMusicCatalog) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}
	if len(trackIDs) > AddTracksBatchLimit {
		return fmt.Errorf("%w: batch of %d exceeds limit %d", shared.ErrInvalidInput, len(trackIDs), AddTracksBatchLimit)
	}

	data := make([]map[string]string, len(trackIDs))
	for i, id := range trackIDs {
		data[i] = map[string]string{"id": id, "type": appleMusicSongType}
	}

	endpoint := fmt.Sprintf("%s/%s/tracks", appleLibraryPlaylist, url.PathEscape(playlistID))
	return a.doRequest(ctx, http.MethodPost, endpoint, map[string]any{"data": data}, nil)
}

// FetchPlaylist retrieves a library playlist with its tracks mapped to canonical songs.
func (a *AppleMusicCatalog) FetchPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	endpoint := fmt.Sprintf("%s/%s?include=tracks", appleLibraryPlaylist, url.PathEscape(playlistID))

	var response struct {
		Data []struct {
			ID            string                  `json:"id"`
			Attributes    applePlaylistAttributes `json:"attributes"`
			Relationships struct {
				Tracks struct {
					Data []appleSong `json:"data"`
				} `json:"tracks"`
			} `json:"relationships"`
		} `json:"data"`
	}

	if err := a.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}
	if len(response.Data) == 0 {
		return nil, fmt.Errorf("%w: apple music playlist %s", shared.ErrPlaylistNotFound, playlistID)
	}

	pl := response.Data[0]
	playlist := &models.Playlist{
		ID:             pl.ID,
		Name:           pl.Attributes.Name,
		Description:    pl.Attributes.Description.Standard,
		CoverArt:       pl.Attributes.Artwork.URL,
		OriginPlatform: models.PlatformAppleMusic,
	}

	for _, t := range pl.Relationships.Tracks.Data {
		attrs := t.Attributes
		id := attrs.PlayParams.CatalogID
		if id == "" {
			id = t.ID
		}
		playlist.Songs = append(playlist.Songs, models.Song{
			Name:         attrs.Name,
			Artist:       attrs.ArtistName,
			Album:        attrs.AlbumName,
			DurationMS:   attrs.DurationInMillis,
			AppleMusicID: id,
			AppleURI:     attrs.URL,
		})
	}

	return playlist, nil
}

// appleCandidate maps an Apple Music song to the platform-agnostic candidate type.
//
// Apple reports a single display string for artists; the scorer splits it on
// the usual delimiters. There is no compilation flag, so compilation albums
// are only caught by album-name markers.
func appleCandidate(song appleSong) models.MatchCandidate {
	attrs := song.Attributes
	return models.MatchCandidate{
		Name:       attrs.Name,
		Artists:    []string{attrs.ArtistName},
		Album:      attrs.AlbumName,
		DurationMS: attrs.DurationInMillis,
		ID:         song.ID,
		URI:        attrs.URL,
	}
}
