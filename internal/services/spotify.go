// Spotify API implementation of [Catalog]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harmonize-music/harmonize/internal/match"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/shared"
	"golang.org/x/time/rate"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// SpotifyCredentials carries the explicit per-call authentication state.
// No ambient session: callers thread credentials into the constructor.
type SpotifyCredentials struct {
	AccessToken string // user bearer token
	UserID      string // playlist owner for create calls
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	AlbumType string         `json:"album_type"` // album, single, compilation
	Images    []SpotifyImage `json:"images"`
	URI       string         `json:"uri"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

// SpotifyPlaylist represents a Spotify playlist with its track page.
type SpotifyPlaylist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Owner       struct {
		ID          string `json:"id"`
		DisplayName string `json:"display_name"`
	} `json:"owner"`
	Images []SpotifyImage `json:"images"`
	Tracks struct {
		Total int `json:"total"`
		Items []struct {
			Track SpotifyTrack `json:"track"`
		} `json:"items"`
	} `json:"tracks"`
	URI string `json:"uri"`
}

// SpotifyCatalog implements the Catalog interface for the Spotify Web API.
type SpotifyCatalog struct {
	creds      SpotifyCredentials
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewSpotifyCatalog creates a Spotify adapter with the given credentials.
func NewSpotifyCatalog(creds SpotifyCredentials, logger *log.Logger) (*SpotifyCatalog, error) {
	if creds.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing Spotify access token", shared.ErrMissingCredentials)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &SpotifyCatalog{
		creds:      creds,
		httpClient: http.DefaultClient,
		// Spotify allows bursts but throttles sustained traffic; stay under it.
		limiter: rate.NewLimiter(rate.Limit(10), 5),
		logger:  logger,
	}, nil
}

// Platform returns the Spotify platform tag.
func (s *SpotifyCatalog) Platform() models.Platform {
	return models.PlatformSpotify
}

// Name returns the service name.
func (s *SpotifyCatalog) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated, rate-limited HTTP request to the Spotify API.
func (s *SpotifyCatalog) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
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

	req, err := http.NewRequestWithContext(ctx, method, spotifyBaseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: spotify status %d", shared.ErrCatalogUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: spotify status %d", shared.ErrCatalogUnavailable, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Search issues a bounded track search and maps the hits to match candidates.
func (s *SpotifyCatalog) Search(ctx context.Context, query match.SearchQuery) ([]models.MatchCandidate, error) {
	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query.Term()), SearchLimit)

	var response struct {
		Tracks struct {
			Items []SpotifyTrack `json:"items"`
		} `json:"tracks"`
	}

	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	if len(response.Tracks.Items) == 0 {
		return nil, fmt.Errorf("%w: %q on Spotify", shared.ErrCatalogEmpty, query.Term())
	}

	candidates := make([]models.MatchCandidate, len(response.Tracks.Items))
	for i, t := range response.Tracks.Items {
		candidates[i] = spotifyCandidate(t)
	}
	return candidates, nil
}

// CreatePlaylist creates a new private playlist for the credentialed user.
func (s *SpotifyCatalog) CreatePlaylist(ctx context.Context, name, description string) (string, error) {
	if s.creds.UserID == "" {
		return "", fmt.Errorf("%w: missing Spotify user id", shared.ErrMissingCredentials)
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(s.creds.UserID))
	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      false,
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := s.doRequest(ctx, http.MethodPost, endpoint, body, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: create playlist returned no id", shared.ErrCatalogUnavailable)
	}

	return created.ID, nil
}

// AddTracks appends one batch of tracks to a playlist.
// Accepts bare track ids or spotify:track URIs.
func (s *SpotifyCatalog) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return nil
	}
	if len(trackIDs) > AddTracksBatchLimit {
		return fmt.Errorf("%w: batch of %d exceeds limit %d", shared.ErrInvalidInput, len(trackIDs), AddTracksBatchLimit)
	}

	uris := make([]string, len(trackIDs))
	for i, id := range trackIDs {
		uris[i] = spotifyTrackURI(id)
	}

	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	return s.doRequest(ctx, http.MethodPost, endpoint, map[string]any{"uris": uris}, nil)
}

// FetchPlaylist retrieves a playlist with its tracks mapped to canonical songs.
func (s *SpotifyCatalog) FetchPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))

	var sp SpotifyPlaylist
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &sp); err != nil {
		return nil, err
	}

	playlist := &models.Playlist{
		ID:             sp.ID,
		Name:           sp.Name,
		Description:    sp.Description,
		Owner:          models.UserRef{ID: sp.Owner.ID, Name: sp.Owner.DisplayName},
		OriginPlatform: models.PlatformSpotify,
	}
	if len(sp.Images) > 0 {
		playlist.CoverArt = sp.Images[0].URL
	}

	for _, item := range sp.Tracks.Items {
		t := item.Track
		if t.ID == "" {
			// local or removed tracks come back without an id
			continue
		}
		song := models.Song{
			Name:       t.Name,
			Artist:     joinArtistNames(t.Artists),
			Album:      t.Album.Name,
			DurationMS: t.DurationMS,
			SpotifyID:  t.ID,
			SpotifyURI: t.URI,
		}
		if len(t.Album.Images) > 0 {
			song.CoverArtURL = t.Album.Images[0].URL
		}
		playlist.Songs = append(playlist.Songs, song)
	}

	return playlist, nil
}

// spotifyCandidate maps a Spotify track to the platform-agnostic candidate type.
func spotifyCandidate(t SpotifyTrack) models.MatchCandidate {
	artists := make([]string, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = a.Name
	}

	uri := t.URI
	if uri == "" {
		uri = spotifyTrackURI(t.ID)
	}

	return models.MatchCandidate{
		Name:        t.Name,
		Artists:     artists,
		Album:       t.Album.Name,
		DurationMS:  t.DurationMS,
		ID:          t.ID,
		URI:         uri,
		Compilation: t.Album.AlbumType == "compilation",
	}
}

func spotifyTrackURI(id string) string {
	if strings.HasPrefix(id, "spotify:") {
		return id
	}
	return "spotify:track:" + id
}

func joinArtistNames(artists []SpotifyArtist) string {
	names := make([]string, len(artists))
	for i, a := range artists {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
