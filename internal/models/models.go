// package models defines the data model for the Harmonize playlist service
package models

import "strings"

// Platform identifies a streaming service catalog.
//
// It is the tag of a closed union: all call sites dispatch through the
// services.Catalog interface and only adapter constructors branch on the tag.
type Platform string

const (
	PlatformSpotify    Platform = "spotify"
	PlatformAppleMusic Platform = "apple"

	// PlatformHarmonize marks playlists created inside Harmonize itself.
	// It is a valid origin but never a matching target.
	PlatformHarmonize Platform = "harmonize"
)

// Valid reports whether p names a known platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformSpotify, PlatformAppleMusic, PlatformHarmonize:
		return true
	default:
		return false
	}
}

// ParsePlatform converts a user-supplied string into a Platform.
// Returns PlatformHarmonize, false for unknown input.
func ParsePlatform(s string) (Platform, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "spotify":
		return PlatformSpotify, true
	case "apple", "applemusic", "apple-music", "apple_music":
		return PlatformAppleMusic, true
	case "harmonize":
		return PlatformHarmonize, true
	default:
		return PlatformHarmonize, false
	}
}

// UserRef references a playlist owner or harmonizer.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Token string `json:"token,omitempty"` // platform user token, optional
}

// Song is the canonical, platform-agnostic record stored in a shared playlist.
//
// Artist is a comma-joined display string. The identifier pair of the
// originating service is set when the song is added; the pair for the other
// service is populated lazily by the matching engine.
type Song struct {
	Name        string `json:"name"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	DurationMS  int    `json:"duration_ms"`
	CoverArtURL string `json:"cover_art_url,omitempty"`

	SpotifyID  string `json:"spotify_id,omitempty"`
	SpotifyURI string `json:"spotify_uri,omitempty"`

	AppleMusicID string `json:"apple_music_id,omitempty"`
	AppleURI     string `json:"apple_uri,omitempty"`
}

// PlatformID returns the song's identifier for the given platform, or "" when
// the song has not been matched there yet.
func (s Song) PlatformID(p Platform) string {
	switch p {
	case PlatformSpotify:
		return s.SpotifyID
	case PlatformAppleMusic:
		return s.AppleMusicID
	default:
		return ""
	}
}

// PlatformURI returns the song's URI for the given platform, or "".
func (s Song) PlatformURI(p Platform) string {
	switch p {
	case PlatformSpotify:
		return s.SpotifyURI
	case PlatformAppleMusic:
		return s.AppleURI
	default:
		return ""
	}
}

// SetPlatformID records a discovered identifier pair for the given platform.
// A non-empty identifier is never overwritten; the first write wins.
func (s *Song) SetPlatformID(p Platform, id, uri string) bool {
	switch p {
	case PlatformSpotify:
		if s.SpotifyID != "" {
			return false
		}
		s.SpotifyID = id
		s.SpotifyURI = uri
		return true
	case PlatformAppleMusic:
		if s.AppleMusicID != "" {
			return false
		}
		s.AppleMusicID = id
		s.AppleURI = uri
		return true
	default:
		return false
	}
}

// Artists splits the comma-joined display string into individual artist names.
func (s Song) Artists() []string {
	parts := strings.Split(s.Artist, ",")
	artists := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			artists = append(artists, p)
		}
	}
	return artists
}

// Label formats the song for user-facing reports as "<name> - <artist>".
func (s Song) Label() string {
	return s.Name + " - " + s.Artist
}

// Playlist is a shared playlist with its collaborators and ordered songs.
//
// Songs is the display order and the export order. OriginalID holds the
// source playlist id for imported playlists and guards against re-import
// duplication.
type Playlist struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	CoverArt       string    `json:"cover_art,omitempty"`
	Owner          UserRef   `json:"owner"`
	Harmonizers    []UserRef `json:"harmonizers,omitempty"`
	OriginPlatform Platform  `json:"origin_platform"`
	Songs          []Song    `json:"songs,omitempty"`
	OriginalID     string    `json:"original_id,omitempty"`

	// SongCount is filled on listings, where Songs itself is not loaded.
	SongCount int `json:"song_count"`
}

// MatchCandidate is a raw track from a catalog search result, considered for
// correspondence to a canonical song. Ephemeral, never persisted.
type MatchCandidate struct {
	Name        string
	Artists     []string
	Album       string
	DurationMS  int
	ID          string
	URI         string
	Compilation bool // explicit compilation flag where the platform provides one
}

// ScoredCandidate pairs a MatchCandidate with its similarity score.
type ScoredCandidate struct {
	Candidate MatchCandidate
	Score     float64
}
