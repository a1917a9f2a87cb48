package match

import (
	"regexp"
	"strings"

	"github.com/harmonize-music/harmonize/internal/models"
)

// Scoring constants. Stored matches were produced with these exact values;
// changing any of them changes which tracks historical exports would have
// picked, so they are frozen.
const (
	// Threshold is the minimum score a candidate needs to be accepted.
	Threshold = 6.0

	nameMatchPoints   = 5.0
	artistMatchPoints = 3.0
	albumMatchPoints  = 3.0
	albumMissPenalty  = 1.0
	durationPoints    = 1.0
	compilationPoints = 2.0
)

// compilationMarkers flag likely compilation albums by name; platforms
// without an explicit compilation flag only give us the album title.
var compilationMarkers = []string{"greatest hits", "ultra"}

// artistDelimiterPattern splits a candidate artist display string into
// individual names.
var artistDelimiterPattern = regexp.MustCompile(`(?i)\s*(?:,|&|\+|\bfeat\.|\bfeaturing\b|\bwith\b)\s*`)

// ScoreInput is the canonical side of a comparison.
type ScoreInput struct {
	Name       string
	Artists    []string
	DurationMS int
	Album      string
}

// SongInput builds a ScoreInput from a stored song.
func SongInput(song models.Song) ScoreInput {
	return ScoreInput{
		Name:       song.Name,
		Artists:    song.Artists(),
		DurationMS: song.DurationMS,
		Album:      song.Album,
	}
}

// Score computes the additive similarity score between a canonical song and a
// catalog search candidate:
//
//   - exact normalized name match: +5
//   - artist overlap ratio: +3 * (matched input artists / input artists)
//   - album containing the input album or first artist: +3, otherwise -1
//     (no points either way when there is no album signal to compare)
//   - duration within 3 seconds: +1, within 1 second: +1 more
//   - compilation / greatest-hits album: -2
//
// Missing fields contribute zero to their sub-score; Score never panics on
// partial data.
func Score(in ScoreInput, c models.MatchCandidate) float64 {
	score := 0.0

	inName := Normalize(in.Name)
	if inName != "" && inName == Normalize(c.Name) {
		score += nameMatchPoints
	}

	candArtists := candidateArtistSet(c.Artists)
	if len(in.Artists) > 0 {
		overlap := 0
		for _, a := range in.Artists {
			if na := Normalize(a); na != "" && candArtists[na] {
				overlap++
			}
		}
		score += artistMatchPoints * float64(overlap) / float64(len(in.Artists))
	}

	candAlbum := Normalize(c.Album)
	inAlbum := Normalize(in.Album)
	firstArtist := ""
	if len(in.Artists) > 0 {
		firstArtist = Normalize(in.Artists[0])
	}
	if candAlbum != "" && (inAlbum != "" || firstArtist != "") {
		if (inAlbum != "" && strings.Contains(candAlbum, inAlbum)) ||
			(firstArtist != "" && strings.Contains(candAlbum, firstArtist)) {
			score += albumMatchPoints
		} else {
			score -= albumMissPenalty
		}
	}

	if in.DurationMS > 0 && c.DurationMS > 0 {
		diffSec := absInt(c.DurationMS-in.DurationMS) / 1000.0
		if diffSec <= 3 {
			score += durationPoints
		}
		if diffSec <= 1 {
			score += durationPoints
		}
	}

	if isCompilation(c, candAlbum) {
		score -= compilationPoints
	}

	return score
}

// Rank scores every candidate in order and returns them as ScoredCandidates,
// preserving the first-seen order of the input list.
func Rank(in ScoreInput, candidates []models.MatchCandidate) []models.ScoredCandidate {
	scored := make([]models.ScoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = models.ScoredCandidate{Candidate: c, Score: Score(in, c)}
	}
	return scored
}

// candidateArtistSet splits each candidate artist entry on display delimiters
// (",", "&", "feat.", "featuring", "+", "with") and normalizes the pieces.
func candidateArtistSet(artists []string) map[string]bool {
	set := make(map[string]bool)
	for _, entry := range artists {
		for _, token := range artistDelimiterPattern.Split(entry, -1) {
			if n := Normalize(token); n != "" {
				set[n] = true
			}
		}
	}
	return set
}

func isCompilation(c models.MatchCandidate, normalizedAlbum string) bool {
	if c.Compilation {
		return true
	}
	for _, marker := range compilationMarkers {
		if strings.Contains(normalizedAlbum, marker) {
			return true
		}
	}
	return false
}

func absInt(n int) float64 {
	if n < 0 {
		n = -n
	}
	return float64(n)
}
