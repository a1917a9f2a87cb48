package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/shared"
)

// SearchQuery is a bounded free-text catalog search request.
type SearchQuery struct {
	Name    string
	Artists []string
}

// Term renders the query as a single free-text search term.
func (q SearchQuery) Term() string {
	term := q.Name
	for _, a := range q.Artists {
		term += " " + a
	}
	return term
}

// Searcher issues a bounded search against a single catalog.
//
// Implemented by services.Catalog for each platform; defined here so the
// resolver can be tested without touching the network layer.
type Searcher interface {
	Search(ctx context.Context, query SearchQuery) ([]models.MatchCandidate, error)
}

// MatchResult is the outcome of resolving one song against one catalog.
type MatchResult struct {
	Matched bool
	ID      string
	URI     string
	Score   float64
	Cached  bool // true when the song already carried the identifier
}

// Resolver picks the best catalog candidate for a song, or rejects all of them.
type Resolver struct {
	catalog Searcher
	logger  *log.Logger
}

// NewResolver creates a Resolver that searches the given catalog.
func NewResolver(catalog Searcher, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Resolver{catalog: catalog, logger: logger}
}

// Resolve finds the best candidate for song on the target platform.
//
// A song that already carries an identifier for the target platform is
// returned immediately without any network call. Otherwise every search
// candidate is scored; the strictly highest score wins, ties keep the
// first-seen candidate, and the winner must reach [Threshold].
//
// CatalogUnavailable and CatalogEmpty collapse to an unmatched result so a
// flaky search never aborts a larger run; CatalogUnauthorized propagates
// because the caller has to re-authenticate before anything else can succeed.
func (r *Resolver) Resolve(ctx context.Context, song models.Song, target models.Platform) (MatchResult, error) {
	if id := song.PlatformID(target); id != "" {
		return MatchResult{Matched: true, ID: id, URI: song.PlatformURI(target), Cached: true}, nil
	}

	candidates, err := r.catalog.Search(ctx, SearchQuery{Name: song.Name, Artists: song.Artists()})
	if err != nil {
		if errors.Is(err, shared.ErrCatalogUnauthorized) {
			return MatchResult{}, fmt.Errorf("resolving %q: %w", song.Label(), err)
		}
		r.logger.Debug("search failed, treating as unmatched", "song", song.Label(), "err", err)
		return MatchResult{}, nil
	}
	if len(candidates) == 0 {
		return MatchResult{}, nil
	}

	scored := Rank(SongInput(song), candidates)
	best := scored[0]
	for _, sc := range scored[1:] {
		// strict inequality keeps the first-seen candidate on ties
		if sc.Score > best.Score {
			best = sc
		}
	}

	if best.Score < Threshold {
		r.logger.Debug("no candidate above threshold", "song", song.Label(), "best", best.Score)
		return MatchResult{}, nil
	}

	winner := best.Candidate
	r.logger.Debug("matched", "song", song.Label(), "candidate", winner.Name, "score", best.Score)
	return MatchResult{Matched: true, ID: winner.ID, URI: winner.URI, Score: best.Score}, nil
}
