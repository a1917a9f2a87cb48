package match

import (
	"testing"

	"github.com/harmonize-music/harmonize/internal/models"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		in        ScoreInput
		candidate models.MatchCandidate
		want      float64
	}{
		{
			name: "name match only",
			in:   ScoreInput{Name: "Levitating"},
			candidate: models.MatchCandidate{
				Name: "Levitating",
			},
			want: 5,
		},
		{
			name: "name and full artist match",
			in:   ScoreInput{Name: "Levitating", Artists: []string{"Dua Lipa"}},
			candidate: models.MatchCandidate{
				Name:    "Levitating",
				Artists: []string{"Dua Lipa"},
			},
			want: 8,
		},
		{
			name: "normalized name match",
			in:   ScoreInput{Name: "Levitating (feat. DaBaby)", Artists: []string{"Dua Lipa"}},
			candidate: models.MatchCandidate{
				Name:    "Levitating",
				Artists: []string{"Dua Lipa"},
			},
			want: 8,
		},
		{
			name: "partial artist overlap",
			in:   ScoreInput{Name: "Levitating", Artists: []string{"Dua Lipa", "DaBaby"}},
			candidate: models.MatchCandidate{
				Name:    "Levitating",
				Artists: []string{"Dua Lipa"},
			},
			want: 6.5,
		},
		{
			name: "candidate artist display string is split on delimiters",
			in:   ScoreInput{Name: "Levitating", Artists: []string{"Dua Lipa", "DaBaby"}},
			candidate: models.MatchCandidate{
				Name:    "Levitating",
				Artists: []string{"Dua Lipa feat. DaBaby"},
			},
			want: 8,
		},
		{
			name: "album containing the input album",
			in:   ScoreInput{Name: "Levitating", Artists: []string{"Dua Lipa"}, Album: "Future Nostalgia"},
			candidate: models.MatchCandidate{
				Name:    "Levitating",
				Artists: []string{"Dua Lipa"},
				Album:   "Future Nostalgia (The Moonlight Edition)",
			},
			want: 11,
		},
		{
			name: "album mismatch penalty",
			in:   ScoreInput{Name: "Levitating", Artists: []string{"Dua Lipa"}, Album: "Future Nostalgia"},
			candidate: models.MatchCandidate{
				Name:    "Levitating",
				Artists: []string{"Dua Lipa"},
				Album:   "Club Future Mix Vol 4",
			},
			want: 7,
		},
		{
			name: "no album signal scores zero either way",
			in:   ScoreInput{Name: "Levitating"},
			candidate: models.MatchCandidate{
				Name:  "Levitating",
				Album: "Some Album",
			},
			want: 5,
		},
		{
			name: "duration within three seconds",
			in:   ScoreInput{Name: "Levitating", DurationMS: 203000},
			candidate: models.MatchCandidate{
				Name:       "Levitating",
				DurationMS: 205500,
			},
			want: 6,
		},
		{
			name: "duration within one second scores both points",
			in:   ScoreInput{Name: "Levitating", DurationMS: 203000},
			candidate: models.MatchCandidate{
				Name:       "Levitating",
				DurationMS: 203400,
			},
			want: 7,
		},
		{
			name: "duration far off scores nothing",
			in:   ScoreInput{Name: "Levitating", DurationMS: 203000},
			candidate: models.MatchCandidate{
				Name:       "Levitating",
				DurationMS: 250000,
			},
			want: 5,
		},
		{
			name: "missing duration on one side skipped",
			in:   ScoreInput{Name: "Levitating", DurationMS: 203000},
			candidate: models.MatchCandidate{
				Name: "Levitating",
			},
			want: 5,
		},
		{
			name: "explicit compilation flag penalized",
			in:   ScoreInput{Name: "Levitating", Artists: []string{"Dua Lipa"}},
			candidate: models.MatchCandidate{
				Name:        "Levitating",
				Artists:     []string{"Dua Lipa"},
				Compilation: true,
			},
			want: 6,
		},
		{
			name: "greatest hits album name penalized",
			in:   ScoreInput{Name: "Don't Stop Me Now", Artists: []string{"Queen"}},
			candidate: models.MatchCandidate{
				Name:    "Don't Stop Me Now",
				Artists: []string{"Queen"},
				Album:   "Greatest Hits",
			},
			// album mismatch penalty plus compilation penalty
			want: 5,
		},
		{
			name: "full agreement",
			in: ScoreInput{
				Name:       "Pink Pony Club",
				Artists:    []string{"Chappell Roan"},
				Album:      "The Rise and Fall of a Midwest Princess",
				DurationMS: 258000,
			},
			candidate: models.MatchCandidate{
				Name:       "Pink Pony Club",
				Artists:    []string{"Chappell Roan"},
				Album:      "The Rise and Fall of a Midwest Princess",
				DurationMS: 258000,
			},
			want: 13,
		},
		{
			name:      "empty input and candidate",
			in:        ScoreInput{},
			candidate: models.MatchCandidate{},
			want:      0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Score(tc.in, tc.candidate)
			if got != tc.want {
				t.Errorf("Score() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestScoreAlbumFallsBackToArtist(t *testing.T) {
	// Self-titled albums: the candidate album matches the artist name even
	// when the stored song carries no album at all.
	in := ScoreInput{Name: "Creep", Artists: []string{"Radiohead"}}
	c := models.MatchCandidate{
		Name:    "Creep",
		Artists: []string{"Radiohead"},
		Album:   "Radiohead: The Early Years",
	}

	if got := Score(in, c); got != 11 {
		t.Errorf("Score() = %v, want 11", got)
	}
}

func TestRankPreservesOrder(t *testing.T) {
	in := ScoreInput{Name: "Levitating", Artists: []string{"Dua Lipa"}}
	candidates := []models.MatchCandidate{
		{Name: "Levitating", Artists: []string{"Dua Lipa"}, ID: "a"},
		{Name: "Levitating - Live", Artists: []string{"Dua Lipa"}, ID: "b"},
		{Name: "Levitating", Artists: []string{"Dua Lipa"}, ID: "c"},
	}

	scored := Rank(in, candidates)
	if len(scored) != 3 {
		t.Fatalf("Rank() returned %d candidates, want 3", len(scored))
	}
	for i, s := range scored {
		if s.Candidate.ID != candidates[i].ID {
			t.Errorf("Rank()[%d] = %q, want %q", i, s.Candidate.ID, candidates[i].ID)
		}
	}
	if scored[0].Score != scored[2].Score {
		t.Errorf("identical candidates scored differently: %v vs %v", scored[0].Score, scored[2].Score)
	}
	if scored[1].Score >= scored[0].Score {
		t.Errorf("mismatched name should score below exact match: %v vs %v", scored[1].Score, scored[0].Score)
	}
}
