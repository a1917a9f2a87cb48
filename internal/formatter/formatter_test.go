package formatter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/tasks"
)

func samplePlaylist() *models.Playlist {
	return &models.Playlist{
		ID:             "pl1",
		Name:           "Road Trip",
		Description:    "windows down",
		Owner:          models.UserRef{ID: "user1", Name: "Sam"},
		Harmonizers:    []models.UserRef{{ID: "user2", Name: "Alex"}},
		OriginPlatform: models.PlatformSpotify,
		Songs: []models.Song{
			{Name: "Song A", Artist: "Artist A", Album: "Album A", DurationMS: 180000, SpotifyID: "a1", AppleMusicID: "am1"},
			{Name: "Song, With Comma", Artist: "Artist B", DurationMS: 200000, SpotifyID: "b1"},
		},
	}
}

func TestPlaylistToCSV(t *testing.T) {
	data, err := PlaylistToCSV(samplePlaylist())
	if err != nil {
		t.Fatalf("PlaylistToCSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("CSV has %d rows, want header + 2 songs", len(records))
	}

	if records[0][0] != "Position" || records[0][5] != "SpotifyID" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "Song A" || records[1][4] != "3:00" || records[1][6] != "am1" {
		t.Errorf("first row = %v", records[1])
	}
	// comma in the title survives the round trip
	if records[2][1] != "Song, With Comma" {
		t.Errorf("second row name = %q", records[2][1])
	}
}

func TestPlaylistToMarkdown(t *testing.T) {
	out := string(PlaylistToMarkdown(samplePlaylist()))

	for _, want := range []string{
		"# Road Trip",
		"**Description**: windows down",
		"**Owner**: Sam",
		"**Harmonizers**: Alex",
		"1. Artist A - Song A (Album A) [3:00]",
		"2. Artist B - Song, With Comma [3:20]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q:\n%s", want, out)
		}
	}
}

func TestExportReport(t *testing.T) {
	result := &tasks.ExportResult{
		DestinationID: "dest1",
		TotalSongs:    10,
		Added:         7,
		Unmatched:     []string{"Song X - Artist X"},
		Skipped:       []string{"Song Y - Artist Y", "Song Z - Artist Z"},
		FailedBatches: 1,
	}

	out := string(ExportReport(result))
	for _, want := range []string{
		"Destination playlist: dest1",
		"Songs processed: 10",
		"Tracks added: 7",
		"Unmatched (1):",
		"Song X - Artist X",
		"Matched but not added (1 failed batches):",
		"Song Y - Artist Y",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestExportReportClean(t *testing.T) {
	result := &tasks.ExportResult{DestinationID: "dest1", TotalSongs: 5, Added: 5}

	out := string(ExportReport(result))
	if !strings.Contains(out, "All songs exported.") {
		t.Errorf("clean report missing success line:\n%s", out)
	}
	if strings.Contains(out, "Unmatched") {
		t.Errorf("clean report mentions unmatched songs:\n%s", out)
	}
}

func TestSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	if err := SaveToFile(path, []byte("content")); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "content" {
		t.Errorf("saved file = %q, err = %v", data, err)
	}

	if err := SaveToFile(filepath.Join(path, "impossible"), []byte("x")); err == nil {
		t.Error("SaveToFile() succeeded writing under a file")
	}
}
