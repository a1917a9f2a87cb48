package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/services"
	"github.com/harmonize-music/harmonize/internal/shared"
)

func TestImport(t *testing.T) {
	lib := newMockLibrary()
	source := &mockCatalog{
		platform: models.PlatformSpotify,
		fetched: &models.Playlist{
			ID:   "spotify-pl-1",
			Name: "Discover Weekly",
			Songs: []models.Song{
				{Name: "Song A", Artist: "Artist A", SpotifyID: "a1"},
				{Name: "Song B", Artist: "Artist B", SpotifyID: "b1"},
			},
		},
	}
	exporter := NewExporter(lib, []services.Catalog{source}, nil)

	owner := models.UserRef{ID: "user1", Name: "Sam"}
	playlist, err := exporter.Import(context.Background(), source, "spotify-pl-1", owner, nil)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if playlist.OriginalID != "spotify-pl-1" {
		t.Errorf("OriginalID = %q, want the source playlist id", playlist.OriginalID)
	}
	if playlist.OriginPlatform != models.PlatformSpotify {
		t.Errorf("OriginPlatform = %q, want spotify", playlist.OriginPlatform)
	}
	if playlist.Owner != owner {
		t.Errorf("Owner = %+v, want %+v", playlist.Owner, owner)
	}
	if len(playlist.Songs) != 2 {
		t.Fatalf("imported %d songs, want 2", len(playlist.Songs))
	}
	if playlist.Songs[0].AppleMusicID != "" {
		t.Error("counterpart identifier populated at import time, want empty")
	}
	if len(lib.created) != 1 {
		t.Errorf("store created %d playlists, want 1", len(lib.created))
	}
}

func TestImportDeduplicates(t *testing.T) {
	lib := newMockLibrary()
	source := &mockCatalog{
		platform: models.PlatformSpotify,
		fetched: &models.Playlist{
			ID:    "spotify-pl-1",
			Name:  "Discover Weekly",
			Songs: []models.Song{{Name: "Song A", Artist: "Artist A", SpotifyID: "a1"}},
		},
	}
	exporter := NewExporter(lib, []services.Catalog{source}, nil)
	owner := models.UserRef{ID: "user1"}

	first, err := exporter.Import(context.Background(), source, "spotify-pl-1", owner, nil)
	if err != nil {
		t.Fatalf("first Import() error = %v", err)
	}

	second, err := exporter.Import(context.Background(), source, "spotify-pl-1", owner, nil)
	if err != nil {
		t.Fatalf("second Import() error = %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("second import created %q, want existing %q", second.ID, first.ID)
	}
	if source.fetchCalls != 1 {
		t.Errorf("source fetched %d times, want 1", source.fetchCalls)
	}
	if len(lib.created) != 1 {
		t.Errorf("store created %d playlists, want 1", len(lib.created))
	}
}

func TestImportFetchFailure(t *testing.T) {
	lib := newMockLibrary()
	source := &mockCatalog{platform: models.PlatformSpotify, fetchErr: shared.ErrPlaylistNotFound}
	exporter := NewExporter(lib, []services.Catalog{source}, nil)

	_, err := exporter.Import(context.Background(), source, "missing", models.UserRef{ID: "u"}, nil)
	if !errors.Is(err, shared.ErrPlaylistNotFound) {
		t.Errorf("Import() error = %v, want ErrPlaylistNotFound", err)
	}
	if len(lib.created) != 0 {
		t.Errorf("store created %d playlists after a failed fetch, want 0", len(lib.created))
	}
}
