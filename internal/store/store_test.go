package store

import (
	"errors"
	"testing"

	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// in-memory sqlite loses state when the pool opens a second connection
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return New(db, nil)
}

func samplePlaylist() *models.Playlist {
	return &models.Playlist{
		Name:           "Road Trip",
		Description:    "windows down",
		Owner:          models.UserRef{ID: "user1", Name: "Sam"},
		OriginPlatform: models.PlatformSpotify,
		OriginalID:     "spotify-pl-1",
		Songs: []models.Song{
			{Name: "Song A", Artist: "Artist A", Album: "Album A", DurationMS: 180000, SpotifyID: "a1", SpotifyURI: "spotify:track:a1"},
			{Name: "Song B", Artist: "Artist B", DurationMS: 200000, SpotifyID: "b1", SpotifyURI: "spotify:track:b1"},
			{Name: "Song C", Artist: "Artist C", DurationMS: 220000, SpotifyID: "c1", SpotifyURI: "spotify:track:c1"},
		},
	}
}

func TestCreateAndGetPlaylist(t *testing.T) {
	s := newTestStore(t)

	pl := samplePlaylist()
	if err := s.CreatePlaylist(pl); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}
	if pl.ID == "" {
		t.Fatal("CreatePlaylist() did not generate an id")
	}

	got, err := s.GetPlaylist(pl.ID)
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}

	if got.Name != "Road Trip" || got.Description != "windows down" {
		t.Errorf("GetPlaylist() metadata = %q/%q", got.Name, got.Description)
	}
	if got.Owner.ID != "user1" || got.Owner.Name != "Sam" {
		t.Errorf("GetPlaylist() owner = %+v", got.Owner)
	}
	if got.OriginPlatform != models.PlatformSpotify {
		t.Errorf("GetPlaylist() origin = %q", got.OriginPlatform)
	}
	if got.OriginalID != "spotify-pl-1" {
		t.Errorf("GetPlaylist() original id = %q", got.OriginalID)
	}

	if len(got.Songs) != 3 {
		t.Fatalf("GetPlaylist() returned %d songs, want 3", len(got.Songs))
	}
	for i, want := range []string{"Song A", "Song B", "Song C"} {
		if got.Songs[i].Name != want {
			t.Errorf("song %d = %q, want %q (order not preserved)", i, got.Songs[i].Name, want)
		}
	}
	if got.Songs[0].SpotifyURI != "spotify:track:a1" {
		t.Errorf("song identifiers not round-tripped: %+v", got.Songs[0])
	}
}

func TestGetPlaylistNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetPlaylist("missing")
	if !errors.Is(err, shared.ErrPlaylistNotFound) {
		t.Errorf("GetPlaylist() error = %v, want ErrPlaylistNotFound", err)
	}
}

func TestCreatePlaylistValidation(t *testing.T) {
	s := newTestStore(t)

	err := s.CreatePlaylist(&models.Playlist{Owner: models.UserRef{ID: "u"}})
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("CreatePlaylist() without name error = %v, want ErrInvalidInput", err)
	}

	err = s.CreatePlaylist(&models.Playlist{Name: "No Owner"})
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("CreatePlaylist() without owner error = %v, want ErrInvalidInput", err)
	}
}

func TestFindByOriginalID(t *testing.T) {
	s := newTestStore(t)

	pl := samplePlaylist()
	if err := s.CreatePlaylist(pl); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	got, err := s.FindByOriginalID("spotify-pl-1")
	if err != nil {
		t.Fatalf("FindByOriginalID() error = %v", err)
	}
	if got.ID != pl.ID {
		t.Errorf("FindByOriginalID() = %q, want %q", got.ID, pl.ID)
	}

	if _, err := s.FindByOriginalID("unknown"); !errors.Is(err, shared.ErrPlaylistNotFound) {
		t.Errorf("FindByOriginalID(unknown) error = %v, want ErrPlaylistNotFound", err)
	}
	if _, err := s.FindByOriginalID(""); !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("FindByOriginalID(\"\") error = %v, want ErrInvalidInput", err)
	}
}

func TestListPlaylists(t *testing.T) {
	s := newTestStore(t)

	first := samplePlaylist()
	if err := s.CreatePlaylist(first); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	second := &models.Playlist{
		Name:  "Empty One",
		Owner: models.UserRef{ID: "user1", Name: "Sam"},
	}
	if err := s.CreatePlaylist(second); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	playlists, err := s.ListPlaylists()
	if err != nil {
		t.Fatalf("ListPlaylists() error = %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("ListPlaylists() returned %d playlists, want 2", len(playlists))
	}

	byName := make(map[string]models.Playlist, len(playlists))
	for _, pl := range playlists {
		byName[pl.Name] = pl
	}
	if pl, ok := byName["Road Trip"]; !ok || pl.SongCount != 3 {
		t.Errorf("SongCount for Road Trip = %d, want 3", pl.SongCount)
	} else if len(pl.Songs) != 0 {
		t.Errorf("listing loaded %d songs, want none", len(pl.Songs))
	}
	if pl, ok := byName["Empty One"]; !ok || pl.SongCount != 0 {
		t.Errorf("SongCount for Empty One = %d, want 0", pl.SongCount)
	}
	if pl, ok := byName["Empty One"]; !ok || pl.OriginPlatform != models.PlatformHarmonize {
		t.Errorf("playlist without origin = %q, want harmonize", pl.OriginPlatform)
	}
}

func TestSetSongPlatformIDsWriteOnce(t *testing.T) {
	s := newTestStore(t)

	pl := samplePlaylist()
	if err := s.CreatePlaylist(pl); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	// first write lands
	wrote, err := s.SetSongPlatformIDs(pl.ID, 0, models.PlatformAppleMusic, "am1", "music:am1")
	if err != nil {
		t.Fatalf("SetSongPlatformIDs() error = %v", err)
	}
	if !wrote {
		t.Fatal("first SetSongPlatformIDs() = false, want true")
	}

	// second write is a no-op, not an error
	wrote, err = s.SetSongPlatformIDs(pl.ID, 0, models.PlatformAppleMusic, "am-other", "music:am-other")
	if err != nil {
		t.Fatalf("second SetSongPlatformIDs() error = %v", err)
	}
	if wrote {
		t.Error("second SetSongPlatformIDs() = true, want false (identifier already set)")
	}

	got, err := s.GetPlaylist(pl.ID)
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}
	if got.Songs[0].AppleMusicID != "am1" || got.Songs[0].AppleURI != "music:am1" {
		t.Errorf("identifier overwritten: %+v", got.Songs[0])
	}

	// the spotify pair on the same song is untouched and still write-once
	if wrote, _ := s.SetSongPlatformIDs(pl.ID, 0, models.PlatformSpotify, "x", "y"); wrote {
		t.Error("spotify identifier overwritten, was set at insert time")
	}
}

func TestSetSongPlatformIDsMissingSong(t *testing.T) {
	s := newTestStore(t)

	pl := samplePlaylist()
	if err := s.CreatePlaylist(pl); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	_, err := s.SetSongPlatformIDs(pl.ID, 99, models.PlatformAppleMusic, "am1", "music:am1")
	if !errors.Is(err, shared.ErrSongNotFound) {
		t.Errorf("SetSongPlatformIDs() error = %v, want ErrSongNotFound", err)
	}

	_, err = s.SetSongPlatformIDs(pl.ID, 0, models.PlatformHarmonize, "x", "y")
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Errorf("SetSongPlatformIDs(harmonize) error = %v, want ErrInvalidInput", err)
	}
}

func TestAppendSong(t *testing.T) {
	s := newTestStore(t)

	pl := samplePlaylist()
	if err := s.CreatePlaylist(pl); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	err := s.AppendSong(pl.ID, models.Song{Name: "Song D", Artist: "Artist D"})
	if err != nil {
		t.Fatalf("AppendSong() error = %v", err)
	}

	got, err := s.GetPlaylist(pl.ID)
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}
	if len(got.Songs) != 4 || got.Songs[3].Name != "Song D" {
		t.Errorf("AppendSong() did not land at the end: %d songs, last %q", len(got.Songs), got.Songs[len(got.Songs)-1].Name)
	}
}

func TestRemoveSongRenumbers(t *testing.T) {
	s := newTestStore(t)

	pl := samplePlaylist()
	if err := s.CreatePlaylist(pl); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	if err := s.RemoveSong(pl.ID, 1); err != nil {
		t.Fatalf("RemoveSong() error = %v", err)
	}

	got, err := s.GetPlaylist(pl.ID)
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}
	if len(got.Songs) != 2 {
		t.Fatalf("RemoveSong() left %d songs, want 2", len(got.Songs))
	}
	if got.Songs[0].Name != "Song A" || got.Songs[1].Name != "Song C" {
		t.Errorf("songs after removal = %q, %q; want Song A, Song C", got.Songs[0].Name, got.Songs[1].Name)
	}

	// positions stay contiguous: the next append lands at the end
	if err := s.AppendSong(pl.ID, models.Song{Name: "Song D", Artist: "Artist D"}); err != nil {
		t.Fatalf("AppendSong() error = %v", err)
	}
	got, _ = s.GetPlaylist(pl.ID)
	if len(got.Songs) != 3 || got.Songs[2].Name != "Song D" {
		t.Errorf("append after removal broke ordering: %+v", got.Songs)
	}

	if err := s.RemoveSong(pl.ID, 99); !errors.Is(err, shared.ErrSongNotFound) {
		t.Errorf("RemoveSong(99) error = %v, want ErrSongNotFound", err)
	}
}

func TestAddHarmonizer(t *testing.T) {
	s := newTestStore(t)

	pl := samplePlaylist()
	if err := s.CreatePlaylist(pl); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}

	if err := s.AddHarmonizer(pl.ID, models.UserRef{ID: "user2", Name: "Alex"}); err != nil {
		t.Fatalf("AddHarmonizer() error = %v", err)
	}
	// adding the same user twice is a no-op
	if err := s.AddHarmonizer(pl.ID, models.UserRef{ID: "user2", Name: "Alex"}); err != nil {
		t.Fatalf("second AddHarmonizer() error = %v", err)
	}

	got, err := s.GetPlaylist(pl.ID)
	if err != nil {
		t.Fatalf("GetPlaylist() error = %v", err)
	}
	if len(got.Harmonizers) != 1 || got.Harmonizers[0].ID != "user2" {
		t.Errorf("Harmonizers = %+v, want one entry for user2", got.Harmonizers)
	}
}

func TestDuplicateOriginalIDRejected(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreatePlaylist(samplePlaylist()); err != nil {
		t.Fatalf("CreatePlaylist() error = %v", err)
	}
	if err := s.CreatePlaylist(samplePlaylist()); err == nil {
		t.Error("CreatePlaylist() accepted a duplicate original id, want unique constraint error")
	}
}
