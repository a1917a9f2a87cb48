package models

import (
	"reflect"
	"testing"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		input string
		want  Platform
		ok    bool
	}{
		{"spotify", PlatformSpotify, true},
		{"Spotify", PlatformSpotify, true},
		{" SPOTIFY ", PlatformSpotify, true},
		{"apple", PlatformAppleMusic, true},
		{"apple_music", PlatformAppleMusic, true},
		{"apple-music", PlatformAppleMusic, true},
		{"applemusic", PlatformAppleMusic, true},
		{"harmonize", PlatformHarmonize, true},
		{"tidal", PlatformHarmonize, false},
		{"", PlatformHarmonize, false},
	}

	for _, tc := range tests {
		got, ok := ParsePlatform(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePlatform(%q) = %q, %v; want %q, %v", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestPlatformValid(t *testing.T) {
	for _, p := range []Platform{PlatformSpotify, PlatformAppleMusic, PlatformHarmonize} {
		if !p.Valid() {
			t.Errorf("%q.Valid() = false", p)
		}
	}
	if Platform("tidal").Valid() {
		t.Error(`Platform("tidal").Valid() = true`)
	}
}

func TestSongPlatformIdentifiers(t *testing.T) {
	song := Song{
		Name:       "Levitating",
		Artist:     "Dua Lipa",
		SpotifyID:  "s1",
		SpotifyURI: "spotify:track:s1",
	}

	if got := song.PlatformID(PlatformSpotify); got != "s1" {
		t.Errorf("PlatformID(spotify) = %q", got)
	}
	if got := song.PlatformID(PlatformAppleMusic); got != "" {
		t.Errorf("PlatformID(apple) = %q, want empty", got)
	}
	if got := song.PlatformID(PlatformHarmonize); got != "" {
		t.Errorf("PlatformID(harmonize) = %q, want empty", got)
	}
	if got := song.PlatformURI(PlatformSpotify); got != "spotify:track:s1" {
		t.Errorf("PlatformURI(spotify) = %q", got)
	}
}

func TestSetPlatformIDWriteOnce(t *testing.T) {
	song := Song{Name: "Levitating", Artist: "Dua Lipa"}

	if !song.SetPlatformID(PlatformAppleMusic, "a1", "music:a1") {
		t.Fatal("first SetPlatformID() = false")
	}
	if song.SetPlatformID(PlatformAppleMusic, "a2", "music:a2") {
		t.Error("second SetPlatformID() = true, want false")
	}
	if song.AppleMusicID != "a1" || song.AppleURI != "music:a1" {
		t.Errorf("identifier overwritten: %q/%q", song.AppleMusicID, song.AppleURI)
	}

	if song.SetPlatformID(PlatformHarmonize, "x", "y") {
		t.Error("SetPlatformID(harmonize) = true, want false")
	}
}

func TestSongArtists(t *testing.T) {
	tests := []struct {
		artist string
		want   []string
	}{
		{"Dua Lipa", []string{"Dua Lipa"}},
		{"Dua Lipa, DaBaby", []string{"Dua Lipa", "DaBaby"}},
		{" Dua Lipa ,  DaBaby ", []string{"Dua Lipa", "DaBaby"}},
		{"", []string{}},
		{",,", []string{}},
	}

	for _, tc := range tests {
		got := Song{Artist: tc.artist}.Artists()
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Artists(%q) = %v, want %v", tc.artist, got, tc.want)
		}
	}
}

func TestSongLabel(t *testing.T) {
	song := Song{Name: "Levitating", Artist: "Dua Lipa"}
	if got := song.Label(); got != "Levitating - Dua Lipa" {
		t.Errorf("Label() = %q", got)
	}
}
