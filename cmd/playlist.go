package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/harmonize-music/harmonize/internal/formatter"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/services"
	"github.com/harmonize-music/harmonize/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistList prints shared playlist metadata.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	st, err := r.openStore()
	if err != nil {
		return err
	}

	playlists, err := st.ListPlaylists()
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if len(playlists) == 0 {
		return r.writePlain("No shared playlists. Import one with 'harmonize playlist import'.\n")
	}

	for _, pl := range playlists {
		origin := ""
		if pl.OriginPlatform.Valid() {
			origin = fmt.Sprintf(" [%s]", pl.OriginPlatform)
		}
		r.writePlain("%s  %s (%d songs)%s\n", pl.ID, pl.Name, pl.SongCount, origin)
	}
	return nil
}

// PlaylistShow prints one shared playlist in the requested format.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	st, err := r.openStore()
	if err != nil {
		return err
	}

	playlist, err := st.GetPlaylist(cmd.String("id"))
	if err != nil {
		return err
	}

	var data []byte
	switch format := strings.ToLower(cmd.String("format")); format {
	case "json":
		if cmd.String("output") == "" {
			return r.writeJSON(playlist, true)
		}
		return fmt.Errorf("%w: use --format csv or markdown with --output", shared.ErrInvalidFlag)
	case "csv":
		if data, err = formatter.PlaylistToCSV(playlist); err != nil {
			return err
		}
	case "markdown", "md":
		data = formatter.PlaylistToMarkdown(playlist)
	case "plain", "":
		var b strings.Builder
		b.WriteString(fmt.Sprintf("%s (%d songs)\n", playlist.Name, len(playlist.Songs)))
		if playlist.Description != "" {
			b.WriteString(playlist.Description + "\n")
		}
		for i, song := range playlist.Songs {
			b.WriteString(fmt.Sprintf("%3d. %s [%s]\n", i+1, song.Label(), shared.FormatDuration(song.DurationMS)))
		}
		data = []byte(b.String())
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}

	if output := cmd.String("output"); output != "" {
		if err := formatter.SaveToFile(output, data); err != nil {
			return err
		}
		return r.writePlain("Saved to %s\n", output)
	}
	return r.writePlain("%s", data)
}

// PlaylistCreate makes a new empty shared playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	st, err := r.openStore()
	if err != nil {
		return err
	}

	playlist := &models.Playlist{
		Name:        cmd.String("name"),
		Description: cmd.String("description"),
		Owner: models.UserRef{
			ID:   cmd.String("owner-id"),
			Name: cmd.String("owner-name"),
		},
		OriginPlatform: models.PlatformHarmonize,
	}
	if err := st.CreatePlaylist(playlist); err != nil {
		return err
	}

	return r.writePlain("✓ Created %q\nShared playlist id: %s\n", playlist.Name, playlist.ID)
}

// PlaylistImport copies a platform playlist into the shared store.
func (r *Runner) PlaylistImport(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	source, ok := models.ParsePlatform(cmd.String("source"))
	if !ok {
		return fmt.Errorf("%w: unknown platform %q", shared.ErrInvalidFlag, cmd.String("source"))
	}

	catalog, err := r.catalogFor(source)
	if err != nil {
		return err
	}

	exporter, err := r.exporter()
	if err != nil {
		return err
	}

	owner := models.UserRef{
		ID:   cmd.String("owner-id"),
		Name: cmd.String("owner-name"),
	}
	if owner.ID == "" {
		owner.ID = r.config.Credentials.Spotify.UserID
	}
	if owner.ID == "" {
		return fmt.Errorf("%w: --owner-id (or a configured Spotify user id)", shared.ErrMissingArgument)
	}

	playlist, err := exporter.Import(ctx, catalog, cmd.String("id"), owner, nil)
	if err != nil {
		return err
	}

	r.writePlain("✓ Imported %q (%d songs)\n", playlist.Name, len(playlist.Songs))
	r.writePlain("Shared playlist id: %s\n", playlist.ID)
	return nil
}

// catalogFor returns the adapter for one platform, failing with a hint when
// its credentials are missing.
func (r *Runner) catalogFor(platform models.Platform) (services.Catalog, error) {
	switch platform {
	case models.PlatformSpotify:
		return r.spotifyCatalog()
	case models.PlatformAppleMusic:
		return r.appleMusicCatalog()
	default:
		return nil, fmt.Errorf("%w: no catalog for platform %q", shared.ErrInvalidInput, platform)
	}
}
