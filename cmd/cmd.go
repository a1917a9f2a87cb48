// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes config and database
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize config file, database and run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.SetupDatabase,
	}
}

// authCommand handles platform authentication
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with streaming platforms",
		Commands: []*cli.Command{
			{
				Name:  "spotify",
				Usage: "Authenticate with Spotify using OAuth2",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "no-browser",
						Usage: "Print the authorization URL instead of opening a browser",
					},
				},
				Action: r.SpotifyAuth,
			},
			{
				Name:  "apple",
				Usage: "Verify Apple Music developer and user tokens",
				Flags: []cli.Flag{
					configFlag(),
				},
				Action: r.AppleMusicAuth,
			},
			{
				Name:   "status",
				Usage:  "Show which platforms have usable credentials",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AuthStatus,
			},
		},
	}
}

// playlistCommand handles shared playlist operations
func playlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "playlist",
		Aliases: []string{"pl"},
		Usage:   "Shared playlist operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List shared playlists",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.PlaylistList,
			},
			{
				Name:  "show",
				Usage: "Show a shared playlist with its songs",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: plain, json, csv, markdown",
						Value: "plain",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write output to a file instead of stdout",
					},
				},
				Action: r.PlaylistShow,
			},
			{
				Name:  "create",
				Usage: "Create a new empty shared playlist",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Playlist name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Playlist description",
					},
					&cli.StringFlag{
						Name:     "owner-id",
						Usage:    "Owner user id",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "owner-name",
						Usage: "Owner display name",
					},
				},
				Action: r.PlaylistCreate,
			},
			{
				Name:  "import",
				Usage: "Import a playlist from a streaming platform into the shared store",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:     "source",
						Usage:    "Source platform: spotify or apple_music",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Platform playlist ID",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "owner-id",
						Usage: "Owner user id (defaults to configured Spotify user id)",
					},
					&cli.StringFlag{
						Name:  "owner-name",
						Usage: "Owner display name",
					},
				},
				Action: r.PlaylistImport,
			},
		},
	}
}

// exportCommand pushes a shared playlist to a platform
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export a shared playlist to a streaming platform",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:     "id",
				Usage:    "Shared playlist ID",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "target",
				Aliases:  []string{"t"},
				Usage:    "Target platform: spotify or apple_music",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the export report to a file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the result as JSON",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress per-song progress output",
			},
		},
		Action: r.ExportRun,
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Interactive playlist export",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:    "target",
				Aliases: []string{"t"},
				Usage:   "Target platform: spotify or apple_music",
				Value:   "spotify",
			},
		},
		Action: r.TUI,
	}
}
