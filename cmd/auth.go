package main

import (
	"context"
	"fmt"
	"time"

	"github.com/harmonize-music/harmonize/internal/server"
	"github.com/harmonize-music/harmonize/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"

	// long enough to complete the consent screen by hand
	oauthTimeout = 3 * time.Minute
)

var spotifyScopes = []string{
	"playlist-read-private",
	"playlist-modify-private",
	"playlist-modify-public",
	"user-read-private",
}

// SpotifyAuth runs the OAuth2 authorization-code flow against Spotify.
//
// Starts a localhost callback server, opens the consent page in the browser,
// and prints the resulting access token for the config file.
func (r *Runner) SpotifyAuth(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	creds := r.config.Credentials.Spotify
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return fmt.Errorf("%w: spotify client_id and client_secret must be set in config", shared.ErrMissingCredentials)
	}

	redirectURI := creds.RedirectURI
	if redirectURI == "" {
		redirectURI = fmt.Sprintf("http://%s:%d/callback", r.config.Server.Host, r.config.Server.Port)
	}

	oauthConfig := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		RedirectURL:  redirectURI,
		Scopes:       spotifyScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	state := shared.GenerateID()
	handler := server.NewOAuthHandler(oauthConfig, state)

	srv := server.New(r.config.Server.Host, r.config.Server.Port, r.logger)
	srv.Use(server.LoggingMiddleware(r.logger))
	srv.Handler(handler)

	serverCtx, cancel := context.WithTimeout(ctx, oauthTimeout)
	defer cancel()

	go func() {
		if err := srv.Start(serverCtx); err != nil {
			r.logger.Error("callback server error", "err", err)
		}
	}()

	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	r.writePlain("Opening Spotify authorization page...\n%s\n", authURL)

	if !cmd.Bool("no-browser") {
		if err := shared.OpenBrowser(authURL); err != nil {
			r.logger.Warn("failed to open browser, open the URL manually", "err", err)
		}
	}

	result, err := handler.Wait(serverCtx)
	if err != nil {
		return fmt.Errorf("%w: timed out waiting for callback: %v", shared.ErrAuthFailed, err)
	}
	if result.Error() != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, result.Error())
	}

	r.logger.Info("spotify authentication successful", "expires", result.Token.Expiry)

	r.config.Credentials.Spotify.AccessToken = result.Token.AccessToken

	r.writePlain("\n✓ Authentication successful\n\n")
	r.writePlain("Add to config.toml under [credentials.spotify]:\n")
	r.writePlain("access_token = %q\n", result.Token.AccessToken)
	if result.Token.RefreshToken != "" {
		r.writePlain("\nRefresh token (keep somewhere safe):\n%s\n", result.Token.RefreshToken)
	}
	return nil
}

// AppleMusicAuth verifies that the configured Apple Music credentials are usable.
//
// Apple Music has no CLI-side OAuth flow: the developer token is minted from a
// MusicKit key and the music user token comes from a MusicKit-JS consent page.
// This command just confirms both are present and the developer token loads.
func (r *Runner) AppleMusicAuth(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	if _, err := r.appleMusicCatalog(); err != nil {
		return err
	}

	creds := r.config.Credentials.AppleMusic
	r.writePlain("✓ Developer token source configured\n")
	if creds.MusicUserToken == "" {
		r.writePlain("✗ No music user token: library operations (create playlist, add tracks) will fail\n")
		r.writePlain("  Obtain one via a MusicKit-JS authorization page and set music_user_token in config.toml\n")
	} else {
		r.writePlain("✓ Music user token present\n")
	}
	r.writePlain("Storefront: %s\n", creds.Storefront)
	return nil
}

// AuthStatus reports which platforms have usable credentials.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	if _, err := r.spotifyCatalog(); err == nil {
		r.writePlain("Spotify: ✓ access token configured\n")
	} else {
		r.writePlain("Spotify: ✗ %v\n", err)
	}

	if _, err := r.appleMusicCatalog(); err == nil {
		r.writePlain("Apple Music: ✓ developer token configured\n")
	} else {
		r.writePlain("Apple Music: ✗ %v\n", err)
	}

	return nil
}
