package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")

	// Catalog errors. Unauthorized is fatal for the affected call chain and
	// sends the user back through re-authentication. Unavailable and Empty
	// are recoverable: the resolver treats both as "no candidates".
	ErrCatalogUnauthorized = fmt.Errorf("catalog authorization rejected")
	ErrCatalogUnavailable  = fmt.Errorf("catalog unavailable")
	ErrCatalogEmpty        = fmt.Errorf("catalog returned no results")

	// Store errors
	ErrPlaylistNotFound = fmt.Errorf("playlist not found")
	ErrSongNotFound     = fmt.Errorf("song not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
