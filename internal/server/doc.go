// Package server hosts the localhost HTTP surface of the CLI: the OAuth2
// callback used to capture a Spotify user token during authentication.
//
// The engine itself never serves HTTP; this package exists so the auth
// command can complete the authorization-code flow without pasting codes by
// hand.
package server
