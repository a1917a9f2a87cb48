// Package services contains the per-platform catalog adapters.
//
// Each adapter implements [Catalog] over one streaming service's REST API:
//
//   - [SpotifyCatalog] : Spotify Web API, user bearer token
//   - [AppleMusicCatalog] : Apple Music API, developer token + music user token
//
// Adapters translate platform wire formats into the canonical types in the
// models package, map HTTP failures onto the shared catalog error sentinels,
// and rate-limit their own outbound calls. They never score or pick
// candidates; that is the match package's job.
package services
