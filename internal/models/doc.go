// Package models defines domain entities for the Harmonize playlist engine.
//
// The package contains two categories of types:
//
// 1. Persistent entities stored in the shared playlist store:
//   - [Playlist] : A shared playlist with its owner, harmonizers and ordered songs
//   - [Song] : A platform-agnostic song record carrying per-platform identifiers
//   - [UserRef] : A lightweight reference to a playlist owner or harmonizer
//
// 2. Ephemeral matching types, never persisted:
//   - [MatchCandidate] : A raw track returned by a catalog search
//   - [ScoredCandidate] : A candidate paired with its similarity score
//
// Platform identifiers on a [Song] follow a write-once discipline: the
// identifier of the originating service is set at creation, and the
// counterpart identifier is filled in lazily by the matching engine, at most
// once, never overwritten while non-empty.
package models
