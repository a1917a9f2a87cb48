// Package store persists shared playlists, their songs and their members in
// SQLite.
//
// The store is the only mutable resource the matching engine shares between
// callers. Its contract keeps concurrent writers commutative without locks:
// songs are never reordered or rewritten in place, the only field-level
// update is [Store.SetSongPlatformIDs], which fills a previously empty
// identifier pair and refuses to overwrite a non-empty one. Two concurrent
// exports discovering the same match therefore write the same value, and
// whichever lands second is a no-op.
package store
