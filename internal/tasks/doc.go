// Package tasks implements playlist operations between the shared store and
// the streaming catalogs.
//
// The core type is [Exporter], which pushes a shared playlist onto a target
// platform: it resolves every song through the match package, persists
// discovered identifiers back to the store, batches add-track calls, and
// reports the songs that could not be placed. Operations emit progress
// updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks
