// Package ui implements the interactive export TUI with bubbletea.
//
// The flow is a short Elm-style state machine: pick a shared playlist,
// confirm the target platform, watch resolve/flush progress streamed from the
// export engine, and read the final report.
package ui
