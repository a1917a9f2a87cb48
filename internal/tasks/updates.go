package tasks

import (
	"fmt"

	"github.com/harmonize-music/harmonize/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadPlaylist Phase = iota
	CreateDestination
	ResolveSongs
	FlushBatch
	FetchSource
	SaveImport
	Done
)

func (p Phase) String() string {
	switch p {
	case LoadPlaylist:
		return "load_playlist"
	case CreateDestination:
		return "create_destination"
	case ResolveSongs:
		return "resolve_songs"
	case FlushBatch:
		return "flush_batch"
	case FetchSource:
		return "fetch_source"
	case SaveImport:
		return "save_import"
	case Done:
		return "done"
	default:
		return ""
	}
}

func loadPlaylistUpdate(id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadPlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Loading playlist %s...", id),
	}
}

func createDestinationUpdate(name, service string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateDestination,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating %q on %s...", name, service),
	}
}

func resolveSongUpdate(step, total int, song models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, song.Label()),
	}
}

func flushBatchUpdate(batch, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FlushBatch,
		Step:    batch,
		Total:   batch,
		Message: fmt.Sprintf("Adding batch %d (%d tracks)...", batch, size),
	}
}

func fetchSourceUpdate(id, service string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSource,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching playlist %s from %s...", id, service),
	}
}

func saveImportUpdate(name string, songs int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveImport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Saving %q (%d songs)...", name, songs),
	}
}

func doneUpdate(result *ExportResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Export finished: %d added, %d unmatched, %d skipped", result.Added, len(result.Unmatched), len(result.Skipped)),
		Data:    result,
	}
}
