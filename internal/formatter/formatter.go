// package formatter provides functions to export playlist data and export
// reports to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/shared"
	"github.com/harmonize-music/harmonize/internal/tasks"
)

// PlaylistToCSV converts a playlist to CSV with columns: Position, Name, Artist, Album, Duration, SpotifyID, AppleMusicID
func PlaylistToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Name", "Artist", "Album", "Duration", "SpotifyID", "AppleMusicID"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range playlist.Songs {
		record := []string{
			strconv.Itoa(i + 1),
			song.Name,
			song.Artist,
			song.Album,
			shared.FormatDuration(song.DurationMS),
			song.SpotifyID,
			song.AppleMusicID,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// PlaylistToMarkdown converts a playlist to Markdown.
func PlaylistToMarkdown(playlist *models.Playlist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))

	if playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Owner**: %s\n", playlist.Owner.Name))
	buf.WriteString(fmt.Sprintf("**Origin**: %s\n", playlist.OriginPlatform))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(playlist.Songs)))

	if len(playlist.Harmonizers) > 0 {
		buf.WriteString("**Harmonizers**: ")
		for i, h := range playlist.Harmonizers {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(h.Name)
		}
		buf.WriteString("\n\n")
	}

	buf.WriteString("## Songs\n\n")
	for i, song := range playlist.Songs {
		albumPart := ""
		if song.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", song.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n",
			i+1, song.Artist, song.Name, albumPart, shared.FormatDuration(song.DurationMS)))
	}

	return buf.Bytes()
}

// ExportReport renders an export result as plain text for terminal display.
func ExportReport(result *tasks.ExportResult) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Destination playlist: %s\n", result.DestinationID))
	buf.WriteString(fmt.Sprintf("Songs processed: %d\n", result.TotalSongs))
	buf.WriteString(fmt.Sprintf("Tracks added: %d\n", result.Added))

	if len(result.Unmatched) > 0 {
		buf.WriteString(fmt.Sprintf("\nUnmatched (%d):\n", len(result.Unmatched)))
		for _, label := range result.Unmatched {
			buf.WriteString(fmt.Sprintf("  %s\n", label))
		}
	}

	if len(result.Skipped) > 0 {
		buf.WriteString(fmt.Sprintf("\nMatched but not added (%d failed batches):\n", result.FailedBatches))
		for _, label := range result.Skipped {
			buf.WriteString(fmt.Sprintf("  %s\n", label))
		}
	}

	if len(result.Unmatched) == 0 && len(result.Skipped) == 0 {
		buf.WriteString("\nAll songs exported.\n")
	}

	return buf.Bytes()
}

// SaveToFile writes formatted output to the given path.
func SaveToFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
