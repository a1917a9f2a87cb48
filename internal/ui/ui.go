package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	ConfirmView
	ExportView
	ResultView
)

// PlaylistLister loads playlist metadata for the picker.
// Implemented by store.Store.
type PlaylistLister interface {
	ListPlaylists() ([]models.Playlist, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	library      PlaylistLister
	exporter     *tasks.Exporter
	target       models.Platform
	width        int
	height       int
	playlistList list.Model
	selected     *models.Playlist
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	result       *tasks.ExportResult
	err          error
	help         help.Model
	keys         keyMap
}

type playlistsLoadedMsg struct {
	playlists []models.Playlist
	err       error
}

type progressUpdateMsg tasks.ProgressUpdate

type exportCompleteMsg struct {
	result *tasks.ExportResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, library PlaylistLister, exporter *tasks.Exporter, target models.Platform) *Model {
	return &Model{
		ctx:      ctx,
		view:     PlaylistListView,
		library:  library,
		exporter: exporter,
		target:   target,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// Init loads the playlist picker.
func (m *Model) Init() tea.Cmd {
	return m.loadPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() == 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case playlistsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ResultView
			return m, nil
		}
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		delegate := list.NewDefaultDelegate()
		m.playlistList = list.New(items, delegate, m.width-4, m.height-8)
		m.playlistList.Title = "Shared playlists"
		m.playlistList.SetShowHelp(false)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case exportCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.view == PlaylistListView {
		var cmd tea.Cmd
		m.playlistList, cmd = m.playlistList.Update(nil)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	switch m.view {
	case PlaylistListView:
		if key.Matches(msg, m.keys.enter) {
			if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
				pl := item.playlist
				m.selected = &pl
				m.view = ConfirmView
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.playlistList, cmd = m.playlistList.Update(msg)
		return m, cmd

	case ConfirmView:
		switch {
		case key.Matches(msg, m.keys.yes), key.Matches(msg, m.keys.enter):
			m.view = ExportView
			return m, tea.Batch(m.startExport(), m.waitForProgress())
		case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
			m.view = PlaylistListView
			m.selected = nil
		}
		return m, nil

	case ResultView:
		if key.Matches(msg, m.keys.back) {
			m.view = PlaylistListView
			m.result = nil
			m.err = nil
			return m, m.loadPlaylists()
		}
	}

	return m, nil
}

// View renders the current view.
func (m *Model) View() string {
	var b strings.Builder

	switch m.view {
	case PlaylistListView:
		b.WriteString(m.playlistList.View())

	case ConfirmView:
		b.WriteString(styles.title.Render(fmt.Sprintf("Export %q to %s?", m.selected.Name, m.target)))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d songs will be matched and added to a new playlist.\n\n", m.selected.SongCount))
		b.WriteString(styles.help.Render("y: export  n: back"))

	case ExportView:
		b.WriteString(styles.title.Render(fmt.Sprintf("Exporting %q", m.selected.Name)))
		b.WriteString("\n")
		if m.progress.Total > 0 {
			b.WriteString(fmt.Sprintf("%s\n", m.progress.Message))
		} else {
			b.WriteString("Starting...\n")
		}

	case ResultView:
		if m.err != nil {
			b.WriteString(styles.err.Render("Export failed"))
			b.WriteString(fmt.Sprintf("\n%v\n", m.err))
		} else if m.result != nil {
			b.WriteString(styles.ok.Render("Export complete"))
			b.WriteString(fmt.Sprintf("\nAdded %d of %d songs.\n", m.result.Added, m.result.TotalSongs))
			if len(m.result.Unmatched) > 0 {
				b.WriteString(styles.warn.Render(fmt.Sprintf("\nUnmatched (%d):\n", len(m.result.Unmatched))))
				for _, label := range m.result.Unmatched {
					b.WriteString("  " + label + "\n")
				}
			}
			if len(m.result.Skipped) > 0 {
				b.WriteString(styles.warn.Render(fmt.Sprintf("\nNot added after batch failures (%d):\n", len(m.result.Skipped))))
				for _, label := range m.result.Skipped {
					b.WriteString("  " + label + "\n")
				}
			}
		}
		b.WriteString("\n")
		b.WriteString(styles.help.Render("esc: back  q: quit"))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// loadPlaylists fetches shared playlists from the store.
func (m *Model) loadPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.library.ListPlaylists()
		return playlistsLoadedMsg{playlists: playlists, err: err}
	}
}

// startExport runs the export in the background, streaming progress into the
// model's channel.
func (m *Model) startExport() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 16)
	playlistID := m.selected.ID

	return func() tea.Msg {
		result, err := m.exporter.Export(m.ctx, playlistID, m.target, m.progressChan)
		close(m.progressChan)
		return exportCompleteMsg{result: result, err: err}
	}
}

// waitForProgress relays the next progress update into the bubbletea loop.
func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}
