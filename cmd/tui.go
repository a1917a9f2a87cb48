package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/shared"
	"github.com/harmonize-music/harmonize/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist export.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	target, ok := models.ParsePlatform(cmd.String("target"))
	if !ok {
		return fmt.Errorf("%w: unknown platform %q", shared.ErrInvalidFlag, cmd.String("target"))
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/harmonize-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	st, err := r.openStore()
	if err != nil {
		return err
	}

	exporter, err := r.exporter()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, st, exporter, target)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
