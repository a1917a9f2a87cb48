package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/harmonize-music/harmonize/internal/formatter"
	"github.com/harmonize-music/harmonize/internal/models"
	"github.com/harmonize-music/harmonize/internal/shared"
	"github.com/harmonize-music/harmonize/internal/tasks"
	"github.com/urfave/cli/v3"
)

// ExportRun exports a shared playlist to the target platform and prints a report.
func (r *Runner) ExportRun(ctx context.Context, cmd *cli.Command) error {
	r.reloadConfig(cmd.String("config"))

	target, ok := models.ParsePlatform(cmd.String("target"))
	if !ok {
		return fmt.Errorf("%w: unknown platform %q", shared.ErrInvalidFlag, cmd.String("target"))
	}

	exporter, err := r.exporter()
	if err != nil {
		return err
	}

	var progress chan tasks.ProgressUpdate
	var wg sync.WaitGroup
	if !cmd.Bool("quiet") {
		progress = make(chan tasks.ProgressUpdate, 16)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for update := range progress {
				r.writePlain("[%s] %s\n", update.Phase, update.Message)
			}
		}()
	}

	result, exportErr := exporter.Export(ctx, cmd.String("id"), target, progress)
	if progress != nil {
		close(progress)
		wg.Wait()
	}

	if exportErr != nil {
		if errors.Is(exportErr, shared.ErrCatalogUnauthorized) {
			r.logger.Error("platform rejected our credentials, re-authenticate and retry", "target", target)
			if result != nil {
				r.writePlain("\nPartial result before failure:\n%s", formatter.ExportReport(result))
			}
		}
		return exportErr
	}

	report := formatter.ExportReport(result)

	if cmd.Bool("json") {
		if err := r.writeJSON(result, true); err != nil {
			return err
		}
	} else {
		if err := r.writePlain("\n%s", report); err != nil {
			return err
		}
	}

	if output := cmd.String("output"); output != "" {
		if err := formatter.SaveToFile(output, report); err != nil {
			return err
		}
		r.writePlain("Report saved to %s\n", output)
	}
	return nil
}
