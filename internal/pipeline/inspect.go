package pipeline

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/backmassage/mkv2mp4/internal/config"
	"github.com/backmassage/mkv2mp4/internal/display"
	"github.com/backmassage/mkv2mp4/internal/inventory"
	"github.com/backmassage/mkv2mp4/internal/logging"
	"github.com/backmassage/mkv2mp4/internal/planner"
)

// Inspect classifies every selected file without converting anything and
// prints a per-file stream summary table to w. Files whose inventory
// cannot be read are logged and left out of the table.
func Inspect(ctx context.Context, cfg *config.Config, log *logging.Logger, w io.Writer) error {
	files, err := ResolveInputs(cfg)
	if err != nil {
		return fmt.Errorf("file discovery failed: %w", err)
	}
	if len(files) == 0 {
		log.Warn("No .mkv files found")
		return nil
	}
	return inspectFiles(ctx, acquirerFor(cfg.ProbeMode), log, w, files)
}

func inspectFiles(ctx context.Context, acquire acquireFunc, log *logging.Logger, w io.Writer, files []string) error {
	rows := make([]display.InventoryRow, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		a, _, err := acquire(ctx, path)
		if err != nil {
			log.Error("%s: %v", filepath.Base(path), err)
			continue
		}
		rows = append(rows, inventoryRow(filepath.Base(path), a))
	}

	log.Info("Inspected %d of %d files", len(rows), len(files))
	fmt.Fprintln(w)
	display.PrintInventoryTable(w, rows)
	return nil
}

func inventoryRow(name string, a *inventory.Analysis) display.InventoryRow {
	return display.InventoryRow{
		Name:      name,
		Video:     a.Count(inventory.KindVideo),
		Audio:     a.Count(inventory.KindAudio),
		Subtitles: a.Count(inventory.KindSubtitle),
		TrueHD:    a.HasTrueHDAudio,
		Dropped:   len(a.Excluded()),
		Ignored:   a.Ignored,
	}
}

// PlanFile probes src and returns the plan that a conversion would use,
// together with the classified inventory.
func PlanFile(ctx context.Context, cfg *config.Config, src string) (*inventory.Analysis, planner.Plan, error) {
	a, _, err := acquirerFor(cfg.ProbeMode)(ctx, src)
	if err != nil {
		return nil, planner.Plan{}, err
	}
	return a, planner.Build(a), nil
}
