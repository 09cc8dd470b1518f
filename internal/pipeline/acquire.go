package pipeline

import (
	"context"

	"github.com/backmassage/mkv2mp4/internal/config"
	"github.com/backmassage/mkv2mp4/internal/inventory"
	"github.com/backmassage/mkv2mp4/internal/probe"
)

// acquireFunc obtains a classified inventory for one source file along
// with the raw probe output it was derived from.
type acquireFunc func(ctx context.Context, path string) (*inventory.Analysis, []byte, error)

// acquirerFor returns the inventory source selected by mode.
func acquirerFor(mode config.ProbeMode) acquireFunc {
	if mode == config.ProbeJSON {
		return acquireJSON
	}
	return acquireText
}

func acquireText(ctx context.Context, path string) (*inventory.Analysis, []byte, error) {
	report, err := probe.TextInventory(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return inventory.Classify(report), []byte(report), nil
}

func acquireJSON(ctx context.Context, path string) (*inventory.Analysis, []byte, error) {
	pr, raw, err := probe.Probe(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return inventory.ClassifyRecords(pr.Records()), raw, nil
}
