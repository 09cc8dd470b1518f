package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/backmassage/mkv2mp4/internal/config"
	"github.com/backmassage/mkv2mp4/internal/inventory"
	"github.com/backmassage/mkv2mp4/internal/pipeline"
	"github.com/backmassage/mkv2mp4/internal/planner"
)

func newPlanCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	o := &config.Overrides{}

	cmd := &cobra.Command{
		Use:   "plan FILE...",
		Short: "Print the ffmpeg directives for each file without converting",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newSubLogger(&cfg, o)
			if err != nil {
				return err
			}
			defer log.Close()

			failed := 0
			for _, src := range args {
				a, plan, err := pipeline.PlanFile(context.Background(), &cfg, src)
				if err != nil {
					log.Error("%s: %v", filepath.Base(src), err)
					failed++
					continue
				}
				printPlan(cmd.OutOrStdout(), src, pipeline.OutputPath(src, cfg.OutputDir), a, plan)
			}
			if failed > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	config.BindProbeFlag(cmd.Flags(), &cfg)
	cmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", "", "Destination directory shown in the plan")
	config.BindDisplayFlags(cmd.Flags(), &cfg, o)
	return cmd
}

func printPlan(w io.Writer, src, dst string, a *inventory.Analysis, plan planner.Plan) {
	fmt.Fprintf(w, "%s -> %s\n", src, dst)
	fmt.Fprintf(w, "  streams: %d video, %d audio, %d subtitle\n",
		a.Count(inventory.KindVideo), a.Count(inventory.KindAudio), a.Count(inventory.KindSubtitle))
	for _, s := range a.Excluded() {
		fmt.Fprintf(w, "  dropped: 0:s:%d (%s)\n", s.Ordinal, s.CodecName())
	}
	fmt.Fprintf(w, "  plan: %s\n", plan)
}
