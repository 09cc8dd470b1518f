package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/backmassage/mkv2mp4/internal/config"
	"github.com/backmassage/mkv2mp4/internal/pipeline"
)

func newInspectCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	o := &config.Overrides{}
	var flat bool

	cmd := &cobra.Command{
		Use:   "inspect DIR",
		Short: "Summarize the streams of every MKV under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := config.NormalizeDirArg(args[0])
			if flat {
				cfg.DirectoryFlat = dir
			} else {
				cfg.Directory = dir
			}

			log, err := newSubLogger(&cfg, o)
			if err != nil {
				return err
			}
			defer log.Close()

			if err := pipeline.Inspect(context.Background(), &cfg, log, cmd.OutOrStdout()); err != nil {
				log.Error("%v", err)
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&flat, "flat", false, "Do not descend into subdirectories")
	config.BindFilterFlags(cmd.Flags(), &cfg)
	config.BindProbeFlag(cmd.Flags(), &cfg)
	config.BindDisplayFlags(cmd.Flags(), &cfg, o)
	return cmd
}
