package cli

import (
	"github.com/spf13/cobra"

	"github.com/backmassage/mkv2mp4/internal/check"
	"github.com/backmassage/mkv2mp4/internal/config"
)

func newCheckCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	o := &config.Overrides{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report ffmpeg, ffprobe and codec availability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newSubLogger(&cfg, o)
			if err != nil {
				return err
			}
			defer log.Close()

			if !check.RunCheck(log) {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	config.BindDisplayFlags(cmd.Flags(), &cfg, o)
	return cmd
}
