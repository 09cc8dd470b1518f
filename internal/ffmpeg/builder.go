package ffmpeg

import (
	"strconv"

	"github.com/backmassage/mkv2mp4/internal/config"
	"github.com/backmassage/mkv2mp4/internal/planner"
)

// Build constructs the complete ffmpeg argument slice for a file:
//
//	ffmpeg -hide_banner -nostdin -threads N (-y|-n) -i SRC <plan> DST
//
// -nostdin keeps parallel workers from competing for the terminal; without
// --yes, -n makes ffmpeg refuse to overwrite instead of prompting.
func Build(cfg *config.Config, plan planner.Plan, src, dst string) []string {
	args := make([]string, 0, 16+len(plan.Directives)*2)

	args = append(args, "ffmpeg", "-hide_banner", "-nostdin")
	if cfg.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(cfg.Threads))
	}
	if cfg.Overwrite {
		args = append(args, "-y")
	} else {
		args = append(args, "-n")
	}

	args = append(args, "-i", src)
	args = append(args, plan.Args()...)
	args = append(args, dst)
	return args
}
