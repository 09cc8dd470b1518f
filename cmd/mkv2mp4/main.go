// Command mkv2mp4 remuxes Matroska files into MP4 containers with ffmpeg,
// stream-copying video and audio and converting text subtitles.
package main

import (
	"os"

	"github.com/backmassage/mkv2mp4/internal/cli"
)

// version and commit are injected at build time via -ldflags, e.g.
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse --short HEAD)"
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	cli.SetVersion(version, commit)
	os.Exit(cli.Execute())
}
