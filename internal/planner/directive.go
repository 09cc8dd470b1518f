package planner

import (
	"fmt"
	"strings"

	"github.com/backmassage/mkv2mp4/internal/inventory"
)

// Codec and option values used in directives.
const (
	codecCopy     = "copy"
	codecMovText  = "mov_text"
	strictOption  = "-strict"
	strictRelaxed = "-2" // "experimental": lets MP4 carry TrueHD
)

// Directive is one ffmpeg option and its value. Both are separate argv
// tokens; nothing is pre-joined or shell-quoted.
type Directive struct {
	Flag  string
	Value string
}

func videoCopy() Directive { return Directive{"-c:v", codecCopy} }

func audioCopy() Directive { return Directive{"-c:a", codecCopy} }

func relaxed() Directive { return Directive{strictOption, strictRelaxed} }

func subtitlesAll() Directive { return Directive{"-c:s", codecMovText} }

func dropSubtitles() Directive { return Directive{Flag: "-sn"} }

func subtitleAt(ordinal int) Directive {
	return Directive{fmt.Sprintf("-c:s:%d", ordinal), codecMovText}
}

func mapStream(kind inventory.Kind, ordinal int) Directive {
	return Directive{"-map", fmt.Sprintf("0:%s:%d", kind.Specifier(), ordinal)}
}

// IsMap reports whether d is an explicit stream map.
func (d Directive) IsMap() bool { return d.Flag == "-map" }

// Plan is the ordered directive sequence for one file. Order matters to
// ffmpeg's option parser: -strict must precede -c:a, and maps follow all
// codec declarations.
type Plan struct {
	Directives []Directive
}

// Args flattens the plan into argv tokens.
func (p Plan) Args() []string {
	args := make([]string, 0, len(p.Directives)*2)
	for _, d := range p.Directives {
		args = append(args, d.Flag)
		if d.Value != "" {
			args = append(args, d.Value)
		}
	}
	return args
}

// Maps returns the explicit stream maps, in order.
func (p Plan) Maps() []Directive {
	var maps []Directive
	for _, d := range p.Directives {
		if d.IsMap() {
			maps = append(maps, d)
		}
	}
	return maps
}

// String joins the tokens with spaces for display only.
func (p Plan) String() string {
	return strings.Join(p.Args(), " ")
}
