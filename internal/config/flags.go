package config

// This file binds Config fields to a pflag.FlagSet. Flags are grouped into
// input, ffmpeg, behavior, and display. Negated flags (--no-color) are
// applied after parsing so Config defaults hold unless set.

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Overrides holds flags that are applied to Config after parsing.
type Overrides struct {
	forceColor bool
	noColor    bool
}

// BindFlags registers all conversion flags on fs, writing into cfg.
// Call [Overrides.Apply] after parsing.
func BindFlags(fs *pflag.FlagSet, cfg *Config) *Overrides {
	o := &Overrides{}
	defineInputFlags(fs, cfg)
	defineFfmpegFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg)
	BindDisplayFlags(fs, cfg, o)
	return o
}

// defineInputFlags registers -f/--file, -d/--directory, -D/--directory-flat, -o, filters.
func defineInputFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringVarP(&cfg.File, "file", "f", "", "A specific MKV file path to convert")
	fs.StringVarP(&cfg.Directory, "directory", "d", "", "A directory with MKVs to convert (recursive)")
	fs.StringVarP(&cfg.DirectoryFlat, "directory-flat", "D", "", "A directory with MKVs to convert (not recursive)")
	fs.StringVarP(&cfg.OutputDir, "output-dir", "o", "", "Write MP4s here instead of next to each source")
	BindFilterFlags(fs, cfg)
}

// BindFilterFlags registers --include and --exclude.
func BindFilterFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.StringSliceVar(&cfg.Include, "include", nil, "Only use files whose name matches this glob (repeatable)")
	fs.StringSliceVar(&cfg.Exclude, "exclude", nil, "Skip files whose name matches this glob (repeatable)")
}

// defineFfmpegFlags registers --threads, -y/--yes, -j/--jobs.
func defineFfmpegFlags(fs *pflag.FlagSet, cfg *Config) {
	fs.IntVar(&cfg.Threads, "threads", cfg.Threads, "ffmpeg -threads value (0 lets ffmpeg decide)")
	fs.BoolVarP(&cfg.Overwrite, "yes", "y", false, "Overwrite output files without asking")
	fs.IntVarP(&cfg.Jobs, "jobs", "j", cfg.Jobs, "Number of files converted in parallel")
}

// defineBehaviorFlags registers --probe, --dry-run, --strict, --history.
func defineBehaviorFlags(fs *pflag.FlagSet, cfg *Config) {
	BindProbeFlag(fs, cfg)
	fs.BoolVarP(&cfg.DryRun, "dry-run", "n", false, "Print plans only; do not run ffmpeg")
	fs.BoolVar(&cfg.StrictMode, "strict", false, "Disable automatic ffmpeg retry fallbacks")
	fs.StringVar(&cfg.HistoryPath, "history", "", "SQLite database recording completed conversions")
}

// BindProbeFlag registers --probe.
func BindProbeFlag(fs *pflag.FlagSet, cfg *Config) {
	fs.Var(&probeModeValue{&cfg.ProbeMode}, "probe", "Stream inventory source: text | json")
}

// BindDisplayFlags registers -v/--verbose, --color, --no-color, -l/--log.
// Shared by every subcommand.
func BindDisplayFlags(fs *pflag.FlagSet, cfg *Config, o *Overrides) {
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&o.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&o.noColor, "no-color", false, "Disable colored logs")
	fs.StringVarP(&cfg.LogFile, "log", "l", "", "Append logs to file")
}

// Apply copies negated flag values into cfg.
func (o *Overrides) Apply(cfg *Config) {
	if o.noColor {
		cfg.ColorMode = ColorNever
	} else if o.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// pflag.Value adapter so ProbeMode can be used with fs.Var.
type probeModeValue struct{ p *ProbeMode }

func (v *probeModeValue) String() string { return string(*v.p) }
func (v *probeModeValue) Type() string { return "mode" }
func (v *probeModeValue) Set(s string) error {
	switch strings.ToLower(s) {
	case "text":
		*v.p = ProbeText
	case "json":
		*v.p = ProbeJSON
	default:
		return fmt.Errorf("invalid probe mode %q (use 'text' or 'json')", s)
	}
	return nil
}
