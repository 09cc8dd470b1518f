// Package config holds runtime configuration: defaults, CLI flag binding,
// and validation. Defaults follow the classic mkv2mp4 behavior (24 ffmpeg
// threads, no overwrite); the stream inventory is read as ffprobe JSON.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enum types for validated string fields ---

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// ProbeMode selects how the stream inventory is read.
type ProbeMode string

const (
	ProbeJSON ProbeMode = "json" // ffprobe -show_streams JSON, codec_type/codec_name (default).
	ProbeText ProbeMode = "text" // ffprobe -i report, substring classification.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// mutated by flag parsing, then passed (by pointer) to packages that need it.
type Config struct {
	// Inputs. Exactly one of File, Directory, DirectoryFlat is set.
	File          string
	Directory     string
	DirectoryFlat string
	OutputDir     string // Optional. Default: next to each source file.

	// Discovery filters (glob patterns on the base name).
	Include []string
	Exclude []string

	// ffmpeg invocation.
	Threads   int  // Default: 24.
	Overwrite bool // -y; otherwise existing outputs are skipped.
	Jobs      int  // Files converted in parallel. Default: 1.

	// Behavior flags.
	ProbeMode   ProbeMode // Default: "json".
	DryRun      bool
	StrictMode  bool   // Disable retry fallbacks.
	HistoryPath string // Optional SQLite conversion history.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Threads:   24,
		Jobs:      1,
		ProbeMode: ProbeJSON,
		ColorMode: ColorAuto,
	}
}

// ErrMissingInput is returned by Validate when no input path was given.
var ErrMissingInput = errors.New("missing input argument")

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Normalize strips trailing slashes from directory arguments.
func (c *Config) Normalize() {
	c.Directory = NormalizeDirArg(c.Directory)
	c.DirectoryFlat = NormalizeDirArg(c.DirectoryFlat)
	c.OutputDir = NormalizeDirArg(c.OutputDir)
}

// Input returns the selected input path and whether discovery recurses.
func (c *Config) Input() (path string, recursive bool) {
	switch {
	case c.File != "":
		return c.File, false
	case c.Directory != "":
		return c.Directory, true
	default:
		return c.DirectoryFlat, false
	}
}

// Validate checks enum fields and numeric ranges. When requireInput is
// set, exactly one input source must be given.
func (c *Config) Validate(requireInput bool) error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return fmt.Errorf("invalid color mode %q", c.ColorMode)
	}

	switch c.ProbeMode {
	case ProbeText, ProbeJSON:
		// valid
	default:
		return errors.New("invalid probe mode (use 'text' or 'json')")
	}

	if c.Threads < 0 {
		return fmt.Errorf("threads must not be negative (got %d)", c.Threads)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1 (got %d)", c.Jobs)
	}

	if !requireInput {
		return nil
	}
	n := 0
	for _, p := range []string{c.File, c.Directory, c.DirectoryFlat} {
		if p != "" {
			n++
		}
	}
	switch {
	case n == 0:
		return ErrMissingInput
	case n > 1:
		return errors.New("use only one of --file, --directory, --directory-flat")
	}
	return nil
}
