// Package check provides system diagnostics (the check subcommand) and
// pre-pipeline dependency validation (CheckDeps) for ffmpeg and ffprobe.
package check

import (
	"bufio"
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required tool or codec is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrNoMovText       = errors.New("ffmpeg has no mov_text subtitle encoder")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here so check stays testable with a recording logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck prints the availability of ffmpeg, ffprobe and the codecs a
// conversion depends on. It reports false when a required piece is missing.
func RunCheck(log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkTool(log, "ffmpeg")
	ok = checkTool(log, "ffprobe") && ok
	if !ok {
		return false
	}

	encoders, err := listCodecs("-encoders")
	if err != nil {
		log.Warn("Could not list encoders: %v", err)
		return false
	}
	decoders, err := listCodecs("-decoders")
	if err != nil {
		log.Warn("Could not list decoders: %v", err)
		return false
	}

	if encoders["mov_text"] {
		log.Success("mov_text encoder available (subrip conversion)")
	} else {
		log.Error("mov_text encoder missing: subtitles cannot be converted")
		ok = false
	}
	if decoders["subrip"] {
		log.Success("subrip decoder available")
	} else {
		log.Warn("subrip decoder missing")
	}
	if decoders["truehd"] {
		log.Success("truehd decoder available")
	} else {
		log.Warn("truehd decoder missing: TrueHD sources may fail to probe")
	}
	return ok
}

// checkTool verifies name is on PATH and logs its version line.
func checkTool(log Logger, name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		log.Error("%s not found", name)
		return false
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", name, err)
		return true
	}
	log.Success("%s: %s", name, firstLine(string(out)))
	return true
}

// CheckDeps is the pre-pipeline validation: ffmpeg and ffprobe must be on
// PATH and ffmpeg must provide the mov_text encoder.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	encoders, err := listCodecs("-encoders")
	if err != nil {
		// An ffmpeg that cannot list encoders will fail loudly per file.
		return nil
	}
	if !encoders["mov_text"] {
		return ErrNoMovText
	}
	return nil
}

// --- internal helpers ---

// listCodecs runs "ffmpeg -hide_banner <flag>" and returns the codec names.
func listCodecs(flag string) (map[string]bool, error) {
	out, err := exec.Command("ffmpeg", "-hide_banner", flag).Output()
	if err != nil {
		return nil, err
	}
	return parseCodecList(string(out)), nil
}

// parseCodecList extracts names from ffmpeg's -encoders/-decoders table.
// Rows look like " S..... mov_text   3GPP Timed Text subtitle"; the legend
// above the "------" separator is skipped.
func parseCodecList(out string) map[string]bool {
	names := make(map[string]bool)
	inTable := false
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !inTable {
			inTable = strings.HasPrefix(line, "---")
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			names[fields[1]] = true
		}
	}
	return names
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "\n"); idx > 0 {
		return s[:idx]
	}
	return s
}
