package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// streamPrefix starts every stream descriptor line in ffprobe's report.
const streamPrefix = "Stream #"

// ErrNoInventory reports that ffprobe produced no usable stream inventory.
var ErrNoInventory = errors.New("no stream inventory")

// TextInventory runs "ffprobe -hide_banner -i path" and returns the stream
// descriptor lines of the report ffprobe writes to stderr.
func TextInventory(ctx context.Context, path string) (string, error) {
	cmd := exec.CommandContext(ctx, "ffprobe", "-hide_banner", "-i", path)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffprobe %q: %w: %s", path, err, lastLine(stderr.String()))
	}
	return checkReport(path, stderr.String())
}

// checkReport reduces report to its stream descriptor lines and rejects
// reports that have none. Header and metadata lines may also mention
// "stream" next to a kind label, e.g. a path under "Live Streams".
func checkReport(path, report string) (string, error) {
	var b strings.Builder
	for _, line := range strings.Split(report, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), streamPrefix) {
			b.WriteString(strings.TrimRight(line, "\r"))
			b.WriteByte('\n')
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("ffprobe %q: %w", path, ErrNoInventory)
	}
	return b.String(), nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Probe runs a single ffprobe JSON call against path and returns the
// parsed result.
func Probe(ctx context.Context, path string) (*ProbeResult, []byte, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	pr, err := ParseJSON(out)
	if err != nil {
		return nil, nil, err
	}
	if len(pr.Streams) == 0 {
		return nil, nil, fmt.Errorf("ffprobe %q: %w", path, ErrNoInventory)
	}
	return pr, out, nil
}

// ParseJSON converts raw ffprobe JSON output into a ProbeResult.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*ProbeResult, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildResult(&raw), nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Filename       string            `json:"filename"`
	NbStreams      int               `json:"nb_streams"`
	FormatName     string            `json:"format_name"`
	FormatLongName string            `json:"format_long_name"`
	Duration       string            `json:"duration"`
	Size           string            `json:"size"`
	BitRate        string            `json:"bit_rate"`
	Tags           map[string]string `json:"tags"`
}

type ffprobeStream struct {
	Index       int               `json:"index"`
	CodecName   string            `json:"codec_name"`
	CodecType   string            `json:"codec_type"`
	Disposition map[string]int    `json:"disposition"`
	Tags        map[string]string `json:"tags"`
}

// --- Conversion from wire types to domain types ---

func buildResult(raw *ffprobeOutput) *ProbeResult {
	pr := &ProbeResult{
		Format:  convertFormat(&raw.Format),
		Streams: make([]Stream, 0, len(raw.Streams)),
	}
	for i := range raw.Streams {
		s := &raw.Streams[i]
		pr.Streams = append(pr.Streams, Stream{
			Index:     s.Index,
			CodecType: s.CodecType,
			Codec:     s.CodecName,
			Language:  s.Tags["language"],
			Title:     s.Tags["title"],
			IsDefault: s.Disposition["default"] == 1,
		})
	}
	return pr
}

func convertFormat(f *ffprobeFormat) FormatInfo {
	return FormatInfo{
		Filename:       f.Filename,
		NbStreams:      f.NbStreams,
		FormatName:     f.FormatName,
		FormatLongName: f.FormatLongName,
		Duration:       parseFloat(f.Duration),
		Size:           parseInt64(f.Size),
		BitRate:        parseInt64(f.BitRate),
		Tags:           f.Tags,
	}
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
