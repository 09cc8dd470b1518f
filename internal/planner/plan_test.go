package planner

import (
	"reflect"
	"strings"
	"testing"

	"github.com/backmassage/mkv2mp4/internal/inventory"
)

// --- Helper builders ---

func report(lines ...string) *inventory.Analysis {
	return inventory.Classify(strings.Join(lines, "\n"))
}

const (
	videoLine  = "  Stream #0:0: Video: h264 (High), yuv420p, 1920x1080"
	aacLine    = "  Stream #0:1(eng): Audio: aac (LC), 48000 Hz, stereo"
	truehdLine = "  Stream #0:1(eng): Audio: truehd, 48000 Hz, 7.1"
	srtLine    = "  Stream #0:2(eng): Subtitle: subrip"
	pgsLine    = "  Stream #0:3(eng): Subtitle: hdmv_pgs_subtitle"
)

// --- Scenario tests ---

func TestBuild_NoSubtitles(t *testing.T) {
	p := Build(report(videoLine, aacLine))
	want := []string{"-c:v", "copy", "-c:a", "copy"}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args: got %v, want %v", got, want)
	}
	if len(p.Maps()) != 0 {
		t.Errorf("maps: got %v, want none", p.Maps())
	}
}

func TestBuild_TrueHDRelaxesBeforeAudio(t *testing.T) {
	p := Build(report(videoLine, truehdLine))
	want := []string{"-c:v", "copy", "-strict", "-2", "-c:a", "copy"}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args: got %v, want %v", got, want)
	}
}

func TestBuild_AllSubRipBlanketConvert(t *testing.T) {
	p := Build(report(videoLine, aacLine, srtLine, "  Stream #0:3(spa): Subtitle: subrip"))
	want := []string{"-c:v", "copy", "-c:a", "copy", "-c:s", "mov_text"}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args: got %v, want %v", got, want)
	}
	if len(p.Maps()) != 0 {
		t.Errorf("maps: got %v, want none", p.Maps())
	}
}

func TestBuild_MixedSubtitlesMapsExplicitly(t *testing.T) {
	p := Build(report(videoLine, aacLine, srtLine, pgsLine))
	want := []string{
		"-c:v", "copy", "-c:a", "copy",
		"-c:s:0", "mov_text",
		"-map", "0:v:0", "-map", "0:a:0", "-map", "0:s:0",
	}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args: got %v, want %v", got, want)
	}
}

// --- Property tests ---

func TestBuild_MixedSubtitlesMultiStream(t *testing.T) {
	p := Build(report(
		"  Stream #0:0: Video: hevc",
		"  Stream #0:1: Video: mjpeg",
		"  Stream #0:2: Audio: truehd",
		"  Stream #0:3: Audio: ac3",
		"  Stream #0:4: Subtitle: hdmv_pgs_subtitle",
		"  Stream #0:5: Subtitle: subrip",
		"  Stream #0:6: Subtitle: ass",
		"  Stream #0:7: Subtitle: subrip",
	))
	want := []string{
		"-c:v", "copy", "-strict", "-2", "-c:a", "copy",
		"-c:s:1", "mov_text", "-c:s:3", "mov_text",
		"-map", "0:v:0", "-map", "0:v:1",
		"-map", "0:a:0", "-map", "0:a:1",
		"-map", "0:s:1", "-map", "0:s:3",
	}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args:\n got %v\nwant %v", got, want)
	}
}

func TestBuild_OnlyIncompatibleSubtitles(t *testing.T) {
	p := Build(report(videoLine, aacLine, pgsLine))
	want := []string{"-c:v", "copy", "-c:a", "copy", "-map", "0:v:0", "-map", "0:a:0"}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args: got %v, want %v", got, want)
	}
}

func TestBuild_NoRelaxedMarkerWithoutTrueHD(t *testing.T) {
	analyses := []*inventory.Analysis{
		report(videoLine, aacLine),
		report(videoLine, aacLine, srtLine),
		report(videoLine, aacLine, srtLine, pgsLine),
	}
	for i, a := range analyses {
		for _, tok := range Build(a).Args() {
			if tok == "-strict" {
				t.Errorf("analysis %d: unexpected -strict in %v", i, Build(a).Args())
			}
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := report(videoLine, truehdLine, srtLine, pgsLine)
	if !reflect.DeepEqual(Build(a), Build(a)) {
		t.Error("Build is not deterministic")
	}
}

func TestBuild_EmptyAnalysis(t *testing.T) {
	p := Build(report())
	want := []string{"-c:v", "copy", "-c:a", "copy"}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args: got %v, want %v", got, want)
	}
}

// --- Retry options ---

func TestBuildWith_ZeroOptionsMatchesBuild(t *testing.T) {
	a := report(videoLine, aacLine, srtLine, pgsLine)
	if !reflect.DeepEqual(Build(a), BuildWith(a, Options{})) {
		t.Error("BuildWith(Options{}) differs from Build")
	}
}

func TestBuildWith_ForceRelaxed(t *testing.T) {
	p := BuildWith(report(videoLine, aacLine), Options{ForceRelaxed: true})
	want := []string{"-c:v", "copy", "-strict", "-2", "-c:a", "copy"}
	if got := p.Args(); !reflect.DeepEqual(got, want) {
		t.Errorf("args: got %v, want %v", got, want)
	}
}

func TestBuildWith_DropSubtitles(t *testing.T) {
	tests := []struct {
		name string
		a    *inventory.Analysis
		want []string
	}{
		{"mixed", report(videoLine, aacLine, srtLine, pgsLine), []string{"-c:v", "copy", "-c:a", "copy", "-sn"}},
		{"none present", report(videoLine, aacLine), []string{"-c:v", "copy", "-c:a", "copy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildWith(tt.a, Options{DropSubtitles: true}).Args()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("args: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlan_String(t *testing.T) {
	p := Build(report(videoLine, truehdLine))
	if got, want := p.String(), "-c:v copy -strict -2 -c:a copy"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
