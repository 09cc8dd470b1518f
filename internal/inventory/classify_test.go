package inventory

import (
	"reflect"
	"testing"
)

// Realistic ffprobe -i report for a Blu-ray remux with TrueHD audio,
// mixed text/bitmap subtitles, and a font attachment.
const sampleReport = `Input #0, matroska,webm, from 'Movie (2019).mkv':
  Metadata:
    title           : Movie
    encoder         : libebml v1.4.2 + libmatroska v1.6.4
  Duration: 02:01:33.12, start: 0.000000, bitrate: 30412 kb/s
  Chapters:
    Chapter #0:0: start 0.000000, end 612.000000
  Stream #0:0: Video: hevc (Main 10), yuv420p10le(tv, bt2020nc/bt2020/smpte2084), 3840x2160, SAR 1:1 DAR 16:9, 23.98 fps, 23.98 tbr, 1k tbn (default)
  Stream #0:1(eng): Audio: truehd, 48000 Hz, 7.1, s32 (24 bit) (default)
  Stream #0:2(eng): Audio: ac3, 48000 Hz, 5.1(side), fltp, 640 kb/s
  Stream #0:3(eng): Subtitle: subrip
  Stream #0:4(eng): Subtitle: hdmv_pgs_subtitle, 1920x1080
  Stream #0:5(spa): Subtitle: SubRip (default)
  Stream #0:6: Attachment: ttf
    Metadata:
      filename        : Arial.ttf
      mimetype        : application/x-truetype-font
`

func TestClassify_Report(t *testing.T) {
	a := Classify(sampleReport)

	if got := a.Count(KindVideo); got != 1 {
		t.Errorf("video: got %d, want 1", got)
	}
	if got := a.Count(KindAudio); got != 2 {
		t.Errorf("audio: got %d, want 2", got)
	}
	if got := a.Count(KindSubtitle); got != 3 {
		t.Errorf("subtitle: got %d, want 3", got)
	}
	if !a.HasTrueHDAudio {
		t.Error("HasTrueHDAudio should be true")
	}
	if !a.HasIncompatibleSubtitle {
		t.Error("HasIncompatibleSubtitle should be true (PGS present)")
	}
	if a.Ignored != 1 {
		t.Errorf("Ignored: got %d, want 1 (attachment)", a.Ignored)
	}

	subs := a.OfKind(KindSubtitle)
	for i, s := range subs {
		if s.Ordinal != i {
			t.Errorf("subtitle %d: ordinal %d", i, s.Ordinal)
		}
	}
	if !subs[0].IsConvertible() || subs[1].IsConvertible() || !subs[2].IsConvertible() {
		t.Errorf("convertible flags: got %v %v %v, want true false true",
			subs[0].IsConvertible(), subs[1].IsConvertible(), subs[2].IsConvertible())
	}
}

func TestClassify_OrdinalsPerKind(t *testing.T) {
	a := Classify(sampleReport)
	want := []struct {
		kind    Kind
		ordinal int
	}{
		{KindVideo, 0},
		{KindAudio, 0},
		{KindAudio, 1},
		{KindSubtitle, 0},
		{KindSubtitle, 1},
		{KindSubtitle, 2},
	}
	if len(a.Streams) != len(want) {
		t.Fatalf("streams: got %d, want %d", len(a.Streams), len(want))
	}
	for i, w := range want {
		s := a.Streams[i]
		if s.Kind != w.kind || s.Ordinal != w.ordinal {
			t.Errorf("stream %d: got %s/%d, want %s/%d", i, s.Kind, s.Ordinal, w.kind, w.ordinal)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	a := Classify(sampleReport)
	b := Classify(sampleReport)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("classification differs between runs:\n%+v\n%+v", a, b)
	}
}

func TestClassify_Flags(t *testing.T) {
	tests := []struct {
		name             string
		report           string
		wantTrueHD       bool
		wantIncompatible bool
	}{
		{
			name:   "no subtitles",
			report: "  Stream #0:0: Video: h264\n  Stream #0:1: Audio: aac\n",
		},
		{
			name:       "truehd uppercase",
			report:     "  Stream #0:0: Video: h264\n  Stream #0:1: Audio: TrueHD\n",
			wantTrueHD: true,
		},
		{
			name:   "truehd only on video line is ignored",
			report: "  Stream #0:0: Video: h264 truehd\n  Stream #0:1: Audio: aac\n",
		},
		{
			name:   "all subrip",
			report: "  Stream #0:0: Video: h264\n  Stream #0:1: Subtitle: subrip\n  Stream #0:2: Subtitle: SUBRIP\n",
		},
		{
			name:             "ass is incompatible",
			report:           "  Stream #0:0: Video: h264\n  Stream #0:1: Subtitle: ass\n",
			wantIncompatible: true,
		},
		{
			name:   "empty report",
			report: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Classify(tt.report)
			if a.HasTrueHDAudio != tt.wantTrueHD {
				t.Errorf("HasTrueHDAudio = %v, want %v", a.HasTrueHDAudio, tt.wantTrueHD)
			}
			if a.HasIncompatibleSubtitle != tt.wantIncompatible {
				t.Errorf("HasIncompatibleSubtitle = %v, want %v", a.HasIncompatibleSubtitle, tt.wantIncompatible)
			}
		})
	}
}

func TestClassify_SkipsNonStreamLines(t *testing.T) {
	report := "Input #0, matroska\n  Duration: 00:00:10.00\n    title: Audio Commentary\n  Stream #0:0: Video: h264\n"
	a := Classify(report)
	if len(a.Streams) != 1 || a.Streams[0].Kind != KindVideo {
		t.Errorf("streams: got %+v, want one video", a.Streams)
	}
	if a.Ignored != 0 {
		t.Errorf("Ignored: got %d, want 0", a.Ignored)
	}
}

func TestClassify_VideoLabelWinsOverAudio(t *testing.T) {
	a := Classify("  Stream #0:0: Video: mjpeg (Audio cover)\n")
	if a.Count(KindVideo) != 1 || a.Count(KindAudio) != 0 {
		t.Errorf("got video=%d audio=%d, want 1/0", a.Count(KindVideo), a.Count(KindAudio))
	}
}

func TestNewAnalysis_FlagsArePure(t *testing.T) {
	streams := []StreamDescriptor{
		{Kind: KindVideo, Ordinal: 0, Codec: "hevc"},
		{Kind: KindAudio, Ordinal: 0, Codec: "truehd"},
		{Kind: KindSubtitle, Ordinal: 0, Codec: "subrip"},
		{Kind: KindSubtitle, Ordinal: 1, Codec: "dvd_subtitle"},
	}
	a := NewAnalysis(streams, 0)
	b := NewAnalysis(a.Streams, 0)
	if a.HasTrueHDAudio != b.HasTrueHDAudio || a.HasIncompatibleSubtitle != b.HasIncompatibleSubtitle {
		t.Error("recomputed flags differ")
	}
	if !a.HasTrueHDAudio || !a.HasIncompatibleSubtitle {
		t.Errorf("flags: truehd=%v incompatible=%v, want both true", a.HasTrueHDAudio, a.HasIncompatibleSubtitle)
	}

	ex := a.Excluded()
	if len(ex) != 1 || ex[0].Ordinal != 1 {
		t.Errorf("Excluded: got %+v, want subtitle ordinal 1", ex)
	}
}

func TestClassifyRecords(t *testing.T) {
	records := []Record{
		{CodecType: "video", CodecName: "h264"},
		{CodecType: "audio", CodecName: "truehd"},
		{CodecType: "audio", CodecName: "eac3"},
		{CodecType: "subtitle", CodecName: "subrip"},
		{CodecType: "subtitle", CodecName: "ass"},
		{CodecType: "attachment", CodecName: "ttf"},
		{CodecType: "data", CodecName: "bin_data"},
	}
	a := ClassifyRecords(records)

	if a.Count(KindVideo) != 1 || a.Count(KindAudio) != 2 || a.Count(KindSubtitle) != 2 {
		t.Errorf("counts: v=%d a=%d s=%d", a.Count(KindVideo), a.Count(KindAudio), a.Count(KindSubtitle))
	}
	if a.Ignored != 2 {
		t.Errorf("Ignored: got %d, want 2", a.Ignored)
	}
	if !a.HasTrueHDAudio {
		t.Error("HasTrueHDAudio should be true")
	}
	if !a.HasIncompatibleSubtitle {
		t.Error("HasIncompatibleSubtitle should be true (ass)")
	}
	if a.Streams[2].Ordinal != 1 {
		t.Errorf("second audio ordinal: got %d, want 1", a.Streams[2].Ordinal)
	}
}

func TestKind_Specifier(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindVideo, "v"},
		{KindAudio, "a"},
		{KindSubtitle, "s"},
		{Kind(9), ""},
	}
	for _, tt := range tests {
		if got := tt.kind.Specifier(); got != tt.want {
			t.Errorf("%d.Specifier() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestStreamDescriptor_CodecName(t *testing.T) {
	tests := []struct {
		d    StreamDescriptor
		want string
	}{
		{StreamDescriptor{Kind: KindSubtitle, Codec: "    stream #0:3(eng): subtitle: hdmv_pgs_subtitle (default)"}, "hdmv_pgs_subtitle"},
		{StreamDescriptor{Kind: KindAudio, Codec: "    stream #0:1: audio: truehd, 48000 hz, 7.1"}, "truehd"},
		{StreamDescriptor{Kind: KindSubtitle, Codec: "dvd_subtitle"}, "dvd_subtitle"},
	}
	for _, tt := range tests {
		if got := tt.d.CodecName(); got != tt.want {
			t.Errorf("CodecName(%q) = %q, want %q", tt.d.Codec, got, tt.want)
		}
	}
}
