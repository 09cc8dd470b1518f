package inventory

import (
	"bufio"
	"strings"
)

const streamMarker = "stream"

// kindLabels are matched in order against ffprobe's report lines, e.g.
//
//	Stream #0:1(eng): Audio: truehd, 48000 Hz, 7.1, s32 (24 bit)
//
// The labels are case-sensitive; the stream marker is not.
var kindLabels = []struct {
	label string
	kind  Kind
}{
	{"Video", KindVideo},
	{"Audio", KindAudio},
	{"Subtitle", KindSubtitle},
}

// Classify parses ffprobe's human-readable stream report. Lines without a
// stream marker are skipped; stream lines with no recognized kind label
// are counted in Analysis.Ignored.
func Classify(report string) *Analysis {
	var c classifier
	sc := bufio.NewScanner(strings.NewReader(report))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		lower := strings.ToLower(line)
		if !strings.Contains(lower, streamMarker) {
			continue
		}
		kind, ok := lineKind(line)
		if !ok {
			c.ignored++
			continue
		}
		c.add(kind, lower)
	}
	return NewAnalysis(c.streams, c.ignored)
}

func lineKind(line string) (Kind, bool) {
	for _, kl := range kindLabels {
		if strings.Contains(line, kl.label) {
			return kl.kind, true
		}
	}
	return 0, false
}

// Record is one stream from a structured (JSON) inventory.
type Record struct {
	CodecType string // ffprobe codec_type: video, audio, subtitle, attachment, data
	CodecName string // ffprobe codec_name
}

// ClassifyRecords classifies structured stream records. Records whose
// codec_type is not video, audio, or subtitle are counted as ignored.
func ClassifyRecords(records []Record) *Analysis {
	var c classifier
	for _, r := range records {
		var kind Kind
		switch strings.ToLower(strings.TrimSpace(r.CodecType)) {
		case "video":
			kind = KindVideo
		case "audio":
			kind = KindAudio
		case "subtitle":
			kind = KindSubtitle
		default:
			c.ignored++
			continue
		}
		c.add(kind, strings.ToLower(strings.TrimSpace(r.CodecName)))
	}
	return NewAnalysis(c.streams, c.ignored)
}

// classifier assigns per-kind ordinals in appearance order.
type classifier struct {
	streams []StreamDescriptor
	counts  [3]int
	ignored int
}

func (c *classifier) add(kind Kind, codec string) {
	c.streams = append(c.streams, StreamDescriptor{
		Kind:    kind,
		Ordinal: c.counts[kind],
		Codec:   codec,
	})
	c.counts[kind]++
}
