package inventory

import "strings"

// Kind is the elementary stream type.
type Kind int

const (
	KindVideo Kind = iota
	KindAudio
	KindSubtitle
)

// String returns the label used in logs and tables.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	case KindSubtitle:
		return "subtitle"
	default:
		return "unknown"
	}
}

// Specifier returns ffmpeg's per-type stream specifier letter (v, a, s).
func (k Kind) Specifier() string {
	switch k {
	case KindVideo:
		return "v"
	case KindAudio:
		return "a"
	case KindSubtitle:
		return "s"
	default:
		return ""
	}
}

const (
	// losslessMarker identifies Dolby TrueHD audio, which MP4 only accepts
	// with relaxed compliance.
	losslessMarker = "truehd"

	// convertibleMarker identifies SubRip text subtitles, the only format
	// converted to mov_text.
	convertibleMarker = "subrip"
)

// StreamDescriptor is one elementary stream in inventory order. Ordinal is
// the zero-based position among streams of the same kind, matching ffmpeg's
// 0:<v|a|s>:<n> addressing.
type StreamDescriptor struct {
	Kind    Kind
	Ordinal int
	Codec   string // lowercase codec hint (whole report line in text mode)
}

// IsLossless reports whether the stream is TrueHD audio.
func (d StreamDescriptor) IsLossless() bool {
	return d.Kind == KindAudio && strings.Contains(d.Codec, losslessMarker)
}

// IsConvertible reports whether the stream is a subtitle that can be
// re-expressed as mov_text.
func (d StreamDescriptor) IsConvertible() bool {
	return d.Kind == KindSubtitle && strings.Contains(d.Codec, convertibleMarker)
}

// CodecName returns a short codec name for display. In text mode Codec is
// the whole report line, so the first word after the kind label is used.
func (d StreamDescriptor) CodecName() string {
	s := d.Codec
	if i := strings.Index(s, d.Kind.String()+": "); i >= 0 {
		s = s[i+len(d.Kind.String())+2:]
	}
	if i := strings.IndexAny(s, " ,("); i >= 0 {
		s = s[:i]
	}
	return s
}
