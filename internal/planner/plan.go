package planner

import "github.com/backmassage/mkv2mp4/internal/inventory"

// Options adjusts plan construction for execution retries. The zero value
// produces the standard plan.
type Options struct {
	// ForceRelaxed emits -strict -2 even when no TrueHD stream was seen.
	ForceRelaxed bool
	// DropSubtitles replaces all subtitle handling with -sn.
	DropSubtitles bool
}

// Build produces the MKV→MP4 directive plan for a.
//
// Flow:
//  1. -c:v copy
//  2. -strict -2 when any audio stream is TrueHD
//  3. -c:a copy
//  4. subtitles: nothing when there are none; a blanket -c:s mov_text when
//     every stream is SubRip; otherwise -c:s:<n> mov_text per SubRip stream
//  5. with incompatible subtitles present, explicit maps for every video
//     and audio stream plus the converted subtitle streams, so ffmpeg's
//     default stream selection cannot pull in the excluded ones
func Build(a *inventory.Analysis) Plan {
	return BuildWith(a, Options{})
}

// BuildWith is Build with retry options applied.
func BuildWith(a *inventory.Analysis, opts Options) Plan {
	var p Plan
	p.Directives = append(p.Directives, videoCopy())
	if a.HasTrueHDAudio || opts.ForceRelaxed {
		p.Directives = append(p.Directives, relaxed())
	}
	p.Directives = append(p.Directives, audioCopy())

	if opts.DropSubtitles {
		if a.Count(inventory.KindSubtitle) > 0 {
			p.Directives = append(p.Directives, dropSubtitles())
		}
		return p
	}

	subs := a.OfKind(inventory.KindSubtitle)
	if len(subs) == 0 {
		return p
	}
	if !a.HasIncompatibleSubtitle {
		p.Directives = append(p.Directives, subtitlesAll())
		return p
	}

	var subMaps []Directive
	for _, s := range subs {
		if !s.IsConvertible() {
			continue
		}
		p.Directives = append(p.Directives, subtitleAt(s.Ordinal))
		subMaps = append(subMaps, mapStream(inventory.KindSubtitle, s.Ordinal))
	}

	for _, v := range a.OfKind(inventory.KindVideo) {
		p.Directives = append(p.Directives, mapStream(inventory.KindVideo, v.Ordinal))
	}
	for _, au := range a.OfKind(inventory.KindAudio) {
		p.Directives = append(p.Directives, mapStream(inventory.KindAudio, au.Ordinal))
	}
	p.Directives = append(p.Directives, subMaps...)
	return p
}
