package ffmpeg

import (
	"github.com/backmassage/mkv2mp4/internal/inventory"
	"github.com/backmassage/mkv2mp4/internal/planner"
)

// RetryAction identifies which fix was applied (or none).
type RetryAction int

const (
	RetryNone          RetryAction = iota
	RetryRelaxCompliance           // Add -strict -2.
	RetryDropSubtitles             // Replace subtitle handling with -sn.
)

// String returns a short label for logs.
func (a RetryAction) String() string {
	switch a {
	case RetryRelaxCompliance:
		return "relax compliance (-strict -2)"
	case RetryDropSubtitles:
		return "drop subtitles"
	default:
		return "none"
	}
}

const maxAttempts = 3

// RetryState tracks which fallback fixes have been applied across ffmpeg
// attempts for a single file.
type RetryState struct {
	Attempt     int
	MaxAttempts int
	Options     planner.Options
}

// NewRetryState returns a state seeded with the fixes the initial plan for
// a already carries (relaxed compliance for TrueHD audio).
func NewRetryState(a *inventory.Analysis) *RetryState {
	return &RetryState{
		MaxAttempts: maxAttempts,
		Options:     planner.Options{ForceRelaxed: a.HasTrueHDAudio},
	}
}

// Advance inspects stderr from a failed ffmpeg run, applies the first
// matching fix not yet applied, and returns it. Returns RetryNone when no
// fixable pattern matches or the attempt limit is reached.
//
// Pattern evaluation order: compliance → subtitle.
func (s *RetryState) Advance(stderr string) RetryAction {
	s.Attempt++
	if s.Attempt >= s.MaxAttempts {
		return RetryNone
	}

	if !s.Options.ForceRelaxed && MatchComplianceIssue(stderr) {
		s.Options.ForceRelaxed = true
		return RetryRelaxCompliance
	}
	if !s.Options.DropSubtitles && MatchSubtitleIssue(stderr) {
		s.Options.DropSubtitles = true
		return RetryDropSubtitles
	}
	return RetryNone
}
