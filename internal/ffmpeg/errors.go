package ffmpeg

import "regexp"

// Pre-compiled regexes for classifying ffmpeg stderr output into retryable
// error categories. Checked in order by [RetryState.Advance].
var (
	reComplianceIssue = regexp.MustCompile(
		`(?i)add '-strict -2'|` +
			`-strict experimental|` +
			`is experimental|` +
			`not currently supported in container`)

	reSubtitleIssue = regexp.MustCompile(
		`(?i)Subtitle encoding currently only possible from text to text or bitmap to bitmap|` +
			`Could not find tag for codec .* in stream .*subtitle|` +
			`Error initializing output stream .*subtitle|` +
			`Error while opening encoder for output stream .*subtitle|` +
			`Subtitle codec .* is not supported`)

	reOutputExists = regexp.MustCompile(`already exists\. Exiting`)
)

// MatchComplianceIssue reports whether stderr asks for relaxed compliance.
func MatchComplianceIssue(stderr string) bool {
	return reComplianceIssue.MatchString(stderr)
}

// MatchSubtitleIssue reports whether stderr contains a subtitle conversion error.
func MatchSubtitleIssue(stderr string) bool {
	return reSubtitleIssue.MatchString(stderr)
}

// MatchOutputExists reports whether ffmpeg refused to overwrite (-n).
func MatchOutputExists(stderr string) bool {
	return reOutputExists.MatchString(stderr)
}
