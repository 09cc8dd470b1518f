// Package ffmpeg assembles and runs the MKV→MP4 conversion command.
//
// Build wraps a planner.Plan with the input, output, and global options.
// Execute runs ffmpeg and streams its progress lines to a callback while
// keeping a bounded stderr tail for failure classification. RetryState
// picks one plan adjustment per failed attempt: relax compliance first,
// then drop subtitles.
package ffmpeg
