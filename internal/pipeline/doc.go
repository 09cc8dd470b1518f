// Package pipeline orchestrates source discovery, per-file inventory →
// plan → ffmpeg execution, and batch summary reporting.
//
// Each file is independent: a failed probe or conversion is counted and
// the batch moves on. With Config.Jobs > 1 files are converted by a
// bounded pool of workers; the classifier and planner share no state, so
// the only synchronization is around the run counters.
package pipeline
