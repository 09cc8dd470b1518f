// Package inventory classifies a source container's stream inventory into
// typed stream descriptors and derives the two compatibility flags the
// planner needs: lossless multichannel (TrueHD) audio and subtitles that
// cannot be converted to mov_text.
//
// Two inputs are accepted:
//   - Classify: ffprobe's human-readable "-i" report (substring heuristics).
//   - ClassifyRecords: codec_type/codec_name pairs from ffprobe JSON.
//
// Classification and flag derivation are separate steps. Descriptors are
// built first and never mutated; NewAnalysis derives the flags from the
// descriptor slice alone, so the same streams always yield the same flags.
package inventory
