// Package probe acquires a source file's stream inventory from ffprobe.
//
// Two forms are available:
//   - TextInventory: the human-readable report ffprobe prints to stderr
//     for "ffprobe -i <file>", classified with substring heuristics.
//   - Probe: a single JSON call (-show_format -show_streams) whose
//     codec_type/codec_name fields feed inventory.ClassifyRecords.
//
// A probe that fails or yields nothing usable returns an error wrapping
// ErrNoInventory; the caller skips that file and continues the batch.
package probe
