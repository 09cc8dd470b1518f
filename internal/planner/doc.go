// Package planner turns a classified stream inventory into the ordered
// ffmpeg directive sequence for an MKV→MP4 remux.
//
// Video and audio are always stream-copied. TrueHD audio adds relaxed
// compliance ahead of the audio declaration. Subtitles follow one of
// three shapes: none, a blanket mov_text conversion when every subtitle is
// SubRip, or per-index conversion plus explicit maps that leave the
// unconvertible subtitles out. Build is a pure function of its input.
package planner
