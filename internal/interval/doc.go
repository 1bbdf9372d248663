// Package interval merges numeric time spans with an adjacency tolerance.
//
// The muting stage merges overlapping mute windows before building the
// ffmpeg volume filter, and audio QC derives control spans from the gaps
// between merged windows.
package interval
