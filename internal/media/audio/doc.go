// Package audio drives the audio half of the pipeline.
//
// Stages, in order:
//   - Select: pick the dialogue audio stream (language match, then default
//     disposition, then container order).
//   - Extract: decode the selected stream to a PCM WAV working copy.
//   - Mute: silence the merged profanity windows with an ffmpeg volume
//     filter and record the windows in a JSON sidecar.
//   - QC: compare measured loudness inside muted windows against clean
//     control spans and fail when the windows are not actually silent.
package audio
