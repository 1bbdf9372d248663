// Package language provides unified language code normalization.
//
// Container metadata mixes ISO 639-1, ISO 639-2, and full names ("en",
// "eng", "English"). Stream selection expands every configured filter to
// all known variants so any spelling matches any other.
package language
