// Package censor applies the term catalog to subtitle files.
//
// Masking loads a dialogue track, runs fuzzy matching per event, masks the
// matched windows in place, and emits a match report alongside the masked
// track. QC re-scans the masked output for surviving whole-word catalog
// hits and fails when any remain.
package censor
