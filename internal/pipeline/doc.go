// Package pipeline orchestrates the censoring workflow for a single
// source file: subtitle extraction and merge, term masking, masked-track
// QC, audio extraction, muting, loudness QC, and the final remux.
//
// Each stage logs under its own stage name with a shared run id so the
// console and JSON logs from one run can be correlated. Intermediate
// artifacts live in a per-source directory under the configured output
// dir; bulky ones are removed after a successful run while the reports
// are kept for inspection.
package pipeline
