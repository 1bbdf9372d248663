// Command censorr is the CLI for the censoring pipeline: it runs the
// full workflow for a file, exposes each stage (subtitle extraction,
// masking, audio muting, QC, remux) as a standalone subcommand, and
// manages the SQLite job queue and its worker.
package main
