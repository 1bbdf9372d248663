// Package report flattens term matches into the tabular records consumed
// by the muting and QC stages.
//
// One record is emitted per match per dialogue event; the CSV carries the
// event time bounds in milliseconds plus the pre- and post-masking text
// snapshots. The reader side converts records back into mute windows in
// seconds.
package report
