// Package remux assembles the final censored container.
//
// The muted audio track joins the source video either by replacing the
// original audio or by being appended as an extra stream. Output names
// follow library conventions: movies get an edition tag in the file name,
// TV episodes get a tagged show directory. The masked subtitle always
// ships as an SRT sidecar next to the output.
package remux
