// Package fuzzy locates configured terms in normalized dialogue text.
//
// Matching slides a window of the term's word count across the text and
// scores each candidate 0-100. Single words get morphological treatment
// (suffix equivalence, and substring/compound rules for aggressive terms)
// before falling back to edit similarity; multi-word phrases use edit
// similarity alone. Overlapping matches are reported as-is; conflict
// resolution is the masker's concern.
package fuzzy
