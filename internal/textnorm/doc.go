// Package textnorm canonicalizes dialogue text before term matching.
//
// Normalization lowercases, strips diacritics, and reduces text to
// space-separated letter runs so the matcher operates on a stable
// representation regardless of punctuation, digits, or accent spelling.
package textnorm
