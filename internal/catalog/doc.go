// Package catalog loads the configured profanity term list.
//
// A term file is either a JSON array of bare words and per-term objects,
// a JSON object holding such an array under "profanities", or a plain
// newline-delimited word list. Entries are resolved into a single Term
// representation at load time so the matcher never inspects raw shapes.
package catalog
