package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "   \t\n  ", ""},
		{"lowercases", "Hello World", "hello world"},
		{"strips diacritics", "Café au lait", "cafe au lait"},
		{"hyphen and underscore become spaces", "well-known snake_case", "well known snake case"},
		{"apostrophe becomes space", "don't", "don t"},
		{"punctuation removed", "hey!!! what, exactly?", "hey what exactly"},
		{"digits removed", "route 66 ahead", "route ahead"},
		{"whitespace collapsed", "too   many \t spaces", "too many spaces"},
		{"mixed", "  What the <i>HELL</i>, José?! ", "what the i hell i jose"},
		{"ligature folded", "ﬁlthy", "filthy"},
		{"fullwidth folded", "ＤＡＭＮ it", "damn it"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Hello, World!",
		"Café-crème №5",
		"already normalized text",
		"  spaced   out\ttabs  ",
		"naïve résumé façade",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}
