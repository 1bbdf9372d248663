package fuzzy

// baseSuffixes are inflections treated as equivalent to the bare word.
var baseSuffixes = []string{"s", "ed", "er", "ing", "in"}

// aggressiveSuffixes extends baseSuffixes for terms flagged aggressive.
var aggressiveSuffixes = append(append([]string(nil), baseSuffixes...),
	"ly", "ness", "able", "ible", "ful", "less", "ward", "wise",
	"like", "ish", "ment", "tion", "sion",
)

// compoundParticles are short morphemes allowed to bracket an aggressive
// target word ("misuse", "usepre", ...).
var compoundParticles = []string{
	"un", "re", "pre", "mis", "dis", "over", "under", "out", "up", "down",
	"back", "fore", "anti", "pro", "semi", "multi", "non", "sub", "super",
	"inter", "intra", "extra", "ultra", "mega", "mini", "micro", "macro",
}

// stopwords are short closed-class words that are never valid match
// candidates on their own, whatever the threshold.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {}, "then": {}, "else": {},
	"of": {}, "to": {}, "in": {}, "on": {}, "for": {}, "by": {}, "with": {}, "at": {}, "from": {},
	"as": {}, "is": {}, "it": {}, "its": {}, "be": {}, "are": {}, "was": {}, "were": {}, "am": {},
	"he": {}, "she": {}, "they": {}, "we": {}, "you": {}, "i": {}, "me": {}, "him": {}, "her": {},
	"them": {}, "us": {}, "my": {}, "your": {}, "his": {}, "their": {}, "our": {},
}

func isStopword(window string) bool {
	_, ok := stopwords[window]
	return ok
}
