package mirror

import "strings"

// crisisPhrases favors recall: a false positive only redirects to support.
// Both straight and curly apostrophes are listed since clients send either.
var crisisPhrases = []string{
	"suicide",
	"suicidal",
	"kill myself",
	"end my life",
	"end it all",
	"no reason to live",
	"want to die",
	"hurt myself",
	"harm myself",
	"self harm",
	"self-harm",
	"overdose",
	"can't go on",
	"can’t go on",
	"cannot go on",
}

// IsCrisis reports whether text contains any acute-risk phrase.
// Matching is a case-insensitive substring test with no stemming or negation handling.
func IsCrisis(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range crisisPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
