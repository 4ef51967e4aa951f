package safety

import "strings"

// riskPhrases are matched as plain substrings, not whole words. Recall wins
// over precision here: a false positive costs one canned reply, a miss costs
// far more.
var riskPhrases = []string{
	"suicide",
	"kill myself",
	"die",
	"end my life",
	"hopeless",
	"self-harm",
}

// Detect reports whether text contains self-harm risk language. Matching is
// case-insensitive; empty input is never flagged.
func Detect(text string) bool {
	if text == "" {
		return false
	}

	normalized := strings.ToLower(text)
	for _, phrase := range riskPhrases {
		if strings.Contains(normalized, phrase) {
			return true
		}
	}
	return false
}
