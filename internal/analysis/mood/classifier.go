package mood

import (
	"strings"

	"github.com/kavyanair/mindhaven/backend/internal/model/chat"
)

// Scorer produces a sentiment polarity in [-1, 1] for a piece of text.
type Scorer interface {
	Polarity(text string) (float64, error)
}

// Thresholds are exclusive: a polarity of exactly ±0.2 falls through to the
// keyword/neutral branch.
const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

var anxietyKeywords = []string{"stress", "nervous", "worried", "anxious"}

// Classifier maps free text to one of the four non-crisis moods. Crisis is
// decided upstream by the safety detector, never here.
type Classifier struct {
	scorer Scorer
}

func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify is deterministic for identical input. A scorer failure degrades
// to neutral instead of propagating: mood classification must never block
// message delivery.
func (c *Classifier) Classify(text string) chat.Mood {
	polarity, err := c.scorer.Polarity(text)
	if err != nil {
		return chat.MoodNeutral
	}

	switch {
	case polarity > positiveThreshold:
		return chat.MoodPositive
	case polarity < negativeThreshold:
		return chat.MoodDepressed
	}

	normalized := strings.ToLower(text)
	for _, word := range anxietyKeywords {
		if strings.Contains(normalized, word) {
			return chat.MoodAnxious
		}
	}
	return chat.MoodNeutral
}
