package mood

import (
	"strings"
	"sync"

	"github.com/jonreiter/govader"
)

// VaderScorer scores polarity with a VADER sentiment model. The underlying
// analyzer is not documented as goroutine-safe, so calls are serialized;
// scoring is lexicon lookup and cheap enough that this does not matter.
type VaderScorer struct {
	mu       sync.Mutex
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the compound sentiment score in [-1, 1]. Blank text is 0.
func (s *VaderScorer) Polarity(text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.PolarityScores(text).Compound, nil
}
