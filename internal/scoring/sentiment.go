package scoring

import (
	"strings"
)

// SentimentAnalyzer scores a transcript into [-1, 1]. The keyword
// implementation below is a placeholder; a real NLP backend can be swapped
// in without touching the aggregation control flow.
type SentimentAnalyzer interface {
	Score(text string) float64
}

// KeywordSentiment is a simple lexicon-based analyzer. Each positive hit
// adds, each negative hit subtracts, and the result is clamped to [-1, 1].
type KeywordSentiment struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var defaultPositiveWords = []string{
	"happy", "great", "good", "love", "excited", "wonderful", "amazing",
	"calm", "grateful", "proud", "fun", "joy", "relaxed", "energized",
	"hopeful", "accomplished",
}

var defaultNegativeWords = []string{
	"sad", "tired", "stressed", "angry", "anxious", "terrible", "awful",
	"worried", "frustrated", "exhausted", "lonely", "overwhelmed", "bad",
	"upset", "afraid",
}

// NewKeywordSentiment creates an analyzer with the default lexicon.
func NewKeywordSentiment() *KeywordSentiment {
	k := &KeywordSentiment{
		positive: make(map[string]struct{}, len(defaultPositiveWords)),
		negative: make(map[string]struct{}, len(defaultNegativeWords)),
	}
	for _, w := range defaultPositiveWords {
		k.positive[w] = struct{}{}
	}
	for _, w := range defaultNegativeWords {
		k.negative[w] = struct{}{}
	}
	return k
}

// Score returns the keyword sentiment of text in [-1, 1].
// Each matched word contributes ±0.3 before clamping.
func (k *KeywordSentiment) Score(text string) float64 {
	if text == "" {
		return 0
	}

	score := 0.0
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		word := strings.Trim(raw, ".,!?;:'\"()")
		if _, ok := k.positive[word]; ok {
			score += 0.3
		}
		if _, ok := k.negative[word]; ok {
			score -= 0.3
		}
	}

	return Clamp(score, -1, 1)
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
