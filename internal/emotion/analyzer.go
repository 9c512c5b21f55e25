package emotion

import "github.com/jonreiter/govader"

// PolarityScores is the base sentiment of a piece of text: a compound
// scalar in [-1, 1] plus positive/negative/neutral fractions.
type PolarityScores struct {
	Compound float64
	Positive float64
	Negative float64
	Neutral  float64
}

// SentimentAnalyzer scores the overall polarity of text. It is a
// pluggable dependency so the lexicon underneath can be swapped or
// stubbed out under test.
type SentimentAnalyzer interface {
	PolarityScores(text string) PolarityScores
}

// VADERAnalyzer adapts govader's sentiment-intensity analyzer.
type VADERAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

var _ SentimentAnalyzer = (*VADERAnalyzer)(nil)

func NewVADERAnalyzer() *VADERAnalyzer {
	return &VADERAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (a *VADERAnalyzer) PolarityScores(text string) PolarityScores {
	s := a.analyzer.PolarityScores(text)
	return PolarityScores{
		Compound: s.Compound,
		Positive: s.Positive,
		Negative: s.Negative,
		Neutral:  s.Neutral,
	}
}
