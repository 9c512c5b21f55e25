// Package emotion maps free text onto Plutchik's 8 basic emotions.
//
// Classification combines a pluggable sentiment-intensity analyzer with
// per-emotion keyword/emoji lexicons and amplifier/diminisher intensity
// scaling. Emotion is an auxiliary ranking signal, not a
// correctness-critical path: Classify never fails, it degrades to
// neutral.
package emotion

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/resonance-social/feed-engine/internal/domain"
)

const (
	intensityMin = 0.1
	intensityMax = 2.5

	confidenceMin = 0.1
	confidenceMax = 0.95

	secondaryThreshold = 0.6

	emojiMatchWeight = 1.5

	// DefaultCacheSize and DefaultCacheTTL bound the classification cache.
	DefaultCacheSize = 4096
	DefaultCacheTTL  = time.Hour
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

// Classifier classifies text into an emotion label. Safe for concurrent
// use; the cache is the only shared mutable state and must itself be
// concurrency-safe.
type Classifier struct {
	analyzer SentimentAnalyzer
	cache    Cache

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// NewClassifier creates a classifier over the given analyzer and cache.
func NewClassifier(analyzer SentimentAnalyzer, cache Cache) *Classifier {
	if cache == nil {
		cache = NullCache{}
	}
	return &Classifier{analyzer: analyzer, cache: cache}
}

// CacheHits returns the number of classifications served from cache.
func (c *Classifier) CacheHits() int64 { return c.cacheHits.Load() }

// CacheMisses returns the number of classifications computed fresh.
func (c *Classifier) CacheMisses() int64 { return c.cacheMisses.Load() }

// Classify maps text to its primary emotion, confidence, optional
// secondary emotion, and intensity. It never returns an error: any
// internal failure yields the neutral label.
func (c *Classifier) Classify(text string) (label domain.EmotionLabel) {
	defer func() {
		if r := recover(); r != nil {
			label = domain.NeutralLabel()
		}
	}()

	normalized := normalize(text)
	if normalized == "" {
		return domain.EmotionLabel{Primary: domain.EmotionNeutral, Confidence: 0, Intensity: 1}
	}

	key := contentHash(normalized)
	if cached, ok := c.cache.Get(key); ok {
		c.cacheHits.Add(1)
		return cached
	}
	c.cacheMisses.Add(1)

	label = c.classify(text, normalized)
	c.cache.Add(key, label)
	return label
}

func (c *Classifier) classify(original, normalized string) domain.EmotionLabel {
	polarity := c.analyzer.PolarityScores(normalized)
	scores := lexiconScores(original, normalized)
	addPolarityContribution(scores, polarity)

	intensity := intensityMultiplier(normalized)

	primary, topScore := domain.EmotionNeutral, 0.0
	for _, e := range domain.AllEmotions {
		if scores[e] > topScore {
			primary, topScore = e, scores[e]
		}
	}
	if topScore == 0 {
		return domain.EmotionLabel{Primary: domain.EmotionNeutral, Confidence: 0, Intensity: intensity}
	}

	confidence := topScore * intensity * 0.4
	if confidence < confidenceMin {
		confidence = confidenceMin
	}
	if confidence > confidenceMax {
		confidence = confidenceMax
	}

	secondary, secondScore := domain.Emotion(""), 0.0
	for _, e := range domain.AllEmotions {
		if e != primary && scores[e] > secondScore {
			secondary, secondScore = e, scores[e]
		}
	}
	if secondScore <= topScore*secondaryThreshold {
		secondary = ""
	}

	return domain.EmotionLabel{
		Primary:    primary,
		Secondary:  secondary,
		Confidence: confidence,
		Intensity:  intensity,
	}
}

// normalize lowercases, strips URLs, and expands contractions.
func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = urlPattern.ReplaceAllString(s, " ")
	for contraction, expanded := range contractions {
		s = strings.ReplaceAll(s, contraction, expanded)
	}
	return strings.TrimSpace(s)
}

// lexiconScores counts weighted keyword and emoji matches per emotion.
// Keywords match against normalized text; emoji against the original,
// since normalization may mangle multi-byte sequences.
func lexiconScores(original, normalized string) map[domain.Emotion]float64 {
	scores := make(map[domain.Emotion]float64, len(domain.AllEmotions))
	for e, lex := range lexicons {
		var raw float64
		for _, kw := range lex.keywords {
			raw += float64(strings.Count(normalized, kw))
		}
		for _, em := range lex.emoji {
			raw += float64(strings.Count(original, em)) * emojiMatchWeight
		}
		scores[e] = raw * lex.weight
	}
	return scores
}

// addPolarityContribution folds the base polarity into emotion scores:
// positive compound biases joy and trust; strongly negative text with a
// high negative fraction reads as anger, otherwise sadness.
func addPolarityContribution(scores map[domain.Emotion]float64, p PolarityScores) {
	switch {
	case p.Compound > 0.05:
		scores[domain.EmotionJoy] += p.Compound * 1.5
		scores[domain.EmotionTrust] += p.Compound * 0.8
	case p.Compound < -0.05:
		if p.Compound < -0.5 && p.Negative > 0.5 {
			scores[domain.EmotionAnger] += -p.Compound * 1.5
		} else {
			scores[domain.EmotionSadness] += -p.Compound * 1.2
		}
	}
}

// intensityMultiplier scans tokens for amplifier/diminisher words and
// clamps the combined multiplier to [0.1, 2.5]. Single-word entries
// match whole tokens; multiword phrases match consecutive tokens.
func intensityMultiplier(normalized string) float64 {
	multiplier := 1.0

	tokens := strings.FieldsFunc(normalized, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	for _, tok := range tokens {
		if factor, ok := amplifiers[tok]; ok {
			multiplier *= factor
		}
		if factor, ok := diminishers[tok]; ok {
			multiplier *= factor
		}
	}

	// Phrases match against the rejoined token stream, not the raw text,
	// so "a bit" cannot fire inside a word like "dracula bit".
	padded := " " + strings.Join(tokens, " ") + " "
	for phrase, factor := range amplifiers {
		if strings.Contains(phrase, " ") && strings.Contains(padded, " "+phrase+" ") {
			multiplier *= factor
		}
	}
	for phrase, factor := range diminishers {
		if strings.Contains(phrase, " ") && strings.Contains(padded, " "+phrase+" ") {
			multiplier *= factor
		}
	}

	if multiplier < intensityMin {
		multiplier = intensityMin
	}
	if multiplier > intensityMax {
		multiplier = intensityMax
	}
	return multiplier
}

func contentHash(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
