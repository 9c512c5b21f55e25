package domain

import (
	"strings"
	"time"
)

// SocialContext is the requesting user's relationship to a candidate's
// author, sourced from the user-graph provider. Zero values are used
// when the provider is unavailable.
type SocialContext struct {
	IsFollowing          bool
	MutualConnections    int
	AuthorFollowerCount  int64
	AuthorEngagementRate float64
	// ActiveHours are the hours-of-day (0-23) the user typically engages in.
	ActiveHours []int
}

// FeatureVector is the fixed-shape feature record derived from one
// candidate plus the requesting user's context. It is owned by the
// ranking invocation that created it and never shared across requests.
type FeatureVector struct {
	// Temporal
	AgeHours  float64
	HourOfDay int
	DayOfWeek int

	// Content
	TextLength   int
	HashtagCount int
	HasHashtags  bool
	HasLink      bool

	// Engagement
	TotalReactions     int64
	ReactionsPerHour   float64
	ReplyCount         int64
	ShareCount         int64
	EngagementVelocity float64

	// Social
	IsFollowing          bool
	MutualConnections    int
	AuthorFollowerCount  int64
	AuthorEngagementRate float64
	IsActiveHour         bool

	// Emotion
	EmotionConfidence float64
	EmotionIntensity  float64
	EmotionAlignment  float64

	// Quality
	QualityScore  float64
	ToxicityScore float64
	SpamScore     float64
}

const (
	qualityLengthMin = 30
	qualityLengthMax = 250

	// Placeholder scores until real toxicity/spam classifiers are plugged in.
	defaultToxicityScore = 0.05
	defaultSpamScore     = 0.05

	dominantEmotionRanks = 5
)

// ExtractFeatures converts one candidate plus user context into a
// feature vector. Pure function of its inputs; now is passed explicitly
// so extraction is deterministic under test.
func ExtractFeatures(c Candidate, social SocialContext, profile EmotionProfile, now time.Time) FeatureVector {
	thread := c.Thread

	ageHours := now.Sub(thread.CreatedAt).Hours()
	if ageHours < 0 {
		ageHours = 0
	}
	ageDivisor := ageHours
	if ageDivisor < 1 {
		ageDivisor = 1
	}

	totalReactions := thread.Reactions.Total()
	totalEngagement := totalReactions + thread.ReplyCount + thread.ShareCount

	fv := FeatureVector{
		AgeHours:  ageHours,
		HourOfDay: now.Hour(),
		DayOfWeek: int(now.Weekday()),

		TextLength:   len(thread.Text),
		HashtagCount: len(thread.Hashtags),
		HasHashtags:  len(thread.Hashtags) > 0,
		HasLink:      strings.Contains(thread.Text, "http://") || strings.Contains(thread.Text, "https://"),

		TotalReactions:     totalReactions,
		ReactionsPerHour:   float64(totalReactions) / ageDivisor,
		ReplyCount:         thread.ReplyCount,
		ShareCount:         thread.ShareCount,
		EngagementVelocity: float64(totalEngagement) / ageDivisor,

		IsFollowing:          social.IsFollowing,
		MutualConnections:    social.MutualConnections,
		AuthorFollowerCount:  social.AuthorFollowerCount,
		AuthorEngagementRate: social.AuthorEngagementRate,
		IsActiveHour:         containsHour(social.ActiveHours, now.Hour()),

		EmotionConfidence: thread.Emotion.Confidence,
		EmotionIntensity:  thread.Emotion.Intensity,
		EmotionAlignment:  AlignmentScore(thread.Emotion, profile.Dominant(dominantEmotionRanks)),

		ToxicityScore: defaultToxicityScore,
		SpamScore:     defaultSpamScore,
	}

	fv.QualityScore = qualityScore(fv)

	return fv
}

// qualityScore rewards text length in the 30-250 char sweet spot,
// 1-3 hashtags, and more than one reaction per hour.
func qualityScore(fv FeatureVector) float64 {
	var score float64
	if fv.TextLength >= qualityLengthMin && fv.TextLength <= qualityLengthMax {
		score += 0.4
	}
	if fv.HashtagCount >= 1 && fv.HashtagCount <= 3 {
		score += 0.3
	}
	if fv.ReactionsPerHour > 1 {
		score += 0.3
	}
	return score
}

func containsHour(hours []int, h int) bool {
	for _, v := range hours {
		if v == h {
			return true
		}
	}
	return false
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
