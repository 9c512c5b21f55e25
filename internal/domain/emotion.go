package domain

import "sort"

// Emotion is one of the 8 basic emotions of Plutchik's wheel, plus a
// neutral value used when no emotion can be detected.
type Emotion string

const (
	EmotionJoy          Emotion = "joy"
	EmotionTrust        Emotion = "trust"
	EmotionFear         Emotion = "fear"
	EmotionSurprise     Emotion = "surprise"
	EmotionSadness      Emotion = "sadness"
	EmotionDisgust      Emotion = "disgust"
	EmotionAnger        Emotion = "anger"
	EmotionAnticipation Emotion = "anticipation"
	EmotionNeutral      Emotion = "neutral"
)

// AllEmotions lists the 8 scored emotions, excluding neutral.
var AllEmotions = []Emotion{
	EmotionJoy,
	EmotionTrust,
	EmotionFear,
	EmotionSurprise,
	EmotionSadness,
	EmotionDisgust,
	EmotionAnger,
	EmotionAnticipation,
}

// compatibleEmotions is the fixed adjacency table used by the
// emotion-affinity candidate source. Each emotion maps to the set of
// emotions a user dominated by it is considered receptive to.
var compatibleEmotions = map[Emotion][]Emotion{
	EmotionJoy:          {EmotionJoy, EmotionTrust, EmotionAnticipation, EmotionSurprise},
	EmotionTrust:        {EmotionTrust, EmotionJoy, EmotionAnticipation},
	EmotionFear:         {EmotionFear, EmotionSurprise, EmotionSadness},
	EmotionSurprise:     {EmotionSurprise, EmotionJoy, EmotionFear, EmotionAnticipation},
	EmotionSadness:      {EmotionSadness, EmotionTrust, EmotionFear},
	EmotionDisgust:      {EmotionDisgust, EmotionAnger, EmotionSadness},
	EmotionAnger:        {EmotionAnger, EmotionDisgust, EmotionAnticipation},
	EmotionAnticipation: {EmotionAnticipation, EmotionJoy, EmotionTrust, EmotionSurprise},
}

// CompatibleEmotions returns the emotions compatible with e.
// Unknown emotions are only compatible with themselves.
func CompatibleEmotions(e Emotion) []Emotion {
	if compat, ok := compatibleEmotions[e]; ok {
		return compat
	}
	return []Emotion{e}
}

// EmotionLabel is the result of classifying a piece of text.
// Secondary is empty when no second emotion qualified.
type EmotionLabel struct {
	Primary    Emotion `json:"primary"`
	Secondary  Emotion `json:"secondary,omitempty"`
	Confidence float64 `json:"confidence"`
	Intensity  float64 `json:"intensity"`
}

// NeutralLabel is the label used for empty text and classifier failures.
func NeutralLabel() EmotionLabel {
	return EmotionLabel{Primary: EmotionNeutral, Confidence: 0, Intensity: 1}
}

// EmotionProfile maps each emotion to a user's affinity weight in [0, 1].
// It is written only by the reaction feedback step and read-only to
// feature extraction.
type EmotionProfile map[Emotion]float64

// DefaultAffinity is the starting affinity for emotions a user has no
// recorded signal for.
const DefaultAffinity = 0.5

// NewEmotionProfile returns a profile with every emotion at the default
// affinity.
func NewEmotionProfile() EmotionProfile {
	p := make(EmotionProfile, len(AllEmotions))
	for _, e := range AllEmotions {
		p[e] = DefaultAffinity
	}
	return p
}

// Dominant returns up to n emotions ranked by affinity, strongest first.
// Ties break alphabetically so the ordering is deterministic.
func (p EmotionProfile) Dominant(n int) []Emotion {
	ranked := make([]Emotion, 0, len(p))
	for e := range p {
		ranked = append(ranked, e)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if p[ranked[i]] != p[ranked[j]] {
			return p[ranked[i]] > p[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}

// AlignmentScore measures how well a candidate's detected emotions match
// the user's ranked dominant emotions. A primary match at rank r
// contributes 1.0 - 0.2*r; a secondary match contributes half that.
// The result is normalized to [0, 1].
func AlignmentScore(label EmotionLabel, dominant []Emotion) float64 {
	var score float64
	for rank, e := range dominant {
		weight := 1.0 - 0.2*float64(rank)
		if weight <= 0 {
			break
		}
		if e == label.Primary {
			score += weight
		}
		if label.Secondary != "" && e == label.Secondary {
			score += 0.5 * weight
		}
	}

	// A top-ranked primary plus secondary match scores at most 1.5.
	score /= 1.5
	if score > 1 {
		score = 1
	}
	return score
}
