package emotion

import "github.com/resonance-social/feed-engine/internal/domain"

// The keyword and emoji tables below are replaceable data: the
// classifier's contract does not depend on their exact contents, only
// on there being a weighted per-emotion lexicon.

type emotionLexicon struct {
	weight   float64
	keywords []string
	emoji    []string
}

var lexicons = map[domain.Emotion]emotionLexicon{
	domain.EmotionJoy: {
		weight: 1.0,
		keywords: []string{
			"happy", "joy", "joyful", "delighted", "glad", "cheerful",
			"wonderful", "amazing", "great", "fantastic", "love", "loving",
			"excited", "thrilled", "grateful", "blessed", "celebrate", "smile",
			"laughing", "fun", "awesome", "beautiful",
		},
		emoji: []string{"😊", "😄", "😃", "🙂", "😁", "🥳", "❤️", "💕", "✨", "🎉"},
	},
	domain.EmotionTrust: {
		weight: 1.0,
		keywords: []string{
			"trust", "reliable", "honest", "loyal", "faith", "believe",
			"dependable", "sincere", "genuine", "authentic", "safe", "secure",
			"support", "supportive", "respect", "admire",
		},
		emoji: []string{"🤝", "🙏", "💪", "🛡️"},
	},
	domain.EmotionFear: {
		weight: 1.1,
		keywords: []string{
			"afraid", "scared", "fear", "terrified", "anxious", "anxiety",
			"worried", "panic", "dread", "nervous", "frightened", "horror",
			"threat", "danger", "alarming",
		},
		emoji: []string{"😨", "😱", "😰", "😬"},
	},
	domain.EmotionSurprise: {
		weight: 1.0,
		keywords: []string{
			"surprised", "shocked", "astonished", "amazed", "unexpected",
			"sudden", "wow", "unbelievable", "incredible", "stunned",
			"speechless", "whoa",
		},
		emoji: []string{"😮", "😲", "🤯", "😳"},
	},
	domain.EmotionSadness: {
		weight: 1.1,
		keywords: []string{
			"sad", "unhappy", "depressed", "miserable", "heartbroken",
			"grief", "sorrow", "crying", "tears", "lonely", "alone",
			"lost", "hopeless", "hurt", "devastated", "miss", "missing",
		},
		emoji: []string{"😢", "😭", "💔", "😞", "😔"},
	},
	domain.EmotionDisgust: {
		weight: 1.1,
		keywords: []string{
			"disgusting", "gross", "revolting", "repulsive", "nasty",
			"awful", "horrible", "vile", "sickening", "foul", "ugh",
			"yuck", "distasteful",
		},
		emoji: []string{"🤢", "🤮", "😖"},
	},
	domain.EmotionAnger: {
		weight: 1.2,
		keywords: []string{
			"angry", "furious", "rage", "outraged", "mad", "annoyed",
			"irritated", "frustrated", "hate", "hatred", "hostile",
			"unacceptable", "disgrace", "infuriating", "livid",
		},
		emoji: []string{"😡", "😠", "🤬", "💢"},
	},
	domain.EmotionAnticipation: {
		weight: 1.0,
		keywords: []string{
			"anticipate", "looking forward", "excited for", "cant wait",
			"soon", "upcoming", "eager", "hope", "hopeful", "expect",
			"plan", "planning", "tomorrow", "future", "ready",
		},
		emoji: []string{"🤞", "⏳", "🔜", "👀"},
	},
}

// amplifiers and diminishers scale classification intensity. Token
// matching happens after normalization, so entries are lowercase.
var amplifiers = map[string]float64{
	"extremely":    1.6,
	"incredibly":   1.5,
	"absolutely":   1.5,
	"totally":      1.4,
	"really":       1.3,
	"very":         1.3,
	"so":           1.2,
	"deeply":       1.4,
	"utterly":      1.5,
	"completely":   1.4,
	"insanely":     1.6,
	"overwhelming": 1.5,
}

var diminishers = map[string]float64{
	"slightly": 0.7,
	"somewhat": 0.8,
	"a bit":    0.8,
	"kinda":    0.8,
	"kind of":  0.8,
	"sort of":  0.8,
	"barely":   0.6,
	"hardly":   0.6,
	"mildly":   0.7,
	"a little": 0.75,
}

// contractions are expanded during normalization so lexicon keywords
// match their expanded forms.
var contractions = map[string]string{
	"can't":      "cannot",
	"won't":      "will not",
	"don't":      "do not",
	"doesn't":    "does not",
	"didn't":     "did not",
	"isn't":      "is not",
	"aren't":     "are not",
	"wasn't":     "was not",
	"i'm":        "i am",
	"i've":       "i have",
	"i'll":       "i will",
	"it's":       "it is",
	"that's":     "that is",
	"you're":     "you are",
	"they're":    "they are",
	"we're":      "we are",
	"couldn't":   "could not",
	"shouldn't":  "should not",
	"wouldn't":   "would not",
}
