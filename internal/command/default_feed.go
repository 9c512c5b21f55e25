package command

import (
	"context"
	"fmt"
	"time"

	"github.com/resonance-social/feed-engine/internal/domain"
)

// EmotionClassifier labels text with an emotion. Classification never
// fails; unclassifiable text gets a neutral label.
type EmotionClassifier interface {
	Classify(text string) domain.EmotionLabel
}

// defaultFeedSeeds are broadly positive, evergreen posts served when
// the ranking pipeline has nothing for a user. Kept short so a cold
// start still feels like a feed rather than an error page.
var defaultFeedSeeds = []struct {
	authorID string
	text     string
	hashtags []string
}{
	{"resonance", "Welcome! Follow a few people and react to posts to shape your feed. 😊", []string{"#welcome"}},
	{"resonance", "Tip: the challenge reaction is for posts that made you think, not posts you dislike.", []string{"#tips"}},
	{"resonance", "Your feed learns from what you resonate with. Try reacting to a few threads today!", []string{"#getstarted"}},
	{"resonance", "Curious what others are feeling? Trending threads show what the community is talking about right now.", []string{"#trending"}},
	{"resonance", "Amplify a thread to share it with your followers and boost its reach.", []string{"#tips"}},
	{"resonance", "We surface threads matching the emotions you engage with most. The more you react, the better it gets.", []string{"#getstarted"}},
	{"resonance", "Found something insightful? The learn reaction tells us you want more like it.", []string{"#tips"}},
	{"resonance", "Thanks for being here. This community grows with every thoughtful reply. 🙏", []string{"#community"}},
}

// DefaultFeed builds the fallback feed: seed threads classified through
// the real classifier and given synthetic engagement so downstream
// consumers see fully populated items.
type DefaultFeed struct {
	classifier EmotionClassifier
}

func NewDefaultFeed(classifier EmotionClassifier) *DefaultFeed {
	return &DefaultFeed{classifier: classifier}
}

// Items returns up to limit fallback items, scored by seed order.
func (f *DefaultFeed) Items(_ context.Context, limit int) []domain.RankedResult {
	now := time.Now()

	items := make([]domain.RankedResult, 0, limit)
	for i, seed := range defaultFeedSeeds {
		if len(items) >= limit {
			break
		}

		score := 1 - float64(i)/float64(len(defaultFeedSeeds))
		thread := domain.Thread{
			ID:       fmt.Sprintf("default-%d", i+1),
			AuthorID: seed.authorID,
			Text:     seed.text,
			Hashtags: seed.hashtags,
			Emotion:  f.classifier.Classify(seed.text),
			// Synthetic engagement so fallback items rank and render
			// like organic ones.
			Reactions:  domain.ReactionCounts{domain.ReactionResonate: 12, domain.ReactionSupport: 5},
			ReplyCount: 3,
			ShareCount: 1,
			CreatedAt:  now.Add(-time.Duration(i+1) * time.Hour),
		}

		items = append(items, domain.RankedResult{
			Candidate: domain.Candidate{
				Thread:      thread,
				Source:      domain.SourceFallback,
				SourceScore: score,
			},
			LightScore: score,
			HeavyScore: score,
			FinalScore: score,
		})
	}

	return items
}
