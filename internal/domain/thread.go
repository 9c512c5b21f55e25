package domain

import "time"

// Thread is a content item as stored by the authoring flow. Emotion
// fields are computed once at creation time and immutable afterwards;
// reaction counters mutate only through the reaction engine.
type Thread struct {
	ID         string         `json:"id"`
	AuthorID   string         `json:"author_id"`
	Text       string         `json:"text"`
	Hashtags   []string       `json:"hashtags"`
	Emotion    EmotionLabel   `json:"emotion"`
	Reactions  ReactionCounts `json:"reactions"`
	ReplyCount int64          `json:"reply_count"`
	ShareCount int64          `json:"share_count"`
	CreatedAt  time.Time      `json:"created_at"`
}

// CandidateSource identifies which retrieval strategy produced a candidate.
type CandidateSource string

const (
	SourceInNetwork       CandidateSource = "in_network"
	SourceOutOfNetwork    CandidateSource = "out_of_network"
	SourceEmotionAffinity CandidateSource = "emotion_affinity"
	SourceTrending        CandidateSource = "trending"
	SourceFallback        CandidateSource = "fallback"
)

// Candidate is a read-only projection of a Thread under consideration
// for ranking. SourceScore is the retrieval strategy's own relevance
// estimate in [0, 1]. Candidates live for a single ranking request.
type Candidate struct {
	Thread      Thread          `json:"thread"`
	Source      CandidateSource `json:"source"`
	SourceScore float64         `json:"source_score"`
}

// RankedResult is a candidate that survived the ranking pipeline.
type RankedResult struct {
	Candidate  Candidate     `json:"candidate"`
	Features   FeatureVector `json:"-"`
	LightScore float64       `json:"light_score"`
	HeavyScore float64       `json:"heavy_score"`
	FinalScore float64       `json:"final_score"`
}

// AuthorStats is the user-graph provider's summary of a thread author.
type AuthorStats struct {
	FollowerCount  int64
	EngagementRate float64
}
