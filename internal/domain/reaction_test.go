package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReactionType(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    ReactionType
		wantErr bool
	}{
		{name: "resonate", input: "resonate", want: ReactionResonate},
		{name: "amplify", input: "amplify", want: ReactionAmplify},
		{name: "unknown", input: "like", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "case_sensitive", input: "Resonate", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseReactionType(tc.input)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestImpactScore(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		reaction  ReactionType
		createdAt time.Time
		authority float64
		want      float64
	}{
		{
			name:      "fresh_thread_no_authority",
			reaction:  ReactionResonate,
			createdAt: now,
			authority: 0,
			want:      1.0,
		},
		{
			name:      "one_half_life_halves_score",
			reaction:  ReactionResonate,
			createdAt: now.Add(-24 * time.Hour),
			authority: 0,
			want:      0.5,
		},
		{
			name:      "authority_scales_up",
			reaction:  ReactionResonate,
			createdAt: now,
			authority: 1,
			want:      1.5,
		},
		{
			name:      "amplify_strongest",
			reaction:  ReactionAmplify,
			createdAt: now,
			authority: 0,
			want:      1.5,
		},
		{
			name:      "very_old_thread_hits_floor",
			reaction:  ReactionResonate,
			createdAt: now.Add(-30 * 24 * time.Hour),
			authority: 0,
			want:      0.1,
		},
		{
			name:      "future_created_at_treated_as_fresh",
			reaction:  ReactionChallenge,
			createdAt: now.Add(time.Hour),
			authority: 0,
			want:      0.4,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ImpactScore(tc.reaction, tc.createdAt, tc.authority, now)
			assert.InDelta(t, tc.want, got, 0.0001)
		})
	}
}

func TestReactionCounts_Total(t *testing.T) {
	counts := NewReactionCounts()
	assert.Equal(t, int64(0), counts.Total())

	counts[ReactionResonate] = 3
	counts[ReactionAmplify] = 2
	assert.Equal(t, int64(5), counts.Total())

	clone := counts.Clone()
	clone[ReactionResonate] = 100
	assert.Equal(t, int64(3), counts[ReactionResonate])
}
