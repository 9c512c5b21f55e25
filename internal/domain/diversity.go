package domain

// Diversity filter parameters.
const (
	authorCapWindow   = 30
	authorCapPerChunk = 2

	emotionMaxRun      = 3
	emotionEscapeScore = 0.8

	inNetworkTargetShare = 0.6
)

// ApplyDiversityFilters reorders a ranked list to avoid single authors,
// emotions, or sources dominating the top of the feed, then truncates
// to limit. Filters apply in order: author cap, emotion run cap,
// source balance. Input must already be sorted by final score.
func ApplyDiversityFilters(results []RankedResult, limit int) []RankedResult {
	filtered := capAuthors(results)
	filtered = capEmotionRuns(filtered)
	filtered = balanceSources(filtered)

	// Balancing can pull an item capAuthors deferred past the window
	// back into it when that item's bucket is sparse. The author cap is
	// absolute, so it runs once more over the balanced order.
	filtered = capAuthors(filtered)

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// capAuthors allows at most 2 items per author within the first 30
// slots. Deferred items keep their relative order and may only re-enter
// after the window; when there is not enough other content to fill the
// window they are dropped rather than allowed to breach the cap.
func capAuthors(results []RankedResult) []RankedResult {
	out := make([]RankedResult, 0, len(results))
	var deferred []RankedResult
	authorCounts := make(map[string]int)

	for _, r := range results {
		if len(out) >= authorCapWindow {
			out = append(out, r)
			continue
		}

		author := r.Candidate.Thread.AuthorID
		if authorCounts[author] >= authorCapPerChunk {
			deferred = append(deferred, r)
			continue
		}
		authorCounts[author]++
		out = append(out, r)
	}

	if len(out) >= authorCapWindow {
		out = append(out, deferred...)
	}

	return out
}

// capEmotionRuns breaks runs of more than 3 consecutive items sharing a
// primary emotion, unless the item clearly outranks its neighbours
// (final score above 0.8). A run is broken by pulling forward the next
// item with a different emotion; when none exists the run stands.
func capEmotionRuns(results []RankedResult) []RankedResult {
	out := make([]RankedResult, len(results))
	copy(out, results)

	runEmotion := Emotion("")
	runLength := 0

	for i := 0; i < len(out); i++ {
		e := out[i].Candidate.Thread.Emotion.Primary
		if e != runEmotion {
			runEmotion = e
			runLength = 1
			continue
		}

		runLength++
		if runLength <= emotionMaxRun || out[i].FinalScore > emotionEscapeScore {
			continue
		}

		swapped := false
		for j := i + 1; j < len(out); j++ {
			if out[j].Candidate.Thread.Emotion.Primary != e {
				moved := out[j]
				copy(out[i+1:j+1], out[i:j])
				out[i] = moved
				swapped = true
				break
			}
		}
		if !swapped {
			break // Only this emotion remains; nothing left to interleave.
		}

		runEmotion = out[i].Candidate.Thread.Emotion.Primary
		runLength = 1
	}

	return out
}

// balanceSources interleaves in-network and other-source items toward a
// 60/40 split, preserving relative rank order within each bucket.
// Once either bucket empties the other drains in order.
func balanceSources(results []RankedResult) []RankedResult {
	var inNetwork, other []RankedResult
	for _, r := range results {
		if r.Candidate.Source == SourceInNetwork {
			inNetwork = append(inNetwork, r)
		} else {
			other = append(other, r)
		}
	}

	out := make([]RankedResult, 0, len(results))
	var takenIn int
	for len(inNetwork) > 0 && len(other) > 0 {
		// Take in-network while it is below its target share of the
		// next slot, otherwise take from the other bucket.
		if float64(takenIn) < inNetworkTargetShare*float64(len(out)+1) {
			out = append(out, inNetwork[0])
			inNetwork = inNetwork[1:]
			takenIn++
		} else {
			out = append(out, other[0])
			other = other[1:]
		}
	}
	out = append(out, inNetwork...)
	out = append(out, other...)

	return out
}
