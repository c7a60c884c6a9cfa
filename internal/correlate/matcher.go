package correlate

import (
	"sort"
	"strings"

	"recap/internal/timeline"
)

// overlapRatio is the minimum share of a transcript segment's duration that
// must fall inside a screen segment for the fallback match to claim it.
const overlapRatio = 0.5

// MatchTranscript gathers the speech spoken during [start, end) and joins it
// into a single string.
//
// A transcript segment belongs to the range when its midpoint falls inside
// the half-open window. When no midpoint lands there, the fallback claims
// segments whose overlap with the window covers at least half their
// duration. Matches are ordered by start time and exact duplicate texts are
// dropped so repeated captions do not inflate the result.
func MatchTranscript(transcripts []timeline.TranscriptSegment, start, end float64) string {
	var relevant []timeline.TranscriptSegment
	for _, segment := range transcripts {
		midpoint := segment.Midpoint()
		if start <= midpoint && midpoint < end {
			relevant = append(relevant, segment)
		}
	}

	if len(relevant) == 0 {
		for _, segment := range transcripts {
			duration := segment.Duration()
			if duration <= 0 {
				continue
			}
			overlapStart := max(segment.StartTime, start)
			overlapEnd := min(segment.EndTime, end)
			if overlap := overlapEnd - overlapStart; overlap > 0 && overlap/duration >= overlapRatio {
				relevant = append(relevant, segment)
			}
		}
	}

	sort.SliceStable(relevant, func(i, j int) bool {
		return relevant[i].StartTime < relevant[j].StartTime
	})

	seen := make(map[string]struct{}, len(relevant))
	parts := make([]string, 0, len(relevant))
	for _, segment := range relevant {
		if _, dup := seen[segment.Text]; dup {
			continue
		}
		seen[segment.Text] = struct{}{}
		parts = append(parts, segment.Text)
	}

	return strings.TrimSpace(strings.Join(parts, " "))
}
