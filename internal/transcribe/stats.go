package transcribe

import (
	"strings"

	"recap/internal/timeline"
)

// Pause thresholds in seconds. Gaps above pauseThreshold count as pauses;
// gaps above longPauseThreshold are reported separately.
const (
	pauseThreshold     = 1.0
	longPauseThreshold = 3.0
)

// Pause is a silent gap between consecutive transcript segments.
type Pause struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Duration float64 `json:"duration"`
}

// Stats summarizes speaking behavior across a transcript.
type Stats struct {
	TotalDuration   float64 `json:"total_duration"`
	SpeechDuration  float64 `json:"speech_duration"`
	SilenceDuration float64 `json:"silence_duration"`
	SpeechRatio     float64 `json:"speech_ratio"`
	TotalWords      int     `json:"total_words"`
	SpeakingRateWPM float64 `json:"speaking_rate_wpm"`
	SegmentCount    int     `json:"segment_count"`
	PauseCount      int     `json:"pause_count"`
	LongPauses      []Pause `json:"long_pauses"`
}

// Analyze derives speaking statistics from transcript segments. An empty
// transcript yields the zero value.
func Analyze(segments []timeline.TranscriptSegment) Stats {
	if len(segments) == 0 {
		return Stats{}
	}

	var stats Stats
	stats.SegmentCount = len(segments)

	for _, segment := range segments {
		if segment.EndTime > stats.TotalDuration {
			stats.TotalDuration = segment.EndTime
		}
		stats.SpeechDuration += segment.Duration()
		stats.TotalWords += len(strings.Fields(segment.Text))
	}

	stats.SilenceDuration = stats.TotalDuration - stats.SpeechDuration
	if stats.TotalDuration > 0 {
		stats.SpeechRatio = stats.SpeechDuration / stats.TotalDuration
	}
	if stats.SpeechDuration > 0 {
		stats.SpeakingRateWPM = float64(stats.TotalWords) / (stats.SpeechDuration / 60)
	}

	for i := 0; i < len(segments)-1; i++ {
		gap := segments[i+1].StartTime - segments[i].EndTime
		if gap <= pauseThreshold {
			continue
		}
		stats.PauseCount++
		if gap > longPauseThreshold {
			stats.LongPauses = append(stats.LongPauses, Pause{
				Start:    segments[i].EndTime,
				End:      segments[i+1].StartTime,
				Duration: gap,
			})
		}
	}

	return stats
}
