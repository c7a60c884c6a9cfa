package timeline

import "fmt"

// ScreenSegment is one visually-stable interval of the source video.
// Segments are produced in detection order with contiguous IDs starting
// at 1 and never overlap.
type ScreenSegment struct {
	ID              int     `json:"id"`
	StartTime       float64 `json:"start_time"`
	EndTime         float64 `json:"end_time"`
	ScreenshotPath  string  `json:"screenshot_path"`
	FrameNumber     int     `json:"frame_number"`
	SimilarityScore float64 `json:"similarity_score"`
}

// Duration returns the segment length in seconds.
func (s ScreenSegment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// TranscriptSegment is one span of recognized speech. Instances are owned
// by the transcription collaborator; segments from a noisy recognizer may
// overlap one another and Text may be empty. Confidence carries whatever
// score the recognizer reports and is opaque to correlation logic.
type TranscriptSegment struct {
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// Duration returns the spoken span length in seconds.
func (s TranscriptSegment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// Midpoint returns the temporal center of the spoken span.
func (s TranscriptSegment) Midpoint() float64 {
	return (s.StartTime + s.EndTime) / 2
}

// TimelineSegment pairs one screen segment with the narration attributed to
// its interval plus the annotations derived from that narration. Timeline
// segments are in one-to-one correspondence with screen segments and keep
// their ordering.
type TimelineSegment struct {
	ID                int      `json:"id"`
	StartTime         float64  `json:"start_time"`
	EndTime           float64  `json:"end_time"`
	ScreenshotPath    string   `json:"screenshot_path"`
	Transcript        string   `json:"transcript"`
	Summary           string   `json:"summary"`
	KeyTopics         []string `json:"key_topics"`
	ScreenDescription string   `json:"screen_description"`
	ConfidenceScore   float64  `json:"confidence_score"`
}

// Duration returns the segment length in seconds.
func (s TimelineSegment) Duration() float64 {
	return s.EndTime - s.StartTime
}

// FormattedTimeRange renders the interval as "MM:SS - MM:SS".
func (s TimelineSegment) FormattedTimeRange() string {
	return fmt.Sprintf("%s - %s", formatClock(s.StartTime), formatClock(s.EndTime))
}

func formatClock(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
