package correlate_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"recap/internal/correlate"
	"recap/internal/logging"
	"recap/internal/timeline"
)

func newCorrelator() *correlate.Correlator {
	return correlate.New(correlate.DefaultLexicon(), logging.NewNop())
}

func TestMatchTranscriptMidpointIsHalfOpen(t *testing.T) {
	transcripts := []timeline.TranscriptSegment{
		{StartTime: 0, EndTime: 10, Text: "a"},
		{StartTime: 10, EndTime: 20, Text: "b"},
	}

	// Midpoint of "a" is 5 and lands exactly on the window start, which is
	// inclusive. Midpoint of "b" is 15 and lands on the window end, which
	// is exclusive.
	got := correlate.MatchTranscript(transcripts, 5, 15)
	if got != "a" {
		t.Fatalf("expected %q, got %q", "a", got)
	}
}

func TestMatchTranscriptFallsBackToOverlap(t *testing.T) {
	transcripts := []timeline.TranscriptSegment{
		{StartTime: 0, EndTime: 10, Text: "early speech"},
	}

	// Midpoint 5 is outside [0, 5), but the first half of the segment
	// overlaps the window, exactly meeting the 50% bar.
	if got := correlate.MatchTranscript(transcripts, 0, 5); got != "early speech" {
		t.Fatalf("expected overlap fallback to claim the segment, got %q", got)
	}

	// A 40% overlap is below the bar.
	if got := correlate.MatchTranscript(transcripts, 6, 12); got != "" {
		t.Fatalf("expected no match for weak overlap, got %q", got)
	}
}

func TestMatchTranscriptOrdersAndDeduplicates(t *testing.T) {
	transcripts := []timeline.TranscriptSegment{
		{StartTime: 6, EndTime: 8, Text: "second"},
		{StartTime: 2, EndTime: 4, Text: "first"},
		{StartTime: 4, EndTime: 6, Text: "first"},
	}

	got := correlate.MatchTranscript(transcripts, 0, 10)
	if got != "first second" {
		t.Fatalf("expected %q, got %q", "first second", got)
	}
}

func TestCorrelateAnnotatesScreenSegments(t *testing.T) {
	screens := []timeline.ScreenSegment{
		{ID: 1, StartTime: 0, EndTime: 20, ScreenshotPath: "/frames/frame_000000.jpg"},
		{ID: 2, StartTime: 20, EndTime: 40, ScreenshotPath: "/frames/frame_000020.jpg"},
	}
	transcripts := []timeline.TranscriptSegment{
		{StartTime: 0, EndTime: 10, Text: "Welcome to the deployment demo."},
		{StartTime: 10, EndTime: 18, Text: "Look at this slide showing the deployment steps."},
	}

	segments := newCorrelator().Correlate(context.Background(), screens, transcripts)
	if len(segments) != 2 {
		t.Fatalf("expected 2 timeline segments, got %d", len(segments))
	}

	first := segments[0]
	if first.ID != 1 {
		t.Fatalf("timeline segment should keep the screen segment id: %+v", first)
	}
	if !strings.Contains(first.Transcript, "deployment demo") {
		t.Fatalf("unexpected transcript: %q", first.Transcript)
	}
	if !strings.Contains(first.Summary, "Welcome to the deployment demo") {
		t.Fatalf("summary should open with the first sentence: %q", first.Summary)
	}
	if !strings.Contains(first.Summary, "Look at this slide") {
		t.Fatalf("summary should keep the visual-reference sentence: %q", first.Summary)
	}
	if first.ScreenDescription != "PowerPoint presentation" {
		t.Fatalf("unexpected description: %q", first.ScreenDescription)
	}
	if first.ConfidenceScore <= 0.5 {
		t.Fatalf("speech with visual references should beat the base score: %v", first.ConfidenceScore)
	}

	second := segments[1]
	if second.Transcript != "" {
		t.Fatalf("silent segment should have empty transcript: %q", second.Transcript)
	}
	if second.Summary != "No discussion - Visual only" {
		t.Fatalf("unexpected silent summary: %q", second.Summary)
	}
	if second.ScreenDescription != "Unknown screen content" {
		t.Fatalf("unexpected silent description: %q", second.ScreenDescription)
	}
	if second.ConfidenceScore != 0.3 {
		t.Fatalf("silent segment confidence should be 0.3, got %v", second.ConfidenceScore)
	}
}

func TestCorrelateSummaryWithoutSentences(t *testing.T) {
	screens := []timeline.ScreenSegment{{ID: 1, StartTime: 0, EndTime: 10}}
	transcripts := []timeline.TranscriptSegment{
		{StartTime: 2, EndTime: 4, Text: "..."},
	}

	segments := newCorrelator().Correlate(context.Background(), screens, transcripts)
	if segments[0].Summary != "No clear discussion points" {
		t.Fatalf("unexpected summary: %q", segments[0].Summary)
	}
}

func TestCorrelateKeyTopics(t *testing.T) {
	screens := []timeline.ScreenSegment{{ID: 1, StartTime: 0, EndTime: 10}}
	transcripts := []timeline.TranscriptSegment{
		{StartTime: 1, EndTime: 9, Text: "The pipeline code calls a helper function. The pipeline retries before the pipeline gives up."},
	}

	topics := newCorrelator().Correlate(context.Background(), screens, transcripts)[0].KeyTopics
	if !containsTopic(topics, "Code") {
		t.Fatalf("expected content-type topic Code: %v", topics)
	}
	if !containsTopic(topics, "Pipeline") {
		t.Fatalf("expected repeated word topic Pipeline: %v", topics)
	}
	if containsTopic(topics, "Helper") {
		t.Fatalf("words mentioned once should not become topics: %v", topics)
	}
	if len(topics) > 5 {
		t.Fatalf("topics should be capped at 5: %v", topics)
	}
}

func TestCorrelateDescriptionRulesAreOrdered(t *testing.T) {
	screens := []timeline.ScreenSegment{{ID: 1, StartTime: 0, EndTime: 10}}
	transcripts := []timeline.TranscriptSegment{
		{StartTime: 1, EndTime: 9, Text: "The slide embeds a code sample"},
	}

	segments := newCorrelator().Correlate(context.Background(), screens, transcripts)
	if segments[0].ScreenDescription != "PowerPoint presentation" {
		t.Fatalf("presentation rule should win over code: %q", segments[0].ScreenDescription)
	}
}

func TestCorrelateDescriptionFallsBackToGeneric(t *testing.T) {
	screens := []timeline.ScreenSegment{{ID: 1, StartTime: 0, EndTime: 10}}
	transcripts := []timeline.TranscriptSegment{
		{StartTime: 1, EndTime: 9, Text: "nothing notable spoken"},
	}

	segments := newCorrelator().Correlate(context.Background(), screens, transcripts)
	if segments[0].ScreenDescription != "Application screen" {
		t.Fatalf("unexpected fallback description: %q", segments[0].ScreenDescription)
	}
}

func TestCorrelateConfidenceBonuses(t *testing.T) {
	correlator := newCorrelator()

	// Long stable segment with many visual references and a long
	// discussion hits every bonus and clamps at 1.0.
	longText := strings.Repeat("click the button on the screen and look here ", 15)
	screens := []timeline.ScreenSegment{{ID: 1, StartTime: 0, EndTime: 60}}
	transcripts := []timeline.TranscriptSegment{{StartTime: 0, EndTime: 60, Text: longText}}
	segments := correlator.Correlate(context.Background(), screens, transcripts)
	if segments[0].ConfidenceScore != 1.0 {
		t.Fatalf("expected clamped confidence 1.0, got %v", segments[0].ConfidenceScore)
	}

	// Short neutral speech on a brief screen earns only the base score.
	screens = []timeline.ScreenSegment{{ID: 1, StartTime: 0, EndTime: 5}}
	transcripts = []timeline.TranscriptSegment{{StartTime: 0, EndTime: 5, Text: "quiet ambient room audio"}}
	segments = correlator.Correlate(context.Background(), screens, transcripts)
	if math.Abs(segments[0].ConfidenceScore-0.5) > 1e-9 {
		t.Fatalf("expected base confidence 0.5, got %v", segments[0].ConfidenceScore)
	}
}

func TestFilterByConfidence(t *testing.T) {
	correlator := newCorrelator()
	segments := []timeline.TimelineSegment{
		{ID: 1, ConfidenceScore: 0.3},
		{ID: 2, ConfidenceScore: 0.5},
		{ID: 3, ConfidenceScore: 0.9},
	}

	filtered := correlator.FilterByConfidence(segments, 0.5)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 segments at or above 0.5, got %d", len(filtered))
	}
	if filtered[0].ID != 2 || filtered[1].ID != 3 {
		t.Fatalf("unexpected filtered segments: %+v", filtered)
	}

	none := correlator.FilterByConfidence(segments, 0.95)
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", none)
	}
}

func containsTopic(topics []string, target string) bool {
	for _, topic := range topics {
		if topic == target {
			return true
		}
	}
	return false
}
