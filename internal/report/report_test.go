package report_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recap/internal/report"
	"recap/internal/session"
	"recap/internal/timeline"
)

func sampleSegments() []timeline.TimelineSegment {
	return []timeline.TimelineSegment{
		{
			ID:                1,
			StartTime:         0,
			EndTime:           65,
			ScreenshotPath:    "/frames/frame_000000.jpg",
			Transcript:        "Welcome to the demo",
			Summary:           "Welcome to the demo.",
			KeyTopics:         []string{"Demo"},
			ScreenDescription: "PowerPoint presentation",
			ConfidenceScore:   0.8,
		},
		{
			ID:                2,
			StartTime:         65,
			EndTime:           120,
			ScreenshotPath:    "/frames/frame_000065.jpg",
			Summary:           "No discussion - Visual only",
			ScreenDescription: "Unknown screen content",
			ConfidenceScore:   0.3,
		},
	}
}

func TestWriteAndReadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "session.json")
	export := timeline.NewExport(sampleSegments())

	if err := report.WriteJSON(path, export); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	loaded, err := report.ReadJSON(path)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(loaded.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(loaded.Segments))
	}
	if loaded.Metadata.TotalSegments != 2 || loaded.Metadata.TotalDuration != 120 {
		t.Fatalf("unexpected metadata: %+v", loaded.Metadata)
	}
	if loaded.Segments[0].ScreenDescription != "PowerPoint presentation" {
		t.Fatalf("unexpected segment: %+v", loaded.Segments[0])
	}
}

func TestReadJSONRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := report.WriteJSON(path, timeline.NewExport(nil)); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if _, err := report.ReadJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRenderTimelineTable(t *testing.T) {
	rendered := report.RenderTimelineTable(sampleSegments())
	for _, want := range []string{"00:00 - 01:05", "PowerPoint presentation", "0.80", "Visual only"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in rendered table:\n%s", want, rendered)
		}
	}
}

func TestRenderSessionsTable(t *testing.T) {
	sessions := []*session.Session{
		{
			ID:           "0b5cc3f0-8a50-4f55-9000-5f2f3e9c0a11",
			Title:        "standup-recording",
			Status:       session.StatusCompleted,
			SegmentCount: 7,
			CreatedAt:    time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
		},
	}

	rendered := report.RenderSessionsTable(sessions)
	if !strings.Contains(rendered, "0b5cc...") {
		t.Fatalf("expected truncated session id in table:\n%s", rendered)
	}
	if !strings.Contains(rendered, "standup-recording") || !strings.Contains(rendered, "completed") {
		t.Fatalf("unexpected table contents:\n%s", rendered)
	}
}
