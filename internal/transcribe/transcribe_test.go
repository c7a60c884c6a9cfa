package transcribe_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"recap/internal/logging"
	"recap/internal/testsupport"
	"recap/internal/timeline"
	"recap/internal/transcribe"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:04,500
Welcome to the demo.

2
00:00:05,000 --> 00:00:09,250
Look at this slide
showing the results.

3
00:00:10,000 --> 00:00:12,000

`

func TestLoadSRTParsesCues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "talk.srt")
	if err := os.WriteFile(path, []byte(sampleSRT), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}

	segments, err := transcribe.LoadSRT(path)
	if err != nil {
		t.Fatalf("LoadSRT: %v", err)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 cues (empty cue dropped), got %d: %+v", len(segments), segments)
	}

	first := segments[0]
	if first.StartTime != 1.0 || first.EndTime != 4.5 {
		t.Fatalf("unexpected first cue bounds: %+v", first)
	}
	if first.Text != "Welcome to the demo." {
		t.Fatalf("unexpected first cue text: %q", first.Text)
	}

	second := segments[1]
	if second.Text != "Look at this slide showing the results." {
		t.Fatalf("multi-line cue should join with spaces: %q", second.Text)
	}
}

func TestLoadSRTHandlesCRLFAndPeriodMillis(t *testing.T) {
	content := "1\r\n00:00:00.500 --> 00:00:02.000\r\nHello there\r\n"
	path := filepath.Join(t.TempDir(), "crlf.srt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write srt: %v", err)
	}

	segments, err := transcribe.LoadSRT(path)
	if err != nil {
		t.Fatalf("LoadSRT: %v", err)
	}
	if len(segments) != 1 || segments[0].StartTime != 0.5 {
		t.Fatalf("unexpected segments: %+v", segments)
	}
}

func TestLoadSRTMissingFile(t *testing.T) {
	if _, err := transcribe.LoadSRT(filepath.Join(t.TempDir(), "absent.srt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

type scriptedProvider struct {
	name     string
	segments []timeline.TranscriptSegment
	err      error
}

func (p scriptedProvider) Name() string { return p.name }

func (p scriptedProvider) Transcribe(context.Context, string) ([]timeline.TranscriptSegment, error) {
	return p.segments, p.err
}

func TestChainFallsBackOnFailure(t *testing.T) {
	want := []timeline.TranscriptSegment{{StartTime: 0, EndTime: 1, Text: "ok"}}
	chain := transcribe.NewChain(logging.NewNop(),
		scriptedProvider{name: "broken", err: errors.New("boom")},
		scriptedProvider{name: "working", segments: want},
	)

	got, err := chain.Transcribe(context.Background(), "/videos/demo.mp4")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if len(got) != 1 || got[0].Text != "ok" {
		t.Fatalf("unexpected segments: %+v", got)
	}
}

func TestChainReturnsLastErrorWhenAllFail(t *testing.T) {
	chain := transcribe.NewChain(logging.NewNop(),
		scriptedProvider{name: "a", err: errors.New("first")},
		scriptedProvider{name: "b", err: errors.New("second")},
	)

	_, err := chain.Transcribe(context.Background(), "/videos/demo.mp4")
	if err == nil || err.Error() != "second" {
		t.Fatalf("expected last error, got %v", err)
	}
}

func TestNullProviderIsSilent(t *testing.T) {
	segments, err := transcribe.NullProvider{}.Transcribe(context.Background(), "/videos/demo.mp4")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if segments == nil || len(segments) != 0 {
		t.Fatalf("expected empty non-nil transcript, got %#v", segments)
	}
}

func TestSelectHonorsProviderSetting(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	provider := transcribe.Select(cfg, t.TempDir(), logging.NewNop())
	if provider.Name() != "none" {
		t.Fatalf("provider none should select NullProvider, got %q", provider.Name())
	}

	cfg = testsupport.NewConfig(t, testsupport.WithProvider("auto"))
	cfg.Transcription.WhisperBinary = "recap-test-binary-that-does-not-exist"
	provider = transcribe.Select(cfg, t.TempDir(), logging.NewNop())
	if provider.Name() != "none" {
		t.Fatalf("auto without whisper should degrade to none, got %q", provider.Name())
	}

	cfg = testsupport.NewConfig(t, testsupport.WithProvider("auto"), testsupport.WithStubbedBinaries())
	provider = transcribe.Select(cfg, t.TempDir(), logging.NewNop())
	if provider.Name() != "chain" {
		t.Fatalf("auto with whisper on PATH should build a chain, got %q", provider.Name())
	}
}

func TestAnalyzeSpeechStats(t *testing.T) {
	segments := []timeline.TranscriptSegment{
		{StartTime: 0, EndTime: 10, Text: "one two three four five"},
		{StartTime: 12, EndTime: 20, Text: "six seven"},
		{StartTime: 25, EndTime: 30, Text: "eight"},
	}

	stats := transcribe.Analyze(segments)
	if stats.TotalDuration != 30 {
		t.Fatalf("unexpected total duration: %v", stats.TotalDuration)
	}
	if stats.SpeechDuration != 23 {
		t.Fatalf("unexpected speech duration: %v", stats.SpeechDuration)
	}
	if stats.SilenceDuration != 7 {
		t.Fatalf("unexpected silence duration: %v", stats.SilenceDuration)
	}
	if stats.TotalWords != 8 {
		t.Fatalf("unexpected word count: %d", stats.TotalWords)
	}
	wantWPM := 8.0 / (23.0 / 60.0)
	if math.Abs(stats.SpeakingRateWPM-wantWPM) > 1e-9 {
		t.Fatalf("unexpected speaking rate: %v want %v", stats.SpeakingRateWPM, wantWPM)
	}
	if stats.PauseCount != 2 {
		t.Fatalf("expected 2 pauses, got %d", stats.PauseCount)
	}
	if len(stats.LongPauses) != 1 || stats.LongPauses[0].Duration != 5 {
		t.Fatalf("expected one long pause of 5s, got %+v", stats.LongPauses)
	}
}

func TestAnalyzeEmptyTranscript(t *testing.T) {
	stats := transcribe.Analyze(nil)
	if stats.SegmentCount != 0 || stats.TotalWords != 0 || stats.SpeechRatio != 0 {
		t.Fatalf("expected zero stats, got %+v", stats)
	}
}
