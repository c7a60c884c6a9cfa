package frames

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"recap/internal/logging"
)

func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

func TestCollectAssignsTimestampsAndFrameNumbers(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"frame_000002.jpg", "frame_000000.jpg", "frame_000001.jpg", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	sampler := NewSampler("ffmpeg", "ffprobe", 2.0, logging.NewNop())
	sampled, err := sampler.collect(dir, 29.97)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(sampled) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(sampled))
	}
	for i, frame := range sampled {
		if frame.Index != i {
			t.Fatalf("frame %d has index %d", i, frame.Index)
		}
		wantTS := float64(i) * 2.0
		if frame.Timestamp != wantTS {
			t.Fatalf("frame %d timestamp %v, want %v", i, frame.Timestamp, wantTS)
		}
		wantNumber := int(math.Round(wantTS * 29.97))
		if frame.FrameNumber != wantNumber {
			t.Fatalf("frame %d number %d, want %d", i, frame.FrameNumber, wantNumber)
		}
		if filepath.Base(frame.Path) != "frame_00000"+string(rune('0'+i))+".jpg" {
			t.Fatalf("frame %d unexpected path %s", i, frame.Path)
		}
	}
}

func TestCollectWithoutFrameRateLeavesFrameNumberZero(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "frame_000000.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	sampler := NewSampler("ffmpeg", "ffprobe", 1.0, logging.NewNop())
	sampled, err := sampler.collect(dir, 0)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if sampled[0].FrameNumber != 0 {
		t.Fatalf("expected frame number 0, got %d", sampled[0].FrameNumber)
	}
}

func TestSampleWrapsProbeFailure(t *testing.T) {
	binDir := t.TempDir()
	probeStub := writeStub(t, binDir, "ffprobe", "exit 1")

	sampler := NewSampler("ffmpeg", probeStub, 1.0, logging.NewNop())
	_, err := sampler.Sample(context.Background(), filepath.Join(binDir, "missing.mp4"), t.TempDir())
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable, got %v", err)
	}
}

func TestSampleRejectsAudioOnlySource(t *testing.T) {
	binDir := t.TempDir()
	probeStub := writeStub(t, binDir, "ffprobe",
		`echo '{"streams":[{"codec_type":"audio"}],"format":{"duration":"10"}}'`)

	sampler := NewSampler("ffmpeg", probeStub, 1.0, logging.NewNop())
	_, err := sampler.Sample(context.Background(), "/videos/podcast.mp4", t.TempDir())
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable, got %v", err)
	}
}

func TestSampleCollectsExtractedFrames(t *testing.T) {
	binDir := t.TempDir()
	probeStub := writeStub(t, binDir, "ffprobe",
		`echo '{"streams":[{"codec_type":"video","avg_frame_rate":"30/1"}],"format":{"duration":"3.0"}}'`)
	// The ffmpeg stub fabricates the frames the real binary would emit. The
	// output template is the last argument.
	ffmpegStub := writeStub(t, binDir, "ffmpeg",
		`out=""
for arg in "$@"; do out="$arg"; done
dir=$(dirname "$out")
for i in 0 1 2; do printf x > "$dir/frame_00000$i.jpg"; done`)

	outDir := t.TempDir()
	sampler := NewSampler(ffmpegStub, probeStub, 1.0, logging.NewNop())
	result, err := sampler.Sample(context.Background(), "/videos/demo.mp4", outDir)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(result.Frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(result.Frames))
	}
	if result.Duration != 3.0 {
		t.Fatalf("unexpected duration: %v", result.Duration)
	}
	if result.FrameRate != 30 {
		t.Fatalf("unexpected frame rate: %v", result.FrameRate)
	}
	if result.Frames[2].Timestamp != 2.0 || result.Frames[2].FrameNumber != 60 {
		t.Fatalf("unexpected final frame: %+v", result.Frames[2])
	}
}

func TestSampleFailsWhenNoFramesProduced(t *testing.T) {
	binDir := t.TempDir()
	probeStub := writeStub(t, binDir, "ffprobe",
		`echo '{"streams":[{"codec_type":"video"}],"format":{"duration":"1.0"}}'`)
	ffmpegStub := writeStub(t, binDir, "ffmpeg", "exit 0")

	sampler := NewSampler(ffmpegStub, probeStub, 1.0, logging.NewNop())
	_, err := sampler.Sample(context.Background(), "/videos/demo.mp4", t.TempDir())
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Fatalf("expected ErrSourceUnreadable, got %v", err)
	}
}
