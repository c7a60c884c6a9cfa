package frames

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"recap/internal/logging"
	"recap/internal/media/ffprobe"
)

// ErrSourceUnreadable reports a video that ffprobe could not open or that
// carries no video stream.
var ErrSourceUnreadable = errors.New("frames: source video unreadable")

// framePattern is the ffmpeg output template for extracted frames. Sorting
// the zero-padded names lexically recovers extraction order.
const framePattern = "frame_%06d.jpg"

// Frame is a single sampled still with its position in the recording.
type Frame struct {
	// Index is the zero-based position within the sampled sequence.
	Index int
	// Timestamp is the frame's offset from the start of the video in seconds.
	Timestamp float64
	// FrameNumber is the approximate frame index in the original video.
	FrameNumber int
	// Path is the extracted image file on disk.
	Path string
}

// Result carries the sampled frames together with source metadata.
type Result struct {
	Frames    []Frame
	Duration  float64
	FrameRate float64
}

// Sampler extracts frames at a fixed interval of video time.
type Sampler struct {
	ffmpeg   string
	ffprobe  string
	interval float64
	logger   *slog.Logger
}

// NewSampler builds a sampler around the given binaries. An interval of zero
// or below falls back to one frame per second.
func NewSampler(ffmpegBinary, ffprobeBinary string, interval float64, logger *slog.Logger) *Sampler {
	if interval <= 0 {
		interval = 1.0
	}
	return &Sampler{
		ffmpeg:   ffmpegBinary,
		ffprobe:  ffprobeBinary,
		interval: interval,
		logger:   logging.NewComponentLogger(logger, "frames"),
	}
}

// Interval returns the sampling interval in seconds.
func (s *Sampler) Interval() float64 {
	return s.interval
}

// Sample validates the source, extracts frames into outDir, and returns them
// in timestamp order.
func (s *Sampler) Sample(ctx context.Context, videoPath, outDir string) (Result, error) {
	probe, err := ffprobe.Inspect(ctx, s.ffprobe, videoPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}
	if !probe.HasVideo() {
		return Result{}, fmt.Errorf("%w: no video stream in %s", ErrSourceUnreadable, videoPath)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create frame directory: %w", err)
	}

	duration := probe.DurationSeconds()
	frameRate := probe.VideoFrameRate()
	s.logger.InfoContext(ctx, "sampling frames",
		logging.String("source", videoPath),
		logging.Float64("duration_seconds", duration),
		logging.Float64("interval_seconds", s.interval))

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vf", fmt.Sprintf("fps=1/%g", s.interval),
		"-start_number", "0",
		"-y",
		filepath.Join(outDir, framePattern),
	}
	cmd := exec.CommandContext(ctx, s.ffmpeg, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("ffmpeg frame extraction: %w: %s", err, strings.TrimSpace(string(output)))
	}

	sampled, err := s.collect(outDir, frameRate)
	if err != nil {
		return Result{}, err
	}
	if len(sampled) == 0 {
		return Result{}, fmt.Errorf("%w: ffmpeg produced no frames from %s", ErrSourceUnreadable, videoPath)
	}

	s.logger.InfoContext(ctx, "frames extracted", logging.Int("count", len(sampled)))
	return Result{Frames: sampled, Duration: duration, FrameRate: frameRate}, nil
}

// collect lists extracted frame files and assigns timestamps from the
// sampling interval. Frame numbers are derived from the source frame rate
// when ffprobe reported one.
func (s *Sampler) collect(outDir string, frameRate float64) ([]Frame, error) {
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, fmt.Errorf("list frame directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "frame_") && strings.HasSuffix(name, ".jpg") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	sampled := make([]Frame, 0, len(names))
	for i, name := range names {
		timestamp := float64(i) * s.interval
		frame := Frame{
			Index:     i,
			Timestamp: timestamp,
			Path:      filepath.Join(outDir, name),
		}
		if frameRate > 0 {
			frame.FrameNumber = int(math.Round(timestamp * frameRate))
		}
		sampled = append(sampled, frame)
	}
	return sampled, nil
}
