package segmenter

import (
	"context"
	"log/slog"

	"recap/internal/frames"
	"recap/internal/logging"
	"recap/internal/timeline"
)

// trailingSimilarityScore is the diagnostic difference percentage recorded
// on the final segment, which has no closing boundary comparison.
const trailingSimilarityScore = 80.0

// Scorer produces a similarity score in [0, 1] for a pair of frame files.
type Scorer interface {
	Score(pathA, pathB string) (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(pathA, pathB string) (float64, error)

func (f ScorerFunc) Score(pathA, pathB string) (float64, error) {
	return f(pathA, pathB)
}

// Options tunes boundary detection.
type Options struct {
	// SimilarityThreshold declares a boundary when the pairwise score drops
	// below it.
	SimilarityThreshold float64
	// MinDuration drops candidate segments shorter than this many seconds.
	MinDuration float64
}

// Segmenter detects screen changes across a frame sequence.
type Segmenter struct {
	scorer     Scorer
	diagnostic Scorer
	opts       Options
	logger     *slog.Logger
}

// New builds a segmenter with the given boundary scorer.
func New(scorer Scorer, opts Options, logger *slog.Logger) *Segmenter {
	return &Segmenter{
		scorer: scorer,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "segmenter"),
	}
}

// WithDiagnosticScorer attaches a secondary scorer evaluated only at
// boundaries for logging. It never influences segmentation.
func (s *Segmenter) WithDiagnosticScorer(scorer Scorer) *Segmenter {
	s.diagnostic = scorer
	return s
}

// foldState tracks the open segment while walking the frame sequence.
type foldState struct {
	start  frames.Frame
	nextID int
}

// Run walks the sampled frames in order and returns the detected screen
// segments. Fewer than two frames yields an empty, non-nil slice. A scorer
// failure on a pair is treated as a full screen change so a corrupt frame
// cannot silently glue two segments together.
func (s *Segmenter) Run(ctx context.Context, sampled []frames.Frame) ([]timeline.ScreenSegment, error) {
	segments := []timeline.ScreenSegment{}
	if len(sampled) < 2 {
		return segments, nil
	}

	state := foldState{start: sampled[0], nextID: 1}
	for i := 1; i < len(sampled); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		previous := sampled[i-1]
		current := sampled[i]

		score, err := s.scorer.Score(previous.Path, current.Path)
		if err != nil {
			s.logger.WarnContext(ctx, "similarity scoring failed, treating as screen change",
				logging.String("frame", current.Path),
				logging.Error(err))
			score = 0
		}

		if score >= s.opts.SimilarityThreshold {
			continue
		}

		s.logBoundary(ctx, previous, current, score)
		if segment, ok := s.closeSegment(state, current.Timestamp, score); ok {
			segments = append(segments, segment)
			state.nextID++
		}
		state.start = current
	}

	last := sampled[len(sampled)-1]
	if last.Timestamp > state.start.Timestamp {
		if segment, ok := s.closeTrailing(state, last.Timestamp); ok {
			segments = append(segments, segment)
		}
	}

	return segments, nil
}

// closeSegment emits the open segment ending at the boundary timestamp when
// it meets the minimum duration.
func (s *Segmenter) closeSegment(state foldState, end, score float64) (timeline.ScreenSegment, bool) {
	if end-state.start.Timestamp < s.opts.MinDuration {
		return timeline.ScreenSegment{}, false
	}
	return timeline.ScreenSegment{
		ID:              state.nextID,
		StartTime:       state.start.Timestamp,
		EndTime:         end,
		ScreenshotPath:  state.start.Path,
		FrameNumber:     state.start.FrameNumber,
		SimilarityScore: (1 - score) * 100,
	}, true
}

// closeTrailing emits the final segment, which ends at the last sampled
// timestamp and has no closing comparison to score.
func (s *Segmenter) closeTrailing(state foldState, end float64) (timeline.ScreenSegment, bool) {
	if end-state.start.Timestamp < s.opts.MinDuration {
		return timeline.ScreenSegment{}, false
	}
	return timeline.ScreenSegment{
		ID:              state.nextID,
		StartTime:       state.start.Timestamp,
		EndTime:         end,
		ScreenshotPath:  state.start.Path,
		FrameNumber:     state.start.FrameNumber,
		SimilarityScore: trailingSimilarityScore,
	}, true
}

func (s *Segmenter) logBoundary(ctx context.Context, previous, current frames.Frame, score float64) {
	attrs := []logging.Attr{
		logging.Float64("timestamp", current.Timestamp),
		logging.Float64("similarity", score),
	}
	if s.diagnostic != nil {
		if divergence, err := s.diagnostic.Score(previous.Path, current.Path); err == nil {
			attrs = append(attrs, logging.Float64("histogram_divergence", divergence))
		}
	}
	s.logger.DebugContext(ctx, "boundary detected", logging.Args(attrs...)...)
}
