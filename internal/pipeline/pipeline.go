package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/gofrs/flock"

	"recap/internal/config"
	"recap/internal/correlate"
	"recap/internal/frames"
	"recap/internal/logging"
	"recap/internal/report"
	"recap/internal/segmenter"
	"recap/internal/services"
	"recap/internal/session"
	"recap/internal/similarity"
	"recap/internal/timeline"
	"recap/internal/transcribe"
)

// FrameSource samples still frames from a recording. The production source
// is the ffmpeg-backed frames.Sampler; tests substitute canned frames.
type FrameSource interface {
	Sample(ctx context.Context, videoPath, outDir string) (frames.Result, error)
}

// Result is the outcome of a completed analysis run.
type Result struct {
	Session     *session.Session
	Export      timeline.Export
	ExportPath  string
	SpeechStats transcribe.Stats
}

// Pipeline analyzes screen recordings end to end.
type Pipeline struct {
	cfg        *config.Config
	store      *session.Store
	logger     *slog.Logger
	source     FrameSource
	scorer     segmenter.Scorer
	diagnostic segmenter.Scorer
	provider   transcribe.Provider
}

// Option overrides a collaborator, primarily for tests.
type Option func(*Pipeline)

// WithFrameSource substitutes the frame sampler.
func WithFrameSource(source FrameSource) Option {
	return func(p *Pipeline) { p.source = source }
}

// WithScorer substitutes the boundary similarity scorer.
func WithScorer(scorer segmenter.Scorer) Option {
	return func(p *Pipeline) { p.scorer = scorer }
}

// WithProvider substitutes the transcription provider.
func WithProvider(provider transcribe.Provider) Option {
	return func(p *Pipeline) { p.provider = provider }
}

// New assembles a pipeline from configuration. Production collaborators are
// wired by default; options replace them.
func New(cfg *config.Config, store *session.Store, logger *slog.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:        cfg,
		store:      store,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		source:     frames.NewSampler(cfg.FFmpegBinary(), cfg.FFprobeBinary(), cfg.Analysis.SampleInterval, logger),
		scorer:     segmenter.ScorerFunc(similarity.Score),
		diagnostic: segmenter.ScorerFunc(similarity.HistogramDivergenceFiles),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.provider == nil {
		p.provider = transcribe.Select(cfg, filepath.Join(cfg.Paths.WorkspaceDir, "audio"), logger)
	}
	return p
}

// Run analyzes one recording and exports its timeline. The returned session
// reflects the final persisted state; on failure the session is updated with
// a classified status before the error is returned.
func (p *Pipeline) Run(ctx context.Context, videoPath string) (Result, error) {
	if err := p.cfg.EnsureDirectories(); err != nil {
		return Result{}, services.Wrap(services.ErrConfiguration, "setup", "ensure directories", "", err)
	}

	lock := flock.New(filepath.Join(p.cfg.Paths.WorkspaceDir, "recap.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "setup", "acquire workspace lock", "", err)
	}
	if !locked {
		return Result{}, services.Wrap(services.ErrValidation, "setup", "acquire workspace lock", "another analysis is already running", nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			p.logger.Warn("failed to release workspace lock", logging.Error(unlockErr))
		}
	}()

	sess, err := p.store.NewSession(ctx, videoPath)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "setup", "create session", "", err)
	}

	ctx = services.WithSessionID(ctx, sess.ID)
	logger := logging.WithContext(ctx, p.logger)
	logger.InfoContext(ctx, "analysis started", logging.String("source", videoPath))

	result, runErr := p.run(ctx, sess, videoPath)
	if runErr != nil {
		p.recordFailure(ctx, sess, runErr)
		return Result{}, runErr
	}

	logger.InfoContext(ctx, "analysis completed",
		logging.Int("segments", len(result.Export.Segments)),
		logging.String("export", result.ExportPath))
	return result, nil
}

func (p *Pipeline) run(ctx context.Context, sess *session.Session, videoPath string) (Result, error) {
	sampled, err := p.sampleStage(ctx, sess, videoPath)
	if err != nil {
		return Result{}, err
	}

	screens, err := p.segmentStage(ctx, sess, sampled.Frames)
	if err != nil {
		return Result{}, err
	}

	transcripts, stats, err := p.transcribeStage(ctx, sess, videoPath)
	if err != nil {
		return Result{}, err
	}

	segments, err := p.correlateStage(ctx, sess, screens, transcripts)
	if err != nil {
		return Result{}, err
	}

	exportPath := filepath.Join(p.cfg.Paths.ExportDir, sess.ID+".json")
	export := timeline.NewExport(segments)
	if err := report.WriteJSON(exportPath, export); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "export", "write timeline", "", err)
	}

	sess.Status = session.StatusCompleted
	sess.ProgressStage = "completed"
	sess.ProgressPercent = 100
	sess.ProgressMessage = ""
	sess.ExportPath = exportPath
	sess.SegmentCount = len(segments)
	if err := p.store.Update(ctx, sess); err != nil {
		return Result{}, services.Wrap(services.ErrTransient, "export", "finalize session", "", err)
	}

	return Result{Session: sess, Export: export, ExportPath: exportPath, SpeechStats: stats}, nil
}

func (p *Pipeline) sampleStage(ctx context.Context, sess *session.Session, videoPath string) (frames.Result, error) {
	ctx = services.WithStage(ctx, "sampling")
	if err := p.store.SetProgress(ctx, sess.ID, session.StatusSampling, "sampling", 10, "extracting frames"); err != nil {
		return frames.Result{}, services.Wrap(services.ErrTransient, "sampling", "set progress", "", err)
	}

	frameDir := filepath.Join(p.cfg.Paths.WorkspaceDir, sess.ID, "frames")
	sampled, err := p.source.Sample(ctx, videoPath, frameDir)
	if err != nil {
		return frames.Result{}, services.Wrap(services.ErrValidation, "sampling", "extract frames", "", err)
	}
	return sampled, nil
}

func (p *Pipeline) segmentStage(ctx context.Context, sess *session.Session, sampled []frames.Frame) ([]timeline.ScreenSegment, error) {
	ctx = services.WithStage(ctx, "segmenting")
	if err := p.store.SetProgress(ctx, sess.ID, session.StatusSampling, "segmenting", 35, "detecting screen changes"); err != nil {
		return nil, services.Wrap(services.ErrTransient, "segmenting", "set progress", "", err)
	}

	seg := segmenter.New(p.scorer, segmenter.Options{
		SimilarityThreshold: p.cfg.Analysis.SimilarityThreshold,
		MinDuration:         p.cfg.Analysis.MinSegmentDuration,
	}, p.logger).WithDiagnosticScorer(p.diagnostic)

	screens, err := seg.Run(ctx, sampled)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "segmenting", "detect screen changes", "", err)
	}
	return screens, nil
}

func (p *Pipeline) transcribeStage(ctx context.Context, sess *session.Session, videoPath string) ([]timeline.TranscriptSegment, transcribe.Stats, error) {
	ctx = services.WithStage(ctx, "transcribing")
	if err := p.store.SetProgress(ctx, sess.ID, session.StatusTranscribing, "transcribing", 55, "transcribing speech"); err != nil {
		return nil, transcribe.Stats{}, services.Wrap(services.ErrTransient, "transcribing", "set progress", "", err)
	}

	transcripts, err := p.provider.Transcribe(ctx, videoPath)
	if err != nil {
		return nil, transcribe.Stats{}, services.Wrap(services.ErrExternalTool, "transcribing", p.provider.Name(), "", err)
	}

	stats := transcribe.Analyze(transcripts)
	if stats.SegmentCount > 0 {
		logging.WithContext(ctx, p.logger).InfoContext(ctx, "speech analyzed",
			logging.Int("transcript_segments", stats.SegmentCount),
			logging.Float64("speech_ratio", stats.SpeechRatio),
			logging.Float64("speaking_rate_wpm", stats.SpeakingRateWPM))
	}
	return transcripts, stats, nil
}

func (p *Pipeline) correlateStage(ctx context.Context, sess *session.Session, screens []timeline.ScreenSegment, transcripts []timeline.TranscriptSegment) ([]timeline.TimelineSegment, error) {
	ctx = services.WithStage(ctx, "correlating")
	if err := p.store.SetProgress(ctx, sess.ID, session.StatusCorrelating, "correlating", 80, "correlating content"); err != nil {
		return nil, services.Wrap(services.ErrTransient, "correlating", "set progress", "", err)
	}

	correlator := correlate.New(correlate.DefaultLexicon(), p.logger)
	segments := correlator.Correlate(ctx, screens, transcripts)
	if minConfidence := p.cfg.Analysis.MinConfidence; minConfidence > 0 {
		segments = correlator.FilterByConfidence(segments, minConfidence)
	}
	return segments, nil
}

// recordFailure persists the classified failure state. Persistence errors
// here are logged rather than returned so the original failure wins.
func (p *Pipeline) recordFailure(ctx context.Context, sess *session.Session, runErr error) {
	sess.Status = services.FailureStatus(runErr)
	sess.ErrorMessage = runErr.Error()
	sess.ProgressMessage = ""
	if err := p.store.Update(ctx, sess); err != nil {
		logging.WithContext(ctx, p.logger).ErrorContext(ctx, "failed to persist failure state",
			logging.Error(fmt.Errorf("%v (original failure: %w)", err, runErr)))
	}
}
