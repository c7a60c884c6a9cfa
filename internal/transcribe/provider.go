package transcribe

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"

	"recap/internal/config"
	"recap/internal/logging"
	"recap/internal/timeline"
)

// Provider produces transcript segments for a recording.
type Provider interface {
	// Name identifies the provider in logs and progress output.
	Name() string
	// Transcribe returns the recording's speech in timestamp order.
	Transcribe(ctx context.Context, videoPath string) ([]timeline.TranscriptSegment, error)
}

// Chain tries providers in order, falling back when one fails. The last
// provider's error is returned only when every provider fails.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewChain builds a fallback chain over the given providers.
func NewChain(logger *slog.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    logging.NewComponentLogger(logger, "transcribe"),
	}
}

func (c *Chain) Name() string {
	return "chain"
}

func (c *Chain) Transcribe(ctx context.Context, videoPath string) ([]timeline.TranscriptSegment, error) {
	var lastErr error
	for _, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		segments, err := provider.Transcribe(ctx, videoPath)
		if err == nil {
			return segments, nil
		}
		lastErr = err
		c.logger.WarnContext(ctx, "transcription provider failed, trying next",
			logging.String("provider", provider.Name()),
			logging.Error(err))
	}
	if lastErr == nil {
		lastErr = errors.New("transcribe: no providers configured")
	}
	return nil, lastErr
}

// Select builds the provider stack described by the configuration. The
// "auto" provider uses whisper when the binary is on PATH and otherwise
// degrades to a silent timeline.
func Select(cfg *config.Config, workDir string, logger *slog.Logger) Provider {
	switch cfg.Transcription.Provider {
	case "none":
		return NullProvider{}
	case "whisper":
		return NewChain(logger, NewWhisperProvider(cfg, workDir, logger))
	default:
		if _, err := exec.LookPath(cfg.Transcription.WhisperBinary); err != nil {
			logging.NewComponentLogger(logger, "transcribe").Warn(
				"whisper binary not found, timeline will be visual only",
				logging.String("binary", cfg.Transcription.WhisperBinary))
			return NullProvider{}
		}
		return NewChain(logger, NewWhisperProvider(cfg, workDir, logger), NullProvider{})
	}
}

// NullProvider yields an empty transcript, producing a visual-only timeline.
type NullProvider struct{}

func (NullProvider) Name() string {
	return "none"
}

func (NullProvider) Transcribe(context.Context, string) ([]timeline.TranscriptSegment, error) {
	return []timeline.TranscriptSegment{}, nil
}
