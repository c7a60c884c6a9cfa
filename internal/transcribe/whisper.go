package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"recap/internal/config"
	"recap/internal/logging"
	"recap/internal/timeline"
)

// WhisperProvider transcribes by extracting the audio track and running the
// whisper CLI with JSON output.
type WhisperProvider struct {
	binary   string
	model    string
	language string
	ffmpeg   string
	workDir  string
	logger   *slog.Logger
}

// whisperOutput mirrors the JSON document the whisper CLI writes.
type whisperOutput struct {
	Text     string           `json:"text"`
	Segments []whisperSegment `json:"segments"`
}

type whisperSegment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	AvgLogprob float64 `json:"avg_logprob"`
}

// NewWhisperProvider builds a provider from the transcription config.
// Intermediate audio and JSON files land under workDir.
func NewWhisperProvider(cfg *config.Config, workDir string, logger *slog.Logger) *WhisperProvider {
	return &WhisperProvider{
		binary:   cfg.Transcription.WhisperBinary,
		model:    cfg.Transcription.WhisperModel,
		language: cfg.Transcription.Language,
		ffmpeg:   cfg.FFmpegBinary(),
		workDir:  workDir,
		logger:   logging.NewComponentLogger(logger, "whisper"),
	}
}

func (w *WhisperProvider) Name() string {
	return "whisper"
}

func (w *WhisperProvider) Transcribe(ctx context.Context, videoPath string) ([]timeline.TranscriptSegment, error) {
	if err := os.MkdirAll(w.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcription directory: %w", err)
	}

	audioPath := filepath.Join(w.workDir, "audio.wav")
	if err := ExtractAudio(ctx, w.ffmpeg, videoPath, audioPath); err != nil {
		return nil, err
	}
	defer os.Remove(audioPath)

	w.logger.InfoContext(ctx, "transcribing audio",
		logging.String("model", w.model),
		logging.String("language", w.language))

	args := []string{
		audioPath,
		"--model", w.model,
		"--language", w.language,
		"--output_format", "json",
		"--output_dir", w.workDir,
	}
	cmd := exec.CommandContext(ctx, w.binary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("whisper transcription: %w: %s", err, strings.TrimSpace(string(output)))
	}

	// whisper names the JSON document after the input audio file.
	jsonPath := filepath.Join(w.workDir, "audio.json")
	segments, err := parseWhisperJSON(jsonPath)
	if err != nil {
		return nil, err
	}

	w.logger.InfoContext(ctx, "transcription complete", logging.Int("segments", len(segments)))
	return segments, nil
}

// parseWhisperJSON loads a whisper JSON document and drops empty segments.
func parseWhisperJSON(path string) ([]timeline.TranscriptSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}

	var output whisperOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse whisper output: %w", err)
	}

	segments := make([]timeline.TranscriptSegment, 0, len(output.Segments))
	for _, segment := range output.Segments {
		text := strings.TrimSpace(segment.Text)
		if text == "" {
			continue
		}
		segments = append(segments, timeline.TranscriptSegment{
			StartTime:  segment.Start,
			EndTime:    segment.End,
			Text:       text,
			Confidence: segment.AvgLogprob,
		})
	}
	return segments, nil
}
