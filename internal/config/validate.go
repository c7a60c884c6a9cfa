package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateTranscription(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.WorkspaceDir == "" {
		return errors.New("paths.workspace_dir must be set")
	}
	if c.Paths.ExportDir == "" {
		return errors.New("paths.export_dir must be set")
	}
	if c.Paths.LogDir == "" {
		return errors.New("paths.log_dir must be set")
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.SampleInterval <= 0 {
		return errors.New("analysis.sample_interval must be positive (seconds)")
	}
	if c.Analysis.SimilarityThreshold <= 0 || c.Analysis.SimilarityThreshold >= 1 {
		return errors.New("analysis.similarity_threshold must be between 0 and 1 exclusive")
	}
	if c.Analysis.MinSegmentDuration < 0 {
		return errors.New("analysis.min_segment_duration must be >= 0")
	}
	if c.Analysis.MinConfidence < 0 || c.Analysis.MinConfidence > 1 {
		return errors.New("analysis.min_confidence must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateTranscription() error {
	switch c.Transcription.Provider {
	case "whisper", "none", "auto":
	default:
		return fmt.Errorf("transcription.provider: unsupported value %q", c.Transcription.Provider)
	}
	if c.Transcription.Provider != "none" && c.Transcription.WhisperBinary == "" {
		return errors.New("transcription.whisper_binary must be set unless transcription.provider is \"none\"")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json", "auto":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
