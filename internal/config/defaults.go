package config

const (
	defaultWorkspaceDir        = "~/.local/share/recap/workspace"
	defaultExportDir           = "~/.local/share/recap/exports"
	defaultLogDir              = "~/.local/share/recap/logs"
	defaultSampleInterval      = 1.0
	defaultSimilarityThreshold = 0.85
	defaultMinSegmentDuration  = 2.0
	defaultProvider            = "auto"
	defaultWhisperBinary       = "whisper"
	defaultWhisperModel        = "base"
	defaultLanguage            = "en"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkspaceDir: defaultWorkspaceDir,
			ExportDir:    defaultExportDir,
			LogDir:       defaultLogDir,
		},
		Analysis: Analysis{
			SampleInterval:      defaultSampleInterval,
			SimilarityThreshold: defaultSimilarityThreshold,
			MinSegmentDuration:  defaultMinSegmentDuration,
		},
		Transcription: Transcription{
			Provider:      defaultProvider,
			WhisperBinary: defaultWhisperBinary,
			WhisperModel:  defaultWhisperModel,
			Language:      defaultLanguage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
