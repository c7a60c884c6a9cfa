package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"recap/internal/config"
	"recap/internal/pipeline"
	"recap/internal/report"
	"recap/internal/session"
	"recap/internal/transcribe"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		interval      float64
		threshold     float64
		minDuration   float64
		minConfidence float64
		transcriptSRT string
		noSpeech      bool
		jsonOutput    bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <video>",
		Short: "Analyze a screen recording into an annotated timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoPath, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			if _, err := os.Stat(videoPath); err != nil {
				return fmt.Errorf("video file: %w", err)
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			return ctx.withStore(cmd, func(cfg *config.Config, store *session.Store) error {
				if cmd.Flags().Changed("interval") {
					cfg.Analysis.SampleInterval = interval
				}
				if cmd.Flags().Changed("threshold") {
					cfg.Analysis.SimilarityThreshold = threshold
				}
				if cmd.Flags().Changed("min-duration") {
					cfg.Analysis.MinSegmentDuration = minDuration
				}
				if cmd.Flags().Changed("min-confidence") {
					cfg.Analysis.MinConfidence = minConfidence
				}
				if err := cfg.Validate(); err != nil {
					return err
				}

				var opts []pipeline.Option
				switch {
				case noSpeech:
					opts = append(opts, pipeline.WithProvider(transcribe.NullProvider{}))
				case transcriptSRT != "":
					srtPath, err := config.ExpandPath(transcriptSRT)
					if err != nil {
						return err
					}
					opts = append(opts, pipeline.WithProvider(transcribe.NewSRTProvider(srtPath)))
				}

				result, err := pipeline.New(cfg, store, logger, opts...).Run(cmd.Context(), videoPath)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if jsonOutput {
					encoder := json.NewEncoder(out)
					encoder.SetIndent("", "  ")
					return encoder.Encode(result.Export)
				}

				fmt.Fprintf(out, "Session %s completed: %d segments\n", result.Session.ID, len(result.Export.Segments))
				fmt.Fprintln(out, report.RenderTimelineTable(result.Export.Segments))
				if result.SpeechStats.SegmentCount > 0 {
					fmt.Fprintf(out, "Speech: %.0f%% of %.0fs, %.0f wpm, %d pauses\n",
						result.SpeechStats.SpeechRatio*100,
						result.SpeechStats.TotalDuration,
						result.SpeechStats.SpeakingRateWPM,
						result.SpeechStats.PauseCount)
				}
				fmt.Fprintf(out, "Timeline exported to %s\n", result.ExportPath)
				return nil
			})
		},
	}

	cmd.Flags().Float64Var(&interval, "interval", 1.0, "Frame sampling interval in seconds")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.85, "Similarity threshold for screen changes (0-1)")
	cmd.Flags().Float64Var(&minDuration, "min-duration", 2.0, "Minimum segment duration in seconds")
	cmd.Flags().Float64Var(&minConfidence, "min-confidence", 0, "Drop timeline segments below this confidence")
	cmd.Flags().StringVar(&transcriptSRT, "transcript", "", "Use an SRT subtitle file instead of speech recognition")
	cmd.Flags().BoolVar(&noSpeech, "no-speech", false, "Skip transcription and build a visual-only timeline")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the timeline export as JSON")
	return cmd
}
