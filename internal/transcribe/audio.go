package transcribe

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExtractAudio pulls the audio track out of a video as 16 kHz mono PCM,
// the input format whisper handles best.
func ExtractAudio(ctx context.Context, ffmpegBinary, videoPath, audioPath string) error {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-y",
		audioPath,
	}
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...)
	if output, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg audio extraction: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
