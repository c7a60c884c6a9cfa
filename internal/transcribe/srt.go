package transcribe

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"recap/internal/timeline"
)

// SRTProvider loads transcript segments from a subtitle sidecar file
// instead of running speech recognition.
type SRTProvider struct {
	path string
}

// NewSRTProvider builds a provider reading the given .srt file.
func NewSRTProvider(path string) *SRTProvider {
	return &SRTProvider{path: path}
}

func (s *SRTProvider) Name() string {
	return "srt"
}

func (s *SRTProvider) Transcribe(ctx context.Context, _ string) ([]timeline.TranscriptSegment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return LoadSRT(s.path)
}

// LoadSRT parses an SRT subtitle file into transcript segments ordered by
// start time. Cues without a valid timestamp line are skipped.
func LoadSRT(path string) ([]timeline.TranscriptSegment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read srt: %w", err)
	}

	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(normalized), "\n\n")

	segments := make([]timeline.TranscriptSegment, 0, len(blocks))
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		start, end, textStart, ok := cueTiming(lines)
		if !ok {
			continue
		}
		text := strings.TrimSpace(strings.Join(lines[textStart:], " "))
		if text == "" {
			continue
		}
		segments = append(segments, timeline.TranscriptSegment{
			StartTime: start,
			EndTime:   end,
			Text:      text,
		})
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].StartTime < segments[j].StartTime
	})
	return segments, nil
}

// cueTiming finds the "start --> end" line in a cue block and returns the
// parsed bounds plus the index of the first text line.
func cueTiming(lines []string) (start, end float64, textStart int, ok bool) {
	for i, line := range lines {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.Split(line, "-->")
		if len(parts) != 2 {
			continue
		}
		startSeconds, errStart := parseSRTTimestamp(parts[0])
		endSeconds, errEnd := parseSRTTimestamp(parts[1])
		if errStart != nil || errEnd != nil {
			continue
		}
		return startSeconds, endSeconds, i + 1, true
	}
	return 0, 0, 0, false
}

func parseSRTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	// Normalize period to comma (SRT standard uses comma for milliseconds)
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}
