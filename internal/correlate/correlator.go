package correlate

import (
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"recap/internal/logging"
	"recap/internal/timeline"
)

// Confidence model constants. Visual-only segments get a flat low score;
// segments with speech start from a base and earn bonuses for visual
// references, discussion length, and screen stability.
const (
	confidenceVisualOnly  = 0.3
	confidenceBase        = 0.5
	visualRefBonus        = 0.1
	visualRefBonusCap     = 0.3
	longDiscussionWords   = 100
	shortDiscussionWords  = 50
	longDiscussionBonus   = 0.2
	shortDiscussionBonus  = 0.1
	stableScreenSeconds   = 30.0
	settledScreenSeconds  = 10.0
	stableScreenBonus     = 0.2
	settledScreenBonus    = 0.1
	maxSummarySentences   = 3
	maxTopics             = 5
	maxFrequentTopicWords = 3
	minTopicWordLength    = 5
)

var (
	sentenceSplit = regexp.MustCompile(`[.!?]+`)
	topicWord     = regexp.MustCompile(`[a-zA-Z]{4,}`)
)

// Correlator derives annotated timeline segments from screen segments and
// transcript speech.
type Correlator struct {
	lexicon Lexicon
	titler  cases.Caser
	logger  *slog.Logger
}

// New builds a correlator around the provided lexicon.
func New(lexicon Lexicon, logger *slog.Logger) *Correlator {
	return &Correlator{
		lexicon: lexicon,
		titler:  cases.Title(language.English),
		logger:  logging.NewComponentLogger(logger, "correlate"),
	}
}

// Correlate produces one timeline segment per screen segment, annotated with
// the speech spoken while that screen was visible.
func (c *Correlator) Correlate(ctx context.Context, screens []timeline.ScreenSegment, transcripts []timeline.TranscriptSegment) []timeline.TimelineSegment {
	c.logger.InfoContext(ctx, "correlating content",
		logging.Int("screen_segments", len(screens)),
		logging.Int("transcript_segments", len(transcripts)))

	segments := make([]timeline.TimelineSegment, 0, len(screens))
	for _, screen := range screens {
		transcript := MatchTranscript(transcripts, screen.StartTime, screen.EndTime)
		segments = append(segments, timeline.TimelineSegment{
			ID:                screen.ID,
			StartTime:         screen.StartTime,
			EndTime:           screen.EndTime,
			ScreenshotPath:    screen.ScreenshotPath,
			Transcript:        transcript,
			Summary:           c.summarize(transcript),
			KeyTopics:         c.keyTopics(transcript),
			ScreenDescription: c.describeScreen(transcript),
			ConfidenceScore:   c.confidence(transcript, screen.Duration()),
		})
	}

	c.logger.InfoContext(ctx, "timeline built", logging.Int("segments", len(segments)))
	return segments
}

// FilterByConfidence drops segments scoring below the minimum. The returned
// slice is non-nil even when everything is filtered out.
func (c *Correlator) FilterByConfidence(segments []timeline.TimelineSegment, minConfidence float64) []timeline.TimelineSegment {
	filtered := make([]timeline.TimelineSegment, 0, len(segments))
	for _, segment := range segments {
		if segment.ConfidenceScore >= minConfidence {
			filtered = append(filtered, segment)
		}
	}
	c.logger.Info("filtered segments by confidence",
		logging.Int("before", len(segments)),
		logging.Int("after", len(filtered)),
		logging.Float64("min_confidence", minConfidence))
	return filtered
}

// summarize builds an extractive summary: the opening sentence plus any
// later sentence that references something on screen, capped at three.
func (c *Correlator) summarize(transcript string) string {
	if transcript == "" {
		return "No discussion - Visual only"
	}

	var sentences []string
	for _, raw := range sentenceSplit.Split(transcript, -1) {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	if len(sentences) == 0 {
		return "No clear discussion points"
	}

	picked := []string{sentences[0]}
	for _, sentence := range sentences[1:] {
		if len(picked) >= maxSummarySentences {
			break
		}
		lower := strings.ToLower(sentence)
		if !containsAny(lower, c.lexicon.VisualReferences) {
			continue
		}
		if !containsString(picked, sentence) {
			picked = append(picked, sentence)
		}
	}

	summary := strings.Join(picked, ". ")
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}
	return summary
}

// keyTopics labels the transcript with matching content types, then appends
// the most repeated meaningful words.
func (c *Correlator) keyTopics(transcript string) []string {
	if transcript == "" {
		return nil
	}

	lower := strings.ToLower(transcript)
	var topics []string
	for _, contentType := range c.lexicon.ContentTypes {
		if containsAny(lower, contentType.Keywords) {
			topics = append(topics, c.titler.String(contentType.Label))
		}
	}

	frequency := make(map[string]int)
	for _, word := range topicWord.FindAllString(lower, -1) {
		if len(word) < minTopicWordLength {
			continue
		}
		if _, stop := c.lexicon.StopWords[word]; stop {
			continue
		}
		frequency[word]++
	}

	words := make([]string, 0, len(frequency))
	for word := range frequency {
		words = append(words, word)
	}
	// Ties break alphabetically so topic output is deterministic.
	sort.Slice(words, func(i, j int) bool {
		if frequency[words[i]] != frequency[words[j]] {
			return frequency[words[i]] > frequency[words[j]]
		}
		return words[i] < words[j]
	})

	added := 0
	for _, word := range words {
		if added >= maxFrequentTopicWords {
			break
		}
		if frequency[word] < 2 {
			break
		}
		topics = append(topics, c.titler.String(word))
		added++
	}

	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics
}

// describeScreen classifies the visible screen from transcript vocabulary.
// Rules are ordered and the first match wins.
func (c *Correlator) describeScreen(transcript string) string {
	if transcript == "" {
		return "Unknown screen content"
	}
	lower := strings.ToLower(transcript)
	for _, rule := range c.lexicon.Descriptions {
		if containsAny(lower, rule.Keywords) {
			return rule.Description
		}
	}
	return "Application screen"
}

// confidence scores how strongly the speech and the screen belong together.
func (c *Correlator) confidence(transcript string, duration float64) float64 {
	if transcript == "" {
		return confidenceVisualOnly
	}

	score := confidenceBase

	lower := strings.ToLower(transcript)
	refs := 0
	for _, keyword := range c.lexicon.VisualReferences {
		if strings.Contains(lower, keyword) {
			refs++
		}
	}
	score += min(float64(refs)*visualRefBonus, visualRefBonusCap)

	switch wordCount := len(strings.Fields(transcript)); {
	case wordCount > longDiscussionWords:
		score += longDiscussionBonus
	case wordCount > shortDiscussionWords:
		score += shortDiscussionBonus
	}

	switch {
	case duration > stableScreenSeconds:
		score += stableScreenBonus
	case duration > settledScreenSeconds:
		score += settledScreenBonus
	}

	return min(score, 1.0)
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
