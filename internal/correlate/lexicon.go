package correlate

// ContentType pairs a topic label with the transcript keywords that imply it.
type ContentType struct {
	Label    string
	Keywords []string
}

// DescriptionRule maps transcript keywords to a screen description. Rules
// are evaluated in order and the first match wins.
type DescriptionRule struct {
	Description string
	Keywords    []string
}

// Lexicon holds the keyword tables driving correlation. Values are treated
// as immutable after construction.
type Lexicon struct {
	// VisualReferences are words suggesting the speaker is pointing at
	// something on screen.
	VisualReferences []string
	// ContentTypes label segments by subject matter, checked in order.
	ContentTypes []ContentType
	// Descriptions classify the visible screen, first match wins.
	Descriptions []DescriptionRule
	// StopWords are excluded from frequency-based topic extraction.
	StopWords map[string]struct{}
}

// DefaultLexicon returns the standard screen-recording vocabulary.
func DefaultLexicon() Lexicon {
	return Lexicon{
		VisualReferences: []string{
			"see", "look", "here", "this", "that", "click", "button", "screen",
			"page", "window", "menu", "tab", "panel", "section", "area",
			"right", "left", "top", "bottom", "above", "below", "next to",
		},
		ContentTypes: []ContentType{
			{Label: "presentation", Keywords: []string{"slide", "presentation", "deck", "powerpoint"}},
			{Label: "code", Keywords: []string{"code", "function", "variable", "class", "method", "script"}},
			{Label: "browser", Keywords: []string{"website", "page", "url", "browser", "chrome", "firefox"}},
			{Label: "document", Keywords: []string{"document", "file", "text", "word", "pdf"}},
			{Label: "application", Keywords: []string{"app", "application", "software", "program", "tool"}},
			{Label: "demo", Keywords: []string{"demo", "demonstration", "example", "show", "tutorial"}},
		},
		Descriptions: []DescriptionRule{
			{Description: "PowerPoint presentation", Keywords: []string{"powerpoint", "slide", "presentation"}},
			{Description: "Code editor", Keywords: []string{"code", "editor", "vscode", "programming"}},
			{Description: "Web browser", Keywords: []string{"browser", "website", "chrome", "firefox", "url"}},
			{Description: "Document viewer", Keywords: []string{"document", "word", "text", "file"}},
			{Description: "Terminal/Command line", Keywords: []string{"terminal", "command", "console"}},
			{Description: "Dashboard/Analytics", Keywords: []string{"dashboard", "analytics", "chart", "graph"}},
			{Description: "Email application", Keywords: []string{"email", "outlook", "message"}},
			{Description: "Media player", Keywords: []string{"video", "player", "media"}},
		},
		StopWords: stopWordSet(
			"this", "that", "with", "have", "will", "from", "they", "been",
			"were", "said", "each", "which", "their", "time", "about", "would",
			"there", "could", "other", "more", "very", "what", "know", "just",
			"first", "into", "over", "think", "also", "your", "work", "life",
		),
	}
}

func stopWordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}
