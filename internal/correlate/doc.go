// Package correlate joins screen segments with transcript speech to build
// the final annotated timeline.
//
// For every screen segment it gathers the speech spoken while that screen
// was visible, then derives a summary, key topics, a screen description,
// and a confidence score from that text. All keyword tables live in a
// Lexicon value injected at construction so callers can tune them without
// touching correlation logic.
package correlate
