// Package segmenter folds a sequence of sampled frames into screen segments.
//
// A segment boundary fires when the structural similarity between two
// consecutive frames drops below the configured threshold. Candidate
// segments shorter than the minimum duration are dropped as transient
// flicker, and the emitted segments carry contiguous identifiers.
package segmenter
