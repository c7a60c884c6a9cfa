// Package timeline defines the data model shared across the analysis
// pipeline: visually-stable screen segments detected from sampled video
// frames, transcript segments produced by a speech collaborator, and the
// combined timeline segments that pair each screen interval with its
// narration and derived annotations.
//
// All types are plain values with JSON tags; serializing a timeline to the
// Export record and reading it back is lossless. Segment lists are ordered
// by start time and screen/timeline segments never overlap.
package timeline
