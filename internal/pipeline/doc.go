// Package pipeline drives a full analysis run: sample frames, detect screen
// segments, transcribe speech, correlate, and export the timeline.
//
// The pipeline owns session bookkeeping. Each run creates a session row,
// reports stage progress as it moves, and finishes by recording either the
// export location or a classified failure status. A workspace lock keeps
// concurrent runs from trampling each other's frame directories.
package pipeline
