// Command recap analyzes screen recordings into annotated timelines.
//
// The CLI wraps the analysis pipeline: analyze runs a recording end to end,
// show and export read back stored results, sessions manages the run
// history, and config/deps cover setup and diagnostics.
package main
