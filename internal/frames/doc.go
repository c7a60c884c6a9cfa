// Package frames extracts still frames from a screen recording at a fixed
// sampling interval using ffmpeg, after validating the source with ffprobe.
package frames
