// Package transcribe turns recording audio into transcript segments.
//
// Speech sources are modeled as Providers: a whisper CLI runner, an SRT
// sidecar loader, and a silent fallback. A Chain tries providers in order
// and falls back on failure so a broken whisper install degrades the
// timeline to visual-only instead of failing the run.
package transcribe
