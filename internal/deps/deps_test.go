package deps

import (
	"os"
	"path/filepath"
	"testing"

	"recap/internal/testsupport"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestCheckBinariesHandlesUnconfiguredCommand(t *testing.T) {
	results := CheckBinaries([]Requirement{{Name: "Blank", Command: "  "}})
	if results[0].Available {
		t.Fatal("blank command should be unavailable")
	}
	if results[0].Detail != "command not configured" {
		t.Fatalf("unexpected detail: %q", results[0].Detail)
	}
}

func TestDefaultsAndMissingRequired(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Transcription.WhisperBinary = "clearly-not-present-binary"

	reqs := Defaults(cfg)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 default requirements, got %d", len(reqs))
	}

	results := CheckBinaries(reqs)
	missing := MissingRequired(results)
	for _, name := range missing {
		if name == "Whisper" {
			t.Fatal("whisper is optional and should not be reported as required")
		}
	}
}
