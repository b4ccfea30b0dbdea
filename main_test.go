package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iburimskiy/crt-visualization/internal/crt"
)

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-mode", "lissajous", "-fv", "2", "-fh", "3", "-accel", "9000", "-persist", "250ms", "-log-level", "warn"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if o.params.Mode != crt.Lissajous {
		t.Errorf("Expected lissajous, got %v", o.params.Mode)
	}
	if o.params.AccelerationVoltage != 5000 {
		t.Errorf("Expected acceleration clamped to 5000, got %v", o.params.AccelerationVoltage)
	}
	if o.params.Persistence != 250*time.Millisecond {
		t.Errorf("Expected 250ms persistence, got %v", o.params.Persistence)
	}
}

func TestParseFlagsRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"-mode", "scope"},
		{"-log-level", "loud"},
		{"-accel", "high"},
	} {
		if _, err := parseFlags(args); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestRunHeadlessExports(t *testing.T) {
	dir := t.TempDir()
	o, err := parseFlags([]string{
		"-headless", "-mode", "lissajous", "-frames", "120",
		"-export", filepath.Join(dir, "trace.html"),
		"-wav", filepath.Join(dir, "tone.wav"), "-seconds", "0.5",
		"-log-level", "error",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := runHeadless(o); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}

	html, err := os.ReadFile(filepath.Join(dir, "trace.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "echarts") {
		t.Error("Expected an echarts page")
	}

	info, err := os.Stat(filepath.Join(dir, "tone.wav"))
	if err != nil {
		t.Fatal(err)
	}
	// 0.5 s of 16-bit stereo at 44.1 kHz plus header
	if info.Size() < 22050*4 {
		t.Errorf("Expected at least %d bytes of audio, got %d", 22050*4, info.Size())
	}
}

func TestRunHeadlessNegativeRecord(t *testing.T) {
	o, err := parseFlags([]string{"-headless", "-frames", "5", "-record", "-1", "-log-level", "error"})
	if err != nil {
		t.Fatal(err)
	}
	if err := runHeadless(o); err != nil {
		t.Fatalf("runHeadless: %v", err)
	}
}
