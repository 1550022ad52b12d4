package commands

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/primeharmonic/swipe/pkg/pitch"
	"github.com/primeharmonic/swipe/pkg/wavio"
)

func TestParseRange(t *testing.T) {
	minHz, maxHz, err := parseRange("100:600")
	if err != nil {
		t.Fatalf("parseRange: %v", err)
	}
	if minHz != 100 || maxHz != 600 {
		t.Fatalf("got (%g, %g), want (100, 600)", minHz, maxHz)
	}

	if _, _, err := parseRange("not-a-range"); err == nil {
		t.Fatal("expected error for malformed range")
	}
	if _, _, err := parseRange("abc:600"); err == nil {
		t.Fatal("expected error for non-numeric min")
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName(""); got != "<stdin>" {
		t.Fatalf("displayName(\"\") = %q", got)
	}
	if got := displayName("x.wav"); got != "x.wav" {
		t.Fatalf("displayName(x.wav) = %q", got)
	}
}

func sineWAV(t *testing.T, freq, fs float64, seconds float64) []byte {
	t.Helper()
	n := int(seconds * fs)
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/fs)
	}
	var buf bytes.Buffer
	if err := wavio.Encode(&buf, samples, int(fs)); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return buf.Bytes()
}

func TestRunSingleEndToEnd(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.txt")

	if err := os.WriteFile(inPath, sineWAV(t, 200, 16000, 1.0), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg := pitch.DefaultConfig()
	cfg.Dt = 0.01
	if err := runSingle(context.Background(), inPath, outPath, cfg, outputOptions{}); err != nil {
		t.Fatalf("runSingle: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) < 50 {
		t.Fatalf("got %d output lines, expected ~100", len(lines))
	}

	voiced := 0
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			t.Fatalf("malformed line %q", line)
		}
		if fields[1] != "NaN" {
			voiced++
		}
	}
	if voiced == 0 {
		t.Fatal("expected at least some voiced frames for a clean 200Hz sine")
	}
}
