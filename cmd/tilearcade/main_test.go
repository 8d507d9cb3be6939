package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tilearcade/internal/audio/hostspeaker"
	"github.com/vovakirdan/tilearcade/internal/hw"
)

var _ hw.AudioSink = (*hostspeaker.Speaker)(nil)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestListShowsGames(t *testing.T) {
	out, err := execute(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, want := range []string{"heartman", "heartman_plus", "snake", "side-set"} {
		if !strings.Contains(out, want) {
			t.Errorf("list output missing %q:\n%s", want, out)
		}
	}
}

func TestLevelPrintsCounts(t *testing.T) {
	out, err := execute(t, "level", "heartman")
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if !strings.Contains(out, "walls 308  collectibles 20") {
		t.Errorf("unexpected counts:\n%s", out)
	}
	if strings.Count(out, "\n") < 28 {
		t.Errorf("expected the whole grid, got:\n%s", out)
	}
}

func TestRunWithScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "moves.yaml")
	data := "frames:\n  - at: 0\n    hold: 200\n    buttons: [right]\n"
	if err := os.WriteFile(script, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", "snake", "--frames", "100", "--script", script)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "frames 100  vblanks 101") {
		t.Errorf("expected 100 stepped frames:\n%s", out)
	}
	if !strings.Contains(out, "SNAKE") {
		t.Errorf("expected the rendered title on screen:\n%s", out)
	}
}

func TestRunUnknownGame(t *testing.T) {
	if _, err := execute(t, "run", "nope", "--frames", "1"); err == nil {
		t.Fatal("expected an error for an unknown game")
	}
}

func TestCuesExportWAV(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, "cues", "--out", dir, "level-up"); err != nil {
		t.Fatalf("cues: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, "level-up.wav"))
	if err != nil {
		t.Fatalf("wav not written: %v", err)
	}
	if info.Size() <= 44 {
		t.Errorf("wav has no samples: %d bytes", info.Size())
	}
}
