package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunBot(t *testing.T) {
	s := testSetup(t)
	framePath := filepath.Join(t.TempDir(), "last.png")

	var out bytes.Buffer
	if err := runBot(context.Background(), &out, s, framePath); err != nil {
		t.Fatalf("runBot: %v", err)
	}

	text := out.String()
	for _, want := range []string{"session ", "(scoring)", "Game Over!", "Your final score:", "Pitches thrown: 10", "Hits:"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "play again") {
		t.Errorf("output contains the key hint:\n%s", text)
	}

	f, err := os.Open(framePath)
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if b := img.Bounds(); b.Dx() != botFrameWidth || b.Dy() != botFrameHeight {
		t.Errorf("frame size = %dx%d, want %dx%d", b.Dx(), b.Dy(), botFrameWidth, botFrameHeight)
	}
}

func TestRunBotCanceled(t *testing.T) {
	s := testSetup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := runBot(ctx, &out, s, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("wrote output for a canceled run: %q", out.String())
	}
}
