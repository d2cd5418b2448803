package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/taigrr/reflex/pkg/game"
	"github.com/taigrr/reflex/pkg/render"
)

// Headless frame size: the pixel size of a 160x48 terminal.
const (
	botFrameWidth  = 160
	botFrameHeight = 96
)

// botMaxSeconds bounds a headless session in simulated time.
const botMaxSeconds = 600

// runBot plays one session with the auto-swing bot at a fixed step of one
// frame and writes the result to w. When framePath is set the last frame is
// saved there as a PNG.
func runBot(ctx context.Context, w io.Writer, s *setup, framePath string) error {
	p, err := newPlayer(s, render.NewFramebuffer(botFrameWidth, botFrameHeight))
	if err != nil {
		return err
	}

	fps := s.file.Display.FPS
	dt := 1 / float64(fps)
	bot := game.NewAutoSwing(s.game)

	p.game.Start()
	snap := p.game.Snapshot()
	sessionID := snap.SessionID
	hits, swings := 0, 0

	for frame := 0; snap.Phase != game.PhaseEnded; frame++ {
		if frame >= botMaxSeconds*fps {
			return errors.New("bot session did not finish")
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if bot.Step(p.game, snap) {
			swings++
		}
		snap = p.step(dt)
		for _, ev := range snap.Events {
			if ev.Kind == game.EventHit {
				hits++
			}
		}
	}

	s.log.Info("bot session finished",
		zap.String("session", sessionID),
		zap.Int("hits", hits),
		zap.Int("swings", swings),
	)

	lines := GameOverLines(snap)
	lines = lines[:len(lines)-1]
	fmt.Fprintf(w, "session %s (%s)\n", sessionID, s.variant)
	fmt.Fprintln(w, strings.Join(lines, "\n"))
	fmt.Fprintf(w, "Hits: %d of %d swings\n", hits, swings)

	if framePath != "" {
		if err := p.scene.Framebuffer().SavePNG(framePath); err != nil {
			return fmt.Errorf("save frame: %w", err)
		}
		fmt.Fprintf(w, "Frame saved to %s\n", framePath)
	}
	return nil
}
