package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"

	"github.com/taigrr/reflex/pkg/game"
	"github.com/taigrr/reflex/pkg/models"
	"github.com/taigrr/reflex/pkg/render"
)

// maxFrameDT caps the simulation step after a stall so the ball cannot
// tunnel through the bat.
const maxFrameDT = 0.1

// hitShake is the camera kick velocity on a hit, in world units per second.
const hitShake = 1.5

type inputKind int

const (
	inputNone inputKind = iota
	inputSwing
	inputStart
	inputReset
	inputQuit
	inputResize
)

// input is a terminal event reduced to what the game loop cares about.
type input struct {
	kind          inputKind
	width, height int
}

// translate maps a terminal event to a game input.
func translate(ev uv.Event) input {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		return input{kind: inputResize, width: ev.Width, height: ev.Height}
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c", "q"):
			return input{kind: inputQuit}
		case ev.MatchString("space"):
			return input{kind: inputSwing}
		case ev.MatchString("s", "enter"):
			return input{kind: inputStart}
		case ev.MatchString("r"):
			return input{kind: inputReset}
		}
	case uv.MouseClickEvent:
		if ev.Button == uv.MouseLeft {
			return input{kind: inputSwing}
		}
	}
	return input{kind: inputNone}
}

// player owns the game and everything drawn from it. All of its methods run
// on the frame loop goroutine.
type player struct {
	game  *game.Game
	scene *render.Scene
	shake *Shake
	hud   *HUD
	log   *zap.Logger
}

func newPlayer(s *setup, fb *render.Framebuffer) (*player, error) {
	g, err := game.New(s.game, s.log)
	if err != nil {
		return nil, err
	}

	bat, err := loadBat(s.file.Display.BatModel)
	if err != nil {
		return nil, err
	}
	if bat != nil {
		s.log.Info("bat model loaded",
			zap.String("name", bat.Name),
			zap.Int("triangles", bat.TriangleCount()),
		)
	}

	rgb, err := s.file.Display.BackgroundRGB()
	if err != nil {
		return nil, err
	}
	palette := render.DefaultPalette(s.variant)
	palette.Background = render.RGB(rgb[0], rgb[1], rgb[2])

	fps := s.file.Display.FPS
	return &player{
		game:  g,
		scene: render.NewScene(fb, bat, palette, s.game.SpawnPoint()),
		shake: NewShake(fps, s.file.Display.Shake),
		hud:   NewHUD(fps),
		log:   s.log,
	}, nil
}

// loadBat loads a replacement bat scaled to one unit tall. An empty path
// keeps the default cylinder.
func loadBat(path string) (*models.Mesh, error) {
	if path == "" {
		return nil, nil
	}
	mesh, err := models.LoadGLB(path)
	if err != nil {
		return nil, fmt.Errorf("load bat model: %w", err)
	}
	mesh.FitHeight(1)
	return mesh, nil
}

// apply handles one input and reports whether the loop should keep running.
func (p *player) apply(in input) bool {
	switch in.kind {
	case inputQuit:
		return false
	case inputSwing:
		p.game.Swing()
	case inputStart:
		p.game.Start()
	case inputReset:
		p.game.Reset()
	}
	return true
}

// step advances the game by dt and draws the scene into the framebuffer.
func (p *player) step(dt float64) game.Snapshot {
	if dt > maxFrameDT {
		dt = maxFrameDT
	}
	snap := p.game.Tick(dt)
	if snap.Has(game.EventHit) {
		p.shake.Kick(hitShake)
		p.hud.OnHit()
	}
	p.shake.Update()
	p.hud.Update()
	p.scene.Draw(snap, p.shake.Offset())
	return snap
}

func runInteractive(ctx context.Context, s *setup) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	fmt.Fprint(os.Stdout, ansi.SetModeMouseNormal+ansi.SetModeMouseExtSgr)

	cleanup := func() {
		fmt.Fprint(os.Stdout, ansi.ResetModeMouseNormal+ansi.ResetModeMouseExtSgr)
		term.ExitAltScreen()
		term.ShowCursor()
		_ = term.Shutdown(context.Background())
	}
	defer cleanup()

	termRenderer := render.NewTerminalRenderer(term, width, height)
	p, err := newPlayer(s, render.NewFramebuffer(termRenderer.FramebufferSize()))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The game is not safe for concurrent use, so the event goroutine only
	// forwards inputs to the frame loop.
	inputs := make(chan input, 16)
	go func() {
		for ev := range term.Events() {
			in := translate(ev)
			if in.kind == inputNone {
				continue
			}
			select {
			case inputs <- in:
			case <-ctx.Done():
				return
			}
		}
	}()

	targetDuration := time.Second / time.Duration(s.file.Display.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

	drain:
		for {
			select {
			case in := <-inputs:
				if in.kind == inputResize {
					width, height = in.width, in.height
					term.Erase()
					term.Resize(width, height)
					termRenderer = render.NewTerminalRenderer(term, width, height)
					p.scene.Resize(render.NewFramebuffer(termRenderer.FramebufferSize()))
					p.log.Debug("terminal resized", zap.Int("width", width), zap.Int("height", height))
					continue
				}
				if !p.apply(in) {
					return nil
				}
			default:
				break drain
			}
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		snap := p.step(dt)

		termRenderer.Render(p.scene.Framebuffer())
		p.hud.UpdateFPS()
		p.hud.Draw(term, uv.Rect(0, 0, width, height), snap)
		if err := termRenderer.Flush(); err != nil {
			return err
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
