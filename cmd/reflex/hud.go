package main

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/reflex/pkg/game"
)

var (
	colorText   = lipgloss.Color("#F5F5F5")
	colorDim    = lipgloss.Color("#9A9AAE")
	colorAccent = lipgloss.Color("#FFD700")
	colorPanel  = lipgloss.Color("#1E1E28")
	colorBorder = lipgloss.Color("#3B82F6")
)

type hudStyles struct {
	status   lipgloss.Style
	scorePop lipgloss.Style
	fps      lipgloss.Style
	panel    lipgloss.Style
	title    lipgloss.Style
	body     lipgloss.Style
	hint     lipgloss.Style
}

func newHUDStyles() hudStyles {
	return hudStyles{
		status:   lipgloss.NewStyle().Foreground(colorText).Background(colorPanel).Bold(true).Padding(0, 1),
		scorePop: lipgloss.NewStyle().Foreground(colorPanel).Background(colorAccent).Bold(true).Padding(0, 1),
		fps:      lipgloss.NewStyle().Foreground(colorDim).Background(colorPanel).Padding(0, 1),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Background(colorPanel).
			Padding(1, 4).
			Align(lipgloss.Center),
		title: lipgloss.NewStyle().Foreground(colorAccent).Bold(true),
		body:  lipgloss.NewStyle().Foreground(colorText),
		hint:  lipgloss.NewStyle().Foreground(colorDim).Faint(true),
	}
}

// HUD draws the score line, the FPS counter and the title and game over panels.
type HUD struct {
	styles hudStyles

	fps       float64
	fpsFrames int
	fpsTime   time.Time

	pop springValue // score highlight after a hit
}

// NewHUD creates a HUD animated at fps frames per second.
func NewHUD(fps int) *HUD {
	return &HUD{
		styles:  newHUDStyles(),
		fpsTime: time.Now(),
		pop:     newSpringValue(fps, 5.0, 1.0),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// OnHit highlights the score line until the pop spring settles.
func (h *HUD) OnHit() {
	h.pop.Value = 1
}

// Update advances the HUD animation one frame.
func (h *HUD) Update() {
	h.pop.Update()
}

// StatusLine is the in-game score text.
func StatusLine(snap game.Snapshot) string {
	balls := fmt.Sprintf("Balls: %d / %d", snap.Pitches, snap.MaxPitches)
	if !snap.TrackScore {
		return balls
	}
	return fmt.Sprintf("Score: %d | %s", snap.Score, balls)
}

// TitleLines is the text of the ready screen.
func TitleLines(maxPitches int) []string {
	return []string{
		"Baseball Reflex Test",
		"Press space or click to swing when the ball is close to the bat!",
		fmt.Sprintf("You have %d balls to hit. Good luck!", maxPitches),
		"S or Enter to start",
	}
}

// GameOverLines is the text of the ended screen.
func GameOverLines(snap game.Snapshot) []string {
	lines := []string{"Game Over!"}
	if snap.TrackScore {
		lines = append(lines, fmt.Sprintf("Your final score: %d / %d", snap.Score, snap.MaxPitches))
	}
	return append(lines,
		fmt.Sprintf("Pitches thrown: %d", snap.Pitches),
		"S or Enter to play again, R for the title screen",
	)
}

// Draw renders the HUD for snap on top of whatever is already on scr.
func (h *HUD) Draw(scr uv.Screen, area uv.Rectangle, snap game.Snapshot) {
	switch snap.Phase {
	case game.PhaseReady:
		h.drawPanel(scr, area, TitleLines(snap.MaxPitches))
	case game.PhaseEnded:
		h.drawPanel(scr, area, GameOverLines(snap))
	}

	if snap.Phase != game.PhaseReady {
		style := h.styles.status
		if h.pop.Value > 0.05 {
			style = h.styles.scorePop
		}
		status := style.Render(StatusLine(snap))
		col := area.Min.X + max((area.Dx()-lipgloss.Width(status))/2, 0)
		drawString(scr, col, area.Min.Y, status)
	}

	fps := h.styles.fps.Render(fmt.Sprintf("%.0f FPS", h.fps))
	drawString(scr, area.Min.X, area.Max.Y-1, fps)
}

func (h *HUD) drawPanel(scr uv.Screen, area uv.Rectangle, lines []string) {
	rendered := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case i == 0:
			rendered[i] = h.styles.title.Render(line)
		case i == len(lines)-1:
			rendered[i] = "\n" + h.styles.hint.Render(line)
		default:
			rendered[i] = h.styles.body.Render(line)
		}
	}
	panel := h.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Center, rendered...))

	col := area.Min.X + max((area.Dx()-lipgloss.Width(panel))/2, 0)
	row := area.Min.Y + max((area.Dy()-lipgloss.Height(panel))/2, 0)
	drawString(scr, col, row, panel)
}

// drawString draws styled text with its top-left corner at (col, row).
func drawString(scr uv.Screen, col, row int, s string) {
	area := uv.Rect(col, row, lipgloss.Width(s), lipgloss.Height(s))
	uv.NewStyledString(s).Draw(scr, area)
}
