package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/reflex/pkg/math3d"
)

// springValue is a value pulled back to zero by a harmonica spring.
type springValue struct {
	Value    float64
	velocity float64
	spring   harmonica.Spring
}

func newSpringValue(fps int, frequency, damping float64) springValue {
	return springValue{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

// Update advances the spring one frame toward rest.
func (s *springValue) Update() {
	s.Value, s.velocity = s.spring.Update(s.Value, s.velocity, 0)
}

// Kick adds velocity.
func (s *springValue) Kick(v float64) {
	s.velocity += v
}

// Resting reports whether the value has settled.
func (s *springValue) Resting() bool {
	return math.Abs(s.Value) < 1e-3 && math.Abs(s.velocity) < 1e-3
}

// Shake offsets the camera after a hit. The springs are under-damped so the
// view wobbles a few times before settling.
type Shake struct {
	X, Y    springValue
	enabled bool
	kicks   int
}

// NewShake creates a shake updated fps times per second. A disabled shake
// always reports a zero offset.
func NewShake(fps int, enabled bool) *Shake {
	return &Shake{
		X:       newSpringValue(fps, 14.0, 0.2),
		Y:       newSpringValue(fps, 16.0, 0.25),
		enabled: enabled,
	}
}

// Kick starts a shake. Successive kicks alternate horizontal direction.
func (s *Shake) Kick(strength float64) {
	if !s.enabled {
		return
	}
	dir := 1.0
	if s.kicks%2 == 1 {
		dir = -1
	}
	s.kicks++
	s.X.Kick(dir * strength)
	s.Y.Kick(strength * 0.6)
}

// Update advances both springs one frame.
func (s *Shake) Update() {
	s.X.Update()
	s.Y.Update()
}

// Offset returns the current camera displacement.
func (s *Shake) Offset() math3d.Vec3 {
	if !s.enabled {
		return math3d.Zero3()
	}
	return math3d.V3(s.X.Value, s.Y.Value, 0)
}
