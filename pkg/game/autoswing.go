package game

// AutoSwing is a deterministic player that swings when the ball is about to
// reach the bat tip. It drives the headless mode and whole-session tests.
type AutoSwing struct {
	// Lead is how many seconds before the ball reaches the tip plane the
	// swing starts. It should be shorter than the swing duration.
	Lead float64
}

// NewAutoSwing returns a bot that swings half a swing ahead of contact.
func NewAutoSwing(cfg Config) *AutoSwing {
	return &AutoSwing{Lead: cfg.SwingDuration / 2}
}

// TimeToContact returns the seconds until the ball crosses the tip's Z plane,
// and false when the ball is not approaching it.
func TimeToContact(s Snapshot) (float64, bool) {
	if !s.BallVisible() || s.BallVelocity.Z <= 0 {
		return 0, false
	}
	dz := s.BatTip.Z - s.BallPosition.Z
	if dz < 0 {
		return 0, false
	}
	return dz / s.BallVelocity.Z, true
}

// ShouldSwing reports whether the bot would swing given the snapshot.
func (a *AutoSwing) ShouldSwing(s Snapshot) bool {
	if s.Swinging {
		return false
	}
	t, ok := TimeToContact(s)
	return ok && t <= a.Lead
}

// Step swings on g when ShouldSwing says so and reports whether it did.
func (a *AutoSwing) Step(g *Game, s Snapshot) bool {
	if !a.ShouldSwing(s) {
		return false
	}
	return g.Swing()
}
