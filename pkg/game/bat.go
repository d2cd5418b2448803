package game

import (
	"math"

	"github.com/taigrr/reflex/pkg/math3d"
)

// Bat is the player's bat. It swings from a wind-up pose to a follow-through
// pose over SwingDuration seconds and releases itself once that time has passed.
type Bat struct {
	Anchor      math3d.Vec3
	Orientation math3d.Euler
	Phase       float64 // swing progress in [0, 1]
	Swinging    bool

	contactSpent bool    // a hit already used this swing's contact window
	releaseIn    float64 // seconds until the swing auto-releases

	duration      float64
	tipOffset     math3d.Vec3
	orientedTip   bool
	windUp        math3d.Euler
	followThrough math3d.Euler
}

// NewBat creates an idle bat in the wind-up pose.
func NewBat(cfg Config) *Bat {
	return &Bat{
		Anchor:        cfg.BatAnchor,
		Orientation:   cfg.WindUp,
		duration:      cfg.SwingDuration,
		tipOffset:     cfg.TipOffset,
		orientedTip:   cfg.OrientedTip,
		windUp:        cfg.WindUp,
		followThrough: cfg.FollowThrough,
	}
}

// StartSwing begins a swing. It reports false and changes nothing when a
// swing is already in progress.
func (b *Bat) StartSwing() bool {
	if b.Swinging {
		return false
	}
	b.Swinging = true
	b.contactSpent = false
	b.releaseIn = b.duration
	return true
}

// EndSwing releases the bat and returns it to the wind-up pose.
func (b *Bat) EndSwing() {
	b.Swinging = false
	b.contactSpent = false
	b.releaseIn = 0
	b.Phase = 0
	b.Orientation = b.windUp
}

// CloseContactWindow stops the current swing from registering another hit.
func (b *Bat) CloseContactWindow() {
	if b.Swinging {
		b.contactSpent = true
	}
}

// ContactOpen reports whether the bat can hit the ball right now.
// The window spans the whole swing, not just the apex.
func (b *Bat) ContactOpen() bool {
	return b.Swinging && !b.contactSpent
}

// Tick advances the swing by dt seconds. A swing whose release time has
// elapsed is ended before the phase advances, so the contact window stays
// open for at least SwingDuration.
func (b *Bat) Tick(dt float64) {
	if !validDT(dt) {
		return
	}

	if b.Swinging && b.releaseIn <= 0 {
		b.EndSwing()
	}

	if b.Swinging {
		b.Phase = math.Min(b.Phase+dt/b.duration, 1)
		b.releaseIn -= dt
	} else {
		b.Phase = 0
	}

	b.Orientation = b.windUp.Lerp(b.followThrough, b.Phase)
}

// TipPosition returns the world-space point used for collision tests.
func (b *Bat) TipPosition() math3d.Vec3 {
	if b.orientedTip {
		return b.Anchor.Add(b.Orientation.Rotate(b.tipOffset))
	}
	return b.Anchor.Add(b.tipOffset)
}

// State samples the bat for the ball's collision test.
func (b *Bat) State() BatState {
	return BatState{
		Tip:         b.TipPosition(),
		ContactOpen: b.ContactOpen(),
	}
}
