package game

import (
	"math"

	"github.com/taigrr/reflex/pkg/math3d"
)

// BallPhase is the life-cycle stage of the current pitch.
type BallPhase int

const (
	BallInFlight BallPhase = iota // moving and eligible for collision
	BallCooldown                  // parked until the session respawns it
)

func (p BallPhase) String() string {
	switch p {
	case BallInFlight:
		return "in_flight"
	case BallCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// BatState is what the ball needs to know about the bat for one tick.
type BatState struct {
	Tip         math3d.Vec3
	ContactOpen bool
}

// BallResult reports what happened to the ball during one tick.
type BallResult struct {
	PitchCompleted bool
	Hit            bool
}

// Ball owns the pitched ball's kinematics.
type Ball struct {
	Position math3d.Vec3
	Velocity math3d.Vec3
	Phase    BallPhase

	boundZ        float64
	contactRadius float64
	bounceSpeed   float64
	spawn         math3d.Vec3
}

// NewBall creates a ball parked in cooldown at the spawn point.
// It does not move until Respawn is called.
func NewBall(cfg Config) *Ball {
	return &Ball{
		Position:      cfg.SpawnPoint(),
		Phase:         BallCooldown,
		boundZ:        cfg.BoundZ,
		contactRadius: cfg.ContactRadius,
		bounceSpeed:   cfg.BounceSpeed,
		spawn:         cfg.SpawnPoint(),
	}
}

// Respawn starts a new pitch from the spawn point toward +Z.
func (b *Ball) Respawn(baseSpeed, multiplier float64) {
	b.Position = b.spawn
	b.Velocity = math3d.V3(0, 0, baseSpeed*multiplier)
	b.Phase = BallInFlight
}

// Park stops the ball where it is.
func (b *Ball) Park() {
	b.Velocity = math3d.Zero3()
	b.Phase = BallCooldown
}

// OutOfBounds reports whether the ball has left the field. The pitch axis is
// Z; X and Y share the same half-extent so a steep bounce still ends the pitch.
func (b *Ball) OutOfBounds() bool {
	p := b.Position
	return p.Z > b.boundZ || p.Z < -b.boundZ ||
		math.Abs(p.X) > b.boundZ || math.Abs(p.Y) > b.boundZ
}

// Tick advances the ball by dt seconds against the given bat state.
//
// The bounds test always wins over the collision test: a tick that ends the
// pitch never registers a hit. Invalid dt values leave the ball untouched.
func (b *Ball) Tick(dt float64, bat BatState) BallResult {
	if !validDT(dt) || b.Phase != BallInFlight {
		return BallResult{}
	}

	if b.OutOfBounds() {
		b.Park()
		return BallResult{PitchCompleted: true}
	}

	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	if b.OutOfBounds() {
		b.Park()
		return BallResult{PitchCompleted: true}
	}

	if !bat.ContactOpen || b.Position.Distance(bat.Tip) >= b.contactRadius {
		return BallResult{}
	}

	b.Velocity = BounceVelocity(b.Position, bat.Tip, b.bounceSpeed)
	return BallResult{Hit: true}
}

// BounceVelocity is the velocity of a ball at pos struck by a bat tip at tip.
// The direction away from the tip gets +1 added to Y before renormalizing, so
// the ball always leaves with some lift. A ball directly below the tip
// cancels out to zero and goes straight up.
func BounceVelocity(pos, tip math3d.Vec3, speed float64) math3d.Vec3 {
	dir := pos.Sub(tip).Normalize()
	dir.Y++
	if dir.LenSq() < 1e-18 {
		dir = math3d.Up()
	}
	return dir.Normalize().Scale(speed)
}

func validDT(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 0)
}
