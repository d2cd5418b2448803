// Package game implements the per-frame simulation of the reflex mini-game:
// ball flight, the bat swing, and the session that counts pitches and hits.
//
// Nothing in this package starts goroutines or reads the clock. The host
// calls Game.Tick once per display frame with the elapsed seconds, and feeds
// swing and start requests in between ticks.
package game

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/taigrr/reflex/pkg/math3d"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid game config")

// Variant selects one of the built-in tunings.
type Variant int

const (
	// VariantScoring respawns immediately, counts hits and speeds up by 0.5 per pitch.
	VariantScoring Variant = iota
	// VariantCooldown waits two seconds between pitches, speeds up by 0.4 and keeps no score.
	VariantCooldown
)

func (v Variant) String() string {
	switch v {
	case VariantScoring:
		return "scoring"
	case VariantCooldown:
		return "cooldown"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant maps a variant name to its Variant. Matching is case-insensitive.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scoring", "score":
		return VariantScoring, nil
	case "cooldown", "practice":
		return VariantCooldown, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (use scoring or cooldown)", s)
	}
}

// Config holds every tunable constant of the simulation.
// Distances are world units, speeds are units per second and durations are seconds.
type Config struct {
	BoundZ        float64 // half-extent of the field; the pitch ends past ±BoundZ
	ContactRadius float64 // ball-to-tip distance that registers a hit
	BounceSpeed   float64 // speed of the ball after a hit
	BaseSpeed     float64 // launch speed before the multiplier

	SwingDuration float64 // seconds for the bat to go from wind-up to follow-through
	RespawnDelay  float64 // cooldown between a completed pitch and the next spawn

	MaxPitches     int
	SpeedIncrement float64 // added to the speed multiplier after each pitch
	TrackScore     bool

	// OrientedTip rotates TipOffset by the bat orientation. When false the
	// offset is applied in world space, so the tip height ignores the swing.
	OrientedTip bool

	SpawnHeight   float64 // the ball spawns at (0, SpawnHeight, -BoundZ)
	BatAnchor     math3d.Vec3
	TipOffset     math3d.Vec3
	WindUp        math3d.Euler
	FollowThrough math3d.Euler
}

// DefaultConfig returns the scoring variant.
func DefaultConfig() Config {
	return ConfigFor(VariantScoring)
}

// ConfigFor returns the tuning for variant v. Unknown variants get the scoring tuning.
func ConfigFor(v Variant) Config {
	cfg := Config{
		BoundZ:         10,
		ContactRadius:  0.3,
		BounceSpeed:    15,
		BaseSpeed:      10,
		SwingDuration:  0.3,
		RespawnDelay:   0,
		MaxPitches:     10,
		SpeedIncrement: 0.5,
		TrackScore:     true,
		SpawnHeight:    1.5,
		BatAnchor:      math3d.V3(0, 1.2, 7),
		TipOffset:      math3d.V3(0, 0.5, 0),
		WindUp:         math3d.Euler{X: 0, Y: -math.Pi / 4, Z: -math.Pi / 4},
		FollowThrough:  math3d.Euler{X: -math.Pi / 4, Y: math.Pi / 4, Z: math.Pi / 4},
	}
	if v == VariantCooldown {
		cfg.RespawnDelay = 2
		cfg.SpeedIncrement = 0.4
		cfg.TrackScore = false
	}
	return cfg
}

// Validate reports every out-of-range field.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, name, v))
		}
	}

	positive("bound_z", c.BoundZ)
	positive("contact_radius", c.ContactRadius)
	positive("bounce_speed", c.BounceSpeed)
	positive("base_speed", c.BaseSpeed)
	positive("swing_duration", c.SwingDuration)

	if !(c.RespawnDelay >= 0) || math.IsInf(c.RespawnDelay, 0) {
		errs = append(errs, fmt.Errorf("%w: respawn_delay must be >= 0, got %v", ErrInvalidConfig, c.RespawnDelay))
	}
	if !(c.SpeedIncrement >= 0) || math.IsInf(c.SpeedIncrement, 0) {
		errs = append(errs, fmt.Errorf("%w: speed_increment must be >= 0, got %v", ErrInvalidConfig, c.SpeedIncrement))
	}
	if c.MaxPitches < 1 {
		errs = append(errs, fmt.Errorf("%w: max_pitches must be at least 1, got %d", ErrInvalidConfig, c.MaxPitches))
	}
	if math.Abs(c.SpawnHeight) >= c.BoundZ || math.IsNaN(c.SpawnHeight) {
		errs = append(errs, fmt.Errorf("%w: spawn_height %v must lie inside the field", ErrInvalidConfig, c.SpawnHeight))
	}
	if !c.BatAnchor.IsFinite() || !c.TipOffset.IsFinite() {
		errs = append(errs, fmt.Errorf("%w: bat anchor and tip offset must be finite", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// SpawnPoint is where every pitch starts.
func (c Config) SpawnPoint() math3d.Vec3 {
	return math3d.V3(0, c.SpawnHeight, -c.BoundZ)
}
