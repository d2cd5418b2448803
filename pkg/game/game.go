package game

import (
	"fmt"
	"slices"

	"github.com/taigrr/reflex/pkg/math3d"
	"go.uber.org/zap"
)

// Snapshot is the state handed to the presentation layer after each tick.
type Snapshot struct {
	Epoch     uint64
	SessionID string

	Phase           SessionPhase
	Pitches         int
	MaxPitches      int
	Score           int
	TrackScore      bool
	SpeedMultiplier float64

	BallPosition math3d.Vec3
	BallVelocity math3d.Vec3
	BallPhase    BallPhase

	BatAnchor      math3d.Vec3
	BatOrientation math3d.Euler
	BatTip         math3d.Vec3
	BatPhase       float64
	Swinging       bool

	// Events lists everything that happened since the previous Tick.
	Events []Event
}

// BallVisible reports whether a pitch is currently in the air.
func (s Snapshot) BallVisible() bool {
	return s.Phase == PhasePlaying && s.BallPhase == BallInFlight
}

// Has reports whether an event of kind k is in the snapshot.
func (s Snapshot) Has(k EventKind) bool {
	return slices.ContainsFunc(s.Events, func(e Event) bool { return e.Kind == k })
}

// Game advances the ball, the bat and the session together. It is not safe
// for concurrent use; the host drives it from a single loop.
type Game struct {
	cfg     Config
	ball    *Ball
	bat     *Bat
	session *Session

	// epoch increments on every Start and Reset. Deferred work scheduled by
	// the host carries the epoch it was scheduled in.
	epoch  uint64
	events []Event

	baseLog *zap.Logger
	log     *zap.Logger
}

// New creates a game in the ready phase. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Game{
		cfg:     cfg,
		ball:    NewBall(cfg),
		bat:     NewBat(cfg),
		session: NewSession(cfg),
		baseLog: log,
		log:     log,
	}, nil
}

// Config returns the tuning the game was created with.
func (g *Game) Config() Config {
	return g.cfg
}

// Epoch returns the current session epoch.
func (g *Game) Epoch() uint64 {
	return g.epoch
}

// Phase returns the session phase.
func (g *Game) Phase() SessionPhase {
	return g.session.Phase
}

// Start begins a new session from ready or ended and pitches the first ball.
// It reports false while a session is already playing.
func (g *Game) Start() bool {
	if !g.session.Start() {
		return false
	}
	g.epoch++
	g.log = g.baseLog.With(zap.String("session", g.session.ID))
	g.bat.EndSwing()
	g.emit(EventSessionStarted, 0)
	g.log.Info("session started",
		zap.Uint64("epoch", g.epoch),
		zap.Int("max_pitches", g.session.MaxPitches()),
	)
	g.pitch()
	return true
}

// Reset abandons the current session and returns to the ready phase.
func (g *Game) Reset() {
	g.epoch++
	g.session.Reset()
	g.ball.Park()
	g.bat.EndSwing()
	g.log.Info("session reset", zap.Uint64("epoch", g.epoch))
	g.log = g.baseLog
}

// Swing starts a swing while a session is playing. It reports whether a new
// swing began.
func (g *Game) Swing() bool {
	if g.session.Phase != PhasePlaying {
		return false
	}
	if !g.bat.StartSwing() {
		return false
	}
	g.emit(EventSwing, g.currentPitch())
	return true
}

// EndSwing releases the bat on behalf of a deferred host callback scheduled
// during epoch. Callbacks from an earlier epoch are discarded and reported false.
func (g *Game) EndSwing(epoch uint64) bool {
	if epoch != g.epoch {
		g.log.Debug("discarded stale swing release",
			zap.Uint64("epoch", epoch),
			zap.Uint64("current", g.epoch),
		)
		return false
	}
	g.bat.EndSwing()
	return true
}

// Tick advances the simulation by dt seconds and returns the resulting
// state. A dt that is not a positive finite number changes nothing.
//
// The bat is advanced before the ball so the collision test sees this
// tick's contact window and tip.
func (g *Game) Tick(dt float64) Snapshot {
	if !validDT(dt) {
		return g.Snapshot()
	}

	if g.session.Tick(dt) {
		g.pitch()
	}

	g.bat.Tick(dt)
	res := g.ball.Tick(dt, g.bat.State())

	if res.Hit {
		g.bat.CloseContactWindow()
		g.session.OnHit()
		g.emit(EventHit, g.currentPitch())
		g.log.Debug("hit",
			zap.Int("pitch", g.currentPitch()),
			zap.Int("score", g.session.Score),
			zap.Float64("bat_phase", g.bat.Phase),
		)
	}

	if res.PitchCompleted {
		g.completePitch()
	}

	snap := g.Snapshot()
	g.events = g.events[:0]
	return snap
}

// Snapshot samples the current state without advancing it. Pending events
// are included but not consumed.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Epoch:           g.epoch,
		SessionID:       g.session.ID,
		Phase:           g.session.Phase,
		Pitches:         g.session.Pitches,
		MaxPitches:      g.session.MaxPitches(),
		Score:           g.session.Score,
		TrackScore:      g.session.TracksScore(),
		SpeedMultiplier: g.session.SpeedMultiplier,
		BallPosition:    g.ball.Position,
		BallVelocity:    g.ball.Velocity,
		BallPhase:       g.ball.Phase,
		BatAnchor:       g.bat.Anchor,
		BatOrientation:  g.bat.Orientation,
		BatTip:          g.bat.TipPosition(),
		BatPhase:        g.bat.Phase,
		Swinging:        g.bat.Swinging,
		Events:          slices.Clone(g.events),
	}
}

func (g *Game) pitch() {
	g.ball.Respawn(g.cfg.BaseSpeed, g.session.SpeedMultiplier)
	g.emit(EventPitchStarted, g.currentPitch())
	g.log.Debug("pitch started",
		zap.Int("pitch", g.currentPitch()),
		zap.Float64("speed", g.ball.Velocity.Len()),
	)
}

func (g *Game) completePitch() {
	pitch := g.session.Pitches + 1
	scheduled := g.session.OnPitchCompleted()
	g.emit(EventPitchCompleted, pitch)
	g.log.Debug("pitch completed",
		zap.Int("pitch", pitch),
		zap.Float64("speed_multiplier", g.session.SpeedMultiplier),
	)

	if !scheduled {
		if g.session.Phase == PhaseEnded {
			g.emit(EventSessionEnded, pitch)
			g.log.Info("session ended",
				zap.Int("pitches", g.session.Pitches),
				zap.Int("score", g.session.Score),
			)
		}
		return
	}

	if g.session.Due() {
		g.pitch()
	}
}

// currentPitch is the 1-based number of the pitch in the air or just finished.
func (g *Game) currentPitch() int {
	if g.session.Phase == PhaseReady {
		return 0
	}
	if g.ball.Phase == BallInFlight {
		return g.session.Pitches + 1
	}
	return g.session.Pitches
}

func (g *Game) emit(kind EventKind, pitch int) {
	g.events = append(g.events, Event{Kind: kind, Pitch: pitch})
}
