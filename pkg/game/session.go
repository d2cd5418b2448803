package game

import (
	"github.com/google/uuid"
)

// SessionPhase is the top-level game state.
type SessionPhase int

const (
	PhaseReady SessionPhase = iota
	PhasePlaying
	PhaseEnded
)

func (p SessionPhase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session counts pitches and hits and decides when the next pitch spawns.
//
// Transitions outside the state machine (Start while playing, pitch events
// while not playing) are ignored rather than reported.
type Session struct {
	ID              string
	Phase           SessionPhase
	Pitches         int
	Score           int
	SpeedMultiplier float64

	maxPitches     int
	speedIncrement float64
	respawnDelay   float64
	trackScore     bool

	respawnPending bool
	respawnIn      float64
}

// NewSession creates a session in the ready phase.
func NewSession(cfg Config) *Session {
	return &Session{
		Phase:           PhaseReady,
		SpeedMultiplier: 1,
		maxPitches:      cfg.MaxPitches,
		speedIncrement:  cfg.SpeedIncrement,
		respawnDelay:    cfg.RespawnDelay,
		trackScore:      cfg.TrackScore,
	}
}

// MaxPitches is the number of pitches in a session.
func (s *Session) MaxPitches() int {
	return s.maxPitches
}

// TracksScore reports whether hits are counted.
func (s *Session) TracksScore() bool {
	return s.trackScore
}

// Start begins a fresh session from ready or ended. The caller spawns the
// first pitch immediately.
func (s *Session) Start() bool {
	if s.Phase == PhasePlaying {
		return false
	}
	s.ID = uuid.NewString()
	s.Phase = PhasePlaying
	s.Pitches = 0
	s.Score = 0
	s.SpeedMultiplier = 1
	s.respawnPending = false
	s.respawnIn = 0
	return true
}

// Reset returns to the ready phase from any phase.
func (s *Session) Reset() {
	s.Phase = PhaseReady
	s.respawnPending = false
	s.respawnIn = 0
}

// OnPitchCompleted records a finished pitch. It reports true when another
// pitch is scheduled, after which Tick and Due report when it spawns.
func (s *Session) OnPitchCompleted() bool {
	if s.Phase != PhasePlaying {
		return false
	}
	s.Pitches++
	s.SpeedMultiplier += s.speedIncrement
	if s.Pitches >= s.maxPitches {
		s.Phase = PhaseEnded
		s.respawnPending = false
		return false
	}
	s.respawnPending = true
	s.respawnIn = s.respawnDelay
	return true
}

// OnHit counts a hit when the session tracks score.
func (s *Session) OnHit() {
	if s.Phase != PhasePlaying || !s.trackScore {
		return
	}
	s.Score++
}

// RespawnPending reports whether a pitch is waiting out its cooldown.
func (s *Session) RespawnPending() bool {
	return s.respawnPending
}

// Tick advances the respawn cooldown by dt and reports whether the
// scheduled pitch is now due. See Due.
func (s *Session) Tick(dt float64) bool {
	if s.respawnPending && validDT(dt) {
		s.respawnIn -= dt
	}
	return s.Due()
}

// Due reports true exactly once per scheduled pitch, when its cooldown has
// elapsed. With a zero respawn delay a pitch is due as soon as it is scheduled.
func (s *Session) Due() bool {
	if !s.respawnPending || s.Phase != PhasePlaying || s.respawnIn > 0 {
		return false
	}
	s.respawnPending = false
	s.respawnIn = 0
	return true
}
