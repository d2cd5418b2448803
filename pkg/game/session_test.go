package game

import (
	"math"
	"testing"
)

func TestSessionSpeedSchedule(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedIncrement = 0.4
	cfg.MaxPitches = 10
	s := NewSession(cfg)
	s.Start()

	want := map[int]float64{1: 1.4, 5: 3.0, 10: 5.0}
	for pitch := 1; pitch <= 10; pitch++ {
		s.OnPitchCompleted()
		if w, ok := want[pitch]; ok && math.Abs(s.SpeedMultiplier-w) > eps {
			t.Errorf("after pitch %d multiplier = %v, want %v", pitch, s.SpeedMultiplier, w)
		}
		if pitch < 10 && s.Phase != PhasePlaying {
			t.Fatalf("session ended early after pitch %d", pitch)
		}
	}

	if s.Phase != PhaseEnded {
		t.Errorf("phase = %v after 10 pitches, want ended", s.Phase)
	}
	if s.RespawnPending() {
		t.Error("ended session still has a pitch pending")
	}
}

func TestSessionIgnoresOutOfPhaseEvents(t *testing.T) {
	s := NewSession(DefaultConfig())

	if s.OnPitchCompleted() {
		t.Error("pitch completion in ready should not schedule a pitch")
	}
	s.OnHit()
	if s.Pitches != 0 || s.Score != 0 || s.SpeedMultiplier != 1 {
		t.Errorf("ready session mutated: %+v", s)
	}

	s.Start()
	id := s.ID
	if s.Start() {
		t.Error("Start while playing should be a no-op")
	}
	if s.ID != id {
		t.Error("Start while playing replaced the session ID")
	}
}

func TestSessionRestartFromEnded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPitches = 2
	s := NewSession(cfg)
	s.Start()
	first := s.ID
	s.OnHit()
	s.OnPitchCompleted()
	s.OnPitchCompleted()
	if s.Phase != PhaseEnded {
		t.Fatalf("phase = %v, want ended", s.Phase)
	}

	s.OnHit()
	if s.Score != 1 {
		t.Errorf("hit after the session ended was counted: score = %d", s.Score)
	}

	if !s.Start() {
		t.Fatal("Start from ended should begin a new session")
	}
	if s.Pitches != 0 || s.Score != 0 || s.SpeedMultiplier != 1 {
		t.Errorf("restart did not reset counters: %+v", s)
	}
	if s.ID == "" || s.ID == first {
		t.Errorf("restart should mint a fresh ID, got %q (was %q)", s.ID, first)
	}
}

func TestSessionReset(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.Start()
	s.OnPitchCompleted()
	s.Reset()

	if s.Phase != PhaseReady {
		t.Errorf("phase = %v, want ready", s.Phase)
	}
	if s.RespawnPending() || s.Tick(10) {
		t.Error("reset session still spawns a pitch")
	}
}

func TestSessionScoreTracking(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		want    int
	}{
		{"scoring", VariantScoring, 3},
		{"cooldown", VariantCooldown, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSession(ConfigFor(tc.variant))
			s.Start()
			for range 3 {
				s.OnHit()
			}
			if s.Score != tc.want {
				t.Errorf("score = %d, want %d", s.Score, tc.want)
			}
			if s.Pitches != 0 || s.Phase != PhasePlaying {
				t.Errorf("hits changed pitch count or phase: %+v", s)
			}
		})
	}
}

func TestSessionRespawnCountdown(t *testing.T) {
	s := NewSession(ConfigFor(VariantCooldown))
	s.Start()

	if !s.OnPitchCompleted() {
		t.Fatal("expected another pitch to be scheduled")
	}
	if s.Due() {
		t.Fatal("pitch due before the cooldown elapsed")
	}
	if s.Tick(1) {
		t.Fatal("pitch due after 1s of a 2s cooldown")
	}
	if !s.Tick(1) {
		t.Fatal("pitch not due after the full cooldown")
	}
	if s.Tick(1) {
		t.Error("pitch reported due twice")
	}
}

func TestSessionImmediateRespawn(t *testing.T) {
	s := NewSession(ConfigFor(VariantScoring))
	s.Start()
	s.OnPitchCompleted()

	if !s.Due() {
		t.Error("zero-delay pitch should be due immediately")
	}
	if s.Due() {
		t.Error("pitch reported due twice")
	}
}
