package game

import (
	"math"
	"testing"

	"github.com/taigrr/reflex/pkg/math3d"
)

func eulerNear(a, b math3d.Euler) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestBatStartSwingTwice(t *testing.T) {
	bat := NewBat(DefaultConfig())

	if !bat.StartSwing() {
		t.Fatal("first StartSwing should begin a swing")
	}
	bat.Tick(0.1)
	phase := bat.Phase

	if bat.StartSwing() {
		t.Error("second StartSwing should be a no-op")
	}
	if !bat.Swinging {
		t.Error("bat stopped swinging")
	}
	if bat.Phase != phase || phase == 0 {
		t.Errorf("phase = %v, want unchanged %v", bat.Phase, phase)
	}
}

func TestBatSwingLifecycle(t *testing.T) {
	cfg := DefaultConfig()
	bat := NewBat(cfg)
	bat.StartSwing()

	bat.Tick(0.15)
	if math.Abs(bat.Phase-0.5) > eps {
		t.Errorf("phase after half the swing = %v, want 0.5", bat.Phase)
	}
	if !eulerNear(bat.Orientation, cfg.WindUp.Lerp(cfg.FollowThrough, 0.5)) {
		t.Errorf("orientation = %v, want midpoint pose", bat.Orientation)
	}

	bat.Tick(0.15)
	if bat.Phase != 1 || !bat.Swinging {
		t.Errorf("end of swing: phase = %v swinging = %v, want 1 and true", bat.Phase, bat.Swinging)
	}
	if !eulerNear(bat.Orientation, cfg.FollowThrough) {
		t.Errorf("orientation = %v, want follow-through", bat.Orientation)
	}

	bat.Tick(0.016)
	if bat.Swinging {
		t.Error("swing should auto-release after its duration")
	}
	if bat.Phase != 0 {
		t.Errorf("phase = %v after release, want 0", bat.Phase)
	}
	if !eulerNear(bat.Orientation, cfg.WindUp) {
		t.Errorf("orientation = %v, want wind-up", bat.Orientation)
	}
}

func TestBatPhaseMonotonicAndCapped(t *testing.T) {
	bat := NewBat(DefaultConfig())
	bat.StartSwing()

	last := 0.0
	for bat.Swinging {
		bat.Tick(0.07)
		if !bat.Swinging {
			break
		}
		if bat.Phase < last {
			t.Fatalf("phase decreased from %v to %v", last, bat.Phase)
		}
		if bat.Phase > 1 {
			t.Fatalf("phase %v exceeds 1", bat.Phase)
		}
		last = bat.Phase
	}
	if last != 1 {
		t.Errorf("final phase = %v, want 1", last)
	}
}

func TestBatIdleTickKeepsPhaseZero(t *testing.T) {
	bat := NewBat(DefaultConfig())
	for range 5 {
		bat.Tick(0.05)
	}
	if bat.Phase != 0 || bat.Swinging {
		t.Errorf("idle bat: phase = %v swinging = %v", bat.Phase, bat.Swinging)
	}
}

func TestBatContactWindow(t *testing.T) {
	bat := NewBat(DefaultConfig())
	if bat.ContactOpen() {
		t.Error("idle bat has an open contact window")
	}

	bat.StartSwing()
	bat.Tick(0.29)
	if !bat.ContactOpen() {
		t.Error("contact window should stay open for the whole swing")
	}

	bat.CloseContactWindow()
	if bat.ContactOpen() {
		t.Error("window still open after a hit closed it")
	}
	if !bat.Swinging {
		t.Error("closing the window must not end the swing")
	}

	bat.EndSwing()
	bat.StartSwing()
	if !bat.ContactOpen() {
		t.Error("new swing should reopen the window")
	}
}

func TestBatEndSwingResetsPhase(t *testing.T) {
	bat := NewBat(DefaultConfig())
	bat.StartSwing()
	bat.Tick(0.1)
	bat.EndSwing()

	if bat.Swinging || bat.Phase != 0 {
		t.Errorf("after EndSwing: swinging = %v phase = %v", bat.Swinging, bat.Phase)
	}
}

func TestBatTipPosition(t *testing.T) {
	t.Run("world offset", func(t *testing.T) {
		bat := NewBat(DefaultConfig())
		bat.StartSwing()
		bat.Tick(0.1)

		want := math3d.V3(0, 1.7, 7)
		if got := bat.TipPosition(); got.Distance(want) > eps {
			t.Errorf("tip = %v, want %v regardless of pose", got, want)
		}
	})

	t.Run("oriented", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.OrientedTip = true
		cfg.WindUp = math3d.Euler{Z: math.Pi / 2}
		bat := NewBat(cfg)

		// Rz(90) turns the up offset toward -X.
		want := math3d.V3(-0.5, 1.2, 7)
		if got := bat.TipPosition(); got.Distance(want) > eps {
			t.Errorf("tip = %v, want %v", got, want)
		}
	})
}

func TestBatIgnoresInvalidDT(t *testing.T) {
	bat := NewBat(DefaultConfig())
	bat.StartSwing()
	bat.Tick(math.NaN())
	bat.Tick(-1)

	if bat.Phase != 0 || !bat.Swinging {
		t.Errorf("invalid dt changed the bat: phase = %v swinging = %v", bat.Phase, bat.Swinging)
	}
}
