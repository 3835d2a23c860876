package morph

import "testing"

func TestStateToggleAndTarget(t *testing.T) {
	var s State
	if s != Scattered {
		t.Fatalf("expected zero state to be scattered, got %v", s)
	}
	if s.Target() != 0 {
		t.Fatalf("expected scattered target 0, got %v", s.Target())
	}
	s = s.Toggle()
	if s != Assembled || s.Target() != 1 {
		t.Fatalf("expected assembled with target 1, got %v/%v", s, s.Target())
	}
	if s.Toggle() != Scattered {
		t.Fatal("expected toggle back to scattered")
	}
}

func TestParseState(t *testing.T) {
	if s, ok := ParseState("assembled"); !ok || s != Assembled {
		t.Fatalf("expected assembled, got %v %v", s, ok)
	}
	if _, ok := ParseState("bogus"); ok {
		t.Fatal("expected unknown state to be rejected")
	}
}

func TestAdvanceIsMonotonicAndBounded(t *testing.T) {
	steps := []float64{1.0 / 120, 1.0 / 30, 0.25, 0.5, 2}
	for _, dt := range steps {
		c := NewController(DefaultRate)

		prev := c.Progress()
		for range 200 {
			p := c.Advance(Assembled, dt)
			if p < prev {
				t.Fatalf("dt=%v: progress decreased from %v to %v", dt, prev, p)
			}
			if p < 0 || p > 1 {
				t.Fatalf("dt=%v: progress %v left [0,1]", dt, p)
			}
			prev = p
		}

		for range 200 {
			p := c.Advance(Scattered, dt)
			if p > prev {
				t.Fatalf("dt=%v: progress increased from %v to %v", dt, prev, p)
			}
			if p < 0 || p > 1 {
				t.Fatalf("dt=%v: progress %v left [0,1]", dt, p)
			}
			prev = p
		}
	}
}

func TestAdvanceApproachesTarget(t *testing.T) {
	c := NewController(2)
	for range 600 {
		c.Advance(Assembled, 1.0/60)
	}
	if !c.Settled(Assembled, 1e-6) {
		t.Fatalf("expected progress near 1 after 10s, got %v", c.Progress())
	}
}

func TestAdvanceFirstStep(t *testing.T) {
	c := NewController(2)
	got := c.Advance(Assembled, 0.1)
	if got < 0.1999 || got > 0.2001 {
		t.Fatalf("expected 0.2 after one step, got %v", got)
	}
}

func TestAdvanceIgnoresNonPositiveDelta(t *testing.T) {
	c := NewController(2)
	c.Reset(0.4)
	if got := c.Advance(Assembled, 0); got != 0.4 {
		t.Fatalf("expected unchanged progress, got %v", got)
	}
	if got := c.Advance(Assembled, -1); got != 0.4 {
		t.Fatalf("expected unchanged progress, got %v", got)
	}
}

func TestSetRateFallsBackToDefault(t *testing.T) {
	c := NewController(-3)
	if c.Rate() != DefaultRate {
		t.Fatalf("expected default rate, got %v", c.Rate())
	}
}
