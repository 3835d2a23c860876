package geom

import (
	"math"
	"testing"
)

func TestLerpVecEndpoints(t *testing.T) {
	a := V(-3, 4, 1.5)
	b := V(2, 0.5, -7)

	if got := LerpVec(a, b, 0); got != a {
		t.Fatalf("expected %v at t=0, got %v", a, got)
	}
	if got := LerpVec(a, b, 1); !got.Near(b, 1e-12) {
		t.Fatalf("expected %v at t=1, got %v", b, got)
	}
	mid := LerpVec(a, b, 0.5)
	if !mid.Near(V(-0.5, 2.25, -2.75), 1e-12) {
		t.Fatalf("unexpected midpoint %v", mid)
	}
}

func TestClamp01(t *testing.T) {
	cases := map[float64]float64{-1: 0, 0: 0, 0.25: 0.25, 1: 1, 3: 1}
	for in, want := range cases {
		if got := Clamp01(in); got != want {
			t.Fatalf("Clamp01(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestRotateYQuarterTurn(t *testing.T) {
	got := RotateY(V(1, 2, 0), math.Pi/2)
	if !got.Near(V(0, 2, -1), 1e-12) {
		t.Fatalf("expected (0,2,-1), got %v", got)
	}
}

func TestQuatFromEulerMatchesRotateY(t *testing.T) {
	q := QuatFromEuler(Euler{Y: 0.7})
	v := V(0.3, -1, 2)
	if got, want := q.Rotate(v), RotateY(v, 0.7); !got.Near(want, 1e-9) {
		t.Fatalf("quaternion rotation %v differs from RotateY %v", got, want)
	}
}

func TestComposeIdentity(t *testing.T) {
	m := Compose(Vec3{}, QuatIdentity, V(1, 1, 1))
	if m != Identity() {
		t.Fatalf("expected identity, got %v", m)
	}
}

func TestComposeAppliesScaleRotationTranslation(t *testing.T) {
	pos := V(1, 2, 3)
	rot := QuatFromEuler(Euler{X: 0.4, Y: -1.1, Z: 0.2})
	m := Compose(pos, rot, V(0.5, 0.5, 0.5))

	v := V(1, 0, -1)
	want := rot.Rotate(v.Scale(0.5)).Add(pos)
	if got := m.Apply(v); !got.Near(want, 1e-9) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := m.Translation(); got != pos {
		t.Fatalf("expected translation %v, got %v", pos, got)
	}
	if got := m.MaxScale(); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected scale 0.5, got %v", got)
	}
}
