package math3d

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestIdentityComposition(t *testing.T) {
	m := Translate(V3(1, -2, 3)).Mul(RotateY(0.7))

	left := Identity().Mul(m)
	right := m.Mul(Identity())
	for i := range m {
		if math.Abs(left[i]-m[i]) > eps || math.Abs(right[i]-m[i]) > eps {
			t.Fatalf("identity composition changed element %d: %v / %v, want %v", i, left[i], right[i], m[i])
		}
	}

	v := V3(4, 5, 6)
	if got := Identity().MulVec3(v); !vecNear(got, v, eps) {
		t.Errorf("Identity().MulVec3(%v) = %v, want unchanged", v, got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"unit x", V3(1, 0, 0)},
		{"arbitrary", V3(3, -4, 12)},
		{"tiny", V3(1e-6, 2e-6, -3e-6)},
		{"large", V3(1e9, -2e9, 5e8)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			n := tc.v.Normalize()
			if math.Abs(n.Len()-1) > 1e-6 {
				t.Errorf("Normalize(%v).Len() = %v, want 1.0 within 1e-6", tc.v, n.Len())
			}
		})
	}

	t.Run("zero vector", func(t *testing.T) {
		if got := Zero3().Normalize(); got != (Vec3{}) {
			t.Errorf("Normalize(zero) = %v, want zero vector", got)
		}
	})
}

func TestRotationXYZSingleAxes(t *testing.T) {
	tests := []struct {
		name string
		deg  Vec3
		in   Vec3
		want Vec3
	}{
		{"90 about Y", V3(0, 90, 0), V3(1, 0, 0), V3(0, 0, -1)},
		{"90 about X", V3(90, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"90 about Z", V3(0, 0, 90), V3(1, 0, 0), V3(0, 1, 0)},
		{"360 wraps", V3(0, 360, 0), V3(1, 2, 3), V3(1, 2, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RotationXYZ(tc.deg).MulVec3(tc.in)
			if !vecNear(got, tc.want, 1e-9) {
				t.Errorf("RotationXYZ(%v).MulVec3(%v) = %v, want %v", tc.deg, tc.in, got, tc.want)
			}
		})
	}
}

func TestRotationXYZOrder(t *testing.T) {
	// X applies before Y: (0,1,0) -> X(90) -> (0,0,1) -> Y(90) -> (1,0,0).
	got := RotationXYZ(V3(90, 90, 0)).MulVec3(V3(0, 1, 0))
	if !vecNear(got, V3(1, 0, 0), 1e-9) {
		t.Errorf("X-then-Y order violated: got %v, want (1,0,0)", got)
	}
}

func TestPerspectiveDegLayout(t *testing.T) {
	const near, far = 0.1, 100.0
	m := PerspectiveDeg(90, 2, near, far)

	if got := m.Get(0, 0); math.Abs(got-0.5) > eps {
		t.Errorf("x scale = %v, want 0.5 (fov 90, aspect 2)", got)
	}
	if got := m.Get(1, 1); math.Abs(got-1) > eps {
		t.Errorf("y scale = %v, want 1 (fov 90)", got)
	}
	if got := m.Get(3, 2); got != -1 {
		t.Errorf("m(3,2) = %v, want -1", got)
	}
	if got := m.Get(3, 3); got != 0 {
		t.Errorf("m(3,3) = %v, want 0", got)
	}
	if got, want := m.Get(2, 2), -far/(far-near); math.Abs(got-want) > eps {
		t.Errorf("z scale = %v, want %v", got, want)
	}
	if got, want := m.Get(2, 3), -far*near/(far-near); math.Abs(got-want) > eps {
		t.Errorf("z offset = %v, want %v", got, want)
	}
}

func TestProjectForeshortening(t *testing.T) {
	proj := PerspectiveDeg(90, 1, 0.1, 100)

	nearPt := proj.Project(V3(1, 0, -10))
	farPt := proj.Project(V3(1, 0, -20))

	if math.Abs(nearPt.X-0.1) > eps {
		t.Errorf("Project x at z=-10: got %v, want 0.1", nearPt.X)
	}
	if math.Abs(farPt.X-0.05) > eps {
		t.Errorf("Project x at z=-20: got %v, want 0.05", farPt.X)
	}
}

func TestProjectDegenerateW(t *testing.T) {
	proj := PerspectiveDeg(90, 1, 0.1, 100)

	// A point on the camera plane has w=0; the divide must be skipped.
	got := proj.Project(V3(2, 3, 0))
	if math.IsNaN(got.X) || math.IsInf(got.X, 0) {
		t.Errorf("Project at w=0 produced %v, want finite guard value", got)
	}
}

func TestAverage3(t *testing.T) {
	got := Average3(V3(0, 0, 0), V3(3, 0, 0), V3(0, 3, 6))
	if !vecNear(got, V3(1, 1, 2), eps) {
		t.Errorf("Average3 = %v, want (1,1,2)", got)
	}
}

func TestCrossRightHanded(t *testing.T) {
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); !vecNear(got, V3(0, 0, 1), eps) {
		t.Errorf("x cross y = %v, want z", got)
	}
}
