package models

import (
	"math"
	"testing"

	"github.com/polyview/polyview/pkg/math3d"
)

func TestUpdateIntegratesOrientation(t *testing.T) {
	m := Cube()
	m.Orientation = math3d.V3(10, 20, 30)
	m.Angular = math3d.V3(45, -90, 5)

	m.Update(0.5)

	want := math3d.V3(32.5, -25, 32.5)
	if m.Orientation != want {
		t.Errorf("Orientation after update = %v, want %v", m.Orientation, want)
	}
}

func TestUpdateNoWraparound(t *testing.T) {
	m := Cube()
	m.Angular = math3d.V3(0, 720, 0)

	for range 10 {
		m.Update(1)
	}

	// Angles grow unbounded by design.
	if m.Orientation.Y != 7200 {
		t.Errorf("Orientation.Y = %v, want 7200 (no normalization)", m.Orientation.Y)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Mesh {
		return &Mesh{
			Name:     "test",
			Vertices: []math3d.Vec3{{X: 1}, {Y: 1}, {Z: 1}},
			Normals:  []math3d.Vec3{{Z: 1}},
			Colors:   []RGB{{255, 255, 255}},
			Faces:    []Face{{V: [3]int{0, 1, 2}, Normal: 0, Color: 0}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Mesh)
		wantErr bool
	}{
		{"valid", func(m *Mesh) {}, false},
		{"no vertices", func(m *Mesh) { m.Vertices = nil }, true},
		{"no faces", func(m *Mesh) { m.Faces = nil }, true},
		{"vertex index out of range", func(m *Mesh) { m.Faces[0].V[2] = 3 }, true},
		{"negative vertex index", func(m *Mesh) { m.Faces[0].V[0] = -1 }, true},
		{"normal index out of range", func(m *Mesh) { m.Faces[0].Normal = 1 }, true},
		{"color index out of range", func(m *Mesh) { m.Faces[0].Color = 7 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := valid()
			tc.mutate(m)
			err := m.Validate()
			if tc.wantErr && err == nil {
				t.Error("Validate() = nil, want error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestBuiltinShapesAreValid(t *testing.T) {
	for _, name := range []string{"cube", "diamond"} {
		t.Run(name, func(t *testing.T) {
			m := Builtin(name)
			if m == nil {
				t.Fatalf("Builtin(%q) returned nil", name)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("builtin %q invalid: %v", name, err)
			}
		})
	}

	if Builtin("teapot") != nil {
		t.Error("Builtin should return nil for unknown names")
	}
}

func TestCubeNormalsMatchWinding(t *testing.T) {
	m := Cube()
	for i, f := range m.Faces {
		a, b, c := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
		computed := faceNormal(a, b, c)
		stored := m.Normals[f.Normal]
		if computed.Dot(stored) < 0.99 {
			t.Errorf("face %d: winding normal %v disagrees with stored normal %v", i, computed, stored)
		}
	}
}

func TestDiamondNormalsPointOutward(t *testing.T) {
	m := Diamond()
	for i, f := range m.Faces {
		centroid := math3d.Average3(m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]])
		if m.Normals[f.Normal].Dot(centroid) <= 0 {
			t.Errorf("face %d: normal %v points inward", i, m.Normals[f.Normal])
		}
	}
}

func TestClone(t *testing.T) {
	m := Cube()
	m.Position = math3d.V3(1, 2, 3)

	clone := m.Clone()
	if clone.Position != m.Position {
		t.Error("Clone should copy instance state")
	}

	clone.Vertices[0] = math3d.V3(99, 99, 99)
	clone.Angular = math3d.V3(45, 0, 0)
	if m.Vertices[0] == clone.Vertices[0] {
		t.Error("Clone should copy vertices, not share them")
	}
	if m.Angular == clone.Angular {
		t.Error("Clone should have independent instance state")
	}
}

func TestFaceNormalDegenerate(t *testing.T) {
	// Zero-area face: normal must be the zero vector, never NaN.
	n := faceNormal(math3d.V3(1, 1, 1), math3d.V3(1, 1, 1), math3d.V3(1, 1, 1))
	if n != (math3d.Vec3{}) {
		t.Errorf("degenerate face normal = %v, want zero vector", n)
	}
	if math.IsNaN(n.X) {
		t.Error("degenerate face normal produced NaN")
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	if _, err := Load("model.stl"); err == nil {
		t.Error("Load should reject unsupported formats")
	}
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}
