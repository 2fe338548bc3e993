// Package models provides 3D mesh representation and loading for polyview.
package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/polyview/polyview/pkg/math3d"
)

// RGB is a palette color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Face is a triangle: three vertex indices, one normal index, and one
// palette color index.
type Face struct {
	V      [3]int
	Normal int
	Color  int
}

// Mesh holds immutable triangle topology plus the mutable per-instance
// transform state that the simulation integrates each tick.
//
// The topology arrays are trusted after Validate; the render pipeline
// indexes into them without range checks.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Normals  []math3d.Vec3
	Faces    []Face
	Colors   []RGB

	// Instance state
	Position    math3d.Vec3
	Orientation math3d.Vec3 // Euler angles, degrees
	Angular     math3d.Vec3 // degrees per second
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// Update integrates orientation over the elapsed time in seconds.
// Angles grow unbounded; trig handles any real value so no wraparound
// is applied.
func (m *Mesh) Update(dt float64) {
	m.Orientation = m.Orientation.Add(m.Angular.Scale(dt))
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Validate checks topology integrity. Malformed meshes are a load-time
// error; the render loop never re-checks.
func (m *Mesh) Validate() error {
	if len(m.Vertices) == 0 {
		return fmt.Errorf("mesh %q has no vertices", m.Name)
	}
	if len(m.Faces) == 0 {
		return fmt.Errorf("mesh %q has no faces", m.Name)
	}
	for i, f := range m.Faces {
		for _, v := range f.V {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("mesh %q face %d: vertex index %d out of range [0,%d)", m.Name, i, v, len(m.Vertices))
			}
		}
		if f.Normal < 0 || f.Normal >= len(m.Normals) {
			return fmt.Errorf("mesh %q face %d: normal index %d out of range [0,%d)", m.Name, i, f.Normal, len(m.Normals))
		}
		if f.Color < 0 || f.Color >= len(m.Colors) {
			return fmt.Errorf("mesh %q face %d: color index %d out of range [0,%d)", m.Name, i, f.Color, len(m.Colors))
		}
	}
	return nil
}

// Clone creates a deep copy of the mesh, instance state included.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:        m.Name,
		Vertices:    make([]math3d.Vec3, len(m.Vertices)),
		Normals:     make([]math3d.Vec3, len(m.Normals)),
		Faces:       make([]Face, len(m.Faces)),
		Colors:      make([]RGB, len(m.Colors)),
		Position:    m.Position,
		Orientation: m.Orientation,
		Angular:     m.Angular,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Normals, m.Normals)
	copy(clone.Faces, m.Faces)
	copy(clone.Colors, m.Colors)
	return clone
}

// faceNormal computes the flat normal of a triangle from its winding.
// Degenerate (zero-area) faces yield the zero vector.
func faceNormal(a, b, c math3d.Vec3) math3d.Vec3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}

// Load reads a mesh from disk, dispatching on the file extension, and
// validates it. Supported formats: .obj, .glb, .gltf.
func Load(path string) (*Mesh, error) {
	var (
		mesh *Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, err = LoadOBJ(path)
	case ".glb", ".gltf":
		mesh, err = LoadGLB(path)
	default:
		return nil, fmt.Errorf("unsupported model format %q (use .obj or .glb)", ext)
	}
	if err != nil {
		return nil, err
	}
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	return mesh, nil
}
