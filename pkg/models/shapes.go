package models

import "github.com/polyview/polyview/pkg/math3d"

// Cube returns a unit-radius cube centered at the origin. Each of the six
// quads is split into two triangles sharing the quad's color and flat
// normal, so head-on back-face culling removes exactly half the faces.
func Cube() *Mesh {
	m := NewMesh("cube")

	m.Vertices = []math3d.Vec3{
		{X: -1, Y: -1, Z: -1}, // 0: bottom-left-back
		{X: 1, Y: -1, Z: -1},  // 1: bottom-right-back
		{X: 1, Y: 1, Z: -1},   // 2: top-right-back
		{X: -1, Y: 1, Z: -1},  // 3: top-left-back
		{X: -1, Y: -1, Z: 1},  // 4: bottom-left-front
		{X: 1, Y: -1, Z: 1},   // 5: bottom-right-front
		{X: 1, Y: 1, Z: 1},    // 6: top-right-front
		{X: -1, Y: 1, Z: 1},   // 7: top-left-front
	}

	m.Normals = []math3d.Vec3{
		{Z: 1},  // 0: front
		{Z: -1}, // 1: back
		{X: 1},  // 2: right
		{X: -1}, // 3: left
		{Y: 1},  // 4: top
		{Y: -1}, // 5: bottom
	}

	m.Colors = []RGB{
		{255, 64, 64},  // front
		{64, 255, 64},  // back
		{64, 64, 255},  // right
		{255, 255, 64}, // left
		{64, 255, 255}, // top
		{255, 64, 255}, // bottom
	}

	quads := []struct {
		v      [4]int
		normal int
	}{
		{[4]int{4, 5, 6, 7}, 0}, // front
		{[4]int{1, 0, 3, 2}, 1}, // back
		{[4]int{5, 1, 2, 6}, 2}, // right
		{[4]int{0, 4, 7, 3}, 3}, // left
		{[4]int{7, 6, 2, 3}, 4}, // top
		{[4]int{0, 1, 5, 4}, 5}, // bottom
	}

	for i, q := range quads {
		m.Faces = append(m.Faces,
			Face{V: [3]int{q.v[0], q.v[1], q.v[2]}, Normal: q.normal, Color: i},
			Face{V: [3]int{q.v[0], q.v[2], q.v[3]}, Normal: q.normal, Color: i},
		)
	}

	return m
}

// Diamond returns an octahedron: eight triangles, one normal and one
// color each. Useful as a second builtin object and as a small fixture.
func Diamond() *Mesh {
	m := NewMesh("diamond")

	m.Vertices = []math3d.Vec3{
		{Y: 1.5},  // 0: apex top
		{Y: -1.5}, // 1: apex bottom
		{X: 1},    // 2
		{Z: 1},    // 3
		{X: -1},   // 4
		{Z: -1},   // 5
	}

	m.Colors = []RGB{
		{230, 230, 255},
		{150, 150, 230},
	}

	tris := [][3]int{
		{0, 3, 2}, {0, 4, 3}, {0, 5, 4}, {0, 2, 5}, // upper pyramid
		{1, 2, 3}, {1, 3, 4}, {1, 4, 5}, {1, 5, 2}, // lower pyramid
	}

	for i, tri := range tris {
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		m.Normals = append(m.Normals, faceNormal(a, b, c))
		m.Faces = append(m.Faces, Face{V: tri, Normal: i, Color: i % 2})
	}

	return m
}

// Builtin returns the named builtin mesh, or nil if unknown.
func Builtin(name string) *Mesh {
	switch name {
	case "cube":
		return Cube()
	case "diamond":
		return Diamond()
	}
	return nil
}
