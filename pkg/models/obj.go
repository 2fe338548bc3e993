package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/polyview/polyview/pkg/math3d"
)

// objPalette provides flat colors for OBJ material groups; a material's
// color is assigned by order of first use. OBJ/MTL carries full material
// definitions but this renderer only needs one flat color per face.
var objPalette = []RGB{
	{200, 200, 200},
	{255, 96, 96},
	{96, 255, 96},
	{96, 96, 255},
	{255, 255, 96},
	{96, 255, 255},
	{255, 96, 255},
}

// LoadOBJ reads a Wavefront OBJ file. Supported records: v, vn, f
// (v, v/vt, v//vn and v/vt/vn forms, fan-triangulated), o, usemtl.
// Faces without normals get a computed flat normal.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := parseOBJ(filepath.Base(path), f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return mesh, nil
}

func parseOBJ(name string, r io.Reader) (*Mesh, error) {
	mesh := NewMesh(name)

	materials := map[string]int{}
	currentColor := 0
	mesh.Colors = append(mesh.Colors, objPalette[0])

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			mesh.Vertices = append(mesh.Vertices, v)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			mesh.Normals = append(mesh.Normals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			verts := make([]int, 0, len(fields)-1)
			normals := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				vi, ni, err := parseFaceVertex(ref, len(mesh.Vertices), len(mesh.Normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				verts = append(verts, vi)
				normals = append(normals, ni)
			}
			// Fan triangulation for quads and larger polygons.
			for i := 1; i+1 < len(verts); i++ {
				tri := [3]int{verts[0], verts[i], verts[i+1]}
				ni := normals[0]
				if ni < 0 {
					a, b, c := mesh.Vertices[tri[0]], mesh.Vertices[tri[1]], mesh.Vertices[tri[2]]
					mesh.Normals = append(mesh.Normals, faceNormal(a, b, c))
					ni = len(mesh.Normals) - 1
				}
				mesh.Faces = append(mesh.Faces, Face{V: tri, Normal: ni, Color: currentColor})
			}

		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: usemtl needs a name", lineNo)
			}
			idx, ok := materials[fields[1]]
			if !ok {
				idx = len(materials) + 1
				materials[fields[1]] = idx
				mesh.Colors = append(mesh.Colors, objPalette[idx%len(objPalette)])
			}
			currentColor = idx

		case "o", "g":
			if len(fields) > 1 && mesh.Name == name {
				mesh.Name = fields[1]
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return mesh, nil
}

func parseVec3(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var c [3]float64
	for i := range 3 {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, err
		}
		c[i] = v
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// parseFaceVertex resolves one "v", "v/vt", "v//vn" or "v/vt/vn" reference
// into 0-based vertex and normal indices. The normal index is -1 when
// the reference carries none. OBJ indices are 1-based; negative values count
// back from the end of the arrays parsed so far.
func parseFaceVertex(ref string, numVerts, numNormals int) (vi, ni int, err error) {
	parts := strings.Split(ref, "/")

	vi, err = resolveIndex(parts[0], numVerts)
	if err != nil {
		return 0, 0, fmt.Errorf("vertex index %q: %w", ref, err)
	}

	ni = -1
	if len(parts) == 3 && parts[2] != "" {
		ni, err = resolveIndex(parts[2], numNormals)
		if err != nil {
			return 0, 0, fmt.Errorf("normal index %q: %w", ref, err)
		}
	}
	return vi, ni, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("index %d out of range [1,%d]", n, count)
	}
	return n - 1, nil
}
