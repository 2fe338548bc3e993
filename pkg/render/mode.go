package render

import "fmt"

// Mode selects how meshes are drawn. Modes form a fixed cycle so a
// single control can step through them.
type Mode int

const (
	ModePointCloud Mode = iota
	ModeWireframeFull
	ModeWireframeCulled
	ModeSolid
	ModeSolidShaded

	modeCount
)

// Next returns the mode after m, wrapping back to ModePointCloud.
func (m Mode) Next() Mode {
	return (m + 1) % modeCount
}

// CullsBackFaces reports whether faces pointing away from the camera
// are skipped before projection.
func (m Mode) CullsBackFaces() bool {
	return m == ModeWireframeCulled || m == ModeSolid || m == ModeSolidShaded
}

// FillsPolygons reports whether face interiors are filled rather than
// stroked.
func (m Mode) FillsPolygons() bool {
	return m == ModeSolid || m == ModeSolidShaded
}

// AppliesLighting reports whether face colors are scaled by the
// directional light before drawing.
func (m Mode) AppliesLighting() bool {
	return m == ModeSolidShaded
}

// ParseMode resolves a mode name as produced by String.
func ParseMode(s string) (Mode, error) {
	for m := ModePointCloud; m < modeCount; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return ModePointCloud, fmt.Errorf("unknown render mode %q", s)
}

func (m Mode) String() string {
	switch m {
	case ModePointCloud:
		return "points"
	case ModeWireframeFull:
		return "wireframe"
	case ModeWireframeCulled:
		return "wireframe+cull"
	case ModeSolid:
		return "solid"
	case ModeSolidShaded:
		return "shaded"
	}
	return "unknown"
}
