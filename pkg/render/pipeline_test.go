package render

import (
	"image/color"
	"testing"

	"github.com/polyview/polyview/pkg/math3d"
	"github.com/polyview/polyview/pkg/models"
)

// recordingSink captures draw calls for assertions.
type recordingSink struct {
	clears   int
	points   [][]Point
	outlines []polyCall
	fills    []polyCall
	texts    []string
	presents int
}

type polyCall struct {
	pts [3]Point
	c   color.RGBA
}

func (r *recordingSink) ClearRect(x, y, w, h int) { r.clears++ }
func (r *recordingSink) DrawText(x, y int, s string) {
	r.texts = append(r.texts, s)
}

func (r *recordingSink) DrawPoints(pts []Point, c color.RGBA) {
	r.points = append(r.points, append([]Point(nil), pts...))
}

func (r *recordingSink) DrawPolygonOutline(pts []Point, c color.RGBA) {
	r.outlines = append(r.outlines, polyCall{pts: [3]Point(pts), c: c})
}

func (r *recordingSink) DrawPolygonFilled(pts []Point, c color.RGBA) {
	r.fills = append(r.fills, polyCall{pts: [3]Point(pts), c: c})
}

func (r *recordingSink) PresentFrame() error {
	r.presents++
	return nil
}

func newTestPipeline(sink Sink) *Pipeline {
	cam := NewCamera()
	return NewPipeline(cam, sink, 100, 100)
}

// layeredMesh builds triangles facing +Z at the given world depths, one
// palette color per face, for exercising the painter's sort.
func layeredMesh(depths ...float64) *models.Mesh {
	m := models.NewMesh("layers")
	m.Normals = []math3d.Vec3{{Z: 1}}
	palette := []models.RGB{
		{R: 255}, {G: 255}, {B: 255},
		{R: 255, G: 255}, {G: 255, B: 255},
	}
	for i, z := range depths {
		base := len(m.Vertices)
		m.Vertices = append(m.Vertices,
			math3d.V3(0, 0, z),
			math3d.V3(1, 0, z),
			math3d.V3(0, 1, z),
		)
		m.Colors = append(m.Colors, palette[i%len(palette)])
		m.Faces = append(m.Faces, models.Face{
			V:      [3]int{base, base + 1, base + 2},
			Normal: 0,
			Color:  i,
		})
	}
	return m
}

func TestCubeBackFaceCulling(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)
	// A diagonal viewpoint sees exactly three faces of an axis-aligned
	// cube: front, top, and right.
	p.Camera.SetPosition(math3d.V3(10, 10, 35))

	p.Render(models.Cube(), ModeSolid)

	if got := len(sink.fills); got != 6 {
		t.Errorf("culled solid cube drew %d triangles, want 6", got)
	}
}

func TestCubeWithoutCulling(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)
	p.Camera.SetPosition(math3d.V3(10, 10, 35))

	p.Render(models.Cube(), ModeWireframeFull)

	if got := len(sink.outlines); got != 12 {
		t.Errorf("unculled wireframe cube drew %d triangles, want 12", got)
	}
}

func TestPainterOrderBackToFront(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)
	p.Camera.SetPosition(math3d.Zero3())

	// Faces declared near to far; they must draw far to near.
	mesh := layeredMesh(-5, -10, -20)
	p.Render(mesh, ModeSolid)

	if len(sink.fills) != 3 {
		t.Fatalf("drew %d faces, want 3", len(sink.fills))
	}
	want := []color.RGBA{
		{B: 255, A: 255}, // z=-20, farthest
		{G: 255, A: 255}, // z=-10
		{R: 255, A: 255}, // z=-5, nearest
	}
	for i, w := range want {
		if sink.fills[i].c != w {
			t.Errorf("draw %d color = %v, want %v", i, sink.fills[i].c, w)
		}
	}
}

func TestPainterOrderStableForCoplanarFaces(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)
	p.Camera.SetPosition(math3d.Zero3())

	mesh := layeredMesh(-10, -10)
	p.Render(mesh, ModeSolid)

	if len(sink.fills) != 2 {
		t.Fatalf("drew %d faces, want 2", len(sink.fills))
	}
	// Equal depth: declaration order decides, deterministically.
	if sink.fills[0].c != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("first coplanar draw = %v, want the first declared face", sink.fills[0].c)
	}
}

func TestViewportExclusion(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)
	p.Camera.SetPosition(math3d.Zero3())

	m := models.NewMesh("offscreen")
	m.Normals = []math3d.Vec3{{Z: 1}}
	m.Colors = []models.RGB{{R: 255}}
	// Far to the right: every NDC X is >> 1.
	m.Vertices = []math3d.Vec3{
		math3d.V3(100, 0, -5),
		math3d.V3(101, 0, -5),
		math3d.V3(100, 1, -5),
	}
	m.Faces = []models.Face{{V: [3]int{0, 1, 2}}}

	p.Render(m, ModeSolid)
	if len(sink.fills) != 0 {
		t.Errorf("fully off-screen face drew %d times, want 0", len(sink.fills))
	}

	// Pull one vertex into view: the whole face draws.
	m.Vertices[0] = math3d.V3(0, 0, -5)
	p.Render(m, ModeSolid)
	if len(sink.fills) != 1 {
		t.Errorf("partially visible face drew %d times, want 1", len(sink.fills))
	}
}

func TestPointCloudProjectsVertices(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)
	p.Camera.SetPosition(math3d.Zero3())

	m := models.NewMesh("pts")
	m.Vertices = []math3d.Vec3{
		math3d.V3(0, 0, -10),   // dead center
		math3d.V3(100, 0, -10), // off screen
	}
	m.Normals = []math3d.Vec3{{Z: 1}}
	m.Colors = []models.RGB{{R: 255}}
	m.Faces = []models.Face{{V: [3]int{0, 0, 0}}}

	p.Render(m, ModePointCloud)

	if len(sink.points) != 1 {
		t.Fatalf("expected one DrawPoints call, got %d", len(sink.points))
	}
	pts := sink.points[0]
	if len(pts) != 1 {
		t.Fatalf("expected 1 visible point, got %d", len(pts))
	}
	if pts[0] != (Point{50, 50}) {
		t.Errorf("center vertex projected to %v, want (50,50)", pts[0])
	}
}

func TestFrameClearsRendersPresents(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)
	p.Camera.SetPosition(math3d.V3(10, 10, 35))

	if err := p.Frame([]*models.Mesh{models.Cube()}, ModeSolid); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if sink.clears != 1 {
		t.Errorf("clears = %d, want 1", sink.clears)
	}
	if sink.presents != 1 {
		t.Errorf("presents = %d, want 1", sink.presents)
	}
	if len(sink.fills) == 0 {
		t.Error("Frame drew nothing")
	}
}

func TestNDCToScreen(t *testing.T) {
	tests := []struct {
		name string
		ndc  math3d.Vec3
		want Point
	}{
		{"center", math3d.V3(0, 0, 0), Point{50, 25}},
		{"near top-left", math3d.V3(-0.999, 0.999, 0), Point{0, 0}},
		{"right half", math3d.V3(0.5, 0, 0), Point{75, 25}},
		{"lower half", math3d.V3(0, -0.5, 0), Point{50, 37}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NDCToScreen(tc.ndc, 100, 50); got != tc.want {
				t.Errorf("NDCToScreen(%v) = %v, want %v", tc.ndc, got, tc.want)
			}
		})
	}
}

func TestScreenRoundTrip(t *testing.T) {
	cam := NewCamera()
	cam.SetPosition(math3d.Zero3())
	vp := cam.ViewProjectionMatrix()

	const w, h = 320, 200
	worldPts := []math3d.Vec3{
		{X: 0, Y: 0, Z: -10},
		{X: 3, Y: -2, Z: -15},
		{X: -1.5, Y: 4, Z: -30},
	}

	for _, wp := range worldPts {
		ndc := vp.Project(wp)
		p := NDCToScreen(ndc, w, h)

		// Invert from the pixel center; truncation keeps the original
		// position within half a pixel.
		backX := (float64(p.X)+0.5)/(0.5*w) - 1
		backY := 1 - (float64(p.Y)+0.5)/(0.5*h)

		if dx := (ndc.X - backX) * 0.5 * w; dx < -0.5 || dx > 0.5 {
			t.Errorf("world %v: x off by %v pixels", wp, dx)
		}
		if dy := (ndc.Y - backY) * 0.5 * h; dy < -0.5 || dy > 0.5 {
			t.Errorf("world %v: y off by %v pixels", wp, dy)
		}
	}
}

func TestShade(t *testing.T) {
	light := math3d.V3(-1, -1, -1).Normalize()
	base := RGB(200, 100, 50)

	t.Run("facing the light", func(t *testing.T) {
		got := Shade(base, math3d.V3(1, 1, 1).Normalize(), light)
		if got != base {
			t.Errorf("fully lit face = %v, want %v", got, base)
		}
	})

	t.Run("facing away", func(t *testing.T) {
		got := Shade(base, math3d.V3(-1, -1, -1).Normalize(), light)
		want := color.RGBA{shadeFloor, shadeFloor, shadeFloor, 255}
		if got != want {
			t.Errorf("back-lit face = %v, want floor %v", got, want)
		}
	})

	t.Run("perpendicular", func(t *testing.T) {
		got := Shade(base, math3d.V3(1, -1, 0).Normalize(), light)
		want := color.RGBA{shadeFloor, shadeFloor, shadeFloor, 255}
		if got != want {
			t.Errorf("grazing face = %v, want floor %v", got, want)
		}
	})
}

func TestResizeUpdatesAspect(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(sink)

	p.Resize(200, 50)

	if p.Width != 200 || p.Height != 50 {
		t.Errorf("pipeline size = %dx%d, want 200x50", p.Width, p.Height)
	}
	if got := p.Camera.AspectRatio; got != 4 {
		t.Errorf("aspect ratio = %v, want 4", got)
	}
}
