package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/polyview/polyview/pkg/math3d"
	"github.com/polyview/polyview/pkg/models"
)

// shadeFloor keeps lit channels from reaching full black; a face with
// no channel detail reads as a hole in the model.
const shadeFloor = 8

// Pipeline transforms meshes into 2D draw calls on a Sink. There is no
// depth buffer: visible faces are sorted back to front each frame and
// painted over each other.
type Pipeline struct {
	Camera *Camera
	Sink   Sink
	Width  int // Target width in pixels
	Height int // Target height in pixels

	// Light is the direction light travels, from the source toward the
	// scene. Shading intensity is the negated dot with the face normal.
	Light math3d.Vec3

	// Per-frame scratch, reused to avoid allocation in the hot loop.
	projected []math3d.Vec3
	projValid []bool
	faces     []faceRecord
	points    []Point
	tri       [3]Point
}

// faceRecord queues one visible face for the depth sort.
type faceRecord struct {
	face  int
	depth float64 // Mean view-space Z; more negative is farther
}

// NewPipeline creates a pipeline targeting a sink of the given pixel
// dimensions.
func NewPipeline(camera *Camera, sink Sink, width, height int) *Pipeline {
	camera.SetAspectRatio(float64(width) / float64(height))
	return &Pipeline{
		Camera: camera,
		Sink:   sink,
		Width:  width,
		Height: height,
		Light:  math3d.V3(-1, -1, -1).Normalize(),
	}
}

// Resize retargets the pipeline and updates the camera aspect ratio.
func (p *Pipeline) Resize(width, height int) {
	p.Width = width
	p.Height = height
	p.Camera.SetAspectRatio(float64(width) / float64(height))
}

// Frame draws one complete frame: clear, render every mesh, present.
func (p *Pipeline) Frame(meshes []*models.Mesh, mode Mode) error {
	p.Sink.ClearRect(0, 0, p.Width, p.Height)
	for _, m := range meshes {
		p.Render(m, mode)
	}
	return p.Sink.PresentFrame()
}

// Render draws a single mesh in the given mode. It emits draw calls but
// does not clear or present; Frame owns frame boundaries.
func (p *Pipeline) Render(mesh *models.Mesh, mode Mode) {
	model := math3d.Translate(mesh.Position).Mul(math3d.RotationXYZ(mesh.Orientation))
	view := p.Camera.ViewMatrix().Mul(model)
	mvp := p.Camera.ProjectionMatrix().Mul(view)

	if mode == ModePointCloud {
		p.renderPoints(mesh, mvp)
		return
	}

	p.resetScratch(mesh.VertexCount())
	p.faces = p.faces[:0]

	for i, f := range mesh.Faces {
		if mode.CullsBackFaces() && p.backFacing(mesh, f, model) {
			continue
		}

		a := p.projectVertex(f.V[0], mesh.Vertices[f.V[0]], mvp)
		b := p.projectVertex(f.V[1], mesh.Vertices[f.V[1]], mvp)
		c := p.projectVertex(f.V[2], mesh.Vertices[f.V[2]], mvp)

		// A face is dropped only when every vertex leaves the viewport;
		// partially visible faces draw in full and clip at the sink.
		if outsideViewport(a) && outsideViewport(b) && outsideViewport(c) {
			continue
		}

		depth := (view.MulVec3(mesh.Vertices[f.V[0]]).Z +
			view.MulVec3(mesh.Vertices[f.V[1]]).Z +
			view.MulVec3(mesh.Vertices[f.V[2]]).Z) / 3

		p.faces = append(p.faces, faceRecord{face: i, depth: depth})
	}

	// Painter's algorithm: farthest first. The stable sort keeps mesh
	// face order for coplanar faces, so output is deterministic.
	sort.SliceStable(p.faces, func(i, j int) bool {
		return p.faces[i].depth < p.faces[j].depth
	})

	for _, fr := range p.faces {
		f := mesh.Faces[fr.face]
		for k, vi := range f.V {
			p.tri[k] = NDCToScreen(p.projected[vi], p.Width, p.Height)
		}

		col := toRGBA(mesh.Colors[f.Color])
		if mode.AppliesLighting() {
			col = Shade(col, model.MulVec3Dir(mesh.Normals[f.Normal]), p.Light)
		}

		if mode.FillsPolygons() {
			p.Sink.DrawPolygonFilled(p.tri[:], col)
		} else {
			p.Sink.DrawPolygonOutline(p.tri[:], col)
		}
	}
}

// renderPoints draws every vertex inside the viewport as a single pixel.
func (p *Pipeline) renderPoints(mesh *models.Mesh, mvp math3d.Mat4) {
	p.points = p.points[:0]
	for _, v := range mesh.Vertices {
		ndc := mvp.Project(v)
		if outsideViewport(ndc) {
			continue
		}
		p.points = append(p.points, NDCToScreen(ndc, p.Width, p.Height))
	}
	p.Sink.DrawPoints(p.points, ColorWhite)
}

// backFacing reports whether the face points away from the camera: the
// world-space normal against the direction from the face centroid to
// the camera position.
func (p *Pipeline) backFacing(mesh *models.Mesh, f models.Face, model math3d.Mat4) bool {
	normal := model.MulVec3Dir(mesh.Normals[f.Normal])
	centroid := model.MulVec3(math3d.Average3(
		mesh.Vertices[f.V[0]],
		mesh.Vertices[f.V[1]],
		mesh.Vertices[f.V[2]],
	))
	toCamera := p.Camera.Position.Sub(centroid).Normalize()
	return normal.Dot(toCamera) < 0
}

// projectVertex memoizes projection per vertex index, so vertices shared
// between faces project once per frame.
func (p *Pipeline) projectVertex(i int, v math3d.Vec3, mvp math3d.Mat4) math3d.Vec3 {
	if !p.projValid[i] {
		p.projected[i] = mvp.Project(v)
		p.projValid[i] = true
	}
	return p.projected[i]
}

func (p *Pipeline) resetScratch(n int) {
	if cap(p.projected) < n {
		p.projected = make([]math3d.Vec3, n)
		p.projValid = make([]bool, n)
	}
	p.projected = p.projected[:n]
	p.projValid = p.projValid[:n]
	for i := range p.projValid {
		p.projValid[i] = false
	}
}

// outsideViewport reports whether an NDC point falls outside the strict
// (-1,1) square on X and Y.
func outsideViewport(ndc math3d.Vec3) bool {
	return ndc.X <= -1 || ndc.X >= 1 || ndc.Y <= -1 || ndc.Y >= 1
}

// NDCToScreen maps normalized device coordinates to pixel coordinates,
// flipping Y so screen space grows downward. Components truncate toward
// zero to match integer pixel addressing.
func NDCToScreen(ndc math3d.Vec3, width, height int) Point {
	return Point{
		X: int((ndc.X + 1) * 0.5 * float64(width)),
		Y: int((1 - (ndc.Y+1)*0.5) * float64(height)),
	}
}

// Shade scales a color by Lambertian intensity against the light
// direction, flooring each channel so faces turned from the light stay
// visible.
func Shade(c color.RGBA, normal, light math3d.Vec3) color.RGBA {
	intensity := -normal.Dot(light)
	if intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	return color.RGBA{
		R: shadeChannel(c.R, intensity),
		G: shadeChannel(c.G, intensity),
		B: shadeChannel(c.B, intensity),
		A: 255,
	}
}

func shadeChannel(v uint8, intensity float64) uint8 {
	s := math.Round(float64(v) * intensity)
	if s < shadeFloor {
		return shadeFloor
	}
	return uint8(s)
}

func toRGBA(c models.RGB) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
