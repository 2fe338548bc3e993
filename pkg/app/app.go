package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	"go.uber.org/zap"

	"github.com/polyview/polyview/pkg/config"
	"github.com/polyview/polyview/pkg/logger"
	"github.com/polyview/polyview/pkg/math3d"
	"github.com/polyview/polyview/pkg/models"
	"github.com/polyview/polyview/pkg/render"
)

// screenshotSink is implemented by sinks that can dump the last frame.
type screenshotSink interface {
	SavePNG(path string) error
}

// Options configures a new App.
type Options struct {
	Config    *config.Config
	Sink      render.Sink
	Width     int // Target width in pixels
	Height    int // Target height in pixels
	Scheduler Scheduler
}

// App drives the viewer: it owns the scene, integrates input into
// angular velocity, steps the simulation, and renders one frame per
// scheduler callback until deactivated.
//
// All mutation happens under one mutex; input callbacks and the frame
// callback may arrive on different goroutines.
type App struct {
	mu sync.Mutex

	cfg      *config.Config
	pipe     *render.Pipeline
	controls *Controls
	sched    Scheduler

	meshes  []*models.Mesh
	current int
	mode    render.Mode

	spinRate float64

	// Camera distance animated with a critically damped spring.
	camDir     math3d.Vec3
	zoom       float64
	zoomTarget float64
	zoomVel    float64
	zoomSpring harmonica.Spring

	showHUD bool

	active    bool
	handle    Handle
	lastFrame time.Time

	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// New builds an App from options: loads the scene, resolves the initial
// mode, and wires control callbacks. It does not start the frame loop.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = TimerScheduler{}
	}

	meshes, err := loadScene(cfg.Scene.Models)
	if err != nil {
		return nil, err
	}

	mode, err := render.ParseMode(cfg.Scene.Mode)
	if err != nil {
		return nil, err
	}

	camera := render.NewCamera()
	camera.SetFOV(cfg.Camera.FOV)
	camera.SetClipPlanes(cfg.Camera.Near, cfg.Camera.Far)

	a := &App{
		cfg:      cfg,
		pipe:     render.NewPipeline(camera, opts.Sink, opts.Width, opts.Height),
		controls: NewControls(),
		sched:    sched,
		meshes:   meshes,
		mode:     mode,
		spinRate: cfg.Scene.SpinRate,
		camDir:   camera.Position.Normalize(),
		showHUD:  cfg.Display.ShowHUD,
		fpsTime:  time.Now(),
	}

	a.zoom = camera.Position.Len()
	a.zoomTarget = a.zoom
	// Critically damped: the camera settles on the target distance
	// without overshoot.
	fps := cfg.Display.TargetFPS
	if fps <= 0 {
		fps = 30
	}
	a.zoomSpring = harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)

	a.controls.OnPress(ControlModeNext, a.SelectMode)
	a.controls.OnPress(ControlObjectNext, a.SelectObject)

	return a, nil
}

// loadScene resolves each entry as a builtin name or a model file path.
// Entries that fail to load are logged and skipped; an empty scene is
// an error.
func loadScene(names []string) ([]*models.Mesh, error) {
	var meshes []*models.Mesh
	for _, name := range names {
		if m := models.Builtin(name); m != nil {
			meshes = append(meshes, m)
			continue
		}
		m, err := models.Load(name)
		if err != nil {
			logger.Warn("skipping model", zap.String("model", name), zap.Error(err))
			continue
		}
		meshes = append(meshes, m)
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("no loadable models in %v", names)
	}
	return meshes, nil
}

// Controls returns the logical control map for the host to feed events
// into.
func (a *App) Controls() *Controls {
	return a.controls
}

// Activate starts the frame loop. Idempotent while active.
func (a *App) Activate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active {
		return
	}
	a.active = true
	a.lastFrame = time.Now()
	a.handle = a.sched.Schedule(0, a.frame)
	logger.Info("renderer activated",
		zap.Int("models", len(a.meshes)),
		zap.String("mode", a.mode.String()))
}

// Deactivate stops the frame loop and cancels any pending frame so
// nothing fires after teardown.
func (a *App) Deactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}
	a.active = false
	if a.handle != nil {
		a.handle.Cancel()
		a.handle = nil
	}
	logger.Info("renderer deactivated")
}

// frame runs one update-render-present iteration, then schedules the
// next.
func (a *App) frame() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.active {
		return
	}

	start := time.Now()
	dt := start.Sub(a.lastFrame).Seconds()
	a.lastFrame = start
	if dt > 0.1 {
		dt = 0.1
	}

	a.applyControls()
	a.stepZoom()

	mesh := a.meshes[a.current]
	mesh.Update(dt)

	a.pipe.Sink.ClearRect(0, 0, a.pipe.Width, a.pipe.Height)
	a.pipe.Render(mesh, a.mode)
	a.drawHUD(mesh)
	if err := a.pipe.Sink.PresentFrame(); err != nil {
		logger.Error("present failed", zap.Error(err))
	}

	a.updateFPS()
	logger.Debug("frame", zap.Duration("took", time.Since(start)))

	interval := time.Second / time.Duration(max(a.cfg.Display.TargetFPS, 1))
	delay := interval - time.Since(start)
	if delay < time.Millisecond {
		delay = time.Millisecond
	}
	a.handle = a.sched.Schedule(delay, a.frame)
}

// applyControls maps held directional controls onto angular velocity.
// Velocity is overwritten every frame, so releasing both controls of an
// axis resets it to exactly zero.
func (a *App) applyControls() {
	var x, y float64
	if a.controls.IsHeld(ControlTurnLeft) {
		y += a.spinRate
	}
	if a.controls.IsHeld(ControlTurnRight) {
		y -= a.spinRate
	}
	if a.controls.IsHeld(ControlTurnUp) {
		x += a.spinRate
	}
	if a.controls.IsHeld(ControlTurnDown) {
		x -= a.spinRate
	}

	mesh := a.meshes[a.current]
	mesh.Angular.X = x
	mesh.Angular.Y = y
}

// stepZoom advances the camera-distance spring and repositions the
// camera along its fixed direction.
func (a *App) stepZoom() {
	a.zoom, a.zoomVel = a.zoomSpring.Update(a.zoom, a.zoomVel, a.zoomTarget)
	a.pipe.Camera.SetPosition(a.camDir.Scale(a.zoom))
}

// SelectMode advances to the next render mode, wrapping around.
func (a *App) SelectMode() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.mode = a.mode.Next()
	logger.Debug("render mode changed", zap.String("mode", a.mode.String()))
}

// SelectObject advances to the next model in the scene, wrapping
// around. Each model keeps its own orientation and spin.
func (a *App) SelectObject() {
	a.mu.Lock()
	defer a.mu.Unlock()
	// Stop the outgoing model so it is not spinning when reselected.
	a.meshes[a.current].Angular = math3d.Zero3()
	a.current = (a.current + 1) % len(a.meshes)
	logger.Debug("object changed", zap.String("model", a.meshes[a.current].Name))
}

// Mode returns the active render mode.
func (a *App) Mode() render.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// Current returns the selected mesh.
func (a *App) Current() *models.Mesh {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.meshes[a.current]
}

// ZoomIn moves the camera closer by step, clamped to the configured
// range. The move animates over the following frames.
func (a *App) ZoomIn(step float64) {
	a.adjustZoom(-step)
}

// ZoomOut moves the camera farther by step, clamped to the configured
// range.
func (a *App) ZoomOut(step float64) {
	a.adjustZoom(step)
}

func (a *App) adjustZoom(delta float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.zoomTarget += delta
	if a.zoomTarget < a.cfg.Camera.ZoomMin {
		a.zoomTarget = a.cfg.Camera.ZoomMin
	}
	if a.zoomTarget > a.cfg.Camera.ZoomMax {
		a.zoomTarget = a.cfg.Camera.ZoomMax
	}
}

// ToggleHUD flips the overlay on or off.
func (a *App) ToggleHUD() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.showHUD = !a.showHUD
}

// Resize retargets rendering after a terminal size change.
func (a *App) Resize(width, height int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pipe.Resize(width, height)
}

// Screenshot saves the last presented frame if the sink supports it.
func (a *App) Screenshot(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.pipe.Sink.(screenshotSink)
	if !ok {
		return fmt.Errorf("sink cannot save screenshots")
	}
	return s.SavePNG(path)
}

// drawHUD overlays status text. Pixel row 0 is the top line; the last
// terminal line starts at pixel row height-2.
func (a *App) drawHUD(mesh *models.Mesh) {
	if !a.showHUD {
		return
	}
	a.pipe.Sink.DrawText(0, 0, fmt.Sprintf("%.0f fps  %s  %d tris", a.fps, mesh.Name, mesh.TriangleCount()))
	a.pipe.Sink.DrawText(0, a.pipe.Height-2,
		fmt.Sprintf("[%s] m:mode o:object arrows:spin +/-:zoom q:quit", a.mode))
}

func (a *App) updateFPS() {
	a.fpsFrames++
	elapsed := time.Since(a.fpsTime)
	if elapsed >= time.Second {
		a.fps = float64(a.fpsFrames) / elapsed.Seconds()
		a.fpsFrames = 0
		a.fpsTime = time.Now()
	}
}
