// polyview - Terminal 3D model viewer
// Spin built-in shapes or your own OBJ/GLB models in the terminal.
//
// Controls:
//
//	A/D, Left/Right  - Spin around Y (hold to rotate, release to stop)
//	W/S, Up/Down     - Spin around X
//	M, Space         - Cycle render mode (points, wireframe, solid, shaded)
//	O, Tab           - Cycle model
//	+/-              - Zoom in/out
//	H                - Toggle HUD overlay
//	P                - Save screenshot (PNG)
//	Esc, Q, Ctrl+C   - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"go.uber.org/zap"

	"github.com/polyview/polyview/pkg/app"
	"github.com/polyview/polyview/pkg/config"
	"github.com/polyview/polyview/pkg/logger"
	"github.com/polyview/polyview/pkg/render"
)

var (
	configPath = flag.String("config", "", "Path to config file (YAML)")
	targetFPS  = flag.Int("fps", 0, "Target FPS (overrides config)")
	bgColor    = flag.String("bg", "", "Background color R,G,B (overrides config)")
	mode       = flag.String("mode", "", "Initial render mode (overrides config)")
	logFile    = flag.String("log", "", "Log file path (overrides config)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "polyview - Terminal 3D model viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: polyview [options] [model.obj|model.glb|cube|diamond ...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  A/D, Left/Right  - Spin around Y\n")
		fmt.Fprintf(os.Stderr, "  W/S, Up/Down     - Spin around X\n")
		fmt.Fprintf(os.Stderr, "  M, Space         - Cycle render mode\n")
		fmt.Fprintf(os.Stderr, "  O, Tab           - Cycle model\n")
		fmt.Fprintf(os.Stderr, "  +/-              - Zoom in/out\n")
		fmt.Fprintf(os.Stderr, "  H                - Toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  P                - Screenshot\n")
		fmt.Fprintf(os.Stderr, "  Esc, Q           - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with command-line overrides.
// Precedence: defaults < file < flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	if *targetFPS > 0 {
		cfg.Display.TargetFPS = *targetFPS
	}
	if *bgColor != "" {
		cfg.Display.Background = *bgColor
	}
	if *mode != "" {
		cfg.Scene.Mode = *mode
	}
	if *logFile != "" {
		cfg.Logging.LogFile = *logFile
	}
	if flag.NArg() > 0 {
		cfg.Scene.Models = flag.Args()
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	bgR, bgG, bgB, err := config.ParseBackground(cfg.Display.Background)
	if err != nil {
		return err
	}

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	sink := render.NewTerminalSink(term, width, height)
	sink.SetBackground(render.RGB(bgR, bgG, bgB))
	fbWidth, fbHeight := sink.FramebufferSize()

	viewer, err := app.New(app.Options{
		Config: cfg,
		Sink:   sink,
		Width:  fbWidth,
		Height: fbHeight,
	})
	if err != nil {
		cleanup()
		return err
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	controls := viewer.Controls()

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				sink.Resize(width, height)
				w, h := sink.FramebufferSize()
				viewer.Resize(w, h)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("q"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("a", "left"):
					controls.Press(app.ControlTurnLeft)
				case ev.MatchString("d", "right"):
					controls.Press(app.ControlTurnRight)
				case ev.MatchString("w", "up"):
					controls.Press(app.ControlTurnUp)
				case ev.MatchString("s", "down"):
					controls.Press(app.ControlTurnDown)
				case ev.MatchString("m", "space"):
					controls.Press(app.ControlModeNext)
				case ev.MatchString("o", "tab"):
					controls.Press(app.ControlObjectNext)
				case ev.MatchString("+", "="):
					viewer.ZoomIn(2)
				case ev.MatchString("-", "_"):
					viewer.ZoomOut(2)
				case ev.MatchString("h"):
					viewer.ToggleHUD()
				case ev.MatchString("p"):
					path := fmt.Sprintf("polyview-%d.png", time.Now().Unix())
					if err := viewer.Screenshot(path); err != nil {
						logger.Warn("screenshot failed", zap.Error(err))
					}
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("a"), ev.MatchString("left"):
					controls.Release(app.ControlTurnLeft)
				case ev.MatchString("d"), ev.MatchString("right"):
					controls.Release(app.ControlTurnRight)
				case ev.MatchString("w"), ev.MatchString("up"):
					controls.Release(app.ControlTurnUp)
				case ev.MatchString("s"), ev.MatchString("down"):
					controls.Release(app.ControlTurnDown)
				case ev.MatchString("m"), ev.MatchString("space"):
					controls.Release(app.ControlModeNext)
				case ev.MatchString("o"), ev.MatchString("tab"):
					controls.Release(app.ControlObjectNext)
				}
			}
		}
	}()

	viewer.Activate()

	<-ctx.Done()

	viewer.Deactivate()
	cleanup()
	return nil
}
