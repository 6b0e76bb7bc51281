// Package viewer presents the animated mesh in an SDL2 window.
package viewer

import (
	"errors"
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/cubespin/internal/animation"
	"github.com/Faultbox/cubespin/internal/engine/camera"
	"github.com/Faultbox/cubespin/internal/engine/debug"
	"github.com/Faultbox/cubespin/internal/engine/input"
	"github.com/Faultbox/cubespin/internal/engine/mesh"
	"github.com/Faultbox/cubespin/internal/engine/renderer"
	"github.com/Faultbox/cubespin/internal/engine/window"
	"github.com/Faultbox/cubespin/pkg/math"
)

const (
	title            = "CubeSpin"
	interactiveTitle = title + " (drag to orbit, scroll to zoom, R to reset)"
)

// Config holds viewer configuration.
type Config struct {
	Window        window.Config
	Renderer      renderer.Config
	ScreenshotDir string
}

// Viewer is the windowed implementation of animation.Viewer.
type Viewer struct {
	log         *zap.Logger
	window      *window.Window
	renderer    *renderer.Renderer
	input       *input.Input
	camera      *camera.OrbitCamera
	screenshots *debug.ScreenshotCapture

	mesh      *mesh.Mesh
	boundsMin math.Vec3
	boundsMax math.Vec3
	preset    camera.Preset

	interactive       bool
	dragging          bool
	screenshotPending bool
}

var _ animation.Viewer = (*Viewer)(nil)

// New opens the window and prepares the renderer.
func New(cfg Config, log *zap.Logger) (*Viewer, error) {
	if cfg.Window.Title == "" {
		cfg.Window.Title = title
	}

	win, err := window.New(cfg.Window, log)
	if err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}

	rend, err := renderer.New(cfg.Renderer, log)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("renderer: %w", err)
	}

	return &Viewer{
		log:         log,
		window:      win,
		renderer:    rend,
		input:       input.New(),
		camera:      camera.NewOrbitCamera(),
		screenshots: debug.NewScreenshotCapture(cfg.ScreenshotDir, "cubespin"),
		preset:      camera.PresetIso,
	}, nil
}

// AddGeometry uploads m and keeps it by reference for later frames.
func (v *Viewer) AddGeometry(m *mesh.Mesh) error {
	if v.mesh != nil {
		return errors.New("viewer already has geometry")
	}
	if err := v.renderer.Upload(m); err != nil {
		return err
	}
	v.mesh = m
	v.boundsMin, v.boundsMax = m.Bounds()
	v.camera.FitToBounds(v.boundsMin, v.boundsMax)
	return nil
}

// SetCamera frames the geometry from the preset's direction.
func (v *Viewer) SetCamera(preset camera.Preset) error {
	if v.mesh == nil {
		return errors.New("set camera before geometry was added")
	}
	v.preset = preset
	v.resetCamera()
	v.log.Debug("camera set",
		zap.String("preset", string(preset)),
		zap.Float64("distance", v.camera.Distance),
	)
	return nil
}

func (v *Viewer) resetCamera() {
	v.camera.FitToBounds(v.boundsMin, v.boundsMax)
	v.camera.ApplyPreset(v.preset)
}

// Present draws the current positions and swaps buffers.
func (v *Viewer) Present() error {
	if v.window == nil || !v.window.Valid() {
		return fmt.Errorf("%w: window destroyed", animation.ErrViewerLost)
	}
	if v.mesh == nil {
		return errors.New("no geometry to present")
	}

	width, height := v.window.DrawableSize()
	if width <= 0 || height <= 0 {
		// Minimized.
		return nil
	}

	aspect := float64(width) / float64(height)
	viewProj := v.camera.ProjectionMatrix(aspect).Mul(v.camera.ViewMatrix())
	if err := v.renderer.Draw(v.mesh.Positions, viewProj, width, height); err != nil {
		return err
	}

	if v.screenshotPending {
		v.screenshotPending = false
		v.captureScreenshot(width, height)
	}

	v.window.SwapBuffers()
	return nil
}

func (v *Viewer) captureScreenshot(width, height int) {
	pixels, err := v.renderer.ReadPixels(width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	name, err := v.screenshots.CaptureFromPixels(pixels, width, height)
	if err != nil {
		v.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	v.log.Info("screenshot saved", zap.String("file", name))
}

// PollEvents drains pending window and input events.
func (v *Viewer) PollEvents() bool {
	if v.input.Update() {
		return true
	}
	return v.handleEvents(v.input.Events())
}

// handleEvents applies one frame of events and reports whether to quit.
func (v *Viewer) handleEvents(events []input.Event) bool {
	for _, e := range events {
		switch e.Type {
		case input.EventQuit:
			return true

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
				return true
			case sdl.SCANCODE_F12:
				v.screenshotPending = true
			case sdl.SCANCODE_R:
				if v.interactive {
					v.resetCamera()
				}
			}

		case input.EventWindowResize:
			v.log.Debug("window resized",
				zap.Int("width", e.Width),
				zap.Int("height", e.Height),
			)

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = true
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}

		case input.EventMouseMove:
			if v.interactive && v.dragging {
				v.camera.HandleDrag(float64(e.DeltaX), float64(e.DeltaY))
			}

		case input.EventMouseWheel:
			if v.interactive {
				v.camera.HandleZoom(float64(e.DeltaY))
			}
		}
	}
	return false
}

// EnterInteractive hands the camera to the user.
func (v *Viewer) EnterInteractive() error {
	if v.interactive {
		return nil
	}
	v.interactive = true
	if v.window != nil && v.window.Valid() {
		v.window.SetTitle(interactiveTitle)
	}
	v.log.Info("interactive mode: drag to orbit, scroll to zoom, R to reset, Esc to quit")
	return nil
}

// Close releases GL resources and the window. It is safe to call twice.
func (v *Viewer) Close() error {
	var err error
	if v.renderer != nil {
		err = multierr.Append(err, v.renderer.Close())
		v.renderer = nil
	}
	if v.window != nil {
		v.window.Close()
		v.window = nil
	}
	return err
}
