package animation

import (
	"context"

	"go.uber.org/zap"

	"github.com/Faultbox/cubespin/internal/config"
	"github.com/Faultbox/cubespin/internal/engine/camera"
	"github.com/Faultbox/cubespin/internal/engine/mesh"
)

// MeshBuilder builds the rest-pose mesh for a cube of the given size.
type MeshBuilder func(size float64) (*mesh.Mesh, error)

// ViewerFactory acquires a viewer.
type ViewerFactory func() (Viewer, error)

// Run builds the mesh, acquires a viewer, animates until ctx is cancelled or
// the viewer is closed, and releases the viewer on every return path.
// Startup failures are returned as *StageError.
func Run(ctx context.Context, cfg *config.Config, build MeshBuilder, open ViewerFactory, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	m, err := build(cfg.Cube.Size)
	if err != nil {
		return &StageError{Stage: StageMesh, Err: err}
	}
	log.Debug("mesh built",
		zap.Int("vertices", len(m.Positions)),
		zap.Int("indices", len(m.Indices)),
	)

	preset, err := camera.ParsePreset(cfg.Graphics.Camera)
	if err != nil {
		return &StageError{Stage: StageConfig, Err: err}
	}

	v, err := open()
	if err != nil {
		return &StageError{Stage: StageViewer, Err: err}
	}
	defer func() {
		if cerr := v.Close(); cerr != nil {
			log.Warn("failed to close viewer", zap.Error(cerr))
		}
	}()

	e, err := New(cfg.Animation, m, v, opts)
	if err != nil {
		return &StageError{Stage: StageConfig, Err: err}
	}

	if err := v.AddGeometry(m); err != nil {
		return &StageError{Stage: StageViewer, Err: err}
	}
	if err := v.SetCamera(preset); err != nil {
		return &StageError{Stage: StageViewer, Err: err}
	}

	return e.Run(ctx)
}
