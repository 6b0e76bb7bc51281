package animation

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cubespin/internal/engine/camera"
	"github.com/Faultbox/cubespin/internal/engine/mesh"
)

// Viewer presents the live mesh. It keeps the mesh passed to AddGeometry by
// reference and must read, never write, its positions.
type Viewer interface {
	AddGeometry(m *mesh.Mesh) error
	SetCamera(preset camera.Preset) error
	// Present renders the current positions. Errors wrapping ErrViewerLost
	// are fatal; any other error is treated as a transient frame failure.
	Present() error
	// PollEvents services window and input events and reports whether the
	// user asked to close the viewer.
	PollEvents() (quit bool)
	// EnterInteractive enables free camera interaction.
	EnterInteractive() error
	Close() error
}

var (
	// ErrViewerClosed means the user closed the viewer. It ends the loop
	// without failure.
	ErrViewerClosed = errors.New("viewer closed")
	// ErrViewerLost means the viewer can no longer present frames.
	ErrViewerLost = errors.New("viewer lost")
)

// Stage names the startup phase a fatal error came from.
type Stage string

const (
	StageConfig Stage = "config"
	StageMesh   Stage = "mesh"
	StageViewer Stage = "viewer"
)

// StageError is a fatal startup failure.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
