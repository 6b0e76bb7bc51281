package config

import "flag"

// Flags holds command-line overrides registered on a FlagSet.
type Flags struct {
	fs *flag.FlagSet

	Config      *string
	WriteConfig *string
	SaveConfig  *bool
	Debug       *bool

	Speed       *float64
	Axis        *string
	Initial     *float64
	Target      *float64
	Stop        *bool
	NoStop      *bool
	Direction   *int
	Incremental *bool
	Size        *float64

	Width      *int
	Height     *int
	Fullscreen *bool
	Windowed   *bool
	Camera     *string
}

// RegisterFlags registers the cubespin flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:          fs,
		Config:      fs.String("config", "", "Path to config file"),
		WriteConfig: fs.String("write-config", "", "Write the effective config to this path and exit"),
		SaveConfig:  fs.Bool("save-config", false, "Write the effective config to the user config directory and exit"),
		Debug:       fs.Bool("debug", false, "Enable debug logging"),

		Speed:       fs.Float64("speed", 0, "Rotation speed in degrees per second"),
		Axis:        fs.String("axis", "", "Rotation axis (x, y or z)"),
		Initial:     fs.Float64("initial", 0, "Initial angle in degrees"),
		Target:      fs.Float64("target", 0, "Target angle in degrees"),
		Stop:        fs.Bool("stop", false, "Stop at the target angle"),
		NoStop:      fs.Bool("no-stop", false, "Rotate forever"),
		Direction:   fs.Int("direction", 0, "Rotation direction (1 or -1)"),
		Incremental: fs.Bool("incremental", false, "Compose per-frame rotations onto the previous frame"),
		Size:        fs.Float64("size", 0, "Cube edge length"),

		Width:      fs.Int("width", 0, "Window width"),
		Height:     fs.Int("height", 0, "Window height"),
		Fullscreen: fs.Bool("fullscreen", false, "Run in fullscreen mode"),
		Windowed:   fs.Bool("windowed", false, "Run in windowed mode"),
		Camera:     fs.String("camera", "", "Camera preset (iso, xy, xz, yz)"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.Config
}

// apply applies flags that were set on the command line to cfg.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if set["speed"] {
		cfg.Animation.RotationSpeed = *f.Speed
	}
	if set["axis"] {
		cfg.Animation.RotationAxis = *f.Axis
	}
	if set["initial"] {
		cfg.Animation.InitialAngle = *f.Initial
	}
	if set["target"] {
		cfg.Animation.TargetAngle = *f.Target
	}
	if set["stop"] {
		cfg.Animation.StopAtTarget = *f.Stop
	}
	if *f.NoStop {
		cfg.Animation.StopAtTarget = false
	}
	if set["direction"] {
		cfg.Animation.RotationDirection = *f.Direction
	}
	if *f.Incremental {
		cfg.Animation.IncrementalUpdates = true
	}
	if set["size"] {
		cfg.Cube.Size = *f.Size
	}
	if *f.Width > 0 {
		cfg.Graphics.Width = *f.Width
	}
	if *f.Height > 0 {
		cfg.Graphics.Height = *f.Height
	}
	if *f.Windowed {
		cfg.Graphics.Fullscreen = false
	}
	if *f.Fullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *f.Camera != "" {
		cfg.Graphics.Camera = *f.Camera
	}
}
