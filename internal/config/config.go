// Package config handles cubespin configuration loading and management.
package config

// Config holds all settings. It is loaded once at startup and not mutated
// afterwards.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Cube      CubeConfig      `yaml:"cube"`
	Graphics  GraphicsConfig  `yaml:"graphics"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Adjustments lists out-of-range values that were replaced by defaults.
	Adjustments []string `yaml:"-"`
}

// AnimationConfig holds rotation parameters.
type AnimationConfig struct {
	RotationSpeed      float64 `yaml:"rotation_speed" env:"ROTATION_SPEED"`         // degrees per second
	RotationAxis       string  `yaml:"rotation_axis" env:"ROTATION_AXIS"`           // x, y or z
	InitialAngle       float64 `yaml:"initial_angle" env:"INITIAL_ANGLE"`           // degrees
	TargetAngle        float64 `yaml:"target_angle" env:"TARGET_ANGLE"`             // degrees
	StopAtTarget       bool    `yaml:"stop_at_target" env:"STOP_AT_TARGET"`         // enables seeking mode
	RotationDirection  int     `yaml:"rotation_direction" env:"ROTATION_DIRECTION"` // +1 or -1
	FrameRate          int     `yaml:"frame_rate" env:"FRAME_RATE"`
	IncrementalUpdates bool    `yaml:"incremental_updates" env:"INCREMENTAL_UPDATES"`
	MaxPresentFailures int     `yaml:"max_present_failures" env:"MAX_PRESENT_FAILURES"`
}

// CubeConfig holds mesh and appearance settings.
type CubeConfig struct {
	Size      float64 `yaml:"size" env:"CUBE_SIZE"`
	Color     string  `yaml:"color" env:"CUBE_COLOR"` // hex, e.g. "#1f4fd8"
	ShowEdges bool    `yaml:"show_edges" env:"CUBE_SHOW_EDGES"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int    `yaml:"width" env:"WINDOW_WIDTH"`
	Height        int    `yaml:"height" env:"WINDOW_HEIGHT"`
	Fullscreen    bool   `yaml:"fullscreen"`
	VSync         bool   `yaml:"vsync"`
	Camera        string `yaml:"camera" env:"CAMERA_PRESET"`
	ScreenshotDir string `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"LOG_LEVEL"`
	LogFile string `yaml:"log_file" env:"LOG_FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			RotationSpeed:      30,
			RotationAxis:       "x",
			InitialAngle:       0,
			TargetAngle:        90,
			StopAtTarget:       true,
			RotationDirection:  1,
			FrameRate:          60,
			IncrementalUpdates: false,
			MaxPresentFailures: 30,
		},
		Cube: CubeConfig{
			Size:      1.0,
			Color:     "#1f4fd8",
			ShowEdges: true,
		},
		Graphics: GraphicsConfig{
			Width:         1024,
			Height:        768,
			Fullscreen:    false,
			VSync:         true,
			Camera:        "iso",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
