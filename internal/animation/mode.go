package animation

// Mode is the engine's operating state.
type Mode int

const (
	// ModeContinuous rotates forever.
	ModeContinuous Mode = iota
	// ModeSeeking rotates until the target angle is reached.
	ModeSeeking
	// ModeIdle stops rotating; the viewer stays open for camera interaction.
	ModeIdle
)

func (m Mode) String() string {
	switch m {
	case ModeContinuous:
		return "continuous"
	case ModeSeeking:
		return "seeking"
	case ModeIdle:
		return "idle"
	default:
		return "unknown"
	}
}
