package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Input ticks per second (default 60)
	CellW    int // Terminal columns per grid cell
	CellH    int // Terminal rows per grid cell
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		CellW:    6,
		CellH:    3,
	}
}

// GameState represents the current state of a play session.
type GameState struct {
	Rolls   int  // Committed rolls
	Cancels int  // Rolls that fell back to their origin
	Rolling bool // Whether a roll is in progress
}
