package core

// RuntimeConfig is passed to games when they start or restart.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed, 0 means "pick one from the clock"
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the status a game reports back to the platform.
type GameState struct {
	Score    int  // Points earned so far
	GameOver bool // The game reached its terminal state
	Paused   bool // Simulation is frozen (e.g. a quiz is on screen)
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
