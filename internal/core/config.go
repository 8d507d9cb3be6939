package core

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int  // Collectibles gathered or food eaten
	Remaining int  // Collectibles still on the field
	GameOver  bool // Whether the player is dead
}

// FrameStats counts the work done by the two execution contexts.
type FrameStats struct {
	Frames   uint64 // cooperative frames completed
	VBlanks  uint64 // refresh interrupts serviced (drained)
	Overruns uint64 // refresh interrupts that found the producer mid-frame
}
