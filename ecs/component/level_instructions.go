package component

import "github.com/milk9111/temple/levels"

// TransitionLevel unloads the current level and loads ID.
type TransitionLevel struct {
	ID levels.ID
	// Entry makes ID the entry level of the game state once the transition
	// is taken.
	Entry bool
}

var TransitionLevelComponent = NewComponent[TransitionLevel]()

// NextCheckpoint moves the player to the checkpoint after its current one.
type NextCheckpoint struct{}

var NextCheckpointComponent = NewComponent[NextCheckpoint]()

// NextLevel transitions to the level after the current one in the level
// order.
type NextLevel struct{}

var NextLevelComponent = NewComponent[NextLevel]()

// SaveLevel writes the loaded level back to its files. Added to the
// LoadLevel entity.
type SaveLevel struct{}

var SaveLevelComponent = NewComponent[SaveLevel]()

// BeginGame picks the first level to play from the active save.
type BeginGame struct{}

var BeginGameComponent = NewComponent[BeginGame]()
