package component

import (
	"fmt"

	"github.com/milk9111/temple/config"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/save"
)

type GameMode int

const (
	ModeMainMenu GameMode = iota
	ModeEdit
	ModeOverworld
	// ModeInLevel carries the entry level in GameState.Level.
	ModeInLevel
)

func (m GameMode) String() string {
	switch m {
	case ModeMainMenu:
		return "main_menu"
	case ModeEdit:
		return "edit"
	case ModeOverworld:
		return "overworld"
	case ModeInLevel:
		return "in_level"
	default:
		return fmt.Sprintf("GameMode(%d)", int(m))
	}
}

// GameState is the global mode of the game. It lives on the resource entity.
type GameState struct {
	Mode GameMode
	// Level is the entry level while Mode is ModeInLevel.
	Level levels.ID
}

func (s GameState) InEditMode() bool {
	return s.Mode == ModeEdit
}

// InGame reports whether the player is in a level or the overworld.
func (s GameState) InGame() bool {
	return s.Mode == ModeInLevel || s.Mode == ModeOverworld
}

// EntryLevel returns the level the player entered, if playing one.
func (s GameState) EntryLevel() (levels.ID, bool) {
	if s.Mode != ModeInLevel {
		return 0, false
	}
	return s.Level, true
}

var GameStateComponent = NewComponent[GameState]()

// ActiveSave is the save slot being played. Save is nil when playing
// without one.
type ActiveSave struct {
	Save *save.GameSave
}

var ActiveSaveComponent = NewComponent[ActiveSave]()

// Settings exposes game.toml to systems.
type Settings struct {
	GameFile config.GameFile
	ShowFPS  bool
}

var SettingsComponent = NewComponent[Settings]()
