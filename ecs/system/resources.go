package system

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/temple/assets"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/save"
)

// AssetSource is the part of the asset loader the systems poll.
type AssetSource interface {
	LoadImage(path string) assets.LoadState
	Image(path string) (*ebiten.Image, error)
	LoadMusic(path string) assets.LoadState
	Music(path string) ([]byte, error)
}

// gameState returns the global game state, or the main menu state when no
// resource entity exists.
func gameState(w *ecs.World) component.GameState {
	if _, state, err := ecs.Single(w, component.GameStateComponent.Kind()); err == nil {
		return *state
	}
	return component.GameState{}
}

func setGameState(w *ecs.World, state component.GameState) {
	if e, ok := ecs.First(w, component.GameStateComponent.Kind()); ok {
		_ = ecs.Add(w, e, component.GameStateComponent.Kind(), &state)
	}
}

// activeSave returns the save being played, or nil.
func activeSave(w *ecs.World) *save.GameSave {
	if _, active, err := ecs.Single(w, component.ActiveSaveComponent.Kind()); err == nil {
		return active.Save
	}
	return nil
}

func settings(w *ecs.World) component.Settings {
	if _, s, err := ecs.Single(w, component.SettingsComponent.Kind()); err == nil {
		return *s
	}
	return component.Settings{}
}

// loadedLevel returns the one LoadLevel entity that finished loading.
func loadedLevel(w *ecs.World) (ecs.Entity, *component.LoadLevel, error) {
	e, err := ecs.One(ecs.Query(w, component.LoadLevelComponent.Kind(), component.LevelLoadCompleteComponent.Kind()))
	if err != nil {
		return 0, nil, err
	}
	ll, _ := ecs.Get(w, e, component.LoadLevelComponent.Kind())
	return e, ll, nil
}

// currentLevel returns the loaded level or, when none is loaded, the one
// level whose load failed. Transitions and reloads start from it.
func currentLevel(w *ecs.World) (ecs.Entity, *component.LoadLevel, error) {
	e, ll, err := loadedLevel(w)
	if !errors.Is(err, ecs.ErrNoEntities) {
		return e, ll, err
	}
	e, err = ecs.One(ecs.Query(w, component.LoadLevelComponent.Kind(), component.LevelLoadFailedComponent.Kind()))
	if err != nil {
		return 0, nil, err
	}
	ll, _ = ecs.Get(w, e, component.LoadLevelComponent.Kind())
	return e, ll, nil
}

// movePlayer places e at x, y. The physics system moves the body and
// clears its velocity on its next step.
func movePlayer(w *ecs.World, e ecs.Entity, x, y float64) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = x, y
	}
	_ = ecs.Add(w, e, component.TeleportComponent.Kind(), &component.Teleport{X: x, Y: y})
}
