package entity

import (
	"fmt"

	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/save"
)

// Resources are the singleton components shared by every system.
type Resources struct {
	State    component.GameState
	Save     *save.GameSave
	Settings component.Settings
}

// NewResources creates the entity that carries the game state, the active
// save, the settings and the overlay.
func NewResources(w *ecs.World, res Resources) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("resources: world is nil")
	}

	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.GameStateComponent.Kind(), &res.State); err != nil {
		return 0, fmt.Errorf("resources: add game state: %w", err)
	}
	if err := ecs.Add(w, ent, component.ActiveSaveComponent.Kind(), &component.ActiveSave{Save: res.Save}); err != nil {
		return 0, fmt.Errorf("resources: add active save: %w", err)
	}
	if err := ecs.Add(w, ent, component.SettingsComponent.Kind(), &res.Settings); err != nil {
		return 0, fmt.Errorf("resources: add settings: %w", err)
	}
	if err := ecs.Add(w, ent, component.OverlayComponent.Kind(), &component.Overlay{}); err != nil {
		return 0, fmt.Errorf("resources: add overlay: %w", err)
	}
	return ent, nil
}

func NewMusicPlayer(w *ecs.World) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.MusicPlayerComponent.Kind(), &component.MusicPlayer{}); err != nil {
		return 0, fmt.Errorf("music player: add component: %w", err)
	}
	return ent, nil
}

// NewLoadLevel spawns a LoadLevel instruction.
func NewLoadLevel(w *ecs.World, id levels.ID) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.LoadLevelComponent.Kind(), &component.LoadLevel{ID: id}); err != nil {
		return 0, fmt.Errorf("load level: %w", err)
	}
	return ent, nil
}

// NewInstruction spawns an entity carrying a single instruction component.
func NewInstruction[T any](w *ecs.World, kind component.ComponentKind[T], value *T) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, kind, value); err != nil {
		ecs.DestroyEntity(w, ent)
		return 0, fmt.Errorf("instruction: %w", err)
	}
	return ent, nil
}
