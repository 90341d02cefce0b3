package system

import (
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"go.uber.org/zap"
)

// UnloadLevelSystem despawns a loaded level and its LoadLevel entity. A
// level that failed to load is dropped the same way.
type UnloadLevelSystem struct {
	logger *zap.Logger
}

func NewUnloadLevelSystem(logger *zap.Logger) *UnloadLevelSystem {
	return &UnloadLevelSystem{logger: logger.Named("unload_level")}
}

func (s *UnloadLevelSystem) Update(w *ecs.World) {
	for _, e := range ecs.Query(w, component.LevelLoadCompleteComponent.Kind(), component.UnloadLevelComponent.Kind()) {
		ll, _ := ecs.Get(w, e, component.LoadLevelComponent.Kind())
		removed := 0
		for _, sprite := range ecs.Query(w, component.LevelLoadedSpriteComponent.Kind()) {
			if ecs.DestroyEntity(w, sprite) {
				removed++
			}
		}
		if ll != nil {
			s.logger.Info("Unloaded level", zap.Uint32("level", ll.ID), zap.Int("entities", removed))
		}
		ecs.DestroyEntity(w, e)
	}

	for _, e := range ecs.Query(w, component.LevelLoadFailedComponent.Kind(), component.UnloadLevelComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
}
