package system

import (
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/levels"
	"go.uber.org/zap"
)

// SaveLevelSystem writes the loaded level back to its files.
type SaveLevelSystem struct {
	store  *levels.Store
	logger *zap.Logger
}

func NewSaveLevelSystem(store *levels.Store, logger *zap.Logger) *SaveLevelSystem {
	return &SaveLevelSystem{store: store, logger: logger.Named("save_level")}
}

func (s *SaveLevelSystem) Update(w *ecs.World) {
	ents := ecs.Query(w,
		component.PreparedLevelComponent.Kind(),
		component.LoadLevelComponent.Kind(),
		component.LevelLoadCompleteComponent.Kind(),
		component.SaveLevelComponent.Kind(),
	)
	for _, e := range ents {
		ll, _ := ecs.Get(w, e, component.LoadLevelComponent.Kind())
		prepared, _ := ecs.Get(w, e, component.PreparedLevelComponent.Kind())
		if err := s.store.SaveLevel(ll.ID, prepared.Level); err != nil {
			s.logger.Warn("Failed to save level", zap.Uint32("level", ll.ID), zap.Error(err))
		} else {
			s.logger.Info("Saved level", zap.Uint32("level", ll.ID))
		}
		ecs.Remove(w, e, component.SaveLevelComponent.Kind())
	}
}
