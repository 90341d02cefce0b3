package system

import (
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/milk9111/temple/levels"
	"go.uber.org/zap"
)

// LevelReloadSystem reloads the current level when its files change on
// disk.
type LevelReloadSystem struct {
	changes <-chan levels.Change
	logger  *zap.Logger
}

func NewLevelReloadSystem(changes <-chan levels.Change, logger *zap.Logger) *LevelReloadSystem {
	return &LevelReloadSystem{changes: changes, logger: logger.Named("level_reload")}
}

func (s *LevelReloadSystem) Update(w *ecs.World) {
	if s.changes == nil {
		return
	}

	reload := false
	_, ll, err := currentLevel(w)
	for {
		select {
		case change, ok := <-s.changes:
			if !ok {
				s.changes = nil
				s.request(w, ll, reload)
				return
			}
			if err == nil && change.ID == ll.ID {
				s.logger.Info("Level changed on disk", zap.Uint32("level", change.ID), zap.String("path", change.Path))
				reload = true
			}
		default:
			s.request(w, ll, reload)
			return
		}
	}
}

func (s *LevelReloadSystem) request(w *ecs.World, ll *component.LoadLevel, reload bool) {
	if !reload {
		return
	}
	if _, err := entity.NewInstruction(w, component.TransitionLevelComponent.Kind(), &component.TransitionLevel{ID: ll.ID}); err != nil {
		s.logger.Error("Failed to request reload", zap.Error(err))
	}
}
