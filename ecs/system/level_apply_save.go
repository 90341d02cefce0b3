package system

import (
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"go.uber.org/zap"
)

// ApplySaveOnLoadSystem restores the saved checkpoint of the entry level
// onto the player of a freshly loaded level.
type ApplySaveOnLoadSystem struct {
	logger *zap.Logger
}

func NewApplySaveOnLoadSystem(logger *zap.Logger) *ApplySaveOnLoadSystem {
	return &ApplySaveOnLoadSystem{logger: logger.Named("apply_save_on_load")}
}

func (s *ApplySaveOnLoadSystem) Update(w *ecs.World) {
	e, err := ecs.One(ecs.Without(w,
		ecs.Query(w, component.LoadLevelComponent.Kind(), component.LevelLoadCompleteComponent.Kind()),
		component.LevelSaveAppliedComponent.Kind(),
	))
	if err != nil {
		return
	}
	ll, _ := ecs.Get(w, e, component.LoadLevelComponent.Kind())

	if entry, ok := gameState(w).EntryLevel(); ok {
		if cp, ok := activeSave(w).CheckpointFor(entry); ok {
			if pe, player, err := ecs.Single(w, component.PlayerComponent.Kind()); err == nil {
				player.RespawnLevel = cp.Level
				player.RespawnX, player.RespawnY = cp.X, cp.Y
				if ll.ID == cp.Level {
					movePlayer(w, pe, cp.X, cp.Y)
				}
				s.logger.Info("Applied checkpoint",
					zap.Uint32("entry", entry),
					zap.Uint32("level", cp.Level),
					zap.Float64("x", cp.X),
					zap.Float64("y", cp.Y),
				)
			}
		}
	}

	_ = ecs.Add(w, e, component.LevelSaveAppliedComponent.Kind(), &component.LevelSaveApplied{})
}
