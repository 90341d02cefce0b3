package system

import (
	"github.com/milk9111/temple/config"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"go.uber.org/zap"
)

// NextCheckpointSystem moves the player to the checkpoint after the one it
// respawns at, or to checkpoint 0.
type NextCheckpointSystem struct {
	logger *zap.Logger
}

func NewNextCheckpointSystem(logger *zap.Logger) *NextCheckpointSystem {
	return &NextCheckpointSystem{logger: logger.Named("next_checkpoint")}
}

func (s *NextCheckpointSystem) Update(w *ecs.World) {
	for _, e := range ecs.Query(w, component.NextCheckpointComponent.Kind()) {
		s.advance(w)
		ecs.DestroyEntity(w, e)
	}
}

func (s *NextCheckpointSystem) advance(w *ecs.World) {
	_, ll, err := loadedLevel(w)
	if err != nil {
		return
	}
	pe, player, err := ecs.Single(w, component.PlayerComponent.Kind())
	if err != nil || player.RespawnLevel != ll.ID {
		return
	}

	byID := make(map[uint32]*component.Checkpoint)
	want := uint32(0)
	ecs.ForEach(w, component.CheckpointComponent.Kind(), func(_ ecs.Entity, cp *component.Checkpoint) {
		byID[cp.ID] = cp
		if cp.X == player.RespawnX && cp.Y == player.RespawnY {
			want = cp.ID + 1
		}
	})

	target, ok := byID[want]
	if !ok {
		s.logger.Debug("No next checkpoint", zap.Uint32("checkpoint", want))
		return
	}
	movePlayer(w, pe, target.X, target.Y)
	s.logger.Info("Moved to checkpoint", zap.Uint32("checkpoint", target.ID))
}

// NextLevelSystem follows level_order to the level after the one being
// played.
type NextLevelSystem struct {
	logger *zap.Logger
}

func NewNextLevelSystem(logger *zap.Logger) *NextLevelSystem {
	return &NextLevelSystem{logger: logger.Named("auto_next_level")}
}

func (s *NextLevelSystem) Update(w *ecs.World) {
	for _, e := range ecs.Query(w, component.NextLevelComponent.Kind()) {
		ecs.DestroyEntity(w, e)
		s.next(w)
	}
}

func (s *NextLevelSystem) next(w *ecs.World) {
	state := gameState(w)
	current, ok := state.EntryLevel()
	if !ok {
		return
	}
	gf := settings(w).GameFile
	if gf.LevelTransition != config.NoOverworld {
		return
	}

	found := false
	for _, id := range gf.LevelOrder {
		if id == current {
			found = true
			break
		}
	}
	if !found {
		return
	}

	next, ok := gf.NextLevel(current)
	if !ok {
		s.logger.Info("End of Game!")
		return
	}
	if _, err := entity.NewInstruction(w, component.TransitionLevelComponent.Kind(), &component.TransitionLevel{ID: next, Entry: true}); err != nil {
		s.logger.Error("Failed to request next level", zap.Uint32("level", next), zap.Error(err))
	}
}
