package system

import (
	"context"

	"github.com/milk9111/temple/config"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/milk9111/temple/save"
	"go.uber.org/zap"
)

// contacted visits every entity with kind that the player touched this
// frame.
func contacted[T any](w *ecs.World, kind component.ComponentKind[T], fn func(ecs.Entity, *T)) {
	for _, e := range ecs.Query(w, kind, component.PlayerContactedComponent.Kind()) {
		v, ok := ecs.Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

func writeSave(store save.Store, gs *save.GameSave, logger *zap.Logger) {
	if store == nil || gs == nil {
		return
	}
	if err := store.Write(context.Background(), gs); err != nil {
		logger.Error("Failed to write save", zap.String("save", gs.Name), zap.Error(err))
	}
}

// CheckpointSystem moves the player's respawn point to touched checkpoints
// and records them in the active save.
type CheckpointSystem struct {
	saves  save.Store
	logger *zap.Logger
}

func NewCheckpointSystem(saves save.Store, logger *zap.Logger) *CheckpointSystem {
	return &CheckpointSystem{saves: saves, logger: logger.Named("on_checkpoint_system")}
}

func (s *CheckpointSystem) Update(w *ecs.World) {
	pe, player, err := ecs.Single(w, component.PlayerComponent.Kind())
	if err != nil {
		return
	}
	contacted(w, component.CheckpointComponent.Kind(), func(e ecs.Entity, cp *component.Checkpoint) {
		defer ecs.Remove(w, e, component.PlayerContactedComponent.Kind())
		if player.RespawnX == cp.X && player.RespawnY == cp.Y {
			return
		}
		playSound(w, pe, component.SfxCheckpoint)
		_, ll, err := loadedLevel(w)
		if err != nil {
			return
		}
		entry, ok := gameState(w).EntryLevel()
		if !ok {
			return
		}

		player.RespawnLevel = ll.ID
		player.RespawnX, player.RespawnY = cp.X, cp.Y
		s.logger.Info("Checkpoint reached", zap.Uint32("level", ll.ID), zap.Uint32("checkpoint", cp.ID))

		if gs := activeSave(w); gs != nil {
			gs.RecordCheckpoint(entry, save.Checkpoint{Level: ll.ID, X: cp.X, Y: cp.Y})
			writeSave(s.saves, gs, s.logger)
		}
	})
}

// GoalSystem clears exits of the entry level in the active save.
type GoalSystem struct {
	saves  save.Store
	logger *zap.Logger
}

func NewGoalSystem(saves save.Store, logger *zap.Logger) *GoalSystem {
	return &GoalSystem{saves: saves, logger: logger.Named("on_goal_system")}
}

func (s *GoalSystem) Update(w *ecs.World) {
	contacted(w, component.GoalComponent.Kind(), func(e ecs.Entity, goal *component.Goal) {
		if gs := activeSave(w); gs != nil {
			if entry, ok := gameState(w).EntryLevel(); ok {
				gs.ClearExit(entry, goal.Exit)
				writeSave(s.saves, gs, s.logger)
				s.logger.Info("Exit cleared", zap.Uint32("level", entry), zap.Int("exit", goal.Exit))
			}
		} else {
			s.logger.Warn("No active save to clear level on. Ignoring...")
		}

		if settings(w).GameFile.LevelTransition == config.NoOverworld {
			if _, err := entity.NewInstruction(w, component.NextLevelComponent.Kind(), &component.NextLevel{}); err != nil {
				s.logger.Error("Failed to request next level", zap.Error(err))
			}
		}
		ecs.Remove(w, e, component.PlayerContactedComponent.Kind())
	})
}

// TransitionContactSystem starts a level transition from touched
// transition tiles.
type TransitionContactSystem struct {
	logger *zap.Logger
}

func NewTransitionContactSystem(logger *zap.Logger) *TransitionContactSystem {
	return &TransitionContactSystem{logger: logger.Named("on_transition_system")}
}

func (s *TransitionContactSystem) Update(w *ecs.World) {
	contacted(w, component.TransitionComponent.Kind(), func(e ecs.Entity, trans *component.Transition) {
		if _, err := entity.NewInstruction(w, component.TransitionLevelComponent.Kind(), &component.TransitionLevel{ID: trans.Level}); err != nil {
			s.logger.Error("Failed to request transition", zap.Uint32("level", trans.Level), zap.Error(err))
		}
		ecs.Remove(w, e, component.PlayerContactedComponent.Kind())
	})
}

// GiveSystem grants the player the attribute of a touched give tile and
// consumes the tile.
type GiveSystem struct {
	logger *zap.Logger
}

func NewGiveSystem(logger *zap.Logger) *GiveSystem {
	return &GiveSystem{logger: logger.Named("on_give_system")}
}

func (s *GiveSystem) Update(w *ecs.World) {
	player, _, err := ecs.Single(w, component.PlayerComponent.Kind())
	if err != nil {
		return
	}
	contacted(w, component.GiveComponent.Kind(), func(e ecs.Entity, give *component.Give) {
		if err := entity.Grant(w, player, give.Attribute); err != nil {
			s.logger.Warn("Failed to give attribute", zap.String("attribute", give.Attribute), zap.Error(err))
		}
		ecs.DestroyEntity(w, e)
	})
}

// DeathSystem sends the player back to its respawn point after touching a
// deadly tile.
type DeathSystem struct {
	logger *zap.Logger
}

func NewDeathSystem(logger *zap.Logger) *DeathSystem {
	return &DeathSystem{logger: logger.Named("on_death_system")}
}

func (s *DeathSystem) Update(w *ecs.World) {
	pe, player, err := ecs.Single(w, component.PlayerComponent.Kind())
	if err != nil {
		return
	}
	died := false
	contacted(w, component.DeadlyComponent.Kind(), func(e ecs.Entity, _ *component.Deadly) {
		died = true
		ecs.Remove(w, e, component.PlayerContactedComponent.Kind())
	})
	if !died {
		return
	}

	_, ll, err := loadedLevel(w)
	if err == nil && ll.ID != player.RespawnLevel {
		if _, err := entity.NewInstruction(w, component.TransitionLevelComponent.Kind(), &component.TransitionLevel{ID: player.RespawnLevel}); err != nil {
			s.logger.Error("Failed to request respawn level", zap.Uint32("level", player.RespawnLevel), zap.Error(err))
		}
		return
	}
	movePlayer(w, pe, player.RespawnX, player.RespawnY)
	playSound(w, pe, component.SfxCheckpoint)
	s.logger.Debug("Player respawned", zap.Float64("x", player.RespawnX), zap.Float64("y", player.RespawnY))
}
