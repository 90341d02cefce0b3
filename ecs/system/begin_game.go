package system

import (
	"github.com/milk9111/temple/config"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/save"
	"go.uber.org/zap"
)

// BeginGameSystem picks the level to start from and loads it.
type BeginGameSystem struct {
	logger *zap.Logger
}

func NewBeginGameSystem(logger *zap.Logger) *BeginGameSystem {
	return &BeginGameSystem{logger: logger.Named("bootstrap_game")}
}

func (s *BeginGameSystem) Update(w *ecs.World) {
	e, err := ecs.One(ecs.Query(w, component.BeginGameComponent.Kind()))
	if err != nil {
		return
	}
	defer ecs.DestroyEntity(w, e)

	RequestOverlay(w, component.OverlayCutIn, 0, "")

	gf := settings(w).GameFile
	switch gf.LevelTransition {
	case config.Overworld:
		s.logger.Error("Overworlds are not supported yet")
		return
	case config.NoOverworld:
	default:
		s.logger.Error("Unknown level transition", zap.String("level_transition", string(gf.LevelTransition)))
		return
	}
	if len(gf.LevelOrder) == 0 {
		s.logger.Error("Failed to start game, no level order defined")
		return
	}

	level := StartingLevel(gf.LevelOrder, activeSave(w))
	setGameState(w, component.GameState{Mode: component.ModeInLevel, Level: level})
	if _, err := entity.NewLoadLevel(w, level); err != nil {
		s.logger.Error("Failed to request level", zap.Uint32("level", level), zap.Error(err))
		return
	}
	s.logger.Info("Beginning game", zap.Uint32("level", level))
}

// StartingLevel returns the first level in order that the save has not
// cleared an exit of. Without a save, or when every level is cleared, it is
// the first level.
func StartingLevel(order []levels.ID, gs *save.GameSave) levels.ID {
	if len(order) == 0 {
		return 0
	}
	if gs == nil {
		return order[0]
	}
	for _, id := range order {
		state, ok := gs.LevelState(id)
		if !ok || !state.AnExitCleared() {
			return id
		}
	}
	return order[0]
}
