package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"go.uber.org/zap"
)

// DevKeysSystem maps development shortcuts to level instructions.
type DevKeysSystem struct {
	justPressed func(ebiten.Key) bool
	pressed     func(ebiten.Key) bool
	logger      *zap.Logger
}

func NewDevKeysSystem(logger *zap.Logger) *DevKeysSystem {
	return &DevKeysSystem{
		justPressed: inpututil.IsKeyJustPressed,
		pressed:     ebiten.IsKeyPressed,
		logger:      logger.Named("dev_keys"),
	}
}

func (s *DevKeysSystem) Update(w *ecs.World) {
	if s.justPressed(ebiten.KeyF1) {
		if _, err := entity.NewInstruction(w, component.NextCheckpointComponent.Kind(), &component.NextCheckpoint{}); err != nil {
			s.logger.Error("Failed to request next checkpoint", zap.Error(err))
		}
	}

	if s.justPressed(ebiten.KeyF5) {
		_, ll, err := currentLevel(w)
		if err != nil {
			s.logger.Warn("No level to reload", zap.Error(err))
		} else if _, err := entity.NewInstruction(w, component.TransitionLevelComponent.Kind(), &component.TransitionLevel{ID: ll.ID}); err != nil {
			s.logger.Error("Failed to request reload", zap.Error(err))
		}
	}

	ctrl := s.pressed(ebiten.KeyControlLeft) || s.pressed(ebiten.KeyControlRight)
	if ctrl && s.justPressed(ebiten.KeyS) && gameState(w).InEditMode() {
		e, _, err := loadedLevel(w)
		if err != nil {
			s.logger.Warn("No level to save", zap.Error(err))
			return
		}
		_ = ecs.Add(w, e, component.SaveLevelComponent.Kind(), &component.SaveLevel{})
	}
}
