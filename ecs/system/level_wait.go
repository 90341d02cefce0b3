package system

import (
	"errors"

	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"go.uber.org/zap"
)

// WaitUntilUnloadedSystem releases a held LoadLevel once no other level is
// loaded.
type WaitUntilUnloadedSystem struct {
	logger *zap.Logger
}

func NewWaitUntilUnloadedSystem(logger *zap.Logger) *WaitUntilUnloadedSystem {
	return &WaitUntilUnloadedSystem{logger: logger.Named("wait_until_unloaded")}
}

func (s *WaitUntilUnloadedSystem) Update(w *ecs.World) {
	waiting, err := ecs.One(ecs.Query(w, component.LoadLevelComponent.Kind(), component.WaitUntilUnloadedComponent.Kind()))
	if err != nil {
		return
	}

	loaded := ecs.Without(w,
		ecs.Query(w, component.LoadLevelComponent.Kind(), component.LevelLoadCompleteComponent.Kind()),
		component.WaitUntilUnloadedComponent.Kind(),
	)
	switch _, err := ecs.One(loaded); {
	case errors.Is(err, ecs.ErrNoEntities):
		ecs.Remove(w, waiting, component.WaitUntilUnloadedComponent.Kind())
	case errors.Is(err, ecs.ErrMultipleEntities):
		s.logger.Warn("Multiple levels are loaded. Things may get weird.", zap.Int("loaded", len(loaded)))
	}
}
