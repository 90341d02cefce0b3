package system

import (
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/milk9111/temple/levels"
	"go.uber.org/zap"
)

// TransitionLevelSystem swaps the loaded level for the target of the first
// TransitionLevel instruction of the frame.
type TransitionLevelSystem struct {
	store  *levels.Store
	logger *zap.Logger
}

func NewTransitionLevelSystem(store *levels.Store, logger *zap.Logger) *TransitionLevelSystem {
	return &TransitionLevelSystem{store: store, logger: logger.Named("transition_level")}
}

func (s *TransitionLevelSystem) Update(w *ecs.World) {
	handled := false
	ecs.ForEach(w, component.TransitionLevelComponent.Kind(), func(e ecs.Entity, tl *component.TransitionLevel) {
		if !handled {
			handled = true
			s.transition(w, *tl)
		}
		ecs.DestroyEntity(w, e)
	})
}

func (s *TransitionLevelSystem) transition(w *ecs.World, tl component.TransitionLevel) {
	target := tl.ID
	loading := ecs.Without(w,
		ecs.Query(w, component.LoadLevelComponent.Kind()),
		component.LevelLoadCompleteComponent.Kind(),
		component.LevelLoadFailedComponent.Kind(),
	)
	if len(loading) > 0 {
		s.logger.Debug("A level is still loading, ignoring transition", zap.Uint32("target", target))
		return
	}

	current, ll, err := currentLevel(w)
	if err != nil {
		s.logger.Warn("No single level is loaded, cannot transition", zap.Uint32("target", target), zap.Error(err))
		return
	}

	_ = ecs.Add(w, current, component.UnloadLevelComponent.Kind(), &component.UnloadLevel{})
	next, err := entity.NewLoadLevel(w, target)
	if err != nil {
		s.logger.Error("Failed to request level", zap.Uint32("target", target), zap.Error(err))
		return
	}
	_ = ecs.Add(w, next, component.WaitUntilUnloadedComponent.Kind(), &component.WaitUntilUnloaded{})

	if tl.Entry {
		state := gameState(w)
		state.Level = target
		setGameState(w, state)
	}

	if s.store.SameMusic(ll.ID, target) {
		_ = ecs.Add(w, next, component.KeepMusicComponent.Kind(), &component.KeepMusic{})
	} else {
		StopMusic(w)
	}
	s.logger.Info("Transitioning level", zap.Uint32("from", ll.ID), zap.Uint32("to", target))
}
