package system

import (
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/levels"
	"go.uber.org/zap"
)

// PrepareLevelSystem reads and joins the files of requested levels.
type PrepareLevelSystem struct {
	store  *levels.Store
	logger *zap.Logger
}

func NewPrepareLevelSystem(store *levels.Store, logger *zap.Logger) *PrepareLevelSystem {
	return &PrepareLevelSystem{store: store, logger: logger.Named("prepare_level")}
}

func (s *PrepareLevelSystem) Update(w *ecs.World) {
	state := gameState(w)
	active := activeSave(w)

	ecs.ForEachWithout(w, component.LoadLevelComponent.Kind(), func(e ecs.Entity, ll *component.LoadLevel) {
		s.logger.Info("Preparing level", zap.Uint32("level", ll.ID))

		// A saved checkpoint may live in a level reached from the entry level.
		if !state.InEditMode() {
			if cp, ok := active.CheckpointFor(ll.ID); ok && cp.Level != ll.ID {
				s.logger.Info("Loading checkpoint level instead",
					zap.Uint32("level", ll.ID),
					zap.Uint32("checkpoint_level", cp.Level),
				)
				ll.ID = cp.Level
			}
		}

		level, err := s.store.Load(ll.ID, state.InEditMode())
		if err != nil {
			markFailed(w, e, s.logger, err)
			return
		}
		_ = ecs.Add(w, e, component.PreparedLevelComponent.Kind(), &component.PreparedLevel{Level: level})
	},
		component.PreparedLevelComponent.Kind(),
		component.LevelLoadCompleteComponent.Kind(),
		component.LevelLoadFailedComponent.Kind(),
	)
}

// markFailed stops the load pipeline for e.
func markFailed(w *ecs.World, e ecs.Entity, logger *zap.Logger, err error) {
	logger.Error("Failed to load level", zap.Error(err))
	_ = ecs.Add(w, e, component.LevelLoadFailedComponent.Kind(), &component.LevelLoadFailed{Reason: err.Error()})
}
