package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/temple/assets"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/prefabs"
	"go.uber.org/zap"
)

// levelFadeSeconds is how long the overlay takes to reveal a loaded level.
const levelFadeSeconds = 1.0

// LoadLevelSystem spawns prepared levels once their textures and music are
// available.
type LoadLevelSystem struct {
	store  *levels.Store
	assets AssetSource
	player *prefabs.PlayerSpec
	camera *prefabs.CameraSpec
	logger *zap.Logger
}

func NewLoadLevelSystem(store *levels.Store, assets AssetSource, player *prefabs.PlayerSpec, camera *prefabs.CameraSpec, logger *zap.Logger) *LoadLevelSystem {
	return &LoadLevelSystem{
		store:  store,
		assets: assets,
		player: player,
		camera: camera,
		logger: logger.Named("load_level"),
	}
}

func (s *LoadLevelSystem) Update(w *ecs.World) {
	state := gameState(w)
	pending := ecs.Without(w,
		ecs.Query(w, component.LoadLevelComponent.Kind(), component.PreparedLevelComponent.Kind()),
		component.LevelLoadCompleteComponent.Kind(),
		component.WaitUntilUnloadedComponent.Kind(),
		component.LevelLoadFailedComponent.Kind(),
	)
	for _, e := range pending {
		ll, _ := ecs.Get(w, e, component.LoadLevelComponent.Kind())
		prepared, _ := ecs.Get(w, e, component.PreparedLevelComponent.Kind())
		if ll == nil || prepared == nil {
			continue
		}
		s.load(w, e, ll.ID, prepared.Level, state)
	}
}

func (s *LoadLevelSystem) load(w *ecs.World, e ecs.Entity, id levels.ID, level levels.Level, state component.GameState) {
	if !s.texturesReady(level) {
		return
	}

	if !state.InEditMode() && level.Music != "" {
		track := s.store.MusicPath(level.Music)
		switch s.assets.LoadMusic(track) {
		case assets.NotLoaded, assets.Loading:
			return
		case assets.Failed:
			s.logger.Warn("Level music failed to load", zap.Uint32("level", id), zap.String("music", level.Music))
		case assets.Loaded:
			if !ecs.Has(w, e, component.KeepMusicComponent.Kind()) {
				RequestMusic(w, track)
			}
		}
	}

	spawned, err := entity.SpawnLevel(w, id, level, s.images(id), s.player)
	if err != nil {
		markFailed(w, e, s.logger, fmt.Errorf("level %d: %w", id, err))
		return
	}
	if _, err := entity.NewLevelCamera(w, spawned.PlayerX, spawned.PlayerY, s.camera); err != nil {
		for _, sprite := range spawned.Entities {
			ecs.DestroyEntity(w, sprite)
		}
		markFailed(w, e, s.logger, fmt.Errorf("level %d: %w", id, err))
		return
	}

	if !state.InEditMode() {
		RequestOverlay(w, component.OverlayFadeOut, levelFadeSeconds, level.Name)
	}

	_ = ecs.Add(w, e, component.LevelLoadCompleteComponent.Kind(), &component.LevelLoadComplete{})
	s.logger.Info(fmt.Sprintf("Loaded Level %d", id), zap.Int("sprites", len(spawned.Entities)))
}

// texturesReady requests every texture of level and reports whether all of
// them have finished, successfully or not.
func (s *LoadLevelSystem) texturesReady(level levels.Level) bool {
	ready := true
	requested := make(map[string]struct{}, len(level.Sprites))
	for _, sprite := range level.Sprites {
		if _, ok := requested[sprite.Texture]; ok {
			continue
		}
		requested[sprite.Texture] = struct{}{}
		switch s.assets.LoadImage(s.store.TexturePath(sprite.Texture)) {
		case assets.NotLoaded, assets.Loading:
			ready = false
		}
	}
	return ready
}

func (s *LoadLevelSystem) images(id levels.ID) func(string) *ebiten.Image {
	cache := make(map[string]*ebiten.Image)
	return func(texture string) *ebiten.Image {
		if img, ok := cache[texture]; ok {
			return img
		}
		img, err := s.assets.Image(s.store.TexturePath(texture))
		if err != nil {
			s.logger.Warn("Missing texture", zap.Uint32("level", id), zap.String("texture", texture), zap.Error(err))
		}
		cache[texture] = img
		return img
	}
}
