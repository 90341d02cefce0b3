package system

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/temple/assets"
	"github.com/milk9111/temple/config"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/prefabs"
	"github.com/milk9111/temple/save"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testRoot = "/game"

// fakeAssets reports every asset as Loaded unless overridden. Images are
// nil so no GPU is needed.
type fakeAssets struct {
	states    map[string]assets.LoadState
	requested []string
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{states: make(map[string]assets.LoadState)}
}

func (f *fakeAssets) state(path string) assets.LoadState {
	f.requested = append(f.requested, path)
	if s, ok := f.states[path]; ok {
		return s
	}
	return assets.Loaded
}

func (f *fakeAssets) LoadImage(path string) assets.LoadState { return f.state(path) }
func (f *fakeAssets) LoadMusic(path string) assets.LoadState { return f.state(path) }

func (f *fakeAssets) Image(path string) (*ebiten.Image, error) {
	if f.states[path] == assets.Failed {
		return nil, errors.New("decode failed")
	}
	return nil, nil
}

func (f *fakeAssets) Music(path string) ([]byte, error) {
	if f.states[path] == assets.Failed {
		return nil, errors.New("decode failed")
	}
	return []byte{0, 0, 0, 0}, nil
}

func testPlayerSpec() *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		Width: 12, Height: 14, Mass: 1,
		MoveSpeed: 120, Acceleration: 900, JumpSpeed: 300,
		DashSpeed: 320, DashFrames: 4, CoyoteFrames: 3,
		Gravity: -900, RenderLayer: 10,
	}
}

func testCameraSpec() *prefabs.CameraSpec {
	return &prefabs.CameraSpec{Zoom: 2, Smoothness: 1}
}

func newTestStore(t *testing.T) *levels.Store {
	t.Helper()
	return levels.NewStore(afero.NewMemMapFs(), testRoot)
}

func writeLevel(t *testing.T, store *levels.Store, id levels.ID, level levels.Level) {
	t.Helper()
	require.NoError(t, store.SaveLevel(id, level))
}

// simpleLevel is a floor tile and a player standing above it.
func simpleLevel(name, music string) levels.Level {
	return levels.Level{Name: name, Music: music, Sprites: []levels.Sprite{
		{Name: "floor", Pos: [2]uint32{0, 0}, Texture: "floor.png", Attributes: []string{"solid"}},
		{Name: "hero", Pos: [2]uint32{0, 2}, Texture: "hero.png", Attributes: []string{"player"}},
	}}
}

func testGameFile(order ...uint32) config.GameFile {
	return config.GameFile{Title: "Test", LevelTransition: config.NoOverworld, LevelOrder: order}
}

func newTestWorld(t *testing.T, state component.GameState, gs *save.GameSave, gf config.GameFile) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	_, err := entity.NewResources(w, entity.Resources{
		State:    state,
		Save:     gs,
		Settings: component.Settings{GameFile: gf},
	})
	require.NoError(t, err)
	return w
}

func inLevel(id levels.ID) component.GameState {
	return component.GameState{Mode: component.ModeInLevel, Level: id}
}

func update(w *ecs.World, frames int, systems ...ecs.System) {
	sched := ecs.NewScheduler(systems...)
	for i := 0; i < frames; i++ {
		sched.Update(w)
	}
}

func count(w *ecs.World, kinds ...component.Kind) int {
	return len(ecs.Query(w, kinds...))
}

func musicRequests(w *ecs.World) []component.MusicRequest {
	var out []component.MusicRequest
	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(_ ecs.Entity, req *component.MusicRequest) {
		out = append(out, *req)
	})
	return out
}

func overlayRequests(w *ecs.World) []component.OverlayRequest {
	var out []component.OverlayRequest
	ecs.ForEach(w, component.OverlayRequestComponent.Kind(), func(_ ecs.Entity, req *component.OverlayRequest) {
		out = append(out, *req)
	})
	return out
}

func transitions(w *ecs.World) []levels.ID {
	var out []levels.ID
	ecs.ForEach(w, component.TransitionLevelComponent.Kind(), func(_ ecs.Entity, tl *component.TransitionLevel) {
		out = append(out, tl.ID)
	})
	return out
}

// loadSystems is the load half of the level pipeline.
func loadSystems(store *levels.Store, src AssetSource) []ecs.System {
	logger := zap.NewNop()
	return []ecs.System{
		NewTransitionLevelSystem(store, logger),
		NewWaitUntilUnloadedSystem(logger),
		NewPrepareLevelSystem(store, logger),
		NewLoadLevelSystem(store, src, testPlayerSpec(), testCameraSpec(), logger),
		NewApplySaveOnLoadSystem(logger),
		NewUnloadLevelSystem(logger),
	}
}
