package system

import (
	"testing"

	"github.com/milk9111/temple/config"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/save"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func addLoaded(t *testing.T, w *ecs.World, id levels.ID) ecs.Entity {
	t.Helper()
	e, err := entity.NewLoadLevel(w, id)
	require.NoError(t, err)
	require.NoError(t, ecs.Add(w, e, component.LevelLoadCompleteComponent.Kind(), &component.LevelLoadComplete{}))
	return e
}

func addPlayer(t *testing.T, w *ecs.World, player component.Player, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &player))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	return e
}

func addCheckpoint(t *testing.T, w *ecs.World, id uint32, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{ID: id, X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}))
	require.NoError(t, ecs.Add(w, e, component.ContactSubscriptionComponent.Kind(), &component.ContactSubscription{Width: 16, Height: 16}))
	return e
}

func TestNextCheckpoint(t *testing.T) {
	tests := []struct {
		name         string
		player       component.Player
		wantX, wantY float64
	}{
		{
			name:   "advances from the current checkpoint",
			player: component.Player{RespawnLevel: 1, RespawnX: 0, RespawnY: 16},
			wantX:  64, wantY: 32,
		},
		{
			name:   "starts at checkpoint zero",
			player: component.Player{RespawnLevel: 1, RespawnX: 200, RespawnY: 200},
			wantX:  0, wantY: 16,
		},
		{
			name:   "stays at the last checkpoint",
			player: component.Player{RespawnLevel: 1, RespawnX: 64, RespawnY: 32},
			wantX:  5, wantY: 5,
		},
		{
			name:   "respawn in another level",
			player: component.Player{RespawnLevel: 2, RespawnX: 0, RespawnY: 16},
			wantX:  5, wantY: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, inLevel(1), nil, testGameFile(1))
			addLoaded(t, w, 1)
			pe := addPlayer(t, w, tt.player, 5, 5)
			addCheckpoint(t, w, 1, 64, 32)
			addCheckpoint(t, w, 0, 0, 16)
			_, err := entity.NewInstruction(w, component.NextCheckpointComponent.Kind(), &component.NextCheckpoint{})
			require.NoError(t, err)

			update(w, 1, NewNextCheckpointSystem(zap.NewNop()))

			tf, _ := ecs.Get(w, pe, component.TransformComponent.Kind())
			assert.Equal(t, tt.wantX, tf.X)
			assert.Equal(t, tt.wantY, tf.Y)
			assert.Zero(t, count(w, component.NextCheckpointComponent.Kind()))

			player, _ := ecs.Get(w, pe, component.PlayerComponent.Kind())
			assert.Equal(t, tt.player, *player)
		})
	}
}

func TestNextLevel(t *testing.T) {
	tests := []struct {
		name      string
		state     component.GameState
		gf        config.GameFile
		want      []levels.ID
		wantEntry levels.ID
		endOfGame bool
	}{
		{name: "next in order", state: inLevel(2), gf: testGameFile(1, 2, 3), want: []levels.ID{3}, wantEntry: 2},
		{name: "end of game", state: inLevel(3), gf: testGameFile(1, 2, 3), wantEntry: 3, endOfGame: true},
		{name: "not in order", state: inLevel(7), gf: testGameFile(1, 2, 3), wantEntry: 7},
		{
			name:      "overworld",
			state:     inLevel(1),
			gf:        config.GameFile{LevelTransition: config.Overworld, LevelOrder: []uint32{1, 2}},
			wantEntry: 1,
		},
		{name: "edit mode", state: component.GameState{Mode: component.ModeEdit}, gf: testGameFile(1, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			w := newTestWorld(t, tt.state, nil, tt.gf)
			_, err := entity.NewInstruction(w, component.NextLevelComponent.Kind(), &component.NextLevel{})
			require.NoError(t, err)

			update(w, 1, NewNextLevelSystem(zap.New(core)))

			assert.Equal(t, tt.want, transitions(w))
			ecs.ForEach(w, component.TransitionLevelComponent.Kind(), func(_ ecs.Entity, tl *component.TransitionLevel) {
				assert.True(t, tl.Entry)
			})
			assert.Zero(t, count(w, component.NextLevelComponent.Kind()))
			assert.Equal(t, tt.wantEntry, gameState(w).Level)
			assert.Equal(t, tt.endOfGame, logs.FilterMessage("End of Game!").Len() == 1)
		})
	}
}

func TestSaveLevel(t *testing.T) {
	store := newTestStore(t)
	w := newTestWorld(t, component.GameState{Mode: component.ModeEdit}, nil, testGameFile(1))
	e := addLoaded(t, w, 4)
	level := simpleLevel("Edited", "theme.ogg")
	require.NoError(t, ecs.Add(w, e, component.PreparedLevelComponent.Kind(), &component.PreparedLevel{Level: level}))
	require.NoError(t, ecs.Add(w, e, component.SaveLevelComponent.Kind(), &component.SaveLevel{}))

	update(w, 1, NewSaveLevelSystem(store, zap.NewNop()))

	assert.False(t, ecs.Has(w, e, component.SaveLevelComponent.Kind()))
	got, err := store.Load(4, false)
	require.NoError(t, err)
	assert.Equal(t, level, got)
}

func TestSaveLevelFailure(t *testing.T) {
	store := levels.NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), testRoot)
	core, logs := observer.New(zapcore.WarnLevel)
	w := newTestWorld(t, component.GameState{Mode: component.ModeEdit}, nil, testGameFile(1))
	e := addLoaded(t, w, 4)
	require.NoError(t, ecs.Add(w, e, component.PreparedLevelComponent.Kind(), &component.PreparedLevel{}))
	require.NoError(t, ecs.Add(w, e, component.SaveLevelComponent.Kind(), &component.SaveLevel{}))

	update(w, 1, NewSaveLevelSystem(store, zap.New(core)))

	assert.False(t, ecs.Has(w, e, component.SaveLevelComponent.Kind()))
	assert.Equal(t, 1, logs.FilterMessage("Failed to save level").Len())
}

func TestStartingLevel(t *testing.T) {
	cleared := func(ids ...uint32) *save.GameSave {
		gs := save.New("slot")
		for _, id := range ids {
			gs.ClearExit(id, 0)
		}
		return gs
	}
	checkpointOnly := save.New("slot")
	checkpointOnly.RecordCheckpoint(1, save.Checkpoint{Level: 1})

	tests := []struct {
		name string
		save *save.GameSave
		want levels.ID
	}{
		{name: "no save", save: nil, want: 4},
		{name: "fresh save", save: save.New("slot"), want: 4},
		{name: "first cleared", save: cleared(4), want: 1},
		{name: "entry without clears", save: func() *save.GameSave { gs := cleared(4); gs.RecordCheckpoint(1, save.Checkpoint{}); return gs }(), want: 1},
		{name: "all cleared", save: cleared(4, 1, 9), want: 4},
		{name: "checkpoint only", save: checkpointOnly, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartingLevel([]levels.ID{4, 1, 9}, tt.save))
		})
	}
	assert.Equal(t, levels.ID(0), StartingLevel(nil, nil))
}

func TestBeginGame(t *testing.T) {
	gs := save.New("slot")
	gs.ClearExit(1, 0)
	w := newTestWorld(t, component.GameState{}, gs, testGameFile(1, 2))
	_, err := entity.NewInstruction(w, component.BeginGameComponent.Kind(), &component.BeginGame{})
	require.NoError(t, err)

	update(w, 1, NewBeginGameSystem(zap.NewNop()))

	assert.Zero(t, count(w, component.BeginGameComponent.Kind()))
	assert.Equal(t, inLevel(2), gameState(w))
	_, ll, err := ecs.Single(w, component.LoadLevelComponent.Kind())
	require.NoError(t, err)
	assert.Equal(t, levels.ID(2), ll.ID)
	assert.Equal(t, []component.OverlayRequest{{Command: component.OverlayCutIn}}, overlayRequests(w))
}

func TestBeginGameRejects(t *testing.T) {
	tests := []struct {
		name string
		gf   config.GameFile
		log  string
	}{
		{name: "overworld", gf: config.GameFile{LevelTransition: config.Overworld}, log: "Overworlds are not supported yet"},
		{name: "no order", gf: config.GameFile{LevelTransition: config.NoOverworld}, log: "Failed to start game, no level order defined"},
		{name: "unknown", gf: config.GameFile{LevelTransition: "teleporter"}, log: "Unknown level transition"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			w := newTestWorld(t, component.GameState{}, nil, tt.gf)
			_, err := entity.NewInstruction(w, component.BeginGameComponent.Kind(), &component.BeginGame{})
			require.NoError(t, err)

			update(w, 1, NewBeginGameSystem(zap.New(core)))

			assert.Zero(t, count(w, component.BeginGameComponent.Kind()))
			assert.Zero(t, count(w, component.LoadLevelComponent.Kind()))
			assert.Equal(t, component.ModeMainMenu, gameState(w).Mode)
			assert.Equal(t, 1, logs.FilterMessage(tt.log).Len())
		})
	}
}

func TestLevelReload(t *testing.T) {
	changes := make(chan levels.Change, 4)
	w := newTestWorld(t, inLevel(4), nil, testGameFile(4))
	addLoaded(t, w, 4)
	sys := NewLevelReloadSystem(changes, zap.NewNop())

	changes <- levels.Change{ID: 5, Path: "/game/assets/levels/5.toml"}
	update(w, 1, sys)
	assert.Empty(t, transitions(w))

	changes <- levels.Change{ID: 4, Path: "/game/assets/levels/4.toml"}
	changes <- levels.Change{ID: 4, Path: "/game/assets/levelmaps/4.levelmap"}
	update(w, 1, sys)
	assert.Equal(t, []levels.ID{4}, transitions(w))

	close(changes)
	update(w, 2, sys)
	assert.Len(t, transitions(w), 1)
}
