package entity

import (
	"testing"

	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/levels"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawnLevel(t *testing.T) {
	w := ecs.NewWorld()
	level := levels.Level{Name: "Test", Sprites: []levels.Sprite{
		{Name: "wall", Pos: [2]uint32{0, 0}, Texture: "wall.png", Attributes: []string{"solid"}},
		{Name: "player", Pos: [2]uint32{2, 1}, Offset: [2]int{0, 4}, Texture: "player.png", Attributes: []string{"player"}},
		{Name: "deco", Pos: [2]uint32{3, 3}, Texture: "deco.png"},
	}}

	spawned, err := SpawnLevel(w, 1, level, nil, testPlayerSpec())
	require.NoError(t, err)
	require.Len(t, spawned.Entities, 3)
	assert.True(t, spawned.HasPlayer)
	assert.Equal(t, 32.0, spawned.PlayerX)
	assert.Equal(t, 20.0, spawned.PlayerY)

	for _, e := range spawned.Entities {
		assert.True(t, ecs.Has(w, e, component.LevelLoadedSpriteComponent.Kind()))
		assert.True(t, ecs.Has(w, e, component.SpriteComponent.Kind()))
	}

	tf, ok := ecs.Get(w, spawned.Entities[1], component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 32.0, tf.X)
	assert.Equal(t, 20.0, tf.Y)

	layer, ok := ecs.Get(w, spawned.Entities[1], component.RenderLayerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 5, layer.Index)
}

func TestSpawnLevelRollsBack(t *testing.T) {
	w := ecs.NewWorld()
	level := levels.Level{Sprites: []levels.Sprite{
		{Name: "wall", Attributes: []string{"solid"}},
		{Name: "bad", Attributes: []string{"goal(-1)"}},
	}}

	_, err := SpawnLevel(w, 1, level, nil, testPlayerSpec())
	require.Error(t, err)
	assert.Empty(t, ecs.Entities(w))
}

func TestLevelSpriteOnDeadEntity(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.True(t, ecs.DestroyEntity(w, e))

	err := addLevelSprite(w, e, levels.Sprite{Name: "wall"}, nil)
	require.ErrorIs(t, err, component.ErrEntityNotAlive)
	assert.Empty(t, ecs.Entities(w))
}

func TestNewLevelCamera(t *testing.T) {
	w := ecs.NewWorld()
	cam, err := NewLevelCamera(w, 10, 20, nil)
	require.NoError(t, err)

	tf, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 10.0, tf.X)
	assert.True(t, ecs.Has(w, cam, component.LevelLoadedSpriteComponent.Kind()))
	c, ok := ecs.Get(w, cam, component.CameraComponent.Kind())
	require.True(t, ok)
	assert.Greater(t, c.Zoom, 0.0)
}

func TestNewResources(t *testing.T) {
	w := ecs.NewWorld()
	_, err := NewResources(w, Resources{State: component.GameState{Mode: component.ModeInLevel, Level: 4}})
	require.NoError(t, err)

	_, state, err := ecs.Single(w, component.GameStateComponent.Kind())
	require.NoError(t, err)
	lvl, ok := state.EntryLevel()
	assert.True(t, ok)
	assert.Equal(t, levels.ID(4), lvl)

	_, active, err := ecs.Single(w, component.ActiveSaveComponent.Kind())
	require.NoError(t, err)
	assert.Nil(t, active.Save)
}
