package system

import (
	"testing"

	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovingOffset(t *testing.T) {
	tests := []struct {
		elapsed, duration float64
		want              float64
	}{
		{elapsed: 0, duration: 2, want: 0},
		{elapsed: 0.5, duration: 2, want: 0.5},
		{elapsed: 1, duration: 2, want: 1},
		{elapsed: 1.5, duration: 2, want: 0.5},
		{elapsed: 2, duration: 2, want: 0},
		{elapsed: 1, duration: 0, want: 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, MovingOffset(tt.elapsed, tt.duration), 1e-9, "elapsed %v duration %v", tt.elapsed, tt.duration)
	}
}

func TestMovingWithoutBody(t *testing.T) {
	w := ecs.NewWorld()
	up := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, up, component.TransformComponent.Kind(), &component.Transform{X: 10, Y: 10}))
	require.NoError(t, ecs.Add(w, up, component.MovingComponent.Kind(), &component.Moving{
		Direction: component.MoveUp,
		Distance:  16,
		Duration:  1,
		OriginX:   10,
		OriginY:   10,
	}))
	still := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, still, component.TransformComponent.Kind(), &component.Transform{X: 3, Y: 4}))
	require.NoError(t, ecs.Add(w, still, component.MovingComponent.Kind(), &component.Moving{Distance: 16}))

	sys := NewMovingSystem(0.25)
	update(w, 2, sys)

	tf, _ := ecs.Get(w, up, component.TransformComponent.Kind())
	assert.InDelta(t, 10.0, tf.X, 1e-9)
	assert.InDelta(t, 26.0, tf.Y, 1e-9)

	update(w, 2, sys)
	m, _ := ecs.Get(w, up, component.MovingComponent.Kind())
	assert.InDelta(t, 0.0, m.Elapsed, 1e-9)
	assert.InDelta(t, 10.0, tf.Y, 1e-9)

	other, _ := ecs.Get(w, still, component.TransformComponent.Kind())
	assert.Equal(t, component.Transform{X: 3, Y: 4}, *other)
}
