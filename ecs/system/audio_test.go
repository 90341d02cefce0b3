package system

import (
	"testing"

	"github.com/milk9111/temple/assets"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func addSfx(t *testing.T, w *ecs.World, e ecs.Entity) *component.Audio {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, component.AudioComponent.Kind(), &component.Audio{
		Names:   []string{component.SfxJump, component.SfxCheckpoint},
		Files:   []string{"jump.wav", "checkpoint.wav"},
		Players: make([]component.AudioTrack, 2),
		Volume:  []float64{0.5, 1},
		Play:    make([]bool, 2),
		Stop:    make([]bool, 2),
	}))
	audioComp, _ := ecs.Get(w, e, component.AudioComponent.Kind())
	return audioComp
}

func newAudioSystem(states map[string]assets.LoadState, out *fakeOutput, logger *zap.Logger) *AudioSystem {
	return &AudioSystem{
		load: func(file string) assets.LoadState {
			if s, ok := states[file]; ok {
				return s
			}
			return assets.Loaded
		},
		open:   out.open,
		logger: logger,
	}
}

func TestAudioPlaysFlaggedClip(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	audioComp := addSfx(t, w, e)
	out := &fakeOutput{fail: map[string]bool{}}
	sys := newAudioSystem(nil, out, zap.NewNop())

	update(w, 1, sys)
	assert.ElementsMatch(t, []string{"jump.wav", "checkpoint.wav"}, out.opened)
	assert.False(t, out.tracks["jump.wav"].playing)

	require.True(t, audioComp.Request(component.SfxJump))
	update(w, 1, sys)
	jump := out.tracks["jump.wav"]
	assert.True(t, jump.playing)
	assert.Equal(t, 0.5, jump.volume)
	assert.Equal(t, 1, jump.rewinds)
	assert.False(t, audioComp.Play[0])
	assert.False(t, out.tracks["checkpoint.wav"].playing)
	assert.Len(t, out.opened, 2, "players are opened once")

	audioComp.Stop[0] = true
	update(w, 1, sys)
	assert.False(t, jump.playing)
	assert.False(t, audioComp.Stop[0])

	assert.False(t, audioComp.Request("land"))
}

func TestAudioDropsClipStillLoading(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	audioComp := addSfx(t, w, e)
	states := map[string]assets.LoadState{"checkpoint.wav": assets.Loading}
	out := &fakeOutput{fail: map[string]bool{}}
	sys := newAudioSystem(states, out, zap.NewNop())

	audioComp.Request(component.SfxCheckpoint)
	update(w, 1, sys)
	assert.False(t, audioComp.Play[1])
	assert.Nil(t, audioComp.Players[1])
	assert.NotContains(t, out.opened, "checkpoint.wav")

	states["checkpoint.wav"] = assets.Loaded
	update(w, 1, sys)
	require.NotNil(t, audioComp.Players[1])
	assert.False(t, out.tracks["checkpoint.wav"].playing)
}

func TestAudioOpenFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	audioComp := addSfx(t, w, e)
	out := &fakeOutput{fail: map[string]bool{"jump.wav": true}}
	sys := newAudioSystem(nil, out, zap.New(core))

	audioComp.Request(component.SfxJump)
	update(w, 1, sys)
	assert.False(t, audioComp.Play[0])
	assert.Nil(t, audioComp.Players[0])
	assert.Equal(t, 1, logs.FilterMessage("Failed to open sound effect").Len())
}
