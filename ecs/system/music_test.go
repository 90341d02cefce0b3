package system

import (
	"errors"
	"testing"

	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/ecs/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeTrack struct {
	playing bool
	volume  float64
	rewinds int
}

func (f *fakeTrack) Play()               { f.playing = true }
func (f *fakeTrack) Pause()              { f.playing = false }
func (f *fakeTrack) Rewind() error       { f.rewinds++; return nil }
func (f *fakeTrack) IsPlaying() bool     { return f.playing }
func (f *fakeTrack) SetVolume(v float64) { f.volume = v }

type fakeOutput struct {
	tracks map[string]*fakeTrack
	opened []string
	fail   map[string]bool
}

func (o *fakeOutput) open(track string) (component.AudioTrack, error) {
	o.opened = append(o.opened, track)
	if o.fail[track] {
		return nil, errors.New("decode failed")
	}
	if o.tracks == nil {
		o.tracks = make(map[string]*fakeTrack)
	}
	f := &fakeTrack{}
	o.tracks[track] = f
	return f, nil
}

func newMusicWorld(t *testing.T, logger *zap.Logger) (*ecs.World, *MusicSystem, *fakeOutput) {
	t.Helper()
	w := ecs.NewWorld()
	_, err := entity.NewMusicPlayer(w)
	require.NoError(t, err)
	out := &fakeOutput{fail: make(map[string]bool)}
	return w, &MusicSystem{open: out.open, logger: logger}, out
}

func musicPlayer(t *testing.T, w *ecs.World) *component.MusicPlayer {
	t.Helper()
	_, mp, err := ecs.Single(w, component.MusicPlayerComponent.Kind())
	require.NoError(t, err)
	return mp
}

func TestMusicPlay(t *testing.T) {
	w, sys, out := newMusicWorld(t, zap.NewNop())
	RequestMusic(w, "music/a.ogg")

	update(w, 1, sys)

	assert.Zero(t, count(w, component.MusicRequestComponent.Kind()))
	assert.Equal(t, []string{"music/a.ogg"}, out.opened)
	a := out.tracks["music/a.ogg"]
	assert.True(t, a.playing)
	assert.Equal(t, 1.0, a.volume)

	mp := musicPlayer(t, w)
	assert.Equal(t, "music/a.ogg", mp.CurrentTrack)
	assert.True(t, mp.CurrentLoop)
	assert.False(t, mp.PendingActive)
}

func TestMusicSameTrack(t *testing.T) {
	w, sys, out := newMusicWorld(t, zap.NewNop())
	RequestMusic(w, "music/a.ogg")
	update(w, 1, sys)

	RequestMusicWithOptions(w, &component.MusicRequest{Track: "music/a.ogg", Volume: 0.5, Loop: true})
	update(w, 1, sys)

	assert.Len(t, out.opened, 1)
	assert.Equal(t, 0.5, out.tracks["music/a.ogg"].volume)
	assert.False(t, musicPlayer(t, w).PendingActive)
}

func TestMusicFadeToNextTrack(t *testing.T) {
	w, sys, out := newMusicWorld(t, zap.NewNop())
	RequestMusic(w, "music/a.ogg")
	update(w, 1, sys)

	RequestMusic(w, "music/b.ogg")
	update(w, 1, sys)

	a := out.tracks["music/a.ogg"]
	mp := musicPlayer(t, w)
	assert.True(t, mp.PendingActive)
	assert.InDelta(t, 1-1.0/defaultMusicFadeFrames, a.volume, 1e-9)
	assert.NotContains(t, out.tracks, "music/b.ogg")

	update(w, defaultMusicFadeFrames, sys)

	assert.False(t, a.playing)
	b := out.tracks["music/b.ogg"]
	require.NotNil(t, b)
	assert.True(t, b.playing)
	assert.Equal(t, "music/b.ogg", mp.CurrentTrack)
	assert.False(t, mp.PendingActive)

	// Switching back reuses the decoded player.
	RequestMusic(w, "music/a.ogg")
	update(w, defaultMusicFadeFrames+1, sys)
	assert.Equal(t, []string{"music/a.ogg", "music/b.ogg"}, out.opened)
	assert.True(t, a.playing)
	assert.False(t, b.playing)
}

func TestMusicStop(t *testing.T) {
	w, sys, out := newMusicWorld(t, zap.NewNop())
	RequestMusic(w, "music/a.ogg")
	update(w, 1, sys)

	StopMusic(w)
	update(w, defaultMusicFadeFrames+1, sys)

	mp := musicPlayer(t, w)
	assert.Empty(t, mp.CurrentTrack)
	assert.False(t, mp.PendingActive)
	assert.False(t, out.tracks["music/a.ogg"].playing)

	// Stopping silence is a no-op.
	StopMusic(w)
	update(w, 1, sys)
	assert.Empty(t, mp.CurrentTrack)
	assert.False(t, mp.PendingActive)
}

func TestMusicLoops(t *testing.T) {
	w, sys, out := newMusicWorld(t, zap.NewNop())
	RequestMusic(w, "music/a.ogg")
	update(w, 1, sys)
	a := out.tracks["music/a.ogg"]
	rewinds := a.rewinds

	a.playing = false
	update(w, 1, sys)
	assert.True(t, a.playing)
	assert.Equal(t, rewinds+1, a.rewinds)

	RequestMusicWithOptions(w, &component.MusicRequest{Track: "music/once.ogg", FadeOutFrames: 1})
	update(w, 2, sys)
	once := out.tracks["music/once.ogg"]
	require.NotNil(t, once)
	once.playing = false
	update(w, 1, sys)
	assert.False(t, once.playing)
}

func TestMusicOpenFailure(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	w, sys, out := newMusicWorld(t, zap.New(core))
	out.fail["music/broken.ogg"] = true
	RequestMusic(w, "music/broken.ogg")

	update(w, 1, sys)

	assert.Empty(t, musicPlayer(t, w).CurrentTrack)
	assert.Equal(t, 1, logs.FilterMessage("Failed to play music").Len())
}

func TestMusicLatestRequestWins(t *testing.T) {
	w, sys, out := newMusicWorld(t, zap.NewNop())
	RequestMusic(w, "music/a.ogg")
	RequestMusic(w, "music/b.ogg")

	update(w, 1, sys)

	assert.Equal(t, []string{"music/b.ogg"}, out.opened)
	assert.Zero(t, count(w, component.MusicRequestComponent.Kind()))
}
