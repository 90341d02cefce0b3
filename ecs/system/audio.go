package system

import (
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/temple/assets"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/levels"
	"go.uber.org/zap"
)

// AudioSystem plays the sound effects flagged on Audio components. Clip
// files are loaded in the background; a clip flagged before its file is
// ready is dropped.
type AudioSystem struct {
	load   func(file string) assets.LoadState
	open   func(file string) (component.AudioTrack, error)
	logger *zap.Logger
}

func NewAudioSystem(ctx *audio.Context, src AssetSource, store *levels.Store, logger *zap.Logger) *AudioSystem {
	return &AudioSystem{
		load: func(file string) assets.LoadState {
			return src.LoadMusic(store.SfxPath(file))
		},
		open: func(file string) (component.AudioTrack, error) {
			pcm, err := src.Music(store.SfxPath(file))
			if err != nil {
				return nil, err
			}
			return ctx.NewPlayerFromBytes(pcm), nil
		},
		logger: logger.Named("audio"),
	}
}

func (a *AudioSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AudioComponent.Kind(), func(_ ecs.Entity, audioComp *component.Audio) {
		count := min(len(audioComp.Play), len(audioComp.Stop), len(audioComp.Players), len(audioComp.Files))

		for i := 0; i < count; i++ {
			if audioComp.Players[i] == nil {
				audioComp.Players[i] = a.player(audioComp.Files[i])
			}
			if !audioComp.Play[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil {
				if i < len(audioComp.Volume) {
					player.SetVolume(audioComp.Volume[i])
				}
				_ = player.Rewind()
				player.Play()
			}

			audioComp.Play[i] = false
		}

		for i := 0; i < count; i++ {
			if !audioComp.Stop[i] {
				continue
			}

			player := audioComp.Players[i]
			if player != nil && player.IsPlaying() {
				player.Pause()
			}

			audioComp.Stop[i] = false
		}
	})
}

// player opens file once it has loaded, starting the load if needed.
func (a *AudioSystem) player(file string) component.AudioTrack {
	if a.load(file) != assets.Loaded {
		return nil
	}
	p, err := a.open(file)
	if err != nil {
		a.logger.Warn("Failed to open sound effect", zap.String("file", file), zap.Error(err))
		return nil
	}
	return p
}

// playSound flags clip name of e to play on the next audio update.
func playSound(w *ecs.World, e ecs.Entity, name string) {
	if audioComp, ok := ecs.Get(w, e, component.AudioComponent.Kind()); ok {
		audioComp.Request(name)
	}
}
