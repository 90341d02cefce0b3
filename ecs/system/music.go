package system

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"go.uber.org/zap"
)

const (
	defaultMusicVolume     = 1.0
	defaultMusicFadeFrames = 30
)

type MusicSystem struct {
	open   func(track string) (component.AudioTrack, error)
	logger *zap.Logger
}

// NewMusicSystem plays tracks decoded by assets through ctx.
func NewMusicSystem(ctx *audio.Context, assets AssetSource, logger *zap.Logger) *MusicSystem {
	return &MusicSystem{
		open: func(track string) (component.AudioTrack, error) {
			pcm, err := assets.Music(track)
			if err != nil {
				return nil, err
			}
			return ctx.NewPlayerFromBytes(pcm), nil
		},
		logger: logger.Named("music"),
	}
}

// RequestMusic asks for track to play on a loop, fading out whatever plays
// now.
func RequestMusic(w *ecs.World, track string) {
	RequestMusicWithOptions(w, &component.MusicRequest{Track: track, Loop: true, FadeOutFrames: defaultMusicFadeFrames})
}

func RequestMusicWithOptions(w *ecs.World, req *component.MusicRequest) {
	if w == nil || req == nil {
		return
	}
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.MusicRequestComponent.Kind(), req)
}

// StopMusic fades out the current track.
func StopMusic(w *ecs.World) {
	RequestMusicWithOptions(w, &component.MusicRequest{FadeOutFrames: defaultMusicFadeFrames})
}

func (m *MusicSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	latest, requestEntities := m.consumeLatestRequest(w)
	for _, ent := range requestEntities {
		ecs.DestroyEntity(w, ent)
	}

	_, player, err := ecs.Single(w, component.MusicPlayerComponent.Kind())
	if err != nil {
		return
	}
	if player.Players == nil {
		player.Players = make(map[string]component.AudioTrack)
	}
	if player.TrackVolumes == nil {
		player.TrackVolumes = make(map[string]float64)
	}

	if latest != nil {
		m.applyRequest(player, *latest)
	}

	if player.PendingActive {
		m.updateTransition(player)
		return
	}

	current := m.currentPlayer(player)
	if current != nil && !current.IsPlaying() && player.CurrentLoop {
		_ = current.Rewind()
		current.SetVolume(player.CurrentVolume)
		current.Play()
	}
}

func (m *MusicSystem) consumeLatestRequest(w *ecs.World) (*component.MusicRequest, []ecs.Entity) {
	var latest *component.MusicRequest
	requestEntities := make([]ecs.Entity, 0)

	ecs.ForEach(w, component.MusicRequestComponent.Kind(), func(ent ecs.Entity, req *component.MusicRequest) {
		requestEntities = append(requestEntities, ent)
		copied := *req
		latest = &copied
	})

	return latest, requestEntities
}

func (m *MusicSystem) applyRequest(player *component.MusicPlayer, req component.MusicRequest) {
	track := strings.TrimSpace(req.Track)
	volume := req.Volume
	if volume <= 0 {
		if v, ok := player.TrackVolumes[track]; ok && v > 0 {
			volume = v
		} else {
			volume = defaultMusicVolume
		}
	}
	volume = min(volume, 1)
	fadeFrames := req.FadeOutFrames
	if fadeFrames <= 0 {
		fadeFrames = defaultMusicFadeFrames
	}

	current := m.currentPlayer(player)
	if track == "" {
		player.PendingActive = false
		if current == nil {
			player.CurrentTrack = ""
			player.CurrentVolume = 0
			player.CurrentLoop = false
			return
		}
		player.PendingTrack = ""
		player.PendingVolume = 0
		player.PendingLoop = false
		player.PendingActive = true
		player.FadeStep = fadeStep(player.CurrentVolume, fadeFrames)
		return
	}

	if !player.PendingActive && player.CurrentTrack == track && current != nil {
		player.CurrentVolume = volume
		current.SetVolume(volume)
		if !current.IsPlaying() {
			_ = current.Rewind()
			current.Play()
		}
		return
	}

	player.PendingTrack = track
	player.PendingVolume = volume
	player.PendingLoop = req.Loop
	player.PendingActive = true
	if current == nil {
		m.switchToPending(player)
		return
	}
	player.FadeStep = fadeStep(player.CurrentVolume, fadeFrames)
}

func fadeStep(volume float64, frames int) float64 {
	if step := volume / float64(frames); step > 0 {
		return step
	}
	return 1
}

func (m *MusicSystem) updateTransition(player *component.MusicPlayer) {
	current := m.currentPlayer(player)
	if current == nil {
		m.switchToPending(player)
		return
	}

	player.CurrentVolume -= player.FadeStep
	if player.CurrentVolume > 0 {
		current.SetVolume(player.CurrentVolume)
		return
	}

	player.CurrentVolume = 0
	current.SetVolume(0)
	current.Pause()
	_ = current.Rewind()
	player.CurrentTrack = ""
	player.CurrentLoop = false
	m.switchToPending(player)
}

func (m *MusicSystem) switchToPending(player *component.MusicPlayer) {
	if !player.PendingActive {
		return
	}

	track := strings.TrimSpace(player.PendingTrack)
	volume := player.PendingVolume
	loop := player.PendingLoop

	player.PendingTrack = ""
	player.PendingVolume = 0
	player.PendingLoop = false
	player.PendingActive = false
	player.FadeStep = 0

	if track == "" {
		player.CurrentTrack = ""
		player.CurrentVolume = 0
		player.CurrentLoop = false
		return
	}

	audioPlayer, err := m.playerForTrack(player, track)
	if err != nil {
		m.logger.Warn("Failed to play music", zap.String("track", track), zap.Error(err))
		player.CurrentTrack = ""
		player.CurrentVolume = 0
		player.CurrentLoop = false
		return
	}

	player.CurrentTrack = track
	player.CurrentVolume = volume
	player.CurrentLoop = loop
	player.TrackVolumes[track] = volume
	_ = audioPlayer.Rewind()
	audioPlayer.SetVolume(volume)
	audioPlayer.Play()
}

func (m *MusicSystem) currentPlayer(player *component.MusicPlayer) component.AudioTrack {
	if player.CurrentTrack == "" {
		return nil
	}
	return player.Players[player.CurrentTrack]
}

func (m *MusicSystem) playerForTrack(player *component.MusicPlayer, track string) (component.AudioTrack, error) {
	if existing, ok := player.Players[track]; ok && existing != nil {
		return existing, nil
	}
	if m.open == nil {
		return nil, fmt.Errorf("no audio output for %s", track)
	}
	audioPlayer, err := m.open(track)
	if err != nil {
		return nil, err
	}
	player.Players[track] = audioPlayer
	return audioPlayer, nil
}
