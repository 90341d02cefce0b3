package entity

import (
	"fmt"

	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/prefabs"
)

func buildAudioComponent(clips []prefabs.AudioClipSpec) (*component.Audio, error) {
	n := len(clips)
	if n == 0 {
		return nil, nil
	}

	names := make([]string, 0, n)
	files := make([]string, 0, n)
	volume := make([]float64, 0, n)

	for i, clip := range clips {
		if clip.Name == "" || clip.File == "" {
			return nil, fmt.Errorf("audio clip %d needs a name and a file", i)
		}
		vol := clip.Volume
		if vol <= 0 {
			vol = 1
		}
		names = append(names, clip.Name)
		files = append(files, clip.File)
		volume = append(volume, vol)
	}

	return &component.Audio{
		Names:   names,
		Files:   files,
		Players: make([]component.AudioTrack, n),
		Volume:  volume,
		Play:    make([]bool, n),
		Stop:    make([]bool, n),
	}, nil
}
