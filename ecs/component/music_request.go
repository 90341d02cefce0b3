package component

// MusicRequest is a one-shot request for global music playback. An empty
// Track fades out and stops the current music.
type MusicRequest struct {
	Track         string
	Volume        float64
	Loop          bool
	FadeOutFrames int
}

var MusicRequestComponent = NewComponent[MusicRequest]()
