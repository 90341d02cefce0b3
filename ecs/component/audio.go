package component

// Sound effect clip names.
const (
	SfxJump       = "jump"
	SfxCheckpoint = "checkpoint"
)

// Audio holds the sound effects of one entity. Players are opened by the
// audio system once their file has loaded. Play and Stop are consumed on the
// next audio update.
type Audio struct {
	Names   []string
	Files   []string
	Players []AudioTrack
	Volume  []float64
	Play    []bool
	Stop    []bool
}

// Request flags the named clip to play and reports whether it exists.
func (a *Audio) Request(name string) bool {
	for i, n := range a.Names {
		if n == name && i < len(a.Play) {
			a.Play[i] = true
			return true
		}
	}
	return false
}

var AudioComponent = NewComponent[Audio]()
