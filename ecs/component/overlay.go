package component

type OverlayCommand int

const (
	// OverlayFadeOut fades a black screen to transparent.
	OverlayFadeOut OverlayCommand = iota
	// OverlayCutIn shows a black screen immediately.
	OverlayCutIn
)

// OverlayRequest is a one-shot command for the screen overlay.
type OverlayRequest struct {
	Command OverlayCommand
	Seconds float64
	Text    string
}

var OverlayRequestComponent = NewComponent[OverlayRequest]()

// Overlay is the screen overlay state, kept on the resource entity.
type Overlay struct {
	Alpha     float64
	FadeStep  float64
	Text      string
	TextAlpha float64
}

var OverlayComponent = NewComponent[Overlay]()
