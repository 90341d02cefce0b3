package system

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
)

// framesPerSecond is ebiten's default tick rate.
const framesPerSecond = 60

// RequestOverlay queues an overlay command. Text is shown over a fade-out.
func RequestOverlay(w *ecs.World, cmd component.OverlayCommand, seconds float64, label string) {
	ent := ecs.CreateEntity(w)
	_ = ecs.Add(w, ent, component.OverlayRequestComponent.Kind(), &component.OverlayRequest{Command: cmd, Seconds: seconds, Text: label})
}

// OverlaySystem fades a black screen over the game and titles levels.
type OverlaySystem struct {
	face  text.Face
	black *ebiten.Image
}

func NewOverlaySystem(face text.Face) *OverlaySystem {
	return &OverlaySystem{face: face}
}

func (s *OverlaySystem) Update(w *ecs.World) {
	_, overlay, err := ecs.Single(w, component.OverlayComponent.Kind())

	ecs.ForEach(w, component.OverlayRequestComponent.Kind(), func(e ecs.Entity, req *component.OverlayRequest) {
		ecs.DestroyEntity(w, e)
		if err != nil {
			return
		}
		switch req.Command {
		case component.OverlayCutIn:
			overlay.Alpha = 1
			overlay.FadeStep = 0
			overlay.Text = ""
			overlay.TextAlpha = 0
		case component.OverlayFadeOut:
			overlay.Alpha = 1
			overlay.FadeStep = 1
			if req.Seconds > 0 {
				overlay.FadeStep = 1 / (req.Seconds * framesPerSecond)
			}
			overlay.Text = req.Text
			overlay.TextAlpha = 1
		}
	})
	if err != nil {
		return
	}

	overlay.Alpha = max(overlay.Alpha-overlay.FadeStep, 0)
	// Titles linger for twice the fade.
	overlay.TextAlpha = max(overlay.TextAlpha-overlay.FadeStep/2, 0)
	if overlay.TextAlpha == 0 {
		overlay.Text = ""
	}
}

func (s *OverlaySystem) Draw(w *ecs.World, screen *ebiten.Image) {
	_, overlay, err := ecs.Single(w, component.OverlayComponent.Kind())
	if err != nil {
		return
	}

	if overlay.Alpha > 0 {
		if s.black == nil {
			s.black = ebiten.NewImage(1, 1)
			s.black.Fill(color.Black)
		}
		bounds := screen.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(bounds.Dx()), float64(bounds.Dy()))
		op.ColorScale.ScaleAlpha(float32(overlay.Alpha))
		screen.DrawImage(s.black, op)
	}

	if overlay.Text != "" && overlay.TextAlpha > 0 && s.face != nil {
		bounds := screen.Bounds()
		tw, th := text.Measure(overlay.Text, s.face, 0)
		op := &text.DrawOptions{}
		op.GeoM.Translate((float64(bounds.Dx())-tw)/2, (float64(bounds.Dy())-th)/3)
		op.ColorScale.ScaleAlpha(float32(overlay.TextAlpha))
		text.Draw(screen, overlay.Text, s.face, op)
	}
}
