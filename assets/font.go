package assets

import (
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// OverlayFace is the face used for the level name overlay.
func OverlayFace() text.Face {
	return text.NewGoXFace(basicfont.Face7x13)
}
