package component

import "github.com/hajimehoshi/ebiten/v2"

// Sprite draws Texture centered on the entity's Transform. Image is nil
// when the texture failed to load.
type Sprite struct {
	Texture    string
	Image      *ebiten.Image
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
