package system

import (
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
)

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update eases every camera toward the player, leading in the direction the
// player faces.
func (cs *CameraSystem) Update(w *ecs.World) {
	target, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	targetTransform, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	lead := 1.0
	if sprite, ok := ecs.Get(w, target, component.SpriteComponent.Kind()); ok && sprite.FacingLeft {
		lead = -1
	}

	ecs.ForEach2(w, component.CameraComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, cam *component.Camera, t *component.Transform) {
		goalX := targetTransform.X + lead*cam.LookAheadX
		goalY := targetTransform.Y
		smooth := cam.Smoothness
		if smooth <= 0 || smooth > 1 {
			smooth = 1
		}
		t.X += (goalX - t.X) * smooth
		t.Y += (goalY - t.Y) * smooth
	})
}
