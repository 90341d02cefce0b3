package entity

import (
	"fmt"

	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/prefabs"
)

// NewLevelCamera creates a camera centered on x, y that is unloaded with
// the level.
func NewLevelCamera(w *ecs.World, x, y float64, spec *prefabs.CameraSpec) (ecs.Entity, error) {
	if spec == nil {
		var err error
		if spec, err = prefabs.LoadCameraSpec(); err != nil {
			return 0, fmt.Errorf("camera: load spec: %w", err)
		}
	}

	camera := ecs.CreateEntity(w)
	if err := ecs.Add(w, camera, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}

	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Zoom:       spec.Zoom,
		Smoothness: smooth,
		LookAheadX: spec.LookAheadX,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	if err := ecs.Add(w, camera, component.LevelLoadedSpriteComponent.Kind(), &component.LevelLoadedSprite{}); err != nil {
		return 0, fmt.Errorf("camera: add level tag: %w", err)
	}
	return camera, nil
}
