package system

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
)

type RenderSystem struct{}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

func (r *RenderSystem) Update(*ecs.World) {}

// WorldToScreen maps a y-up world position to screen pixels for a camera
// centered at camX, camY.
func WorldToScreen(x, y, camX, camY, zoom float64, width, height int) (float64, float64) {
	return (x-camX)*zoom + float64(width)/2, (camY-y)*zoom + float64(height)/2
}

// DrawOrder returns the entities with sprites sorted by render layer, then
// by id.
func DrawOrder(w *ecs.World) []ecs.Entity {
	entities := ecs.Query(w, component.TransformComponent.Kind(), component.SpriteComponent.Kind())
	layer := func(e ecs.Entity) int {
		if l, ok := ecs.Get(w, e, component.RenderLayerComponent.Kind()); ok {
			return l.Index
		}
		return 0
	}
	sort.SliceStable(entities, func(i, j int) bool {
		li, lj := layer(entities[i]), layer(entities[j])
		if li != lj {
			return li < lj
		}
		return uint64(entities[i]) < uint64(entities[j])
	})
	return entities
}

type cameraView struct {
	x, y, zoom float64
}

// currentCameraView returns the first camera's center and zoom, or the
// origin at zoom 1.
func currentCameraView(w *ecs.World) cameraView {
	view := cameraView{zoom: 1}
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return view
	}
	if t, ok := ecs.Get(w, camEntity, component.TransformComponent.Kind()); ok {
		view.x, view.y = t.X, t.Y
	}
	if cam, ok := ecs.Get(w, camEntity, component.CameraComponent.Kind()); ok && cam.Zoom > 0 {
		view.zoom = cam.Zoom
	}
	return view
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	view := currentCameraView(w)
	camX, camY, zoom := view.x, view.y, view.zoom

	bounds := screen.Bounds()
	for _, e := range DrawOrder(w) {
		t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
		s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
		if t == nil || s == nil || s.Image == nil {
			continue
		}

		img := s.Image
		iw, ih := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-iw/2, -ih/2)

		sx := t.ScaleX
		if sx == 0 {
			sx = 1
		}
		if s.FacingLeft {
			sx = -sx
		}
		sy := t.ScaleY
		if sy == 0 {
			sy = 1
		}
		op.GeoM.Scale(sx, sy)
		op.GeoM.Rotate(-t.Rotation)
		op.GeoM.Scale(zoom, zoom)
		x, y := WorldToScreen(t.X, t.Y, camX, camY, zoom, bounds.Dx(), bounds.Dy())
		op.GeoM.Translate(x, y)

		screen.DrawImage(img, op)
	}

	if settings(w).ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %0.1f", ebiten.ActualFPS()))
	}
}
