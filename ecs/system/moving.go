package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
)

// MovingSystem drives moving platforms back and forth with a cosine ease.
type MovingSystem struct {
	dt float64
}

func NewMovingSystem(dt float64) *MovingSystem {
	return &MovingSystem{dt: dt}
}

// MovingOffset returns how far along its path a platform is after elapsed
// seconds, from 0 at the origin to 1 at the far end.
func MovingOffset(elapsed, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return 0.5*math.Cos(2*math.Pi/duration*elapsed+math.Pi) + 0.5
}

func (s *MovingSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.MovingComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Moving, t *component.Transform) {
		if m.Duration <= 0 {
			return
		}
		m.Elapsed = math.Mod(m.Elapsed+s.dt, m.Duration)
		dx, dy := m.Direction.Vector()
		delta := MovingOffset(m.Elapsed, m.Duration) * m.Distance
		x, y := m.OriginX+dx*delta, m.OriginY+dy*delta

		// The physics step carries the body to x, y so riders move with it.
		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil && s.dt > 0 {
			pos := body.Body.Position()
			body.Body.SetVelocityVector(cp.Vector{X: (x - pos.X) / s.dt, Y: (y - pos.Y) / s.dt})
			return
		}
		t.X, t.Y = x, y
	})
}
