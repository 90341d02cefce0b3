package system

import (
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
)

// ContactSystem tags subscribed sensors with PlayerContacted when the
// player starts overlapping them.
type ContactSystem struct {
	touching map[ecs.Entity]bool
}

func NewContactSystem() *ContactSystem {
	return &ContactSystem{touching: make(map[ecs.Entity]bool)}
}

type aabb struct {
	minX, minY, maxX, maxY float64
}

func boxAround(x, y, width, height float64) aabb {
	return aabb{minX: x - width/2, minY: y - height/2, maxX: x + width/2, maxY: y + height/2}
}

func (a aabb) overlaps(b aabb) bool {
	return a.minX < b.maxX && b.minX < a.maxX && a.minY < b.maxY && b.minY < a.maxY
}

func (s *ContactSystem) Update(w *ecs.World) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		clear(s.touching)
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	width, height := float64(0), float64(0)
	if body, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind()); ok {
		width, height = body.Width, body.Height
	}
	playerBox := boxAround(pt.X, pt.Y, width, height)

	seen := make(map[ecs.Entity]bool, len(s.touching))
	ecs.ForEach2(w, component.ContactSubscriptionComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, sub *component.ContactSubscription, t *component.Transform) {
		if e == player || !boxAround(t.X, t.Y, sub.Width, sub.Height).overlaps(playerBox) {
			return
		}
		seen[e] = true
		if !s.touching[e] {
			_ = ecs.Add(w, e, component.PlayerContactedComponent.Kind(), &component.PlayerContacted{})
		}
	})
	s.touching = seen
}
