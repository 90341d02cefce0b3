package ecs

import "github.com/hajimehoshi/ebiten/v2"

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// RenderSystem draws world state each frame.
type RenderSystem interface {
	Draw(w *World, screen *ebiten.Image)
}

type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{systems: copied}
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
}

// Draw calls every system that also implements RenderSystem, in order.
func (s *Scheduler) Draw(w *World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	for _, system := range s.systems {
		if rs, ok := system.(RenderSystem); ok {
			rs.Draw(w, screen)
		}
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
