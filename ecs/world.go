package ecs

import (
	"sort"

	"github.com/milk9111/temple/ecs/component"
)

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id. It returns
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity, ordered by id.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gen {
		if e, ok := w.entities.entity(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*sparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}

// matching returns the live entities present in every given store, ordered
// by id. The smallest store drives the scan.
func (w *World) matching(ids ...component.ComponentID) []Entity {
	if w == nil || len(ids) == 0 {
		return nil
	}
	stores := make([]*sparseSet, 0, len(ids))
	for _, id := range ids {
		s := w.store(id, false)
		if s == nil || s.len() == 0 {
			return nil
		}
		stores = append(stores, s)
	}
	sort.Slice(stores, func(i, j int) bool { return stores[i].len() < stores[j].len() })

	candidates := stores[0].snapshot()
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	out := make([]Entity, 0, len(candidates))
	for _, id := range candidates {
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		inAll := true
		for _, s := range stores[1:] {
			if !s.has(id) {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, e)
		}
	}
	return out
}
