package ecs

import (
	"errors"

	"github.com/milk9111/temple/ecs/component"
)

var (
	ErrNoEntities       = errors.New("ecs: no entities match query")
	ErrMultipleEntities = errors.New("ecs: multiple entities match query")
)

// Query returns the live entities that carry every given kind, ordered by id.
func Query(w *World, kinds ...component.Kind) []Entity {
	ids := make([]component.ComponentID, 0, len(kinds))
	for _, k := range kinds {
		ids = append(ids, k.ID())
	}
	return w.matching(ids...)
}

// Without drops the entities carrying any of the excluded kinds.
func Without(w *World, ents []Entity, exclude ...component.Kind) []Entity {
	out := make([]Entity, 0, len(ents))
	for _, e := range ents {
		skip := false
		for _, k := range exclude {
			if HasKind(w, e, k) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, e)
		}
	}
	return out
}

// One returns the only entity of ents.
func One(ents []Entity) (Entity, error) {
	switch len(ents) {
	case 0:
		return 0, ErrNoEntities
	case 1:
		return ents[0], nil
	default:
		return 0, ErrMultipleEntities
	}
}

// First returns the lowest-id entity that has kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	ents := w.matching(kind.ID())
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// Single returns the one entity carrying kind together with its value.
func Single[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, error) {
	e, err := One(w.matching(kind.ID()))
	if err != nil {
		return 0, nil, err
	}
	v, _ := Get(w, e, kind)
	return e, v, nil
}

// ForEach visits every entity with kind. The entity list is captured up
// front, so fn may add, remove or destroy; entities that stop matching are
// skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range w.matching(kind.ID()) {
		a, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// ForEachWithout is ForEach restricted to entities lacking every excluded
// kind.
func ForEachWithout[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T), exclude ...component.Kind) {
	for _, e := range w.matching(kind.ID()) {
		a, ok := Get(w, e, kind)
		if !ok {
			continue
		}
		skip := false
		for _, k := range exclude {
			if HasKind(w, e, k) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		fn(e, a)
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.matching(ka.ID(), kb.ID()) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.matching(ka.ID(), kb.ID(), kc.ID()) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range w.matching(ka.ID(), kb.ID(), kc.ID(), kd.ID()) {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		c, ok := Get(w, e, kc)
		if !ok {
			continue
		}
		d, ok := Get(w, e, kd)
		if !ok {
			continue
		}
		fn(e, a, b, c, d)
	}
}
