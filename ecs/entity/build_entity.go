package entity

import (
	"fmt"

	"github.com/milk9111/temple/attributes"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/levels"
	"github.com/milk9111/temple/prefabs"
)

// BuildContext describes the sprite an attribute is being built onto.
type BuildContext struct {
	Level levels.ID
	// X and Y are the sprite's world position in pixels.
	X, Y   float64
	Player *prefabs.PlayerSpec
}

type attributeBuildFn func(w *ecs.World, e ecs.Entity, entry attributes.Entry, ctx *BuildContext) error

var attributeRegistry = map[string]attributeBuildFn{
	attributes.KeyPlayer:     addPlayer,
	attributes.KeySolid:      addSolid,
	attributes.KeyDeadly:     addDeadly,
	attributes.KeyCheckpoint: addCheckpoint,
	attributes.KeyTransition: addTransition,
	attributes.KeyGoal:       addGoal,
	attributes.KeyGive:       addGive,
	attributes.KeyMoving:     addMoving,
	attributes.KeyDash:       addDash,
}

// Givable lists the attributes a give attribute may grant.
var Givable = map[string]attributeBuildFn{
	attributes.KeyDash: addDash,
}

// BuildAttribute parses attr and adds the components it describes to e.
func BuildAttribute(w *ecs.World, e ecs.Entity, attr string, ctx *BuildContext) error {
	entry, err := attributes.ParseEntry(attr)
	if err != nil {
		return fmt.Errorf("build attribute: %w", err)
	}
	builder, ok := attributeRegistry[entry.Key]
	if !ok {
		return fmt.Errorf("build attribute: no builder for attribute %q", entry.Key)
	}
	if err := builder(w, e, entry, ctx); err != nil {
		return fmt.Errorf("build attribute %q: %w", attr, err)
	}
	return nil
}

// Grant adds a givable attribute to e.
func Grant(w *ecs.World, e ecs.Entity, key string) error {
	builder, ok := Givable[key]
	if !ok {
		return fmt.Errorf("grant: %q cannot be given", key)
	}
	return builder(w, e, attributes.Entry{Key: key}, &BuildContext{})
}

func addSolid(w *ecs.World, e ecs.Entity, _ attributes.Entry, _ *BuildContext) error {
	if err := ecs.Add(w, e, component.SolidComponent.Kind(), &component.Solid{}); err != nil {
		return err
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		// A moving attribute already made this tile kinematic.
		body.Width, body.Height = levels.SpriteSize, levels.SpriteSize
		return nil
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Type:     component.BodyStatic,
		Width:    levels.SpriteSize,
		Height:   levels.SpriteSize,
		Friction: 0.8,
	})
}

func addSensor(w *ecs.World, e ecs.Entity) error {
	return ecs.Add(w, e, component.ContactSubscriptionComponent.Kind(), &component.ContactSubscription{
		Width:  levels.SpriteSize,
		Height: levels.SpriteSize,
	})
}

func addDeadly(w *ecs.World, e ecs.Entity, _ attributes.Entry, _ *BuildContext) error {
	if err := ecs.Add(w, e, component.DeadlyComponent.Kind(), &component.Deadly{}); err != nil {
		return err
	}
	return addSensor(w, e)
}

// addCheckpoint builds checkpoint(id) or checkpoint(id, x, y). The offset is
// in sprite units from the tile.
func addCheckpoint(w *ecs.World, e ecs.Entity, entry attributes.Entry, ctx *BuildContext) error {
	id, err := entry.Number(0)
	if err != nil {
		return fmt.Errorf("checkpoint needs an id: %w", err)
	}
	if id < 0 || id > int64(^uint32(0)) {
		return fmt.Errorf("checkpoint id %d is out of range", id)
	}

	var offX, offY int64
	if len(entry.Args) > 1 {
		if offX, err = entry.Number(1); err != nil {
			return fmt.Errorf("checkpoint offset: %w", err)
		}
		if offY, err = entry.Number(2); err != nil {
			return fmt.Errorf("checkpoint offset: %w", err)
		}
	}

	if err := ecs.Add(w, e, component.CheckpointComponent.Kind(), &component.Checkpoint{
		ID: uint32(id),
		X:  ctx.X + float64(offX)*levels.SpriteSize,
		Y:  ctx.Y + float64(offY)*levels.SpriteSize,
	}); err != nil {
		return err
	}
	return addSensor(w, e)
}

func addTransition(w *ecs.World, e ecs.Entity, entry attributes.Entry, _ *BuildContext) error {
	id, err := entry.Number(0)
	if err != nil {
		return err
	}
	if id < 0 || id > int64(^uint32(0)) {
		return fmt.Errorf("transition level %d is not a valid level id", id)
	}
	if err := ecs.Add(w, e, component.TransitionComponent.Kind(), &component.Transition{Level: levels.ID(id)}); err != nil {
		return err
	}
	return addSensor(w, e)
}

func addGoal(w *ecs.World, e ecs.Entity, entry attributes.Entry, _ *BuildContext) error {
	exit, err := entry.Number(0)
	if err != nil {
		return err
	}
	if exit < 0 {
		return fmt.Errorf("goal exit %d must not be negative", exit)
	}
	if err := ecs.Add(w, e, component.GoalComponent.Kind(), &component.Goal{Exit: int(exit)}); err != nil {
		return err
	}
	return addSensor(w, e)
}

func addGive(w *ecs.World, e ecs.Entity, entry attributes.Entry, _ *BuildContext) error {
	key, err := entry.StringArg(0)
	if err != nil {
		return err
	}
	if _, ok := Givable[key]; !ok {
		return fmt.Errorf("%q cannot be given", key)
	}
	if err := ecs.Add(w, e, component.GiveComponent.Kind(), &component.Give{Attribute: key}); err != nil {
		return err
	}
	return addSensor(w, e)
}

var movingDirections = map[string]component.MovingDirection{
	"right": component.MoveRight,
	"down":  component.MoveDown,
	"left":  component.MoveLeft,
	"up":    component.MoveUp,
}

// addMoving builds moving(dir, distance, duration). Distance is in sprite
// units and duration in seconds.
func addMoving(w *ecs.World, e ecs.Entity, entry attributes.Entry, ctx *BuildContext) error {
	name, err := entry.StringArg(0)
	if err != nil {
		return err
	}
	dir, ok := movingDirections[name]
	if !ok {
		return fmt.Errorf("invalid moving direction %q", name)
	}
	distance, err := entry.Number(1)
	if err != nil {
		return err
	}
	duration, err := entry.Number(2)
	if err != nil {
		return err
	}
	if duration <= 0 {
		return fmt.Errorf("moving duration %d must be positive", duration)
	}

	if err := ecs.Add(w, e, component.MovingComponent.Kind(), &component.Moving{
		Direction: dir,
		Distance:  float64(distance) * levels.SpriteSize,
		Duration:  float64(duration),
		OriginX:   ctx.X,
		OriginY:   ctx.Y,
	}); err != nil {
		return err
	}

	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		body.Type = component.BodyKinematic
		return nil
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Type:     component.BodyKinematic,
		Width:    levels.SpriteSize,
		Height:   levels.SpriteSize,
		Friction: 0.8,
	})
}

func addDash(w *ecs.World, e ecs.Entity, _ attributes.Entry, _ *BuildContext) error {
	return ecs.Add(w, e, component.DashComponent.Kind(), component.NewDash())
}
