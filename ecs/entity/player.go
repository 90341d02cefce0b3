package entity

import (
	"fmt"

	"github.com/milk9111/temple/attributes"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
	"github.com/milk9111/temple/prefabs"
)

func addPlayer(w *ecs.World, e ecs.Entity, _ attributes.Entry, ctx *BuildContext) error {
	spec := ctx.Player
	if spec == nil {
		var err error
		if spec, err = prefabs.LoadPlayerSpec(); err != nil {
			return fmt.Errorf("player: load spec: %w", err)
		}
	}

	if err := ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return fmt.Errorf("player: add player tag: %w", err)
	}
	if err := ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		RespawnLevel: ctx.Level,
		RespawnX:     ctx.X,
		RespawnY:     ctx.Y,
		MoveSpeed:    spec.MoveSpeed,
		Acceleration: spec.Acceleration,
		JumpSpeed:    spec.JumpSpeed,
		DashSpeed:    spec.DashSpeed,
		DashFrames:   spec.DashFrames,
		CoyoteFrames: spec.CoyoteFrames,
	}); err != nil {
		return fmt.Errorf("player: add player: %w", err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Type:     component.BodyDynamic,
		Width:    spec.Width,
		Height:   spec.Height,
		Mass:     spec.Mass,
		Friction: spec.Friction,
		Gravity:  spec.Gravity,
	}); err != nil {
		return fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.RenderLayer}); err != nil {
		return fmt.Errorf("player: add render layer: %w", err)
	}

	audioComp, err := buildAudioComponent(spec.Audio)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	if audioComp != nil {
		if err := ecs.Add(w, e, component.AudioComponent.Kind(), audioComp); err != nil {
			return fmt.Errorf("player: add audio: %w", err)
		}
	}
	return nil
}
