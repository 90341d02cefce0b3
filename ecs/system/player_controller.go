package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
)

// PlayerControllerSystem turns Input into player body velocity.
type PlayerControllerSystem struct {
	dt float64
}

func NewPlayerControllerSystem(dt float64) *PlayerControllerSystem {
	return &PlayerControllerSystem{dt: dt}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w, component.PlayerComponent.Kind(), component.InputComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, player *component.Player, input *component.Input, bodyComp *component.PhysicsBody) {
		if bodyComp.Body == nil {
			return
		}
		vel := bodyComp.Body.Velocity()

		if player.Grounded {
			player.CoyoteTimer = player.CoyoteFrames
		} else if player.CoyoteTimer > 0 {
			player.CoyoteTimer--
		}

		vel.X = approach(vel.X, input.MoveX*player.MoveSpeed, player.Acceleration*p.dt)
		if input.MoveX != 0 {
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
				sprite.FacingLeft = input.MoveX < 0
			}
		}

		if input.JumpPressed && (player.Grounded || player.CoyoteTimer > 0) {
			vel.Y = player.JumpSpeed
			player.CoyoteTimer = 0
			playSound(w, e, component.SfxJump)
		}

		if dash, ok := ecs.Get(w, e, component.DashComponent.Kind()); ok {
			vel = p.dash(player, input, dash, vel)
		}

		bodyComp.Body.SetVelocityVector(vel)
	})
}

// dash starts or continues a horizontal dash. Charges refill on the ground.
func (p *PlayerControllerSystem) dash(player *component.Player, input *component.Input, dash *component.Dash, vel cp.Vector) cp.Vector {
	if player.Grounded && dash.Frames == 0 {
		dash.Charges = dash.Capacity
	}
	if input.DashPressed && dash.Charges > 0 && dash.Frames == 0 {
		dir := input.MoveX
		if dir == 0 {
			dir = dash.DirX
		}
		if dir == 0 {
			dir = 1
		}
		dash.DirX = math.Copysign(1, dir)
		dash.Frames = player.DashFrames
		dash.Charges--
	}
	if dash.Frames > 0 {
		dash.Frames--
		vel.X = dash.DirX * player.DashSpeed
		vel.Y = 0
	}
	return vel
}

func approach(current, target, step float64) float64 {
	if step <= 0 {
		return target
	}
	if current < target {
		return math.Min(current+step, target)
	}
	return math.Max(current-step, target)
}
