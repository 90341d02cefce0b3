package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/temple/ecs"
	"github.com/milk9111/temple/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypePlayerGround
	collisionTypeSolid
)

// groundSensorDepth is how far below the player's feet ground is detected.
const groundSensorDepth = 2.0

// PhysicsSystem mirrors PhysicsBody components into a Chipmunk space,
// steps it and writes positions back to Transforms.
type PhysicsSystem struct {
	space         *cp.Space
	dt            float64
	handlersReady bool

	entities     map[ecs.Entity]*bodyInfo
	groundShapes map[*cp.Shape]ecs.Entity
	grounded     map[ecs.Entity]bool
}

type bodyInfo struct {
	body        *cp.Body
	mainShape   *cp.Shape
	groundShape *cp.Shape
	shapes      []*cp.Shape
	bodyType    component.BodyType
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	// Gravity is applied per body.
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:        space,
		dt:           dt,
		entities:     make(map[ecs.Entity]*bodyInfo),
		groundShapes: make(map[*cp.Shape]ecs.Entity),
		grounded:     make(map[ecs.Entity]bool),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// Bodies reports how many entities currently have a body in the space.
func (ps *PhysicsSystem) Bodies() int {
	return len(ps.entities)
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncEntities(w)
	ps.applyTeleports(w)
	ps.applyGravity(w)

	clear(ps.grounded)
	ps.space.Step(ps.dt)

	ps.syncTransforms(w)
	ps.flushGrounded(w)
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	groundHandler := ps.space.NewCollisionHandler(collisionTypePlayerGround, collisionTypeSolid)
	groundHandler.UserData = ps
	groundHandler.PreSolveFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return true
		}
		shapeA, shapeB := arb.Shapes()
		playerEntity, ok := sys.groundShapes[shapeA]
		if !ok {
			if playerEntity, ok = sys.groundShapes[shapeB]; !ok {
				return true
			}
		}
		sys.grounded[playerEntity] = true
		return true
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if info := ps.entities[e]; info != nil {
			bodyComp.Body = info.body
			bodyComp.Shape = info.mainShape
			return
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		info := ps.createBodyInfo(*transform, *bodyComp, isPlayer)
		ps.entities[e] = info
		if info.groundShape != nil {
			ps.groundShapes[info.groundShape] = e
		}
		bodyComp.Body = info.body
		bodyComp.Shape = info.mainShape
	})
}

func (ps *PhysicsSystem) createBodyInfo(transform component.Transform, bodyComp component.PhysicsBody, isPlayer bool) *bodyInfo {
	width, height := bodyComp.Width, bodyComp.Height
	if bodyComp.Radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 16, 16
	}

	info := &bodyInfo{bodyType: bodyComp.Type}

	if bodyComp.Type == component.BodyStatic {
		var shape *cp.Shape
		if bodyComp.Radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, bodyComp.Radius, cp.Vector{X: transform.X, Y: transform.Y})
		} else {
			bb := cp.BB{L: transform.X - width/2, B: transform.Y - height/2, R: transform.X + width/2, T: transform.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(bodyComp.Friction)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)

		info.body = ps.space.StaticBody
		info.mainShape = shape
		info.shapes = []*cp.Shape{shape}
		return info
	}

	var body *cp.Body
	if bodyComp.Type == component.BodyKinematic {
		body = cp.NewKinematicBody()
	} else {
		mass := bodyComp.Mass
		if mass <= 0 {
			mass = 1
		}
		// Infinite moment keeps the player upright.
		body = cp.NewBody(mass, math.Inf(1))
	}
	body.SetPosition(cp.Vector{X: transform.X, Y: transform.Y})

	var shape *cp.Shape
	if bodyComp.Radius > 0 {
		shape = cp.NewCircle(body, bodyComp.Radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(bodyComp.Friction)
	shape.SetCollisionType(collisionTypeSolid)
	if isPlayer {
		shape.SetCollisionType(collisionTypePlayer)
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	info.body = body
	info.mainShape = shape
	info.shapes = []*cp.Shape{shape}

	if isPlayer {
		groundShape := createGroundSensor(width, height, body)
		ps.space.AddShape(groundShape)
		info.groundShape = groundShape
		info.shapes = append(info.shapes, groundShape)
	}
	return info
}

func createGroundSensor(width, height float64, body *cp.Body) *cp.Shape {
	groundBB := cp.BB{
		L: -width * 0.45,
		B: -height/2 - groundSensorDepth,
		R: width * 0.45,
		T: -height / 2,
	}
	groundShape := cp.NewBox2(body, groundBB, 0)
	groundShape.SetSensor(true)
	groundShape.SetCollisionType(collisionTypePlayerGround)
	return groundShape
}

func (ps *PhysicsSystem) applyTeleports(w *ecs.World) {
	ecs.ForEach(w, component.TeleportComponent.Kind(), func(e ecs.Entity, tp *component.Teleport) {
		if info := ps.entities[e]; info != nil && info.bodyType != component.BodyStatic {
			info.body.SetPosition(cp.Vector{X: tp.X, Y: tp.Y})
			info.body.SetVelocityVector(cp.Vector{})
		}
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X, t.Y = tp.X, tp.Y
		}
		ecs.Remove(w, e, component.TeleportComponent.Kind())
	})
}

func (ps *PhysicsSystem) applyGravity(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody) {
		if bodyComp.Type != component.BodyDynamic || bodyComp.Body == nil || bodyComp.Gravity == 0 {
			return
		}
		vel := bodyComp.Body.Velocity()
		vel.Y += bodyComp.Gravity * ps.dt
		bodyComp.Body.SetVelocityVector(vel)
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, bodyComp *component.PhysicsBody, transform *component.Transform) {
		if bodyComp.Body == nil || bodyComp.Type == component.BodyStatic {
			return
		}
		pos := bodyComp.Body.Position()
		transform.X, transform.Y = pos.X, pos.Y
	})
}

func (ps *PhysicsSystem) flushGrounded(w *ecs.World) {
	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, player *component.Player) {
		if _, tracked := ps.entities[e]; tracked {
			player.Grounded = ps.grounded[e]
		}
	})
}

// cleanupEntities removes the shapes and bodies of entities that died or
// lost their PhysicsBody.
func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}

		for _, shape := range info.shapes {
			ps.space.RemoveShape(shape)
			delete(ps.groundShapes, shape)
		}
		if info.body != nil && info.bodyType != component.BodyStatic {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
		delete(ps.grounded, e)
	}
}
