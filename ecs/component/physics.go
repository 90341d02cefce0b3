package component

import "github.com/jakecoffman/cp"

type BodyType int

const (
	BodyDynamic BodyType = iota
	BodyStatic
	BodyKinematic
)

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Body and Shape are filled in by the physics system.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Type     BodyType
	Width    float64
	Height   float64
	Radius   float64
	Mass     float64
	Friction float64
	Gravity  float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// Teleport is a request to move an entity's body to X, Y.
type Teleport struct {
	X float64
	Y float64
}

var TeleportComponent = NewComponent[Teleport]()
