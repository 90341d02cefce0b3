package component

import "github.com/milk9111/temple/levels"

// Solid is a static tile the player collides with.
type Solid struct{}

var SolidComponent = NewComponent[Solid]()

// Deadly respawns the player on contact.
type Deadly struct{}

var DeadlyComponent = NewComponent[Deadly]()

// Checkpoint sets the player's respawn point to X, Y on contact.
type Checkpoint struct {
	ID uint32
	X  float64
	Y  float64
}

var CheckpointComponent = NewComponent[Checkpoint]()

// Goal clears Exit of the entry level on contact.
type Goal struct {
	Exit int
}

var GoalComponent = NewComponent[Goal]()

// Transition moves the player to Level on contact.
type Transition struct {
	Level levels.ID
}

var TransitionComponent = NewComponent[Transition]()

// Give grants the named attribute to the player on contact and is consumed.
type Give struct {
	Attribute string
}

var GiveComponent = NewComponent[Give]()

type MovingDirection int

const (
	MoveRight MovingDirection = iota
	MoveDown
	MoveLeft
	MoveUp
)

// Vector returns the unit vector of d in y-up world space.
func (d MovingDirection) Vector() (float64, float64) {
	switch d {
	case MoveRight:
		return 1, 0
	case MoveLeft:
		return -1, 0
	case MoveUp:
		return 0, 1
	default:
		return 0, -1
	}
}

// Moving oscillates a kinematic body between its origin and Distance pixels
// along Direction once every Duration seconds.
type Moving struct {
	Direction MovingDirection
	Distance  float64
	Duration  float64
	OriginX   float64
	OriginY   float64
	Elapsed   float64
}

var MovingComponent = NewComponent[Moving]()

// Dash lets the player dash while it has charges. Charges refill on landing.
type Dash struct {
	Charges  int
	Capacity int
	Frames   int
	DirX     float64
}

func NewDash() *Dash {
	return &Dash{Charges: 1, Capacity: 1}
}

var DashComponent = NewComponent[Dash]()
