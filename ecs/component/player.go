package component

import "github.com/milk9111/temple/levels"

// Player holds the respawn point and controller tuning.
type Player struct {
	RespawnLevel levels.ID
	RespawnX     float64
	RespawnY     float64

	MoveSpeed    float64
	Acceleration float64
	JumpSpeed    float64
	DashSpeed    float64
	DashFrames   int
	CoyoteFrames int

	Grounded    bool
	CoyoteTimer int
}

var PlayerComponent = NewComponent[Player]()
