package attributes

// Keys understood by the level loader.
const (
	KeyPlayer     = "player"
	KeySolid      = "solid"
	KeyDeadly     = "deadly"
	KeyCheckpoint = "checkpoint"
	KeyTransition = "trans"
	KeyGoal       = "goal"
	KeyGive       = "give"
	KeyMoving     = "moving"
	KeyDash       = "dash"
)
