package component

// Camera is centered on its Transform and follows the player.
type Camera struct {
	Zoom       float64
	Smoothness float64
	LookAheadX float64
}

var CameraComponent = NewComponent[Camera]()
