package component

// Transform is a world position in pixels. Y grows upward; the renderer
// flips it.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
