package component

// RenderLayer sorts draw order. Lower layers draw first.
type RenderLayer struct {
	Index int
}

var RenderLayerComponent = NewComponent[RenderLayer]()
