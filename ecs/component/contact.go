package component

// ContactSubscription makes a trigger tile report player overlap. The box is
// centered on the entity's Transform.
type ContactSubscription struct {
	Width  float64
	Height float64
}

var ContactSubscriptionComponent = NewComponent[ContactSubscription]()

// PlayerContacted is added to a subscribed entity while the player overlaps
// it. Reaction systems remove it once handled.
type PlayerContacted struct{}

var PlayerContactedComponent = NewComponent[PlayerContacted]()
