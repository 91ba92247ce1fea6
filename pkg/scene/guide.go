package scene

import "fmt"

const (
	// FinalDestinationText is shown once the last scene's questions are done.
	FinalDestinationText = "We've reached our final destination. Thank you for joining me on this architectural journey."
	// MoveCloserText is the guidance line when the player position is unknown.
	MoveCloserText = "Please move closer to the next location to continue our journey."
)

// Guide is the guide's line about where to go next. Near the next scene it
// announces the transition; otherwise it asks the player to move closer and
// says how far is left. known is false when there is no player position.
func (e *Engine) Guide(pos Vec3, known bool) string {
	next, ok := e.Next()
	if !ok {
		return FinalDestinationText
	}
	if !known {
		return MoveCloserText
	}

	dist, _ := e.DistanceToNextScene(pos)
	if dist <= e.opts.TransitionDistance {
		return fmt.Sprintf("Excellent! We've completed our exploration here. Now let's proceed to %s at coordinates (%g, %g).",
			next.Description, next.Coordinates.X, next.Coordinates.Y)
	}

	return fmt.Sprintf("We've finished discussing this location. Please move closer to %s at coordinates (%g, %g) to continue. "+
		"You're currently %.1f units away. (Need to be within %g units)",
		next.Description, next.Coordinates.X, next.Coordinates.Y, dist, e.opts.TransitionDistance)
}
