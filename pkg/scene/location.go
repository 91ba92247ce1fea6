package scene

import "math"

// Vec2 is a point on the ground plane of the tour map.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Vec3 is a world position as reported by the player sensor. Y is vertical.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Horizontal projects a world position onto the ground plane, discarding height.
func (v Vec3) Horizontal() Vec2 {
	return Vec2{X: v.X, Y: v.Z}
}

// Distance is the Euclidean distance between two ground points.
func (v Vec2) Distance(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Location is one waypoint of the tour.
type Location struct {
	Name            string `json:"name" yaml:"name"`
	Description     string `json:"description" yaml:"description"`
	Coordinates     Vec2   `json:"coordinates" yaml:"coordinates"`
	TargetQuestions int    `json:"target_questions" yaml:"target_questions"`
	// Introduction is the scripted scene opener, body text followed by A)..D) option lines.
	Introduction string `json:"introduction" yaml:"introduction"`
	Completed    bool   `json:"-" yaml:"-"`
}
