package components

// Position represents an entity's world translation.
// Grid steps move along X (right is positive) and Z (down is positive); Y is height.
type Position struct {
	X, Y, Z float32
}

// Spawn records where an entity was created so hosts can report offsets and reset it.
type Spawn struct {
	Position Position
	Heading  float32
}
