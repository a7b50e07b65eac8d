package components

import (
	"fmt"
	"math"
	"strings"
)

// HalfPi is the angular spacing between adjacent headings.
const HalfPi float32 = math.Pi / 2

// Heading is one of the four cardinal directions.
// The numeric value is stable: the canonical angle is value * pi/2.
type Heading uint8

const (
	Right Heading = iota // 0
	Up                   // pi/2
	Left                 // pi
	Down                 // 3pi/2
)

// HeadingCount is the number of headings.
const HeadingCount = 4

// Angle returns the canonical angle of the heading in radians.
func (h Heading) Angle() float32 {
	return float32(h) * HalfPi
}

// Valid reports whether h is one of the four defined headings.
func (h Heading) Valid() bool {
	return h < HeadingCount
}

// String returns the display name for a Heading.
func (h Heading) String() string {
	names := HeadingNames()
	if int(h) < len(names) {
		return names[h]
	}
	return fmt.Sprintf("Heading(%d)", uint8(h))
}

// HeadingNames returns the display names for all headings.
// The order matches the Heading constants.
func HeadingNames() []string {
	return []string{"right", "up", "left", "down"}
}

// ParseHeading parses a heading name or its first letter, case-insensitively.
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "r":
		return Right, nil
	case "up", "u":
		return Up, nil
	case "left", "l":
		return Left, nil
	case "down", "d":
		return Down, nil
	}
	return 0, fmt.Errorf("unknown heading %q", s)
}

// NearestHeading returns the cardinal heading closest to an arbitrary angle.
// Hosts that can only draw four orientations use it while a turn is in progress.
func NearestHeading(angle float32) Heading {
	turns := math.Round(float64(angle) / (math.Pi / 2))
	idx := int(turns) % HeadingCount
	if idx < 0 {
		idx += HeadingCount
	}
	return Heading(idx)
}
