package systems

import "math"

const (
	pi    float32 = math.Pi
	twoPi float32 = 2 * math.Pi
)

// remEuclid returns the non-negative remainder of x / m for m > 0.
func remEuclid(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// shortestDelta returns the signed turn from current to target along the shorter arc,
// wrapped into (-pi, pi]. The sign gives the turn direction (positive is counter-clockwise
// seen from above). An exact half turn resolves to +pi.
func shortestDelta(current, target float32) float32 {
	delta := remEuclid(target-current+pi, twoPi) - pi
	if delta <= -pi {
		delta = pi
	}
	return delta
}

// copysign returns the magnitude of mag with the sign of sign.
func copysign(mag, sign float32) float32 {
	return float32(math.Copysign(float64(mag), float64(sign)))
}

// abs32 returns |v|.
func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
