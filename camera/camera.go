// Package camera provides an orbit camera that follows the actor.
package camera

import "math"

// Camera orbits a target point at a fixed distance.
// Angles are in radians; Yaw is measured around the vertical axis from +X toward -Z,
// the same convention as actor headings.
type Camera struct {
	// Target is the point looked at, in world coordinates
	TargetX, TargetY, TargetZ float32

	Distance float32
	Pitch    float32 // elevation above the ground plane
	Yaw      float32

	// Follow smoothing rate (1/s); 0 snaps to the target
	FollowRate float32

	// Constraints
	MinDistance, MaxDistance float32
	MinPitch, MaxPitch       float32

	// Initial values restored by Reset
	homeDistance, homePitch, homeYaw float32
}

// New creates a camera with the given orbit parameters.
func New(distance, pitch, yaw float32) *Camera {
	c := &Camera{
		FollowRate:   8,
		MinDistance:  2,
		MaxDistance:  40,
		MinPitch:     0.1,
		MaxPitch:     math.Pi/2 - 0.05,
		homeDistance: distance,
		homePitch:    pitch,
		homeYaw:      yaw,
	}
	c.Reset()
	return c
}

// Follow moves the target toward (x, y, z). With a positive FollowRate the target
// closes a fraction 1-exp(-rate*dt) of the gap each call.
func (c *Camera) Follow(x, y, z, dt float32) {
	if c.FollowRate <= 0 || dt <= 0 {
		if c.FollowRate <= 0 {
			c.TargetX, c.TargetY, c.TargetZ = x, y, z
		}
		return
	}
	k := 1 - float32(math.Exp(float64(-c.FollowRate*dt)))
	c.TargetX += (x - c.TargetX) * k
	c.TargetY += (y - c.TargetY) * k
	c.TargetZ += (z - c.TargetZ) * k
}

// SnapTo places the target at (x, y, z) immediately.
func (c *Camera) SnapTo(x, y, z float32) {
	c.TargetX, c.TargetY, c.TargetZ = x, y, z
}

// Eye returns the camera position in world coordinates.
func (c *Camera) Eye() (x, y, z float32) {
	cp := float32(math.Cos(float64(c.Pitch)))
	sp := float32(math.Sin(float64(c.Pitch)))
	cy := float32(math.Cos(float64(c.Yaw)))
	sy := float32(math.Sin(float64(c.Yaw)))

	// Yaw follows the heading convention: forward is (cos, 0, -sin)
	x = c.TargetX + c.Distance*cp*cy
	y = c.TargetY + c.Distance*sp
	z = c.TargetZ - c.Distance*cp*sy
	return x, y, z
}

// Orbit rotates the camera around the target.
func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw = wrapAngle(c.Yaw + dYaw)
	c.Pitch = clamp(c.Pitch+dPitch, c.MinPitch, c.MaxPitch)
}

// ZoomBy multiplies the orbit distance by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Reset restores the initial orbit.
func (c *Camera) Reset() {
	c.Distance = clamp(c.homeDistance, c.MinDistance, c.MaxDistance)
	c.Pitch = clamp(c.homePitch, c.MinPitch, c.MaxPitch)
	c.Yaw = wrapAngle(c.homeYaw)
}

// wrapAngle maps an angle to [0, 2pi).
func wrapAngle(a float32) float32 {
	return mod(a, 2*math.Pi)
}

// mod computes the positive modulo (Go's % can return negative).
func mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
