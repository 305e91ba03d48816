package render

import (
	"math"

	"crystalview/internal/crystal"
)

// Camera is an orthographic view of a 3D scene. Angles are in degrees;
// pitch 0 looks along the horizon, 90 looks straight down the z axis.
type Camera struct {
	Yaw   float64
	Pitch float64
	Zoom  float64
}

// DefaultCamera is the initial view of the TUI and the SVG page.
func DefaultCamera() Camera {
	return Camera{Yaw: 30, Pitch: 20, Zoom: 1}
}

// Rotate returns the camera turned by the given angles. Yaw wraps into
// [0, 360) and pitch is clamped to [-90, 90].
func (c Camera) Rotate(dyaw, dpitch float64) Camera {
	c.Yaw = math.Mod(c.Yaw+dyaw, 360)
	if c.Yaw < 0 {
		c.Yaw += 360
	}
	c.Pitch = math.Max(-90, math.Min(90, c.Pitch+dpitch))
	return c
}

// Scale returns the camera zoomed by f, bounded to [0.1, 20].
func (c Camera) Scale(f float64) Camera {
	c.Zoom = math.Max(0.1, math.Min(20, c.zoom()*f))
	return c
}

func (c Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// Project maps p to screen coordinates (u right, v up) and a depth that
// grows away from the viewer.
func (c Camera) Project(p crystal.Vec3) (u, v, depth float64) {
	yaw := c.Yaw * math.Pi / 180
	pitch := c.Pitch * math.Pi / 180
	x := p[0]*math.Cos(yaw) - p[1]*math.Sin(yaw)
	y := p[0]*math.Sin(yaw) + p[1]*math.Cos(yaw)
	z := p[2]
	return x, z*math.Cos(pitch) + y*math.Sin(pitch), y*math.Cos(pitch) - z*math.Sin(pitch)
}
