// Package canvas holds the client-local canvas state: the viewport
// camera and the ordered shape store. Both are owned by a single sync
// client and are never shared across goroutines.
package canvas

import "math"

const (
	// MinScale and MaxScale bound the zoom range.
	MinScale = 0.1
	MaxScale = 5

	// ZoomSensitivity converts wheel delta into a zoom factor.
	ZoomSensitivity = 0.009
)

// Camera maps between screen and world coordinates. X and Y are the
// screen-space offset of the world origin, Scale the zoom factor.
type Camera struct {
	X, Y, Scale float64
}

// NewCamera returns a camera at the origin with scale 1.
func NewCamera() Camera {
	return Camera{Scale: 1}
}

// ScreenToWorld converts a screen position to world coordinates.
func (c Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.X) / c.Scale, (sy - c.Y) / c.Scale
}

// WorldToScreen converts a world position to screen coordinates.
func (c Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*c.Scale + c.X, wy*c.Scale + c.Y
}

// Pan shifts the viewport by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx
	c.Y += dy
}

// ZoomAt applies a wheel delta zoom anchored at the screen position
// (sx, sy): the world point under the pointer stays under the pointer.
func (c *Camera) ZoomAt(sx, sy, delta float64) {
	wx, wy := c.ScreenToWorld(sx, sy)

	newScale := clampScale(c.Scale * (1 - delta*ZoomSensitivity))

	c.X = sx - wx*newScale
	c.Y = sy - wy*newScale
	c.Scale = newScale
}

// Zoom scales by (1+delta) about the viewport center, keeping the world
// point at the center fixed.
func (c *Camera) Zoom(delta, viewportWidth, viewportHeight float64) {
	cx := viewportWidth / 2
	cy := viewportHeight / 2
	wx, wy := c.ScreenToWorld(cx, cy)

	newScale := clampScale(c.Scale * (1 + delta))

	c.X = cx - wx*newScale
	c.Y = cy - wy*newScale
	c.Scale = newScale
}

// Reset restores the origin viewport at scale 1.
func (c *Camera) Reset() {
	c.X, c.Y, c.Scale = 0, 0, 1
}

func clampScale(s float64) float64 {
	return math.Min(math.Max(s, MinScale), MaxScale)
}
