package ebiten

const (
	minZoom  = 0.25
	maxZoom  = 4.0
	zoomStep = 0.2
)

// Camera maps screen pixels to world coordinates. X and Y are the world
// position of the top-left screen corner.
type Camera struct {
	X, Y float64
	Zoom float64
}

// NewCamera returns a camera at the world origin with no zoom.
func NewCamera() Camera {
	return Camera{Zoom: 1}
}

// ScreenToWorld converts a screen position to world coordinates.
func (c Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	return c.X + float64(sx)/c.Zoom, c.Y + float64(sy)/c.Zoom
}

// WorldToScreen converts world coordinates to a screen position.
func (c Camera) WorldToScreen(wx, wy float64) (float32, float32) {
	return float32((wx - c.X) * c.Zoom), float32((wy - c.Y) * c.Zoom)
}

// Pan moves the camera by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// ZoomAt changes the zoom by steps while keeping the world point under the
// screen position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy int, steps float64) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = min(max(c.Zoom+steps*zoomStep, minZoom), maxZoom)
	c.X = wx - float64(sx)/c.Zoom
	c.Y = wy - float64(sy)/c.Zoom
}

// CenterOn places the world point (wx, wy) at the middle of a screen of the
// given size.
func (c *Camera) CenterOn(wx, wy float64, screenW, screenH int) {
	c.X = wx - float64(screenW)/2/c.Zoom
	c.Y = wy - float64(screenH)/2/c.Zoom
}
