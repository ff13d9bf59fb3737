package shape

import "math"

// hitTolerance is the on-screen hit width, in pixels, for line-like
// shapes. It is divided by the viewport scale so the apparent width
// stays constant while zooming.
const hitTolerance = 5

// Bounds is an axis-aligned bounding box in world coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Bounds returns the axis-aligned bounding box of the shape. Rects with
// negative width or height are normalized.
func (s Shape) Bounds() Bounds {
	switch s.Type {
	case TypeRect:
		return Bounds{
			MinX: math.Min(s.X, s.X+s.Width),
			MinY: math.Min(s.Y, s.Y+s.Height),
			MaxX: math.Max(s.X, s.X+s.Width),
			MaxY: math.Max(s.Y, s.Y+s.Height),
		}
	case TypeCircle:
		return Bounds{
			MinX: s.CenterX - s.Radius,
			MinY: s.CenterY - s.Radius,
			MaxX: s.CenterX + s.Radius,
			MaxY: s.CenterY + s.Radius,
		}
	case TypePencil:
		if len(s.Points) == 0 {
			return Bounds{}
		}
		b := Bounds{MinX: s.Points[0].X, MinY: s.Points[0].Y, MaxX: s.Points[0].X, MaxY: s.Points[0].Y}
		for _, p := range s.Points[1:] {
			b.MinX = math.Min(b.MinX, p.X)
			b.MinY = math.Min(b.MinY, p.Y)
			b.MaxX = math.Max(b.MaxX, p.X)
			b.MaxY = math.Max(b.MaxY, p.Y)
		}
		return b
	case TypeArrow:
		return Bounds{
			MinX: math.Min(s.StartX, s.EndX),
			MinY: math.Min(s.StartY, s.EndY),
			MaxX: math.Max(s.StartX, s.EndX),
			MaxY: math.Max(s.StartY, s.EndY),
		}
	}
	return Bounds{}
}

// ContainsPoint reports whether the world point (x, y) hits the shape.
// Rects and circles use exact containment; pencil strokes and arrows
// use distance to their segments against a tolerance of 5/scale world
// units.
func (s Shape) ContainsPoint(x, y, scale float64) bool {
	switch s.Type {
	case TypeRect:
		b := s.Bounds()
		return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
	case TypeCircle:
		dx := x - s.CenterX
		dy := y - s.CenterY
		return math.Hypot(dx, dy) <= s.Radius
	case TypePencil:
		tol := hitTolerance / scale
		for i := 0; i+1 < len(s.Points); i++ {
			d := DistanceToSegment(x, y, s.Points[i].X, s.Points[i].Y, s.Points[i+1].X, s.Points[i+1].Y)
			if d < tol {
				return true
			}
		}
		return false
	case TypeArrow:
		return DistanceToSegment(x, y, s.StartX, s.StartY, s.EndX, s.EndY) < hitTolerance/scale
	}
	return false
}

// Translate returns a copy of the shape shifted by (dx, dy). Pencil
// points are deep-copied.
func (s Shape) Translate(dx, dy float64) Shape {
	out := s
	switch s.Type {
	case TypeRect:
		out.X += dx
		out.Y += dy
	case TypeCircle:
		out.CenterX += dx
		out.CenterY += dy
	case TypePencil:
		out.Points = make([]Point, len(s.Points))
		for i, p := range s.Points {
			out.Points[i] = Point{X: p.X + dx, Y: p.Y + dy}
		}
	case TypeArrow:
		out.StartX += dx
		out.StartY += dy
		out.EndX += dx
		out.EndY += dy
	}
	return out
}

// DistanceToSegment returns the distance from point (px, py) to the
// segment (x1, y1)-(x2, y2). Degenerate segments collapse to point
// distance.
func DistanceToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lengthSq := dx*dx + dy*dy

	if lengthSq == 0 {
		return math.Hypot(px-x1, py-y1)
	}

	t := ((px-x1)*dx + (py-y1)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))

	return math.Hypot(px-(x1+t*dx), py-(y1+t*dy))
}
