package shape

import "math"

// IntersectsEraser reports whether an eraser disc of the given world
// radius centered at (x, y) touches the shape. Rects measure against
// their closest boundary-or-interior point, circles against their
// outline grown by the radius, and line-like shapes against their
// segments.
func (s Shape) IntersectsEraser(x, y, radius float64) bool {
	switch s.Type {
	case TypeRect:
		b := s.Bounds()
		closestX := math.Max(b.MinX, math.Min(x, b.MaxX))
		closestY := math.Max(b.MinY, math.Min(y, b.MaxY))
		dx := x - closestX
		dy := y - closestY
		return dx*dx+dy*dy < radius*radius
	case TypeCircle:
		return math.Hypot(x-s.CenterX, y-s.CenterY) < s.Radius+radius
	case TypePencil:
		for i := 0; i+1 < len(s.Points); i++ {
			d := DistanceToSegment(x, y, s.Points[i].X, s.Points[i].Y, s.Points[i+1].X, s.Points[i+1].Y)
			if d < radius {
				return true
			}
		}
		return false
	case TypeArrow:
		return DistanceToSegment(x, y, s.StartX, s.StartY, s.EndX, s.EndY) < radius
	}
	return false
}

// IntersectsPath reports whether any point of the eraser path touches
// the shape.
func (s Shape) IntersectsPath(path []Point, radius float64) bool {
	for _, p := range path {
		if s.IntersectsEraser(p.X, p.Y, radius) {
			return true
		}
	}
	return false
}

// SplitStroke splits a pencil point sequence into the maximal runs that
// stay clear of every eraser path point by at least radius. Runs
// shorter than two points cannot form a stroke and are discarded.
func SplitStroke(points, eraserPath []Point, radius float64) [][]Point {
	var runs [][]Point
	var current []Point

	for _, p := range points {
		if erased(p, eraserPath, radius) {
			if len(current) >= 2 {
				runs = append(runs, current)
			}
			current = nil
			continue
		}
		current = append(current, p)
	}

	if len(current) >= 2 {
		runs = append(runs, current)
	}

	return runs
}

func erased(p Point, eraserPath []Point, radius float64) bool {
	for _, e := range eraserPath {
		if math.Hypot(p.X-e.X, p.Y-e.Y) < radius {
			return true
		}
	}
	return false
}
