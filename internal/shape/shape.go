// Package shape defines the drawable primitives shared by the canvas
// store, the sync protocol, and the renderer, together with the pure
// geometric operations performed on them.
package shape

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Type discriminates the shape variants on the wire.
type Type string

const (
	TypeRect   Type = "rect"
	TypeCircle Type = "circle"
	TypePencil Type = "pencil"
	TypeArrow  Type = "arrow"
)

// Point is a position in world coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is a tagged union over the four drawable variants. Only the
// fields belonging to the active variant are meaningful and only those
// are serialized.
//
// ID is a stable identifier assigned at creation. Shapes decoded from
// older records may lack one; Matches falls back to structural equality
// in that case.
type Shape struct {
	ID   string
	Type Type

	// rect
	X, Y, Width, Height float64

	// circle
	CenterX, CenterY, Radius float64

	// pencil
	Points []Point

	// arrow
	StartX, StartY, EndX, EndY float64
}

// NewRect creates a rect shape with a fresh id.
func NewRect(x, y, width, height float64) Shape {
	return Shape{ID: uuid.New().String(), Type: TypeRect, X: x, Y: y, Width: width, Height: height}
}

// NewCircle creates a circle shape with a fresh id.
func NewCircle(centerX, centerY, radius float64) Shape {
	return Shape{ID: uuid.New().String(), Type: TypeCircle, CenterX: centerX, CenterY: centerY, Radius: radius}
}

// NewPencil creates a pencil stroke with a fresh id. The points slice is
// not copied.
func NewPencil(points []Point) Shape {
	return Shape{ID: uuid.New().String(), Type: TypePencil, Points: points}
}

// NewArrow creates an arrow shape with a fresh id.
func NewArrow(startX, startY, endX, endY float64) Shape {
	return Shape{ID: uuid.New().String(), Type: TypeArrow, StartX: startX, StartY: startY, EndX: endX, EndY: endY}
}

type rectJSON struct {
	ID     string  `json:"id,omitempty"`
	Type   Type    `json:"type"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type circleJSON struct {
	ID      string  `json:"id,omitempty"`
	Type    Type    `json:"type"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
}

type pencilJSON struct {
	ID     string  `json:"id,omitempty"`
	Type   Type    `json:"type"`
	Points []Point `json:"points"`
}

type arrowJSON struct {
	ID     string  `json:"id,omitempty"`
	Type   Type    `json:"type"`
	StartX float64 `json:"startX"`
	StartY float64 `json:"startY"`
	EndX   float64 `json:"endX"`
	EndY   float64 `json:"endY"`
}

// MarshalJSON emits only the fields of the active variant.
func (s Shape) MarshalJSON() ([]byte, error) {
	switch s.Type {
	case TypeRect:
		return json.Marshal(rectJSON{ID: s.ID, Type: s.Type, X: s.X, Y: s.Y, Width: s.Width, Height: s.Height})
	case TypeCircle:
		return json.Marshal(circleJSON{ID: s.ID, Type: s.Type, CenterX: s.CenterX, CenterY: s.CenterY, Radius: s.Radius})
	case TypePencil:
		pts := s.Points
		if pts == nil {
			pts = []Point{}
		}
		return json.Marshal(pencilJSON{ID: s.ID, Type: s.Type, Points: pts})
	case TypeArrow:
		return json.Marshal(arrowJSON{ID: s.ID, Type: s.Type, StartX: s.StartX, StartY: s.StartY, EndX: s.EndX, EndY: s.EndY})
	default:
		return nil, fmt.Errorf("unknown shape type: %q", s.Type)
	}
}

type shapeEnvelope struct {
	ID      string  `json:"id"`
	Type    Type    `json:"type"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	CenterX float64 `json:"centerX"`
	CenterY float64 `json:"centerY"`
	Radius  float64 `json:"radius"`
	Points  []Point `json:"points"`
	StartX  float64 `json:"startX"`
	StartY  float64 `json:"startY"`
	EndX    float64 `json:"endX"`
	EndY    float64 `json:"endY"`
}

// UnmarshalJSON accepts any of the four variants. Unknown types are an
// error so that history replay can skip bad records.
func (s *Shape) UnmarshalJSON(data []byte) error {
	var env shapeEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	switch env.Type {
	case TypeRect:
		*s = Shape{ID: env.ID, Type: env.Type, X: env.X, Y: env.Y, Width: env.Width, Height: env.Height}
	case TypeCircle:
		*s = Shape{ID: env.ID, Type: env.Type, CenterX: env.CenterX, CenterY: env.CenterY, Radius: env.Radius}
	case TypePencil:
		*s = Shape{ID: env.ID, Type: env.Type, Points: env.Points}
	case TypeArrow:
		*s = Shape{ID: env.ID, Type: env.Type, StartX: env.StartX, StartY: env.StartY, EndX: env.EndX, EndY: env.EndY}
	default:
		return fmt.Errorf("unknown shape type: %q", env.Type)
	}
	return nil
}

// Key returns a canonical string for set-membership checks. Two shapes
// share a key iff they are structurally equal, id included.
func (s Shape) Key() string {
	data, err := json.Marshal(s)
	if err != nil {
		return string(s.Type)
	}
	return string(data)
}

// EqualValue reports structural equality of the geometric payload,
// ignoring ids.
func (s Shape) EqualValue(o Shape) bool {
	if s.Type != o.Type {
		return false
	}
	switch s.Type {
	case TypeRect:
		return s.X == o.X && s.Y == o.Y && s.Width == o.Width && s.Height == o.Height
	case TypeCircle:
		return s.CenterX == o.CenterX && s.CenterY == o.CenterY && s.Radius == o.Radius
	case TypePencil:
		if len(s.Points) != len(o.Points) {
			return false
		}
		for i := range s.Points {
			if s.Points[i] != o.Points[i] {
				return false
			}
		}
		return true
	case TypeArrow:
		return s.StartX == o.StartX && s.StartY == o.StartY && s.EndX == o.EndX && s.EndY == o.EndY
	}
	return false
}

// Equal reports full structural equality, id included.
func (s Shape) Equal(o Shape) bool {
	return s.ID == o.ID && s.EqualValue(o)
}

// Matches decides whether o addresses the same canvas entry as s.
// When both carry ids the ids are authoritative; otherwise matching
// degrades to structural value equality, which is ambiguous under
// duplicate-valued shapes.
func (s Shape) Matches(o Shape) bool {
	if s.ID != "" && o.ID != "" {
		return s.ID == o.ID
	}
	return s.EqualValue(o)
}
