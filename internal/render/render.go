// Package render rasterizes a shape collection under a camera transform
// to an image, used for room snapshots.
package render

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/purvjoshi04/SharedInk/internal/canvas"
	"github.com/purvjoshi04/SharedInk/internal/shape"
)

const (
	strokeWidth     = 2  // screen pixels, divided by scale in world space
	arrowHeadLength = 12 // screen pixels
)

// Renderer draws shapes onto an offscreen canvas.
type Renderer struct {
	Width      int
	Height     int
	Background color.Color
	Stroke     color.Color
}

// NewRenderer returns a renderer with the original client's dark theme.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		Width:      width,
		Height:     height,
		Background: color.Black,
		Stroke:     color.White,
	}
}

// Render draws every shape under the camera transform and returns the
// image.
func (r *Renderer) Render(shapes []shape.Shape, cam canvas.Camera) image.Image {
	return r.draw(shapes, cam).Image()
}

// RenderPNG renders and encodes to PNG.
func (r *Renderer) RenderPNG(w io.Writer, shapes []shape.Shape, cam canvas.Camera) error {
	return r.draw(shapes, cam).EncodePNG(w)
}

func (r *Renderer) draw(shapes []shape.Shape, cam canvas.Camera) *gg.Context {
	dc := gg.NewContext(r.Width, r.Height)

	dc.SetColor(r.Background)
	dc.Clear()

	dc.Translate(cam.X, cam.Y)
	dc.Scale(cam.Scale, cam.Scale)

	dc.SetColor(r.Stroke)
	dc.SetLineWidth(strokeWidth / cam.Scale)

	for _, s := range shapes {
		r.drawShape(dc, s, cam.Scale)
	}

	return dc
}

func (r *Renderer) drawShape(dc *gg.Context, s shape.Shape, scale float64) {
	switch s.Type {
	case shape.TypeRect:
		b := s.Bounds()
		dc.DrawRectangle(b.MinX, b.MinY, b.MaxX-b.MinX, b.MaxY-b.MinY)
		dc.Stroke()

	case shape.TypeCircle:
		dc.DrawArc(s.CenterX, s.CenterY, math.Abs(s.Radius), 0, 2*math.Pi)
		dc.Stroke()

	case shape.TypePencil:
		if len(s.Points) < 2 {
			return
		}
		dc.SetLineCapRound()
		dc.SetLineJoinRound()
		dc.MoveTo(s.Points[0].X, s.Points[0].Y)
		for _, p := range s.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
		dc.SetLineCapButt()

	case shape.TypeArrow:
		drawArrow(dc, s, arrowHeadLength/scale)
	}
}

// drawArrow strokes the shaft and the two head barbs at 30 degrees off
// the shaft direction.
func drawArrow(dc *gg.Context, s shape.Shape, headLen float64) {
	dc.DrawLine(s.StartX, s.StartY, s.EndX, s.EndY)
	dc.Stroke()

	angle := math.Atan2(s.EndY-s.StartY, s.EndX-s.StartX)
	for _, offset := range []float64{math.Pi / 6, -math.Pi / 6} {
		dc.DrawLine(
			s.EndX, s.EndY,
			s.EndX-headLen*math.Cos(angle-offset),
			s.EndY-headLen*math.Sin(angle-offset),
		)
		dc.Stroke()
	}
}
