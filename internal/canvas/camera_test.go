package canvas

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestScreenWorldRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		cam    Camera
		sx, sy float64
	}{
		{"identity", NewCamera(), 100, 200},
		{"offset", Camera{X: 50, Y: -30, Scale: 1}, 0, 0},
		{"zoomed", Camera{X: 10, Y: 20, Scale: 2.5}, 640, 360},
		{"zoomed out", Camera{X: -500, Y: 300, Scale: 0.25}, 33, 44},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wx, wy := tt.cam.ScreenToWorld(tt.sx, tt.sy)
			gx, gy := tt.cam.WorldToScreen(wx, wy)
			if math.Abs(gx-tt.sx) > eps || math.Abs(gy-tt.sy) > eps {
				t.Errorf("round trip (%v, %v) -> (%v, %v)", tt.sx, tt.sy, gx, gy)
			}
		})
	}
}

func TestZoomAtPreservesAnchor(t *testing.T) {
	cam := Camera{X: 12, Y: -7, Scale: 1.3}
	const sx, sy = 421, 287

	wantX, wantY := cam.ScreenToWorld(sx, sy)
	cam.ZoomAt(sx, sy, -30) // zoom in
	gotX, gotY := cam.ScreenToWorld(sx, sy)

	if math.Abs(gotX-wantX) > eps || math.Abs(gotY-wantY) > eps {
		t.Errorf("world point under pointer moved: (%v, %v) -> (%v, %v)", wantX, wantY, gotX, gotY)
	}
}

func TestZoomPreservesViewportCenter(t *testing.T) {
	cam := Camera{X: 100, Y: 50, Scale: 0.8}
	const w, h = 1280.0, 720.0

	wantX, wantY := cam.ScreenToWorld(w/2, h/2)
	cam.Zoom(0.25, w, h)
	gotX, gotY := cam.ScreenToWorld(w/2, h/2)

	if math.Abs(gotX-wantX) > eps || math.Abs(gotY-wantY) > eps {
		t.Errorf("viewport center moved: (%v, %v) -> (%v, %v)", wantX, wantY, gotX, gotY)
	}
}

func TestZoomClamping(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 100; i++ {
		cam.Zoom(1, 800, 600)
	}
	if cam.Scale != MaxScale {
		t.Errorf("Scale = %v after repeated zoom in, want %v", cam.Scale, MaxScale)
	}

	for i := 0; i < 100; i++ {
		cam.Zoom(-0.9, 800, 600)
	}
	if cam.Scale != MinScale {
		t.Errorf("Scale = %v after repeated zoom out, want %v", cam.Scale, MinScale)
	}
}

func TestPan(t *testing.T) {
	cam := NewCamera()
	cam.Pan(15, -25)
	wx, wy := cam.ScreenToWorld(15, -25)
	if math.Abs(wx) > eps || math.Abs(wy) > eps {
		t.Errorf("after pan, screen (15,-25) should map to world origin, got (%v, %v)", wx, wy)
	}
}
