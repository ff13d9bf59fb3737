package shape

import "testing"

func TestSplitStroke(t *testing.T) {
	straight := []Point{{0, 0}, {5, 0}, {10, 0}}

	tests := []struct {
		name     string
		points   []Point
		path     []Point
		radius   float64
		wantRuns int
		wantLens []int
	}{
		// Erasing the midpoint leaves two one-point runs, both discarded.
		{"midpoint of three", straight, []Point{{5, 0}}, 1, 0, nil},
		{"miss entirely", straight, []Point{{5, 50}}, 1, 1, []int{3}},
		{"erase head", straight, []Point{{0, 0}}, 1, 1, []int{2}},
		{"erase tail", straight, []Point{{10, 0}}, 1, 1, []int{2}},
		{
			"split into two runs",
			[]Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}},
			[]Point{{2, 0}},
			0.5,
			2,
			[]int{2, 2},
		},
		{"huge radius wipes everything", straight, []Point{{5, 0}}, 100, 0, nil},
		{"empty path", straight, nil, 1, 1, []int{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runs := SplitStroke(tt.points, tt.path, tt.radius)
			if len(runs) != tt.wantRuns {
				t.Fatalf("SplitStroke() produced %d runs, want %d", len(runs), tt.wantRuns)
			}
			for i, run := range runs {
				if len(run) < 2 {
					t.Errorf("run %d has %d points, every run must have at least 2", i, len(run))
				}
				if tt.wantLens != nil && len(run) != tt.wantLens[i] {
					t.Errorf("run %d has %d points, want %d", i, len(run), tt.wantLens[i])
				}
			}
		})
	}
}

func TestIntersectsEraser(t *testing.T) {
	tests := []struct {
		name   string
		s      Shape
		x, y   float64
		radius float64
		want   bool
	}{
		{"rect inside", Shape{Type: TypeRect, X: 0, Y: 0, Width: 10, Height: 10}, 5, 5, 1, true},
		{"rect near edge", Shape{Type: TypeRect, X: 0, Y: 0, Width: 10, Height: 10}, 12, 5, 3, true},
		{"rect clear", Shape{Type: TypeRect, X: 0, Y: 0, Width: 10, Height: 10}, 15, 5, 3, false},
		{"circle overlapping", Shape{Type: TypeCircle, CenterX: 0, CenterY: 0, Radius: 5}, 7, 0, 3, true},
		{"circle clear", Shape{Type: TypeCircle, CenterX: 0, CenterY: 0, Radius: 5}, 9, 0, 3, false},
		{"pencil touch", Shape{Type: TypePencil, Points: []Point{{0, 0}, {10, 0}}}, 5, 2, 3, true},
		{"pencil clear", Shape{Type: TypePencil, Points: []Point{{0, 0}, {10, 0}}}, 5, 5, 3, false},
		{"arrow touch", Shape{Type: TypeArrow, StartX: 0, StartY: 0, EndX: 10, EndY: 0}, 5, 2, 3, true},
		{"arrow clear", Shape{Type: TypeArrow, StartX: 0, StartY: 0, EndX: 10, EndY: 0}, 5, 4, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.s.IntersectsEraser(tt.x, tt.y, tt.radius)
			if got != tt.want {
				t.Errorf("IntersectsEraser(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.radius, got, tt.want)
			}
		})
	}
}
