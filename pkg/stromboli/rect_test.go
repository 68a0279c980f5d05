package stromboli

import "testing"

func TestRectCenter(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 40, Height: 60}
	x, y := r.Center()
	if x != 30 || y != 50 {
		t.Errorf("Center() = (%v, %v), want (30, 50)", x, y)
	}
}

func TestRectDistanceTo(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	if got := r.DistanceTo(5, 5); got != 0 {
		t.Errorf("DistanceTo(center) = %v, want 0", got)
	}
	if got := r.DistanceTo(8, 9); got != 5 {
		t.Errorf("DistanceTo(8, 9) = %v, want 5", got)
	}
}
