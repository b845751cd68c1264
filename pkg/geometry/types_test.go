package geometry

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	p1 := NewPoint2D(0, 0)
	p2 := NewPoint2D(3, 4)

	if d := p1.Distance(p2); math.Abs(d-5) > 1e-10 {
		t.Errorf("Distance failed: expected 5, got %v", d)
	}
	if d := p2.Distance(p1); math.Abs(d-5) > 1e-10 {
		t.Errorf("Distance not symmetric: got %v", d)
	}
}

func TestSub(t *testing.T) {
	d := NewPoint2D(5, -2).Sub(NewPoint2D(2, 3))
	if d != (Point2D{X: 3, Y: -5}) {
		t.Errorf("Sub failed: expected {3 -5}, got %v", d)
	}
}

func TestCentroid(t *testing.T) {
	points := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {100, 10}}
	c := Centroid(points)

	expected := Point2D{X: 24, Y: 6}
	if math.Abs(c.X-expected.X) > 1e-10 || math.Abs(c.Y-expected.Y) > 1e-10 {
		t.Errorf("Centroid failed: expected %v, got %v", expected, c)
	}
}

func TestCentroidEmpty(t *testing.T) {
	if c := Centroid(nil); c != (Point2D{}) {
		t.Errorf("expected zero point, got %v", c)
	}
}

func TestBoundingBox(t *testing.T) {
	points := []Point2D{{-5, 2}, {10, -3}, {4, 8}}
	r := BoundingBox(points)

	expected := Rect{X: -5, Y: -3, Width: 15, Height: 11}
	if r != expected {
		t.Errorf("BoundingBox failed: expected %v, got %v", expected, r)
	}
}

func TestBoundsCenterDiffersFromCentroid(t *testing.T) {
	points := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {100, 10}}

	bc := BoundsCenter(points)
	if bc != (Point2D{X: 50, Y: 5}) {
		t.Errorf("BoundsCenter failed: got %v", bc)
	}
	if bc == Centroid(points) {
		t.Errorf("expected bounding-box center and centroid to differ")
	}
}

func TestRectExpand(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 4}.Expand(2)
	expected := Rect{X: -2, Y: -2, Width: 14, Height: 8}
	if r != expected {
		t.Errorf("Expand failed: expected %v, got %v", expected, r)
	}
}
