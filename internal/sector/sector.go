// Package sector assigns holes to one of four angular quadrants around the
// global center of a hole collection.
//
// Coordinates follow the sheet convention where Y grows downward, so a
// negative dy is "upper". Points lying exactly on an axis through the center
// go to the upper and right quadrants.
package sector

import (
	"sort"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/pkg/geometry"
)

// Sector is one of four quadrants around a center.
type Sector int

const (
	Sector1 Sector = iota + 1 // Upper right
	Sector2                   // Upper left
	Sector3                   // Lower left
	Sector4                   // Lower right
)

func (s Sector) String() string {
	switch s {
	case Sector1:
		return "Sector1"
	case Sector2:
		return "Sector2"
	case Sector3:
		return "Sector3"
	case Sector4:
		return "Sector4"
	default:
		return "Unknown"
	}
}

// Priority returns the scan priority of the sector, 1 (first) through 4.
func (s Sector) Priority() int {
	return int(s)
}

// Point is a labelled coordinate to classify.
type Point struct {
	ID string
	geometry.Point2D
}

// ComputeGlobalCenter returns the canonical center of a hole collection: the
// arithmetic mean of all hole coordinates. Every sector-aware strategy uses it.
func ComputeGlobalCenter(positions hole.Positions) geometry.Point2D {
	return geometry.Centroid(positions.Centers())
}

// Of classifies a single coordinate relative to center.
func Of(p, center geometry.Point2D) Sector {
	d := p.Sub(center)
	dx, dy := d.X, d.Y

	switch {
	case dx >= 0 && dy <= 0:
		return Sector1
	case dx < 0 && dy <= 0:
		return Sector2
	case dx < 0 && dy > 0:
		return Sector3
	default:
		return Sector4
	}
}

// Classify assigns every point to a sector around the mean of all points.
// The result does not depend on the order of points.
func Classify(points []Point) map[string]Sector {
	coords := make([]geometry.Point2D, len(points))
	for i, p := range points {
		coords[i] = p.Point2D
	}
	return ClassifyAround(points, centroidOf(coords))
}

// ClassifyAround assigns every point to a sector around a given center.
func ClassifyAround(points []Point, center geometry.Point2D) map[string]Sector {
	out := make(map[string]Sector, len(points))
	for _, p := range points {
		out[p.ID] = Of(p.Point2D, center)
	}
	return out
}

// ClassifyPositions classifies resolved holes around their global center.
func ClassifyPositions(positions hole.Positions) map[string]Sector {
	center := ComputeGlobalCenter(positions)
	out := make(map[string]Sector, len(positions))
	for id, gp := range positions {
		out[id] = Of(gp.Center, center)
	}
	return out
}

// centroidOf sums in a canonical order so the mean is bit-identical for any
// permutation of the input.
func centroidOf(coords []geometry.Point2D) geometry.Point2D {
	sorted := make([]geometry.Point2D, len(coords))
	copy(sorted, coords)
	sortPoints(sorted)
	return geometry.Centroid(sorted)
}

func sortPoints(pts []geometry.Point2D) {
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
}
