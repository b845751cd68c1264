package planner

import (
	"math"
	"sort"

	"tubesheet-planner/internal/hole"
)

// SpatialBucket is the X width of a column bucket for SpatialSnake.
const SpatialBucket = 10.0

// planSpatialSnake groups holes into column buckets by X rounded to the
// nearest bucket width, then walks the buckets left to right alternating
// between ascending and descending Y.
func planSpatialSnake(positions hole.Positions, bucket float64) []string {
	buckets := map[int][]hole.GridPosition{}
	for _, gp := range positions.Sorted() {
		key := int(math.Round(gp.Center.X / bucket))
		buckets[key] = append(buckets[key], gp)
	}

	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	order := make([]string, 0, len(positions))
	for i, k := range keys {
		col := buckets[k]
		sort.SliceStable(col, func(a, b int) bool {
			if col[a].Center.Y != col[b].Center.Y {
				return col[a].Center.Y < col[b].Center.Y
			}
			if col[a].Center.X != col[b].Center.X {
				return col[a].Center.X < col[b].Center.X
			}
			return col[a].ID < col[b].ID
		})
		if i%2 == 1 {
			reverse(col)
		}
		order = append(order, ids(col)...)
	}
	return order
}
