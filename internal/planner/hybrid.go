package planner

import (
	"sort"

	"tubesheet-planner/internal/hole"
)

// planHybrid visits side A completely, then side B. Within a side columns are
// taken in ascending order; odd columns run row-ascending and even columns
// row-descending.
func planHybrid(positions hole.Positions) []string {
	bySide := map[hole.Side][]hole.GridPosition{}
	for _, gp := range positions.Sorted() {
		bySide[gp.Side] = append(bySide[gp.Side], gp)
	}

	order := make([]string, 0, len(positions))
	for _, side := range []hole.Side{hole.SideA, hole.SideB} {
		order = append(order, serpentineColumns(bySide[side])...)
	}
	return order
}

func serpentineColumns(holes []hole.GridPosition) []string {
	columns := map[int][]hole.GridPosition{}
	for _, gp := range holes {
		columns[gp.Column] = append(columns[gp.Column], gp)
	}

	nums := make([]int, 0, len(columns))
	for c := range columns {
		nums = append(nums, c)
	}
	sort.Ints(nums)

	order := make([]string, 0, len(holes))
	for _, c := range nums {
		col := columns[c]
		sort.SliceStable(col, func(i, j int) bool {
			if col[i].Row != col[j].Row {
				return col[i].Row < col[j].Row
			}
			return col[i].ID < col[j].ID
		})
		if c%2 == 0 {
			reverse(col)
		}
		order = append(order, ids(col)...)
	}
	return order
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
