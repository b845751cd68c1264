package segment

import (
	"go.uber.org/zap"

	"tubesheet-planner/internal/hole"
)

// Build turns a visiting order into path segments. Identifiers missing from
// positions are skipped; fewer than two known holes yield no segments.
func Build(order []string, positions hole.Positions) []PathSegment {
	known := make([]hole.GridPosition, 0, len(order))
	for _, id := range order {
		gp, ok := positions[id]
		if !ok {
			zap.S().Debugw("segment endpoint not resolved, skipping", "id", id)
			continue
		}
		known = append(known, gp)
	}

	if len(known) < 2 {
		return []PathSegment{}
	}

	segments := make([]PathSegment, len(known)-1)
	for i := 0; i < len(known)-1; i++ {
		a, b := known[i], known[i+1]
		dc := absInt(a.Column - b.Column)
		segments[i] = PathSegment{
			Sequence:       i + 1,
			Start:          a,
			End:            b,
			Type:           Classify(a, b),
			Distance:       a.Center.Distance(b.Center),
			SnakeDirection: dc <= 1,
		}
	}
	return segments
}

// Classify returns the segment type for a move from a to b. A side change
// wins over a column change, which wins over a row skip.
func Classify(a, b hole.GridPosition) SegmentType {
	switch {
	case a.Side != b.Side:
		return CrossSide
	case a.Column != b.Column:
		return CrossColumn
	case absInt(a.Row-b.Row) > 1:
		return ColumnReturn
	case a.Side == hole.SideA:
		return ASideNormal
	default:
		return BSideNormal
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
