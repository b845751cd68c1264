// Package planner orders tube sheet holes into a complete inspection path.
//
// Every strategy is a pure function of its inputs: the same positions always
// produce the same order, independent of map iteration.
package planner

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"tubesheet-planner/internal/hole"
)

// ErrDuplicateInPath indicates a planned path that is not a permutation of its input.
var ErrDuplicateInPath = errors.New("planned path is not a permutation of the input holes")

// Plan is the full result of a planning run.
type Plan struct {
	Strategy Strategy
	Order    []string    // Hole identifiers in visiting order
	Groups   []PairGroup // Pair groups in visiting order; IntervalFourSShape only
}

// Len returns the number of holes in the plan.
func (p Plan) Len() int {
	return len(p.Order)
}

// Order returns the visiting order for positions under strategy.
// An empty mapping yields an empty order and no error.
func Order(positions hole.Positions, strategy Strategy) ([]string, error) {
	p, err := Explain(positions, strategy)
	if err != nil {
		return nil, err
	}
	return p.Order, nil
}

// Explain plans like Order and also returns the intermediate pairing groups.
func Explain(positions hole.Positions, strategy Strategy) (Plan, error) {
	p := Plan{Strategy: strategy}

	if len(positions) < 2 {
		zap.S().Debugw("trivial plan", "strategy", strategy, "holes", len(positions))
	}

	switch strategy {
	case Hybrid, LabelBased:
		p.Order = planHybrid(positions)
	case SpatialSnake:
		p.Order = planSpatialSnake(positions, SpatialBucket)
	case IntervalFourSShape:
		groups, err := planIntervalFour(positions)
		if err != nil {
			return Plan{}, err
		}
		p.Groups = groups
		p.Order = flattenGroups(groups)
	default:
		return Plan{}, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}

	if err := verifyPermutation(p.Order, positions); err != nil {
		return Plan{}, fmt.Errorf("%s: %w", strategy, err)
	}

	zap.S().Debugw("planned path", "strategy", strategy, "holes", len(p.Order), "groups", len(p.Groups))
	return p, nil
}

func verifyPermutation(order []string, positions hole.Positions) error {
	if len(order) != len(positions) {
		return fmt.Errorf("%w: %d ids for %d holes", ErrDuplicateInPath, len(order), len(positions))
	}
	seen := make(map[string]bool, len(order))
	for _, id := range order {
		if _, ok := positions[id]; !ok {
			return fmt.Errorf("%w: unknown id %q", ErrDuplicateInPath, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: %q visited twice", ErrDuplicateInPath, id)
		}
		seen[id] = true
	}
	return nil
}

func ids(holes []hole.GridPosition) []string {
	out := make([]string, len(holes))
	for i, h := range holes {
		out[i] = h.ID
	}
	return out
}
