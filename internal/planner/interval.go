package planner

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/internal/sector"
)

// PairSpacing is the column distance between the two probes of a dual-probe tool.
const PairSpacing = 4

// ErrInconsistentPairing is matched by every InconsistentPairingError.
var ErrInconsistentPairing = errors.New("inconsistent pairing state")

// InconsistentPairingError reports a broken pairing invariant. It indicates a
// planner bug; no path is produced when it occurs.
type InconsistentPairingError struct {
	Row    int
	HoleID string
	Detail string
}

func (e *InconsistentPairingError) Error() string {
	return fmt.Sprintf("%v: row %d, hole %q: %s", ErrInconsistentPairing, e.Row, e.HoleID, e.Detail)
}

// Is lets errors.Is match ErrInconsistentPairing.
func (e *InconsistentPairingError) Is(target error) bool {
	return target == ErrInconsistentPairing
}

// HolePair is a detection unit of one or two holes visited together.
// Two-hole pairs share a row and are exactly PairSpacing columns apart.
type HolePair struct {
	Holes  []hole.GridPosition
	Sector sector.Sector
}

// First returns the pair's leading (lower column) hole.
func (p HolePair) First() hole.GridPosition {
	return p.Holes[0]
}

// IsPair reports whether the unit holds two holes.
func (p HolePair) IsPair() bool {
	return len(p.Holes) == 2
}

// IDs returns the member hole identifiers in column order.
func (p HolePair) IDs() []string {
	return ids(p.Holes)
}

func (p HolePair) String() string {
	return "(" + strings.Join(p.IDs(), ", ") + ")"
}

// PairGroup is every unit of one row that falls in one sector.
type PairGroup struct {
	Sector   sector.Sector
	Row      int
	Reversed bool // Visited right to left
	Pairs    []HolePair
}

// IDs returns the group's holes in visiting order.
func (g PairGroup) IDs() []string {
	var out []string
	for _, p := range g.Pairs {
		out = append(out, p.IDs()...)
	}
	if g.Reversed {
		reverse(out)
	}
	return out
}

// PairRow greedily pairs the holes of one row. Holes are scanned in ascending
// column order and each unpaired hole at column c takes the first unpaired
// hole at column c+PairSpacing; a consumed partner is never reconsidered.
// Holes left over become single-hole units.
func PairRow(row []hole.GridPosition) []HolePair {
	sorted := make([]hole.GridPosition, len(row))
	copy(sorted, row)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Column != sorted[j].Column {
			return sorted[i].Column < sorted[j].Column
		}
		if sorted[i].Side != sorted[j].Side {
			return sorted[i].Side < sorted[j].Side
		}
		return sorted[i].ID < sorted[j].ID
	})

	used := make([]bool, len(sorted))
	var pairs []HolePair
	for i, h := range sorted {
		if used[i] {
			continue
		}
		used[i] = true
		unit := HolePair{Holes: []hole.GridPosition{h}}
		for j := i + 1; j < len(sorted) && sorted[j].Column <= h.Column+PairSpacing; j++ {
			if !used[j] && sorted[j].Column == h.Column+PairSpacing {
				used[j] = true
				unit.Holes = append(unit.Holes, sorted[j])
				break
			}
		}
		pairs = append(pairs, unit)
	}
	return pairs
}

// CheckPairs verifies that pairs cover row exactly once and that every
// two-hole unit obeys the spacing rule.
func CheckPairs(row []hole.GridPosition, pairs []HolePair) error {
	rowNum := 0
	if len(row) > 0 {
		rowNum = row[0].Row
	}

	seen := make(map[string]int, len(row))
	for _, p := range pairs {
		switch len(p.Holes) {
		case 1:
		case 2:
			a, b := p.Holes[0], p.Holes[1]
			if a.Row != b.Row || b.Column-a.Column != PairSpacing {
				return &InconsistentPairingError{Row: rowNum, HoleID: a.ID,
					Detail: fmt.Sprintf("paired with %q at column distance %d, rows %d/%d", b.ID, b.Column-a.Column, a.Row, b.Row)}
			}
		default:
			return &InconsistentPairingError{Row: rowNum, Detail: fmt.Sprintf("unit with %d holes", len(p.Holes))}
		}
		for _, h := range p.Holes {
			seen[h.ID]++
			if seen[h.ID] > 1 {
				return &InconsistentPairingError{Row: rowNum, HoleID: h.ID, Detail: "consumed by two units"}
			}
		}
	}
	for _, h := range row {
		if seen[h.ID] != 1 {
			return &InconsistentPairingError{Row: rowNum, HoleID: h.ID, Detail: "not covered by any unit"}
		}
	}
	if len(seen) != len(row) {
		return &InconsistentPairingError{Row: rowNum, Detail: "unit contains a hole from outside the row"}
	}
	return nil
}

// planIntervalFour pairs holes row by row (ignoring side), assigns each unit
// the sector of its first hole around the global center, and orders groups by
// sector priority then descending row. Every other group in that order is
// walked right to left.
func planIntervalFour(positions hole.Positions) ([]PairGroup, error) {
	if len(positions) == 0 {
		return nil, nil
	}

	rows := map[int][]hole.GridPosition{}
	for _, gp := range positions.Sorted() {
		rows[gp.Row] = append(rows[gp.Row], gp)
	}

	center := sector.ComputeGlobalCenter(positions)

	type groupKey struct {
		sector sector.Sector
		row    int
	}
	groups := map[groupKey]*PairGroup{}
	paired, singles := 0, 0

	for rowNum, row := range rows {
		pairs := PairRow(row)
		if err := CheckPairs(row, pairs); err != nil {
			return nil, err
		}
		for _, p := range pairs {
			p.Sector = sector.Of(p.First().Center, center)
			if p.IsPair() {
				paired++
			} else {
				singles++
			}
			k := groupKey{p.Sector, rowNum}
			g, ok := groups[k]
			if !ok {
				g = &PairGroup{Sector: p.Sector, Row: rowNum}
				groups[k] = g
			}
			g.Pairs = append(g.Pairs, p)
		}
	}

	ordered := make([]PairGroup, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.Pairs, func(i, j int) bool {
			a, b := g.Pairs[i].First(), g.Pairs[j].First()
			if a.Column != b.Column {
				return a.Column < b.Column
			}
			return a.ID < b.ID
		})
		ordered = append(ordered, *g)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Sector.Priority() != ordered[j].Sector.Priority() {
			return ordered[i].Sector.Priority() < ordered[j].Sector.Priority()
		}
		return ordered[i].Row > ordered[j].Row
	})

	// Parity follows the position in the sorted list and carries across sectors.
	for i := range ordered {
		ordered[i].Reversed = i%2 == 1
	}

	zap.S().Debugw("interval-four pairing", "pairs", paired, "singles", singles, "groups", len(ordered))
	return ordered, nil
}

func flattenGroups(groups []PairGroup) []string {
	var order []string
	for _, g := range groups {
		order = append(order, g.IDs()...)
	}
	if order == nil {
		order = []string{}
	}
	return order
}
