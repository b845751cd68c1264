package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/pkg/geometry"
)

func gp(id string, x, y float64, col, row int, side hole.Side) hole.GridPosition {
	return hole.GridPosition{ID: id, Center: geometry.Point2D{X: x, Y: y}, Column: col, Row: row, Side: side}
}

func testPositions() hole.Positions {
	p := hole.Positions{}
	for _, g := range []hole.GridPosition{
		gp("a1", 0, -10, 1, 1, hole.SideA),
		gp("a2", 0, -20, 1, 2, hole.SideA),
		gp("a4", 0, -40, 1, 4, hole.SideA),
		gp("a5", 30, -40, 2, 4, hole.SideA),
		gp("a9", 120, -40, 9, 4, hole.SideA),
		gp("b1", 120, 10, 9, 1, hole.SideB),
		gp("b2", 120, 20, 9, 2, hole.SideB),
	} {
		p[g.ID] = g
	}
	return p
}

func TestBuild_Classification(t *testing.T) {
	segs := Build([]string{"a1", "a2", "a4", "a5", "a9", "b1", "b2"}, testPositions())
	require.Len(t, segs, 6)

	tests := []struct {
		typ   SegmentType
		snake bool
		dist  float64
	}{
		{ASideNormal, true, 10},
		{ColumnReturn, true, 20},
		{CrossColumn, true, 30},
		{CrossColumn, false, 90},
		{CrossSide, true, 50},
		{BSideNormal, true, 10},
	}

	for i, tt := range tests {
		assert.Equal(t, i+1, segs[i].Sequence)
		assert.Equal(t, tt.typ, segs[i].Type, "segment %d", i+1)
		assert.Equal(t, tt.snake, segs[i].SnakeDirection, "segment %d", i+1)
		assert.InDelta(t, tt.dist, segs[i].Distance, 1e-9, "segment %d", i+1)
		assert.Equal(t, Pending, segs[i].State)
	}
}

func TestBuild_SkipsUnknownAndShortInput(t *testing.T) {
	positions := testPositions()

	assert.Empty(t, Build(nil, positions))
	assert.Empty(t, Build([]string{"a1"}, positions))
	assert.Empty(t, Build([]string{"a1", "missing"}, positions))

	segs := Build([]string{"a1", "missing", "a2"}, positions)
	require.Len(t, segs, 1)
	assert.Equal(t, "a1", segs[0].Start.ID)
	assert.Equal(t, "a2", segs[0].End.ID)
}

func TestBuild_SequenceGapFree(t *testing.T) {
	positions := hole.Positions{}
	var order []string
	for i := 1; i <= 50; i++ {
		g := gp(string(rune('A'+i%26))+string(rune('a'+i/26)), float64(i%7), float64(i), 1+i%5, 1+i/5, hole.Side(i%2))
		positions[g.ID] = g
		order = append(order, g.ID)
	}

	segs := Build(order, positions)
	require.Len(t, segs, len(order)-1)
	for i, s := range segs {
		assert.Equal(t, i+1, s.Sequence)
		assert.GreaterOrEqual(t, s.Distance, 0.0)
	}
}

func TestAdvance_TagsAndKeepsClassification(t *testing.T) {
	segs := Build([]string{"a1", "a2", "a4", "a5", "a9", "b1", "b2"}, testPositions())

	for k := 1; k <= len(segs); k++ {
		Advance(segs, k)

		completed, current := 0, 0
		for _, s := range segs {
			switch s.State {
			case Completed:
				completed++
			case Current:
				current++
				assert.Equal(t, k, s.Sequence)
			}
		}
		assert.Equal(t, k-1, completed, "k=%d", k)
		assert.Equal(t, 1, current, "k=%d", k)
	}

	Advance(segs, 2)
	assert.Equal(t, TagCompleted, segs[0].Tag())
	assert.Equal(t, TagCurrent, segs[1].Tag())
	assert.Equal(t, TagCrossColumn, segs[2].Tag(), "pending segment keeps its classification")
	assert.Equal(t, TagCrossSide, segs[4].Tag())
	assert.Equal(t, ColumnReturn, segs[1].Type)
}

func TestAdvance_Idempotent(t *testing.T) {
	segs := Build([]string{"a1", "a2", "a4", "a5"}, testPositions())
	Advance(segs, 2)
	first := append([]PathSegment(nil), segs...)
	Advance(segs, 2)
	assert.Equal(t, first, segs)
}

func TestTracker(t *testing.T) {
	tr := NewTracker(Build([]string{"a1", "a2", "a4", "a5"}, testPositions()))

	_, ok := tr.Current()
	assert.False(t, ok)

	require.NoError(t, tr.Advance(2))
	require.NoError(t, tr.Advance(2))
	cur, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, 2, cur.Sequence)
	assert.Equal(t, 2, tr.Through())

	err := tr.Advance(1)
	assert.ErrorIs(t, err, ErrProgressRegression)
	assert.Equal(t, 2, tr.Through())

	require.NoError(t, tr.Advance(4))
	for _, s := range tr.Segments() {
		assert.Equal(t, Completed, s.State)
	}
}

func TestSummarize(t *testing.T) {
	segs := Build([]string{"a1", "a2", "a4", "a5", "a9", "b1", "b2"}, testPositions())
	Advance(segs, 4)

	s := Summarize(segs)
	assert.Equal(t, 6, s.Segments)
	assert.Equal(t, 2, s.ByType[CrossColumn])
	assert.Equal(t, 1, s.Jumps)
	assert.InDelta(t, 210, s.TotalDistance, 1e-9)
	assert.InDelta(t, 90, s.JumpDistance, 1e-9)
	assert.Equal(t, 3, s.Completed)
	assert.InDelta(t, 0.5, s.Fraction, 1e-9)

	empty := Summarize(nil)
	assert.Zero(t, empty.Fraction)
}
