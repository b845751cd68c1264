// Package segment decomposes a planned hole order into typed, measured path
// segments and tracks inspection progress along them.
package segment

import (
	"fmt"

	"tubesheet-planner/internal/hole"
)

// SegmentType classifies the move between two consecutive holes.
type SegmentType int

const (
	ASideNormal  SegmentType = iota // Step along a column on side A
	BSideNormal                     // Step along a column on side B
	ColumnReturn                    // Same column, skipping one or more rows
	CrossColumn                     // Move to a different column
	CrossSide                       // Move between side A and side B
)

func (t SegmentType) String() string {
	switch t {
	case ASideNormal:
		return "ASideNormal"
	case BSideNormal:
		return "BSideNormal"
	case ColumnReturn:
		return "ColumnReturn"
	case CrossColumn:
		return "CrossColumn"
	case CrossSide:
		return "CrossSide"
	default:
		return fmt.Sprintf("SegmentType(%d)", int(t))
	}
}

// SegmentTypes lists every classification.
func SegmentTypes() []SegmentType {
	return []SegmentType{ASideNormal, BSideNormal, ColumnReturn, CrossColumn, CrossSide}
}

// ProgressState is the inspection state of a segment. It is kept apart from
// SegmentType so progress updates never discard the classification.
type ProgressState int

const (
	Pending ProgressState = iota
	Current
	Completed
)

func (s ProgressState) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Current:
		return "Current"
	case Completed:
		return "Completed"
	default:
		return fmt.Sprintf("ProgressState(%d)", int(s))
	}
}

// Tag is the single display tag a renderer draws a segment with: the
// progress state when one is set, otherwise the classification.
type Tag string

const (
	TagASideNormal  Tag = "a_side_normal"
	TagBSideNormal  Tag = "b_side_normal"
	TagColumnReturn Tag = "column_return"
	TagCrossColumn  Tag = "cross_column"
	TagCrossSide    Tag = "cross_side"
	TagCompleted    Tag = "completed"
	TagCurrent      Tag = "current"
)

var typeTags = map[SegmentType]Tag{
	ASideNormal:  TagASideNormal,
	BSideNormal:  TagBSideNormal,
	ColumnReturn: TagColumnReturn,
	CrossColumn:  TagCrossColumn,
	CrossSide:    TagCrossSide,
}

// PathSegment is one edge of the visiting order.
type PathSegment struct {
	Sequence       int               `json:"sequence"` // 1-based, gap-free
	Start          hole.GridPosition `json:"start"`
	End            hole.GridPosition `json:"end"`
	Type           SegmentType       `json:"type"`
	State          ProgressState     `json:"state"`
	Distance       float64           `json:"distance"`
	SnakeDirection bool              `json:"snake_direction"` // False marks a jump
}

// Tag returns the display tag for the segment.
func (s PathSegment) Tag() Tag {
	switch s.State {
	case Completed:
		return TagCompleted
	case Current:
		return TagCurrent
	}
	return typeTags[s.Type]
}

func (s PathSegment) String() string {
	return fmt.Sprintf("#%d %s->%s %s %.2f", s.Sequence, s.Start.ID, s.End.ID, s.Tag(), s.Distance)
}

// MarshalText implements encoding.TextMarshaler.
func (t SegmentType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// MarshalText implements encoding.TextMarshaler.
func (s ProgressState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
