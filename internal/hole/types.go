// Package hole provides tube sheet hole records and their resolution into
// column/row/side grid positions.
package hole

import (
	"fmt"
	"sort"

	"tubesheet-planner/pkg/geometry"
)

// Status is the inspection state of a hole. It is owned by the inspection
// driver; planning never reads or writes it.
type Status int

const (
	StatusPending Status = iota
	StatusInspecting
	StatusPassed
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInspecting:
		return "Inspecting"
	case StatusPassed:
		return "Passed"
	case StatusFailed:
		return "Failed"
	case StatusSkipped:
		return "Skipped"
	default:
		return "Unknown"
	}
}

// Record is a raw hole as delivered by the importer.
type Record struct {
	ID     string           `json:"id"`               // Free-form identifier, e.g., "AC096R148"
	Center geometry.Point2D `json:"center"`           // Hole center in sheet coordinates
	Row    *int             `json:"row,omitempty"`    // Explicit row number, if known
	Column *int             `json:"column,omitempty"` // Explicit column number, if known
	Side   string           `json:"side,omitempty"`   // Explicit side label "A" or "B", if known
	Status Status           `json:"status"`
}

// NewRecord creates a record with only an identifier and a center.
func NewRecord(id string, x, y float64) Record {
	return Record{ID: id, Center: geometry.Point2D{X: x, Y: y}}
}

// WithGrid returns a copy of the record carrying explicit row and column numbers.
func (r Record) WithGrid(column, row int) Record {
	r.Column = &column
	r.Row = &row
	return r
}

// Side is the half of the sheet a hole lies in.
type Side int

const (
	SideA Side = iota // Above the horizontal reference line
	SideB             // Below the horizontal reference line
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// ParseSide converts "A"/"B" (any case) to a Side.
func ParseSide(s string) (Side, bool) {
	switch s {
	case "A", "a":
		return SideA, true
	case "B", "b":
		return SideB, true
	default:
		return SideA, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	side, ok := ParseSide(string(text))
	if !ok {
		return fmt.Errorf("invalid side %q", text)
	}
	*s = side
	return nil
}

// SideFromY derives the side from the sign of a center Y coordinate.
func SideFromY(y float64) Side {
	if y > 0 {
		return SideA
	}
	return SideB
}

// Method records which resolution rule produced a grid position.
type Method int

const (
	MethodExplicit  Method = iota // Row/column fields on the record
	MethodStrict                  // Identifier matched the [A|B]C###R### pattern
	MethodLoose                   // Identifier contained C<n> and R<n> groups
	MethodEstimated               // One coordinate estimated from X/Y (lossy)
)

func (m Method) String() string {
	switch m {
	case MethodExplicit:
		return "Explicit"
	case MethodStrict:
		return "Strict"
	case MethodLoose:
		return "Loose"
	case MethodEstimated:
		return "Estimated"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// GridPosition is a hole placed on the column/row lattice.
// Column and Row are always >= 1.
type GridPosition struct {
	ID     string           `json:"id"`
	Center geometry.Point2D `json:"center"`
	Column int              `json:"column"`
	Row    int              `json:"row"`
	Side   Side             `json:"side"`
	Method Method           `json:"method"`
}

// Positions maps hole identifiers to their resolved grid positions.
type Positions map[string]GridPosition

// IDs returns the identifiers in ascending order.
func (p Positions) IDs() []string {
	ids := make([]string, 0, len(p))
	for id := range p {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sorted returns the positions ordered by identifier.
func (p Positions) Sorted() []GridPosition {
	ids := p.IDs()
	out := make([]GridPosition, len(ids))
	for i, id := range ids {
		out[i] = p[id]
	}
	return out
}

// Centers returns the hole centers ordered by identifier.
func (p Positions) Centers() []geometry.Point2D {
	sorted := p.Sorted()
	pts := make([]geometry.Point2D, len(sorted))
	for i, gp := range sorted {
		pts[i] = gp.Center
	}
	return pts
}
