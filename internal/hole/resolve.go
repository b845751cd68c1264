package hole

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrUnresolvable is wrapped by every error returned for a hole that cannot be
// placed on the grid.
var ErrUnresolvable = errors.New("unresolvable hole identifier")

var (
	strictPattern = regexp.MustCompile(`^([AB])C(\d{3})R(\d{3})$`)
	columnPattern = regexp.MustCompile(`C(\d+)`)
	rowPattern    = regexp.MustCompile(`R(\d+)`)
)

// Options tunes the last-resort coordinate estimate.
type Options struct {
	SpatialUnit float64 `json:"spatial_unit"` // Sheet units per column/row step
	BaseColumn  int     `json:"base_column"`  // Column assigned to |X| < SpatialUnit
	BaseRow     int     `json:"base_row"`     // Row assigned to |Y| < SpatialUnit
}

// DefaultOptions returns the default resolver options.
func DefaultOptions() Options {
	return Options{
		SpatialUnit: 10,
		BaseColumn:  1,
		BaseRow:     1,
	}
}

// Validate reports whether the options can only produce positive grid numbers.
func (o Options) Validate() error {
	if o.SpatialUnit <= 0 {
		return fmt.Errorf("spatial unit must be positive, got %v", o.SpatialUnit)
	}
	if o.BaseColumn < 1 || o.BaseRow < 1 {
		return fmt.Errorf("base column/row must be >= 1, got %d/%d", o.BaseColumn, o.BaseRow)
	}
	return nil
}

// Diagnostic describes a hole that was excluded from grid processing.
type Diagnostic struct {
	ID  string
	Err error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %v", d.ID, d.Err)
}

// Result is the outcome of resolving a hole collection.
type Result struct {
	Positions   Positions
	Diagnostics []Diagnostic
	Counts      map[Method]int
}

// Dropped returns the identifiers of excluded holes in input order.
func (r Result) Dropped() []string {
	ids := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		ids[i] = d.ID
	}
	return ids
}

// Resolver converts hole records to grid positions.
// A Resolver holds only read-only options and is safe for concurrent use.
type Resolver struct {
	opts Options
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts Options) (*Resolver, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{opts: opts}, nil
}

// Options returns the resolver's options.
func (r *Resolver) Options() Options {
	return r.opts
}

// Resolve builds a fresh position mapping for records. Holes that cannot be
// placed are left out and reported in Result.Diagnostics; the first record
// wins when identifiers repeat.
func (r *Resolver) Resolve(records []Record) Result {
	res := Result{
		Positions: make(Positions, len(records)),
		Counts:    make(map[Method]int),
	}

	for _, rec := range records {
		if _, dup := res.Positions[rec.ID]; dup {
			res.drop(rec.ID, fmt.Errorf("%w: duplicate identifier", ErrUnresolvable))
			continue
		}
		gp, err := r.ResolveOne(rec)
		if err != nil {
			res.drop(rec.ID, err)
			continue
		}
		res.Positions[rec.ID] = gp
		res.Counts[gp.Method]++
	}

	return res
}

func (res *Result) drop(id string, err error) {
	zap.S().Warnw("hole excluded from grid", "id", id, "reason", err)
	res.Diagnostics = append(res.Diagnostics, Diagnostic{ID: id, Err: err})
}

// ResolveOne places a single record on the grid. The first rule that succeeds wins:
// explicit row/column fields, the strict identifier pattern, the loose
// C<n>/R<n> pattern, then an estimate for identifiers carrying only one group.
func (r *Resolver) ResolveOne(rec Record) (GridPosition, error) {
	gp := GridPosition{ID: rec.ID, Center: rec.Center}

	side, hasSide := ParseSide(strings.TrimSpace(rec.Side))
	if !hasSide {
		side = SideFromY(rec.Center.Y)
	}

	if rec.Column != nil && rec.Row != nil && *rec.Column > 0 && *rec.Row > 0 {
		gp.Column, gp.Row, gp.Side, gp.Method = *rec.Column, *rec.Row, side, MethodExplicit
		return gp, nil
	}

	id := strings.ToUpper(strings.TrimSpace(rec.ID))

	if m := strictPattern.FindStringSubmatch(id); m != nil {
		col, _ := strconv.Atoi(m[2])
		row, _ := strconv.Atoi(m[3])
		s, _ := ParseSide(m[1])
		gp.Column, gp.Row, gp.Side, gp.Method = col, row, s, MethodStrict
		return checkPositive(gp)
	}

	colMatch := columnPattern.FindStringSubmatch(id)
	rowMatch := rowPattern.FindStringSubmatch(id)
	gp.Side = side

	switch {
	case colMatch != nil && rowMatch != nil:
		gp.Column = atoiSaturating(colMatch[1])
		gp.Row = atoiSaturating(rowMatch[1])
		gp.Method = MethodLoose
	case colMatch == nil && rowMatch == nil:
		return GridPosition{}, fmt.Errorf("%w: no column or row group in %q", ErrUnresolvable, rec.ID)
	default:
		gp.Column = r.estimate(rec.Center.X, r.opts.BaseColumn)
		gp.Row = r.estimate(rec.Center.Y, r.opts.BaseRow)
		if colMatch != nil {
			gp.Column = atoiSaturating(colMatch[1])
		}
		if rowMatch != nil {
			gp.Row = atoiSaturating(rowMatch[1])
		}
		gp.Method = MethodEstimated
	}

	return checkPositive(gp)
}

// estimate maps a coordinate to a lattice index. It assumes a uniform pitch
// and is only an approximation.
func (r *Resolver) estimate(coord float64, base int) int {
	steps := math.Floor(math.Abs(coord) / r.opts.SpatialUnit)
	if steps > math.MaxInt32 {
		steps = math.MaxInt32
	}
	return base + int(steps)
}

func checkPositive(gp GridPosition) (GridPosition, error) {
	if gp.Column < 1 || gp.Row < 1 {
		return GridPosition{}, fmt.Errorf("%w: %q has non-positive column/row %d/%d",
			ErrUnresolvable, gp.ID, gp.Column, gp.Row)
	}
	return gp, nil
}

func atoiSaturating(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt32
	}
	return n
}
