package segment

import (
	"errors"
	"fmt"
)

// ErrProgressRegression is returned when progress moves backwards.
var ErrProgressRegression = errors.New("progress regression")

// Advance marks segments before through as Completed, the segment numbered
// through as Current and all later ones as Pending. Classifications are kept.
// Repeating a call with the same value has no further effect.
func Advance(segments []PathSegment, through int) {
	for i := range segments {
		switch {
		case segments[i].Sequence < through:
			segments[i].State = Completed
		case segments[i].Sequence == through:
			segments[i].State = Current
		default:
			segments[i].State = Pending
		}
	}
}

// Tracker applies progress to one segment list and refuses to go backwards.
// It is not safe for concurrent use.
type Tracker struct {
	segments []PathSegment
	through  int
}

// NewTracker starts tracking segments with nothing completed.
func NewTracker(segments []PathSegment) *Tracker {
	t := &Tracker{segments: segments}
	Advance(t.segments, 0)
	return t
}

// Advance reports that inspection has completed every segment before through.
func (t *Tracker) Advance(through int) error {
	if through < t.through {
		return fmt.Errorf("%w: %d after %d", ErrProgressRegression, through, t.through)
	}
	t.through = through
	Advance(t.segments, through)
	return nil
}

// Through returns the last accepted progress value.
func (t *Tracker) Through() int {
	return t.through
}

// Current returns the segment being inspected, if any.
func (t *Tracker) Current() (PathSegment, bool) {
	if t.through < 1 || t.through > len(t.segments) {
		return PathSegment{}, false
	}
	return t.segments[t.through-1], true
}

// Segments returns a copy of the tracked segments.
func (t *Tracker) Segments() []PathSegment {
	out := make([]PathSegment, len(t.segments))
	copy(out, t.segments)
	return out
}
