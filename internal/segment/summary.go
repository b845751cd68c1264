package segment

// Summary aggregates a segment list for reports and legends.
type Summary struct {
	Segments      int
	ByType        map[SegmentType]int
	Jumps         int     // Segments that leave the serpentine direction
	TotalDistance float64 // Sum of all segment lengths
	JumpDistance  float64 // Sum of jump segment lengths
	Completed     int
	Fraction      float64 // Completed / Segments, 0 for an empty list
}

// Summarize computes a Summary.
func Summarize(segments []PathSegment) Summary {
	s := Summary{
		Segments: len(segments),
		ByType:   make(map[SegmentType]int),
	}
	for _, seg := range segments {
		s.ByType[seg.Type]++
		s.TotalDistance += seg.Distance
		if !seg.SnakeDirection {
			s.Jumps++
			s.JumpDistance += seg.Distance
		}
		if seg.State == Completed {
			s.Completed++
		}
	}
	if s.Segments > 0 {
		s.Fraction = float64(s.Completed) / float64(s.Segments)
	}
	return s
}
