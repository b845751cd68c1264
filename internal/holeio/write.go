package holeio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/internal/planner"
	"tubesheet-planner/internal/segment"
)

// PlanDocument is the JSON form of a planned path.
type PlanDocument struct {
	Strategy planner.Strategy      `json:"strategy"`
	Holes    int                   `json:"holes"`
	Dropped  []string              `json:"dropped,omitempty"`
	Order    []string              `json:"order"`
	Segments []segment.PathSegment `json:"segments,omitempty"`
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteOrderCSV writes one line per visited hole.
func WriteOrderCSV(w io.Writer, order []string, positions hole.Positions) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seq", "id", "x", "y", "column", "row", "side"}); err != nil {
		return err
	}
	for i, id := range order {
		gp, ok := positions[id]
		if !ok {
			return fmt.Errorf("hole %q not resolved", id)
		}
		if err := cw.Write([]string{
			strconv.Itoa(i + 1),
			id,
			formatFloat(gp.Center.X),
			formatFloat(gp.Center.Y),
			strconv.Itoa(gp.Column),
			strconv.Itoa(gp.Row),
			gp.Side.String(),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSegmentsCSV writes one line per path segment.
func WriteSegmentsCSV(w io.Writer, segments []segment.PathSegment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seq", "from", "to", "type", "state", "tag", "distance", "snake"}); err != nil {
		return err
	}
	for _, s := range segments {
		if err := cw.Write([]string{
			strconv.Itoa(s.Sequence),
			s.Start.ID,
			s.End.ID,
			s.Type.String(),
			s.State.String(),
			string(s.Tag()),
			formatFloat(s.Distance),
			strconv.FormatBool(s.SnakeDirection),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
