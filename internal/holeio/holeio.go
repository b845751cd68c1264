// Package holeio reads hole records from disk and writes planned paths.
package holeio

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/pkg/geometry"
)

// ErrUnsupportedFormat is returned for file extensions other than .json and .csv.
var ErrUnsupportedFormat = errors.New("unsupported hole file format")

// fileRecord is the flat on-disk hole representation.
type fileRecord struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Row    *int    `json:"row,omitempty"`
	Column *int    `json:"column,omitempty"`
	Side   string  `json:"side,omitempty"`
}

func (f fileRecord) toRecord() hole.Record {
	return hole.Record{
		ID:     f.ID,
		Center: geometry.Point2D{X: f.X, Y: f.Y},
		Row:    f.Row,
		Column: f.Column,
		Side:   f.Side,
	}
}

// Load reads hole records from a .json or .csv file.
func Load(path string) ([]hole.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// ReadJSON parses either a bare array of holes or an object with a "holes" array.
func ReadJSON(r io.Reader) ([]hole.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw []fileRecord
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Holes []fileRecord `json:"holes"`
		}
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("parse holes: %w", err)
		}
		raw = wrapper.Holes
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse holes: %w", err)
	}

	records := make([]hole.Record, len(raw))
	for i, fr := range raw {
		records[i] = fr.toRecord()
	}
	return records, nil
}

// ReadCSV parses a CSV file with a header row. Columns id, x and y are
// required; row, column and side are optional and may be left empty.
func ReadCSV(r io.Reader) ([]hole.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"id", "x", "y"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	field := func(rec []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var records []hole.Record
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		x, err := strconv.ParseFloat(field(rec, "x"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: x: %w", line, err)
		}
		y, err := strconv.ParseFloat(field(rec, "y"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: y: %w", line, err)
		}

		fr := fileRecord{ID: field(rec, "id"), X: x, Y: y, Side: field(rec, "side")}
		if fr.Row, err = optionalInt(field(rec, "row")); err != nil {
			return nil, fmt.Errorf("line %d: row: %w", line, err)
		}
		if fr.Column, err = optionalInt(field(rec, "column")); err != nil {
			return nil, fmt.Errorf("line %d: column: %w", line, err)
		}
		records = append(records, fr.toRecord())
	}
	return records, nil
}

func optionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
