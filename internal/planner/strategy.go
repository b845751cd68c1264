package planner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy is returned when a strategy name is not recognised.
var ErrUnknownStrategy = errors.New("unknown path strategy")

// Strategy selects the path planning algorithm.
type Strategy int

const (
	// Hybrid scans side A then side B, column by column, serpentine per column.
	Hybrid Strategy = iota
	// LabelBased is kept for configuration compatibility and plans exactly like Hybrid.
	LabelBased
	// SpatialSnake is a boustrophedon over raw X/Y, ignoring grid labels.
	SpatialSnake
	// IntervalFourSShape pairs holes four columns apart for dual-probe tools
	// and scans sector by sector in an S shape.
	IntervalFourSShape
)

// DefaultStrategy is used when no strategy is configured.
const DefaultStrategy = Hybrid

var strategyNames = map[Strategy]string{
	Hybrid:             "Hybrid",
	LabelBased:         "LabelBased",
	SpatialSnake:       "SpatialSnake",
	IntervalFourSShape: "IntervalFourSShape",
}

var strategyAliases = map[string]Strategy{
	"":                   DefaultStrategy,
	"hybrid":             Hybrid,
	"labelbased":         LabelBased,
	"label":              LabelBased,
	"spatialsnake":       SpatialSnake,
	"spatial":            SpatialSnake,
	"snake":              SpatialSnake,
	"intervalfoursshape": IntervalFourSShape,
	"intervalfour":       IntervalFourSShape,
	"interval4":          IntervalFourSShape,
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Strategies lists all strategies in display order.
func Strategies() []Strategy {
	return []Strategy{Hybrid, LabelBased, SpatialSnake, IntervalFourSShape}
}

// ParseStrategy converts a name or alias (case, '-', '_' and spaces ignored)
// to a Strategy. The empty string selects DefaultStrategy.
func ParseStrategy(name string) (Strategy, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))

	if s, ok := strategyAliases[key]; ok {
		return s, nil
	}
	return DefaultStrategy, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	name, ok := strategyNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
