// Package app ties hole resolution, path planning and progress tracking into
// one inspection session.
package app

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/internal/planner"
	"tubesheet-planner/internal/segment"
	"tubesheet-planner/internal/session"
)

// ErrNoPath is returned when progress is reported before a path exists.
var ErrNoPath = errors.New("no path planned")

// State holds one hole collection and its planned path. Every method takes
// the state's lock, so calls from several goroutines are serialized.
type State struct {
	mu sync.RWMutex

	resolver *hole.Resolver
	strategy planner.Strategy

	// Current hole collection
	records  []hole.Record
	resolved hole.Result

	// Planned path
	plan    planner.Plan
	tracker *segment.Tracker

	// Optional checkpoint persistence
	store *session.Store
	runID string

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different session events.
type EventType int

const (
	EventHolesLoaded EventType = iota
	EventPathPlanned
	EventProgressChanged
	EventSessionDetached
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// Snapshot is a copy of the session safe to hand to renderers.
type Snapshot struct {
	Strategy    planner.Strategy
	Positions   hole.Positions
	Diagnostics []hole.Diagnostic
	Plan        planner.Plan
	Segments    []segment.PathSegment
	Through     int
	RunID       string
}

// NewState creates an empty session.
func NewState(resolver *hole.Resolver, strategy planner.Strategy) *State {
	return &State{
		resolver:  resolver,
		strategy:  strategy,
		tracker:   segment.NewTracker(nil),
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Load replaces the hole collection, resolves it from scratch and replans.
// Progress restarts from zero and an attached session is detached, since its
// checkpoint refers to the previous path. On error nothing changes.
func (s *State) Load(records []hole.Record) error {
	recs := append([]hole.Record(nil), records...)

	s.mu.Lock()
	resolved := s.resolver.Resolve(recs)
	plan, tracker, err := buildPath(resolved.Positions, s.strategy)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.records = recs
	s.resolved = resolved
	detached := s.commitLocked(plan, tracker)
	s.mu.Unlock()

	zap.S().Infow("holes loaded",
		"holes", len(records),
		"resolved", len(resolved.Positions),
		"dropped", len(resolved.Diagnostics))
	s.emitDetached(detached)
	s.Emit(EventHolesLoaded, resolved)
	s.Emit(EventPathPlanned, s.Snapshot())
	return nil
}

// SetStrategy switches the planning strategy and replans. Like Load it
// detaches an attached session; on error the previous strategy and path stay.
func (s *State) SetStrategy(strategy planner.Strategy) error {
	s.mu.Lock()
	plan, tracker, err := buildPath(s.resolved.Positions, strategy)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.strategy = strategy
	detached := s.commitLocked(plan, tracker)
	s.mu.Unlock()

	s.emitDetached(detached)
	s.Emit(EventPathPlanned, s.Snapshot())
	return nil
}

func buildPath(positions hole.Positions, strategy planner.Strategy) (planner.Plan, *segment.Tracker, error) {
	plan, err := planner.Explain(positions, strategy)
	if err != nil {
		return planner.Plan{}, nil, fmt.Errorf("plan %d holes: %w", len(positions), err)
	}
	return plan, segment.NewTracker(segment.Build(plan.Order, positions)), nil
}

// commitLocked installs a new path and drops the session binding. It returns
// the id of the detached run, or "" if none was attached.
func (s *State) commitLocked(plan planner.Plan, tracker *segment.Tracker) string {
	s.plan = plan
	s.tracker = tracker

	runID := s.runID
	s.store = nil
	s.runID = ""
	return runID
}

func (s *State) emitDetached(runID string) {
	if runID == "" {
		return
	}
	zap.S().Warnw("path replanned, session detached", "run", runID)
	s.Emit(EventSessionDetached, runID)
}

// AttachSession persists progress for runID in store and restores the run's
// last checkpoint onto the current path.
func (s *State) AttachSession(store *session.Store, runID string) error {
	run, err := store.Load(runID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.store = store
	s.runID = runID
	err = s.tracker.Advance(run.Through)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	zap.S().Infow("session attached", "run", runID, "through", run.Through)
	s.Emit(EventProgressChanged, run.Through)
	return nil
}

// Advance reports that every segment before through is completed and the
// segment numbered through is being inspected.
func (s *State) Advance(through int) error {
	s.mu.Lock()
	if len(s.plan.Order) == 0 {
		s.mu.Unlock()
		return ErrNoPath
	}
	if through < s.tracker.Through() {
		last := s.tracker.Through()
		s.mu.Unlock()
		zap.S().Warnw("progress regression rejected", "through", through, "last", last)
		return fmt.Errorf("%w: %d after %d", segment.ErrProgressRegression, through, last)
	}
	if s.store != nil {
		if _, err := s.store.Checkpoint(s.runID, through); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	err := s.tracker.Advance(through)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.Emit(EventProgressChanged, through)
	return nil
}

// Snapshot returns copies of the current session data.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := make(hole.Positions, len(s.resolved.Positions))
	for id, gp := range s.resolved.Positions {
		positions[id] = gp
	}

	plan := s.plan
	plan.Order = append([]string(nil), s.plan.Order...)

	return Snapshot{
		Strategy:    s.strategy,
		Positions:   positions,
		Diagnostics: append([]hole.Diagnostic(nil), s.resolved.Diagnostics...),
		Plan:        plan,
		Segments:    s.tracker.Segments(),
		Through:     s.tracker.Through(),
		RunID:       s.runID,
	}
}

// Strategy returns the active strategy.
func (s *State) Strategy() planner.Strategy {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.strategy
}
