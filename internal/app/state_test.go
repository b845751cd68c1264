package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubesheet-planner/internal/hole"
	"tubesheet-planner/internal/planner"
	"tubesheet-planner/internal/segment"
	"tubesheet-planner/internal/session"
)

func testRecords() []hole.Record {
	return []hole.Record{
		hole.NewRecord("AC001R001", 0, -10),
		hole.NewRecord("AC005R001", 40, -10),
		hole.NewRecord("AC001R002", 0, -20),
		hole.NewRecord("AC005R002", 40, -20),
		hole.NewRecord("BC001R001", 0, 10),
		hole.NewRecord("no-grid", 3, 3),
	}
}

func newTestState(t *testing.T, strategy planner.Strategy) *State {
	t.Helper()
	r, err := hole.NewResolver(hole.DefaultOptions())
	require.NoError(t, err)
	return NewState(r, strategy)
}

func TestState_LoadPlansResolvedHoles(t *testing.T) {
	s := newTestState(t, planner.Hybrid)

	var events []EventType
	s.On(EventHolesLoaded, func(interface{}) { events = append(events, EventHolesLoaded) })
	s.On(EventPathPlanned, func(interface{}) { events = append(events, EventPathPlanned) })

	require.NoError(t, s.Load(testRecords()))

	snap := s.Snapshot()
	assert.Len(t, snap.Positions, 5)
	require.Len(t, snap.Diagnostics, 1)
	assert.Equal(t, "no-grid", snap.Diagnostics[0].ID)
	assert.Equal(t, []string{"AC001R001", "AC001R002", "AC005R001", "AC005R002", "BC001R001"}, snap.Plan.Order)
	assert.Len(t, snap.Segments, 4)
	assert.Equal(t, []EventType{EventHolesLoaded, EventPathPlanned}, events)
}

func TestState_SetStrategyReplans(t *testing.T) {
	s := newTestState(t, planner.Hybrid)
	require.NoError(t, s.Load(testRecords()))

	require.NoError(t, s.SetStrategy(planner.IntervalFourSShape))
	snap := s.Snapshot()
	assert.Equal(t, planner.IntervalFourSShape, snap.Strategy)
	assert.NotEmpty(t, snap.Plan.Groups)
	assert.ElementsMatch(t, []string{"AC001R001", "AC001R002", "AC005R001", "AC005R002", "BC001R001"}, snap.Plan.Order)
}

func TestState_SetStrategyUnknownKeepsPrevious(t *testing.T) {
	s := newTestState(t, planner.Hybrid)
	require.NoError(t, s.Load(testRecords()))

	assert.ErrorIs(t, s.SetStrategy(planner.Strategy(99)), planner.ErrUnknownStrategy)
	assert.Equal(t, planner.Hybrid, s.Strategy())
}

func TestState_Advance(t *testing.T) {
	s := newTestState(t, planner.Hybrid)
	assert.ErrorIs(t, s.Advance(1), ErrNoPath)

	require.NoError(t, s.Load(testRecords()))

	var progress []int
	s.On(EventProgressChanged, func(d interface{}) { progress = append(progress, d.(int)) })

	require.NoError(t, s.Advance(2))
	require.NoError(t, s.Advance(3))
	assert.ErrorIs(t, s.Advance(1), segment.ErrProgressRegression)

	snap := s.Snapshot()
	assert.Equal(t, 3, snap.Through)
	assert.Equal(t, segment.Completed, snap.Segments[1].State)
	assert.Equal(t, segment.Current, snap.Segments[2].State)
	assert.Equal(t, []int{2, 3}, progress)
}

func TestState_SessionCheckpoints(t *testing.T) {
	store, err := session.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	s := newTestState(t, planner.Hybrid)
	require.NoError(t, s.Load(testRecords()))

	run, err := store.NewRun("holes.json", planner.Hybrid, len(s.Snapshot().Segments))
	require.NoError(t, err)
	_, err = store.Checkpoint(run.ID, 2)
	require.NoError(t, err)

	require.NoError(t, s.AttachSession(store, run.ID))
	assert.Equal(t, 2, s.Snapshot().Through)

	require.NoError(t, s.Advance(4))
	stored, err := store.Load(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Through)

	// A fresh state for the same run resumes where the last one stopped.
	resumed := newTestState(t, planner.Hybrid)
	require.NoError(t, resumed.Load(testRecords()))
	require.NoError(t, resumed.AttachSession(store, run.ID))
	assert.Equal(t, 4, resumed.Snapshot().Through)
}

func TestState_SnapshotIsCopy(t *testing.T) {
	s := newTestState(t, planner.Hybrid)
	require.NoError(t, s.Load(testRecords()))

	snap := s.Snapshot()
	snap.Plan.Order[0] = "mutated"
	snap.Segments[0].State = segment.Completed
	delete(snap.Positions, "AC001R001")

	fresh := s.Snapshot()
	assert.Equal(t, "AC001R001", fresh.Plan.Order[0])
	assert.Equal(t, segment.Pending, fresh.Segments[0].State)
	assert.Contains(t, fresh.Positions, "AC001R001")
}

func TestState_ReloadDetachesSession(t *testing.T) {
	store, err := session.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	s := newTestState(t, planner.Hybrid)
	require.NoError(t, s.Load(testRecords()))

	run, err := store.NewRun("holes.json", planner.Hybrid, len(s.Snapshot().Segments))
	require.NoError(t, err)
	require.NoError(t, s.AttachSession(store, run.ID))
	require.NoError(t, s.Advance(3))

	var detached []string
	s.On(EventSessionDetached, func(data interface{}) { detached = append(detached, data.(string)) })

	require.NoError(t, s.Load(testRecords()))
	snap := s.Snapshot()
	assert.Empty(t, snap.RunID)
	assert.Equal(t, 0, snap.Through)
	assert.Equal(t, []string{run.ID}, detached)

	// Progress on the new path is not checked against the old run.
	require.NoError(t, s.Advance(1))
	stored, err := store.Load(run.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Through)

	// A new run for the new path checkpoints normally.
	next, err := store.NewRun("holes.json", planner.Hybrid, len(snap.Segments))
	require.NoError(t, err)
	require.NoError(t, s.AttachSession(store, next.ID))
	require.NoError(t, s.Advance(2))
	stored, err = store.Load(next.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Through)
}

func TestState_StrategyChangeDetachesSession(t *testing.T) {
	store, err := session.Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	s := newTestState(t, planner.Hybrid)
	require.NoError(t, s.Load(testRecords()))
	run, err := store.NewRun("holes.json", planner.Hybrid, len(s.Snapshot().Segments))
	require.NoError(t, err)
	require.NoError(t, s.AttachSession(store, run.ID))

	require.NoError(t, s.SetStrategy(planner.SpatialSnake))
	assert.Empty(t, s.Snapshot().RunID)
}

func TestState_FailedLoadKeepsPreviousState(t *testing.T) {
	s := newTestState(t, planner.Hybrid)
	require.NoError(t, s.Load(testRecords()))
	before := s.Snapshot()
	require.NoError(t, s.Advance(2))

	// An unplannable strategy makes the next load fail after resolving.
	s.strategy = planner.Strategy(42)
	err := s.Load([]hole.Record{
		hole.NewRecord("AC009R009", 0, -10),
		hole.NewRecord("bad", 1, 1),
		hole.NewRecord("bad2", 2, 2),
	})
	require.ErrorIs(t, err, planner.ErrUnknownStrategy)

	after := s.Snapshot()
	assert.Equal(t, before.Plan.Order, after.Plan.Order)
	assert.Equal(t, len(before.Positions), len(after.Positions))
	assert.Contains(t, after.Positions, "AC001R001")
	assert.NotContains(t, after.Positions, "AC009R009")
	assert.Equal(t, before.Diagnostics, after.Diagnostics)
	assert.Equal(t, 2, after.Through)
}
