// Package session persists inspection run progress so an interrupted run can
// resume from its last checkpoint.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/buntdb"
	"go.uber.org/zap"

	"tubesheet-planner/internal/planner"
	"tubesheet-planner/internal/segment"
)

// ErrNotFound is returned for an unknown run id.
var ErrNotFound = errors.New("run not found")

const createdIndex = "created"

// Run is the stored state of one inspection run.
type Run struct {
	ID        string           `json:"id"`
	HolesPath string           `json:"holes_path"`
	Strategy  planner.Strategy `json:"strategy"`
	Segments  int              `json:"segments"`
	Through   int              `json:"through"` // Last reported completed-through sequence number
	CreatedNs int64            `json:"created_ns"`
	UpdatedNs int64            `json:"updated_ns"`
}

// Created returns the creation time.
func (r Run) Created() time.Time {
	return time.Unix(0, r.CreatedNs)
}

// Updated returns the time of the last checkpoint.
func (r Run) Updated() time.Time {
	return time.Unix(0, r.UpdatedNs)
}

// Done reports whether every segment has been completed.
func (r Run) Done() bool {
	return r.Through > r.Segments
}

// Store keeps runs in a buntdb database.
type Store struct {
	db  *buntdb.DB
	now func() time.Time
}

// Open opens or creates the database at path. ":memory:" keeps it in memory.
func Open(path string) (*Store, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sessions %s: %w", path, err)
	}
	if err := db.CreateIndex(createdIndex, "run:*", buntdb.IndexJSON("created_ns")); err != nil && !errors.Is(err, buntdb.ErrIndexExists) {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func runKey(id string) string {
	return "run:" + id
}

// NewRun records a new run with nothing completed.
func (s *Store) NewRun(holesPath string, strategy planner.Strategy, segments int) (Run, error) {
	now := s.now().UnixNano()
	run := Run{
		ID:        uuid.NewString(),
		HolesPath: holesPath,
		Strategy:  strategy,
		Segments:  segments,
		CreatedNs: now,
		UpdatedNs: now,
	}
	err := s.db.Update(func(tx *buntdb.Tx) error {
		return put(tx, run)
	})
	if err != nil {
		return Run{}, err
	}
	zap.S().Infow("inspection run created", "run", run.ID, "strategy", strategy, "segments", segments)
	return run, nil
}

// Checkpoint stores progress for a run. Moving backwards is rejected with
// segment.ErrProgressRegression; repeating the last value is accepted.
func (s *Store) Checkpoint(id string, through int) (Run, error) {
	var run Run
	err := s.db.Update(func(tx *buntdb.Tx) error {
		var err error
		run, err = get(tx, id)
		if err != nil {
			return err
		}
		if through < run.Through {
			return fmt.Errorf("run %s: %w: %d after %d", id, segment.ErrProgressRegression, through, run.Through)
		}
		run.Through = through
		run.UpdatedNs = s.now().UnixNano()
		return put(tx, run)
	})
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// Load returns a run by id.
func (s *Store) Load(id string) (Run, error) {
	var run Run
	err := s.db.View(func(tx *buntdb.Tx) error {
		var err error
		run, err = get(tx, id)
		return err
	})
	return run, err
}

// Delete removes a run.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(runKey(id))
		if errors.Is(err, buntdb.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return err
	})
}

// List returns all runs, oldest first.
func (s *Store) List() ([]Run, error) {
	var runs []Run
	err := s.db.View(func(tx *buntdb.Tx) error {
		return tx.Ascend(createdIndex, func(key, value string) bool {
			var run Run
			if err := json.Unmarshal([]byte(value), &run); err != nil {
				zap.S().Errorw("unmarshalling run failed",
					"key", key,
					"value", value)
				return true
			}
			runs = append(runs, run)
			return true
		})
	})
	return runs, err
}

// Latest returns the most recently created run whose hole file matches holesPath.
func (s *Store) Latest(holesPath string) (Run, error) {
	runs, err := s.List()
	if err != nil {
		return Run{}, err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		if strings.EqualFold(runs[i].HolesPath, holesPath) {
			return runs[i], nil
		}
	}
	return Run{}, fmt.Errorf("%w: no run for %s", ErrNotFound, holesPath)
}

func get(tx *buntdb.Tx, id string) (Run, error) {
	value, err := tx.Get(runKey(id))
	if errors.Is(err, buntdb.ErrNotFound) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Run{}, err
	}
	var run Run
	if err := json.Unmarshal([]byte(value), &run); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", id, err)
	}
	return run, nil
}

func put(tx *buntdb.Tx, run Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	_, _, err = tx.Set(runKey(run.ID), string(data), nil)
	return err
}
