package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tubesheet-planner/internal/planner"
)

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sheet"+Extension)

	p := New("Condenser 3")
	p.Strategy = planner.IntervalFourSShape
	p.SetHolesPath(path, filepath.Join(dir, "data", "holes.csv"))
	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Condenser 3", loaded.Name)
	assert.Equal(t, planner.IntervalFourSShape, loaded.Strategy)
	assert.Equal(t, filepath.Join("data", "holes.csv"), loaded.HolesPath)
	assert.Equal(t, filepath.Join(dir, "data", "holes.csv"), loaded.GetHolesPath(path))
	assert.Equal(t, p.Resolver, loaded.Resolver)
}

func TestLoad_StrategyByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.tsproj")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"name":"x","strategy":"spatial"}`), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, planner.SpatialSnake, p.Strategy)
	assert.Equal(t, 10.0, p.Resolver.SpatialUnit, "missing fields keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.tsproj")
	require.NoError(t, os.WriteFile(bad, []byte(`{"strategy":"zigzag"}`), 0o644))
	_, err := Load(bad)
	assert.ErrorIs(t, err, planner.ErrUnknownStrategy)

	unit := filepath.Join(dir, "unit.tsproj")
	require.NoError(t, os.WriteFile(unit, []byte(`{"resolver":{"spatial_unit":-1,"base_column":1,"base_row":1}}`), 0o644))
	_, err = Load(unit)
	assert.Error(t, err)
}

func TestGetSessionsPath(t *testing.T) {
	p := New("x")
	assert.Equal(t, filepath.Join("/tmp", "run_sessions.db"), p.GetSessionsPath(filepath.Join("/tmp", "run.tsproj")))

	p.SessionsPath = "db/sessions.db"
	assert.Equal(t, filepath.Join("/tmp", "db", "sessions.db"), p.GetSessionsPath(filepath.Join("/tmp", "run.tsproj")))
}
