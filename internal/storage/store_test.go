package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pendlab/pendsim/dynamo"
)

func testTrajectory() *dynamo.Trajectory {
	return &dynamo.Trajectory{
		Times: []float64{0, 0.5, 1.0},
		States: []dynamo.State{
			{0.5, 0},
			{0.3, -1.2},
			{-0.1, -1.5},
		},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	metrics := map[string]float64{"amplitude": 0.5, "energy_drift": 1e-8}
	runID, err := st.Save("pendulum", "rk4", metrics, testTrajectory())
	require.NoError(t, err)
	assert.Contains(t, runID, "pendulum_")

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "pendulum", meta.Model)
	assert.Equal(t, "rk4", meta.Integrator)
	assert.Equal(t, 0.0, meta.From)
	assert.Equal(t, 1.0, meta.To)
	assert.Equal(t, 3, meta.Samples)
	assert.Equal(t, metrics, meta.Metrics)

	tr, err := st.LoadTrajectory(runID)
	require.NoError(t, err)
	require.Equal(t, 3, tr.Len())
	assert.Equal(t, []float64{0, 0.5, 1.0}, tr.Times)
	assert.Equal(t, dynamo.State{0.3, -1.2}, tr.States[1])
}

func TestSavePreservesFullPrecision(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	tr := &dynamo.Trajectory{
		Times:  []float64{0},
		States: []dynamo.State{{math.Pi, 1.0 / 3.0}},
	}
	runID, err := st.Save("pendulum", "rk4", nil, tr)
	require.NoError(t, err)

	loaded, err := st.LoadTrajectory(runID)
	require.NoError(t, err)
	require.Equal(t, 1, loaded.Len())
	assert.Equal(t, math.Pi, loaded.States[0][0])
	assert.Equal(t, 1.0/3.0, loaded.States[0][1])
}

func TestCSVHeader(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	runID, err := st.Save("double_pendulum", "rk4", nil, &dynamo.Trajectory{
		Times:  []float64{0},
		States: []dynamo.State{{1, 2, 3, 4}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, runID, "trajectory.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "time,theta0,omega0,theta1,omega1")
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = st.Save("pendulum", "rk4", nil, testTrajectory())
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "pendulum", runs[0].Model)
}

func TestListMissingBaseDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("pendulum_0")
	assert.Error(t, err)

	_, err = st.LoadTrajectory("pendulum_0")
	assert.Error(t, err)
}

func TestLoadTrajectorySkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	runDir := filepath.Join(dir, "pendulum_1")
	require.NoError(t, os.MkdirAll(runDir, 0755))
	csv := "time,theta,omega\n0,0.5,0\nnot,a,number\n1,0.3,-1\n"
	require.NoError(t, os.WriteFile(filepath.Join(runDir, "trajectory.csv"), []byte(csv), 0644))

	tr, err := st.LoadTrajectory("pendulum_1")
	require.NoError(t, err)
	assert.Equal(t, 2, tr.Len())
}
