package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/banshee-data/motion.planner/internal/planning/behaviour"
	"github.com/banshee-data/motion.planner/internal/planning/trajectory"
	"github.com/banshee-data/motion.planner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func car(id int, x, y, speed float64) behaviour.Agent {
	return behaviour.Agent{ID: id, X: x, Y: y, Speed: speed, Length: 4.5, Width: 2}
}

func writeScenario(t *testing.T, sc Scenario) string {
	t.Helper()
	data, err := json.Marshal(sc)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scenario.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func overtakeScenario() Scenario {
	return Scenario{
		EgoID:        1,
		Start:        start,
		CycleSeconds: 0.1,
		ReferenceLines: []behaviour.ReferenceLine{
			{ID: "lane-0", Points: testutil.StraightPath(0, -50, 150, 21)},
			{ID: "lane-1", Points: testutil.StraightPath(3.5, -50, 150, 21)},
		},
		Cycles: []Cycle{
			{Agents: []behaviour.Agent{car(1, 0, 0, 10)}},
			{Agents: []behaviour.Agent{car(1, 0, 0, 10), car(2, 8, 0, 0)}},
			{Agents: []behaviour.Agent{car(1, 0, 0, 10), car(2, 8, 0, 0), car(3, 0, 3.5, 10)}},
		},
	}
}

func decode(t *testing.T, out *bytes.Buffer) []Record {
	t.Helper()
	var recs []Record
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var r Record
		require.NoError(t, json.Unmarshal(sc.Bytes(), &r))
		recs = append(recs, r)
	}
	require.NoError(t, sc.Err())
	return recs
}

func TestRun_LaneKeep(t *testing.T) {
	path := writeScenario(t, overtakeScenario())

	var out bytes.Buffer
	require.NoError(t, run(Config{ScenarioPath: path, Strategy: behaviour.NameLaneKeep}, &out))

	recs := decode(t, &out)
	require.Len(t, recs, 3)

	require.True(t, recs[0].OK)
	assert.Equal(t, behaviour.KindKeepLane, recs[0].Behaviour.Kind)
	assert.Equal(t, start, recs[0].Behaviour.DecidedAt)

	require.True(t, recs[1].OK)
	assert.Equal(t, behaviour.KindChangeLeft, recs[1].Behaviour.Kind)
	assert.Equal(t, "lane-1", recs[1].Behaviour.TargetLineID)
	assert.Equal(t, start.Add(100*time.Millisecond), recs[1].Behaviour.DecidedAt)

	assert.False(t, recs[2].OK)
	assert.Nil(t, recs[2].Behaviour)
}

func TestRun_DefaultStrategyFromConfig(t *testing.T) {
	path := writeScenario(t, overtakeScenario())

	var out bytes.Buffer
	require.NoError(t, run(Config{ScenarioPath: path}, &out))
	assert.Len(t, decode(t, &out), 3)
}

func TestRun_CycleLinesOverride(t *testing.T) {
	sc := overtakeScenario()
	sc.Cycles = []Cycle{{
		Agents: []behaviour.Agent{car(1, 0, 3.5, 10)},
		Lines:  []behaviour.ReferenceLine{{ID: "ramp", Points: testutil.StraightPath(3.5, 0, 100, 5)}},
	}}
	path := writeScenario(t, sc)

	var out bytes.Buffer
	require.NoError(t, run(Config{ScenarioPath: path, Strategy: behaviour.NameCostBased}, &out))
	recs := decode(t, &out)
	require.Len(t, recs, 1)
	assert.Equal(t, "ramp", recs[0].Behaviour.TargetLineID)
}

func TestRun_EgoCurvature(t *testing.T) {
	sc := overtakeScenario()
	ego := car(1, 0, 0, 1)
	for i := 0; i < 3; i++ {
		a := 0.1 * float64(i)
		ego.Predicted = append(ego.Predicted, trajectory.TrajectoryPoint{
			PathPoint:    trajectory.PathPoint{X: 10 * math.Cos(a), Y: 10 * math.Sin(a)},
			RelativeTime: float64(i),
		})
	}
	sc.Cycles = []Cycle{{Agents: []behaviour.Agent{ego}}}
	path := writeScenario(t, sc)

	var out bytes.Buffer
	require.NoError(t, run(Config{ScenarioPath: path}, &out))
	recs := decode(t, &out)
	require.NotNil(t, recs[0].EgoKappa)
	assert.InDelta(t, 0.1, *recs[0].EgoKappa, 1e-3)
}

func TestRun_Errors(t *testing.T) {
	good := writeScenario(t, overtakeScenario())
	empty := writeScenario(t, Scenario{EgoID: 1})
	dup := overtakeScenario()
	dup.Cycles[1].Agents = append(dup.Cycles[1].Agents, car(2, 30, 0, 5))
	duplicated := writeScenario(t, dup)

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"no scenario", Config{}, "scenario is required"},
		{"missing file", Config{ScenarioPath: filepath.Join(t.TempDir(), "nope.json")}, "read scenario"},
		{"no cycles", Config{ScenarioPath: empty}, "no cycles"},
		{"duplicate agent", Config{ScenarioPath: duplicated}, "cycle 1: duplicate agent id 2"},
		{"unknown strategy", Config{ScenarioPath: good, Strategy: "teleport"}, "unknown behaviour strategy"},
		{"bad config", Config{ScenarioPath: good, ConfigPath: "planning.toml"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.cfg, &bytes.Buffer{})
			require.Error(t, err)
			if tt.want != "" {
				assert.Contains(t, err.Error(), tt.want)
			}
		})
	}
}

func TestEgoCurvature(t *testing.T) {
	_, err := egoCurvature(nil, 1e-9)
	assert.ErrorIs(t, err, errShortPrediction)

	stationary := trajectory.Trajectory{{RelativeTime: 0}, {RelativeTime: 1}, {RelativeTime: 2}}
	_, err = egoCurvature(stationary, 1e-9)
	assert.ErrorIs(t, err, trajectory.ErrZeroSpeed)

	unordered := trajectory.Trajectory{{RelativeTime: 1}, {RelativeTime: 0}, {RelativeTime: 2}}
	_, err = egoCurvature(unordered, 1e-9)
	assert.ErrorIs(t, err, trajectory.ErrUnordered)
}
