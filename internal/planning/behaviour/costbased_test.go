package behaviour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowLeadCycle is the ego in lane-0 stuck behind a slow (not stopped)
// car, with lane-1 clear. lane-1 is cheaper.
func slowLeadCycle() AgentSet {
	return agents(car(egoID, 0, 0, 10), car(2, 12, 0, 2))
}

func TestCostBased_CommitsAfterConsecutiveWins(t *testing.T) {
	t.Parallel()

	p, _ := testParams()
	p.LaneChangeCommitCycles = 3
	s := NewCostBased(p)
	lines := twoLanes()

	for cycle := 1; cycle <= 2; cycle++ {
		s.SetAgentSet(egoID, slowLeadCycle())
		var b Behaviour
		require.True(t, s.Execute(&b, lines))
		assert.Equal(t, 0, b.TargetLine, "cycle %d", cycle)
		assert.Equal(t, KindKeepLane, b.Kind, "cycle %d", cycle)
		assert.Equal(t, StatePending, s.State(), "cycle %d", cycle)
	}

	s.SetAgentSet(egoID, slowLeadCycle())
	var b Behaviour
	require.True(t, s.Execute(&b, lines))
	assert.Equal(t, 1, b.TargetLine)
	assert.Equal(t, "lane-1", b.TargetLineID)
	assert.Equal(t, KindChangeLeft, b.Kind)
	assert.Equal(t, StateCommitted, s.State())

	// Once the ego is in the new lane the change is complete.
	s.SetAgentSet(egoID, agents(car(egoID, 20, laneGap, 10), car(2, 14, 0, 2)))
	require.True(t, s.Execute(&b, lines))
	assert.Equal(t, 1, b.TargetLine)
	assert.Equal(t, KindKeepLane, b.Kind)
	assert.Equal(t, StateKeeping, s.State())
}

func TestCostBased_ImmediateCommit(t *testing.T) {
	t.Parallel()

	p, _ := testParams()
	p.LaneChangeCommitCycles = 1
	s := NewCostBased(p)

	s.SetAgentSet(egoID, slowLeadCycle())
	var b Behaviour
	require.True(t, s.Execute(&b, twoLanes()))
	assert.Equal(t, 1, b.TargetLine)
	assert.Equal(t, KindChangeLeft, b.Kind)
}

func TestCostBased_PendingResetsWhenPreferenceFlips(t *testing.T) {
	t.Parallel()

	p, _ := testParams()
	p.LaneChangeCommitCycles = 2
	s := NewCostBased(p)
	lines := twoLanes()
	clearRoad := agents(car(egoID, 0, 0, 10))

	steps := []struct {
		set      AgentSet
		wantLine int
		state    CommitState
	}{
		{slowLeadCycle(), 0, StatePending},
		{clearRoad, 0, StateKeeping},
		{slowLeadCycle(), 0, StatePending},
		{slowLeadCycle(), 1, StateCommitted},
	}
	for i, step := range steps {
		s.SetAgentSet(egoID, step.set)
		var b Behaviour
		require.True(t, s.Execute(&b, lines), "step %d", i)
		assert.Equal(t, step.wantLine, b.TargetLine, "step %d", i)
		assert.Equal(t, step.state, s.State(), "step %d", i)
	}
}

func TestCostBased_CommittedLineVanishes(t *testing.T) {
	t.Parallel()

	p, _ := testParams()
	p.LaneChangeCommitCycles = 1
	s := NewCostBased(p)

	s.SetAgentSet(egoID, slowLeadCycle())
	var b Behaviour
	require.True(t, s.Execute(&b, twoLanes()))
	require.Equal(t, "lane-1", b.TargetLineID)

	// lane-1 is no longer offered; fall back to the ego's own lane.
	require.True(t, s.Execute(&b, []ReferenceLine{lane("lane-0", 0)}))
	assert.Equal(t, "lane-0", b.TargetLineID)
	assert.Equal(t, KindKeepLane, b.Kind)
	assert.Equal(t, StateKeeping, s.State())
}

func TestCostBased_AllBlocked(t *testing.T) {
	t.Parallel()

	p, _ := testParams()
	s := NewCostBased(p)
	s.SetAgentSet(egoID, agents(car(egoID, 0, 0, 10), car(2, 8, 0, 0), car(3, 0, laneGap, 10)))

	b := Behaviour{Reason: "held"}
	assert.False(t, s.Execute(&b, twoLanes()))
	assert.Equal(t, "held", b.Reason)
}

func TestCostBased_ZeroWeightsKeepFirstLine(t *testing.T) {
	t.Parallel()

	p, _ := testParams()
	p.LateralCostWeight, p.GapCostWeight, p.SpeedCostWeight = 0, 0, 0
	p.LaneChangeCommitCycles = 1
	s := NewCostBased(p)
	s.SetAgentSet(egoID, slowLeadCycle())

	var b Behaviour
	require.True(t, s.Execute(&b, twoLanes()))
	assert.Equal(t, 0, b.TargetLine)
}

func TestCostBased_CostTerms(t *testing.T) {
	t.Parallel()

	p, _ := testParams()
	s := NewCostBased(p)
	s.SetAgentSet(egoID, slowLeadCycle())

	assessed := s.assessAll(p, twoLanes())
	// lane-0: gap 7.5m to a 2 m/s lead.
	assert.InDelta(t, 20/7.5+0.5*(13.9-2), s.cost(assessed[0]), 1e-9)
	// lane-1: only the lateral offset.
	assert.InDelta(t, laneGap, s.cost(assessed[1]), 1e-9)
}

func TestNewCostBased_ClampsCommitCycles(t *testing.T) {
	t.Parallel()

	s := NewCostBased(Params{LaneChangeCommitCycles: 0})
	assert.Equal(t, 1, s.params.LaneChangeCommitCycles)
	assert.Equal(t, StateKeeping, s.State())
}
