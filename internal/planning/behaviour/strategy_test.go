package behaviour

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// forEachStrategy runs fn against a fresh instance of every built-in strategy.
func forEachStrategy(t *testing.T, fn func(t *testing.T, s Strategy)) {
	t.Helper()
	reg := NewRegistry()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			p, _ := testParams()
			s, err := reg.New(name, p)
			require.NoError(t, err)
			fn(t, s)
		})
	}
}

func TestStrategy_SingleEmptyLineIsChosen(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		s.SetAgentSet(egoID, agents(car(egoID, 0, 0, 10)))

		line := lane("only", 0)
		var b Behaviour
		require.True(t, s.Execute(&b, []ReferenceLine{line}))

		assert.Equal(t, 0, b.TargetLine)
		assert.Equal(t, "only", b.TargetLineID)
		assert.Equal(t, KindKeepLane, b.Kind)
		assert.Equal(t, NoAgent, b.LeadAgentID)
		assert.Equal(t, testEpoch, b.DecidedAt)
		_, err := uuid.Parse(b.DecisionID)
		assert.NoError(t, err)
	})
}

func TestStrategy_NoLinesReturnsFalse(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		s.SetAgentSet(egoID, agents(car(egoID, 0, 0, 10)))

		prior := Behaviour{Kind: KindStop, TargetLine: 7, Reason: "prior"}
		b := prior
		assert.False(t, s.Execute(&b, nil))
		assert.False(t, s.Execute(&b, []ReferenceLine{}))
		assert.Equal(t, prior, b, "behaviour must be untouched on failure")
	})
}

func TestStrategy_ExecuteBeforeSetAgentSet(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		var b Behaviour
		require.True(t, s.Execute(&b, twoLanes()))
		assert.Equal(t, 0, b.TargetLine, "empty snapshot picks the first usable line")
		assert.Equal(t, KindKeepLane, b.Kind)
	})
}

func TestStrategy_NilBehaviour(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		assert.False(t, s.Execute(nil, twoLanes()))
	})
}

func TestStrategy_SetAgentSetReplacesSnapshot(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		lines := []ReferenceLine{lane("lane-0", 0)}
		var b Behaviour

		// A stopped car right ahead obstructs the only lane.
		s.SetAgentSet(egoID, agents(car(egoID, 0, 0, 10), car(2, 8, 0, 0)))
		assert.False(t, s.Execute(&b, lines))

		// The next cycle no longer has it; nothing from the old set lingers.
		s.SetAgentSet(egoID, agents(car(egoID, 0, 0, 10)))
		assert.True(t, s.Execute(&b, lines))
	})
}

func TestStrategy_SnapshotIsCopied(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		set := agents(car(egoID, 0, 0, 10))
		s.SetAgentSet(egoID, set)

		// Mutating the caller's map after the call must not reach the strategy.
		set[2] = car(2, 8, 0, 0)

		var b Behaviour
		assert.True(t, s.Execute(&b, []ReferenceLine{lane("lane-0", 0)}))
	})
}

func TestStrategy_ReferenceLinesAreReadOnly(t *testing.T) {
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		s.SetAgentSet(egoID, agents(
			car(egoID, 0, 0, 10),
			car(2, 8, 0, 0),
			car(3, 40, laneGap, 12),
			pedestrian(4, 25, 5),
		))

		lines := twoLanes()
		before := []ReferenceLine{lane("lane-0", 0), lane("lane-1", laneGap)}

		var b Behaviour
		s.Execute(&b, lines)
		if diff := cmp.Diff(before, lines); diff != "" {
			t.Errorf("Execute modified reference lines (-before +after):\n%s", diff)
		}
	})
}
