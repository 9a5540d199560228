package behaviour

import (
	"time"

	"github.com/banshee-data/motion.planner/internal/testutil"
	"github.com/banshee-data/motion.planner/internal/timeutil"
)

const (
	egoID    = 1
	laneGap  = 3.5
	carLen   = 4.5
	carWidth = 2.0
)

var testEpoch = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func testParams() (Params, *timeutil.MockClock) {
	clock := timeutil.NewMockClock(testEpoch)
	p := DefaultParams()
	p.Clock = clock
	return p, clock
}

func car(id int, x, y, speed float64) Agent {
	return Agent{ID: id, X: x, Y: y, Speed: speed, Length: carLen, Width: carWidth, Intent: IntentKeepLane}
}

func pedestrian(id int, x, y float64) Agent {
	return Agent{ID: id, X: x, Y: y, Speed: 1.2, Heading: 1.57, Length: 0.5, Width: 0.5, Intent: IntentCrossing}
}

// lane returns a straight line parallel to x at the given y.
func lane(id string, y float64) ReferenceLine {
	return ReferenceLine{ID: id, Points: testutil.StraightPath(y, -50, 150, 21)}
}

// twoLanes returns the ego lane (y=0) and the lane to its left.
func twoLanes() []ReferenceLine {
	return []ReferenceLine{lane("lane-0", 0), lane("lane-1", laneGap)}
}

func agents(as ...Agent) AgentSet {
	set := make(AgentSet, len(as))
	for _, a := range as {
		set[a.ID] = a
	}
	return set
}
