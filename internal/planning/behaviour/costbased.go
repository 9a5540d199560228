package behaviour

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// NameCostBased is the registry name of CostBased.
const NameCostBased = "cost_based"

// CommitState is the lane-change progress of a CostBased strategy.
type CommitState string

const (
	StateKeeping   CommitState = "keeping"   // following the line the ego is on
	StatePending   CommitState = "pending"   // a better line is winning but not yet committed
	StateCommitted CommitState = "committed" // moving to a newly committed line
)

// CostBased scores every clear line by lateral offset, closeness of the
// lead agent and speed shortfall, and switches to a cheaper line only
// after it has won LaneChangeCommitCycles consecutive cycles.
//
// Before any SetAgentSet the snapshot is empty and all lines cost the
// same, so the first line with usable geometry is chosen.
type CostBased struct {
	snapshot
	params Params

	state        CommitState
	committed    string // key of the line being followed
	pending      string
	pendingCount int
}

// Verify at compile time that *CostBased implements Strategy.
var _ Strategy = (*CostBased)(nil)

// NewCostBased creates a CostBased strategy.
func NewCostBased(p Params) *CostBased {
	if p.LaneChangeCommitCycles < 1 {
		p.LaneChangeCommitCycles = 1
	}
	return &CostBased{params: p, state: StateKeeping}
}

// State returns the current lane-change state.
func (s *CostBased) State() CommitState {
	return s.state
}

// cost is the weighted sum of the line's penalty terms.
func (s *CostBased) cost(a assessment) float64 {
	lateral := 0.0
	if a.egoKnown {
		lateral = math.Abs(a.ego.L)
	}
	gap := 0.0
	if !math.IsInf(a.frontGap, 1) {
		gap = 1 / math.Max(a.frontGap, 1)
	}
	shortfall := math.Max(0, s.params.DefaultSpeed-s.params.targetSpeed(a))

	weights := []float64{s.params.LateralCostWeight, s.params.GapCostWeight, s.params.SpeedCostWeight}
	terms := []float64{lateral, gap, shortfall}
	return floats.Dot(weights, terms)
}

// Execute implements Strategy.
func (s *CostBased) Execute(b *Behaviour, lines []ReferenceLine) bool {
	if b == nil {
		opsf("cost_based: Execute called with nil behaviour")
		return false
	}
	if len(lines) == 0 {
		diagf("cost_based: no reference lines")
		return false
	}

	var feasible []assessment
	for _, a := range s.assessAll(s.params, lines) {
		if !a.blocked {
			feasible = append(feasible, a)
		}
	}
	if len(feasible) == 0 {
		s.pending, s.pendingCount = "", 0
		diagf("cost_based: all %d reference lines blocked", len(lines))
		return false
	}

	costs := make([]float64, len(feasible))
	for i, a := range feasible {
		costs[i] = s.cost(a)
		tracef("cost_based: line %s cost=%.3f", a.key(), costs[i])
	}
	best := feasible[floats.MinIdx(costs)]

	committed, ok := find(feasible, s.committed)
	if !ok {
		// First cycle, or the followed line vanished or closed: take the
		// ego's own line if clear, else the cheapest.
		committed = best
		for _, a := range feasible {
			if a.current {
				committed = a
				break
			}
		}
		s.committed = committed.key()
		s.pending, s.pendingCount = "", 0
	}

	if best.key() == committed.key() {
		s.pending, s.pendingCount = "", 0
	} else {
		if s.pending == best.key() {
			s.pendingCount++
		} else {
			s.pending, s.pendingCount = best.key(), 1
		}
		if s.pendingCount >= s.params.LaneChangeCommitCycles {
			committed = best
			s.committed = best.key()
			s.pending, s.pendingCount = "", 0
		}
	}

	switch {
	case s.pending != "":
		s.state = StatePending
	case committed.current || !committed.egoKnown:
		s.state = StateKeeping
	default:
		s.state = StateCommitted
	}

	*b = s.params.decide(committed, fmt.Sprintf("%s cost=%.3f", s.state, s.cost(committed)))
	diagf("cost_based: %s line=%s state=%s pending=%q(%d) decision=%s",
		b.Kind, committed.key(), s.state, s.pending, s.pendingCount, b.DecisionID)
	return true
}

func find(as []assessment, key string) (assessment, bool) {
	if key == "" {
		return assessment{}, false
	}
	for _, a := range as {
		if a.key() == key {
			return a, true
		}
	}
	return assessment{}, false
}
