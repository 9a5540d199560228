package behaviour

import (
	"fmt"
	"math"
)

// NameLaneKeep is the registry name of LaneKeep.
const NameLaneKeep = "lane_keep"

// LaneKeep is a rule-based strategy. It stays on the line the ego
// occupies while that line is not obstructed, otherwise moves to the
// laterally nearest line with enough front and rear clearance.
//
// Before any SetAgentSet the snapshot is empty, so the first line with
// usable geometry is chosen.
type LaneKeep struct {
	snapshot
	params Params
}

// Verify at compile time that *LaneKeep implements Strategy.
var _ Strategy = (*LaneKeep)(nil)

// NewLaneKeep creates a LaneKeep strategy.
func NewLaneKeep(p Params) *LaneKeep {
	return &LaneKeep{params: p}
}

// Execute implements Strategy.
func (s *LaneKeep) Execute(b *Behaviour, lines []ReferenceLine) bool {
	if b == nil {
		opsf("lane_keep: Execute called with nil behaviour")
		return false
	}
	if len(lines) == 0 {
		diagf("lane_keep: no reference lines")
		return false
	}

	var chosen *assessment
	assessed := s.assessAll(s.params, lines)
	for i := range assessed {
		a := &assessed[i]
		if a.blocked {
			continue
		}
		if a.current {
			chosen = a
			break
		}
		if chosen == nil || lateralRank(a) < lateralRank(chosen) {
			chosen = a
		}
	}
	if chosen == nil {
		diagf("lane_keep: all %d reference lines blocked", len(lines))
		return false
	}

	reason := "nearest clear line"
	if chosen.current {
		reason = "current line clear"
	}
	*b = s.params.decide(*chosen, reason)
	diagf("lane_keep: %s line=%s speed=%.2f decision=%s (%s)",
		b.Kind, chosen.key(), b.TargetSpeed, b.DecisionID, b.Reason)
	return true
}

// lateralRank orders candidates by distance from the ego. With no ego
// every line ranks equally and list order decides.
func lateralRank(a *assessment) float64 {
	if !a.egoKnown {
		return 0
	}
	return math.Abs(a.ego.L)
}

// String implements fmt.Stringer.
func (s *LaneKeep) String() string {
	return fmt.Sprintf("%s(ego=%d agents=%d)", NameLaneKeep, s.egoID, len(s.agents))
}
