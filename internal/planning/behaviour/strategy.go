package behaviour

import "maps"

// Strategy is the behaviour-selection contract every algorithm implements.
type Strategy interface {
	// SetAgentSet stores the agent snapshot for the next Execute call.
	// It replaces any earlier snapshot; nothing is merged.
	SetAgentSet(egoID int, agents AgentSet)

	// Execute selects a behaviour against the latest snapshot and writes
	// it to b. It returns false when no reference line is feasible, in
	// which case b is left untouched and the caller should hold its prior
	// behaviour or fall back. lines is never modified.
	Execute(b *Behaviour, lines []ReferenceLine) bool
}

// snapshot is the per-cycle agent state shared by all strategies.
// Before the first SetAgentSet it is empty: no ego and no obstacles.
type snapshot struct {
	egoID  int
	agents AgentSet
}

// SetAgentSet implements Strategy.
func (s *snapshot) SetAgentSet(egoID int, agents AgentSet) {
	s.egoID = egoID
	s.agents = maps.Clone(agents)
}

// ego returns the ego agent if the snapshot has one.
func (s *snapshot) ego() (Agent, bool) {
	a, ok := s.agents[s.egoID]
	return a, ok
}

// others calls fn for every non-ego agent.
func (s *snapshot) others(fn func(Agent)) {
	for id, a := range s.agents {
		if id == s.egoID {
			continue
		}
		fn(a)
	}
}
