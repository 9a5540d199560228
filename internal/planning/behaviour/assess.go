package behaviour

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// stationarySpeed is the speed (m/s) below which a lead agent is treated
// as an obstruction rather than traffic to follow.
const stationarySpeed = 0.5

// assessment is one reference line evaluated against the snapshot.
type assessment struct {
	index    int
	line     ReferenceLine
	ego      Frenet
	egoKnown bool
	current  bool // ego sits inside this line's corridor

	frontGap float64
	lead     Agent
	hasLead  bool
	rearGap  float64
	yieldGap float64
	yielder  int

	blocked bool
	reason  string
}

// key identifies the line across cycles; lines without an ID fall back
// to their position in the candidate list.
func (a assessment) key() string {
	if a.line.ID != "" {
		return a.line.ID
	}
	return fmt.Sprintf("#%d", a.index)
}

func isStationary(a Agent) bool {
	return a.Intent == IntentStopped || math.Abs(a.Speed) < stationarySpeed
}

// assessAll evaluates every line. lines is only read.
func (s *snapshot) assessAll(p Params, lines []ReferenceLine) []assessment {
	out := make([]assessment, len(lines))
	for i, line := range lines {
		out[i] = s.assess(p, i, line)
		a := out[i]
		tracef("line %s: ego=(s=%.2f l=%.2f known=%t current=%t) front=%.2f rear=%.2f yield=%.2f blocked=%t %s",
			a.key(), a.ego.S, a.ego.L, a.egoKnown, a.current, a.frontGap, a.rearGap, a.yieldGap, a.blocked, a.reason)
	}
	return out
}

func (s *snapshot) assess(p Params, idx int, line ReferenceLine) assessment {
	a := assessment{
		index:    idx,
		line:     line,
		frontGap: math.Inf(1),
		rearGap:  math.Inf(1),
		yieldGap: math.Inf(1),
		yielder:  NoAgent,
	}

	if line.Length() == 0 {
		a.blocked = true
		a.reason = "degenerate geometry"
		return a
	}

	egoLength := 0.0
	if ego, ok := s.ego(); ok {
		egoLength = ego.Length
		if f, ok := Project(line, ego.Position()); ok {
			a.ego = f
			a.egoKnown = true
			a.current = math.Abs(f.L) <= p.CorridorHalfWidth
		}
	}

	s.others(func(o Agent) {
		f, ok := Project(line, o.Position())
		if !ok {
			return
		}
		lateral := math.Abs(f.L) - o.Width/2
		ds := f.S - a.ego.S
		clearance := (egoLength + o.Length) / 2

		if o.Intent == IntentCrossing {
			// Crossing agents matter while still approaching the corridor.
			if ds < 0 || lateral > 2*p.CorridorHalfWidth {
				return
			}
			gap := math.Max(0, ds-clearance)
			if gap <= p.YieldDistance && gap < a.yieldGap {
				a.yieldGap = gap
				a.yielder = o.ID
			}
			return
		}

		if lateral > p.CorridorHalfWidth {
			return
		}
		if ds >= 0 {
			if ds > p.LookaheadDistance {
				return
			}
			if gap := math.Max(0, ds-clearance); gap < a.frontGap {
				a.frontGap = gap
				a.lead = o
				a.hasLead = true
			}
			return
		}
		if gap := math.Max(0, -ds-clearance); gap < a.rearGap {
			a.rearGap = gap
		}
	})

	switch {
	case a.current:
		// Already in this lane: only a standing obstruction makes it infeasible.
		if a.hasLead && a.frontGap < p.MinFrontGap && isStationary(a.lead) {
			a.blocked = true
			a.reason = fmt.Sprintf("obstructed by stopped agent %d at %.1fm", a.lead.ID, a.frontGap)
		}
	case a.frontGap < p.MinFrontGap:
		a.blocked = true
		a.reason = fmt.Sprintf("front gap %.1fm < %.1fm", a.frontGap, p.MinFrontGap)
	case a.rearGap < p.MinRearGap:
		a.blocked = true
		a.reason = fmt.Sprintf("rear gap %.1fm < %.1fm", a.rearGap, p.MinRearGap)
	}
	return a
}

// targetSpeed is the cruise speed on a line after the speed limit and a
// close lead agent are taken into account.
func (p Params) targetSpeed(a assessment) float64 {
	v := p.DefaultSpeed
	if a.line.SpeedLimit > 0 {
		v = math.Min(v, a.line.SpeedLimit)
	}
	if a.hasLead && a.frontGap < 2*p.MinFrontGap {
		v = math.Min(v, math.Max(0, a.lead.Speed))
	}
	return v
}

// decide turns the chosen line into a Behaviour.
func (p Params) decide(a assessment, reason string) Behaviour {
	b := Behaviour{
		Kind:         KindKeepLane,
		TargetLine:   a.index,
		TargetLineID: a.line.ID,
		TargetSpeed:  p.targetSpeed(a),
		LeadAgentID:  NoAgent,
		DecisionID:   uuid.NewString(),
		DecidedAt:    p.clock().Now(),
		Reason:       reason,
	}
	if a.hasLead {
		b.LeadAgentID = a.lead.ID
	}

	if a.egoKnown && !a.current {
		// Ego to the right of the target line means moving left.
		if a.ego.L < 0 {
			b.Kind = KindChangeLeft
		} else {
			b.Kind = KindChangeRight
		}
	}

	if a.yielder != NoAgent {
		b.LeadAgentID = a.yielder
		if a.yieldGap <= p.StopDistance {
			b.Kind = KindStop
			b.TargetSpeed = 0
		} else {
			b.Kind = KindYield
			span := p.YieldDistance - p.StopDistance
			if span > 0 {
				b.TargetSpeed *= math.Min(1, (a.yieldGap-p.StopDistance)/span)
			}
		}
		b.Reason = fmt.Sprintf("%s; yielding to agent %d at %.1fm", reason, a.yielder, a.yieldGap)
	}
	return b
}
