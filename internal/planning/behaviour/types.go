package behaviour

import (
	"time"

	"github.com/banshee-data/motion.planner/internal/planning/trajectory"
	"gonum.org/v1/gonum/spatial/r2"
)

// Intent is the predicted manoeuvre of a tracked agent.
type Intent string

const (
	IntentUnknown     Intent = ""
	IntentKeepLane    Intent = "keep_lane"
	IntentChangeLeft  Intent = "change_left"
	IntentChangeRight Intent = "change_right"
	IntentCrossing    Intent = "crossing" // e.g. pedestrian or cross traffic
	IntentStopped     Intent = "stopped"
)

// Agent is one tracked entity as delivered by perception. The planner
// only reads it.
type Agent struct {
	ID      int     `json:"id"`
	X       float64 `json:"x"`       // m, world frame
	Y       float64 `json:"y"`       // m, world frame
	Heading float64 `json:"heading"` // rad
	Speed   float64 `json:"speed"`   // m/s
	Acc     float64 `json:"acc"`     // m/s²
	Length  float64 `json:"length"`  // m
	Width   float64 `json:"width"`   // m
	Intent  Intent  `json:"intent,omitempty"`

	Predicted trajectory.Trajectory `json:"predicted,omitempty"`
}

// Position returns the agent's planar position.
func (a Agent) Position() r2.Vec {
	return r2.Vec{X: a.X, Y: a.Y}
}

// AgentSet maps agent id, ego included, to its state.
type AgentSet map[int]Agent

// ReferenceLine is one candidate corridor, ordered along travel.
type ReferenceLine struct {
	ID         string                 `json:"id"`
	Points     []trajectory.PathPoint `json:"points"`
	SpeedLimit float64                `json:"speed_limit,omitempty"` // m/s, 0 = none
}

// Kind is the high-level driving intent chosen for a cycle.
type Kind string

const (
	KindKeepLane    Kind = "keep_lane"
	KindChangeLeft  Kind = "change_left"
	KindChangeRight Kind = "change_right"
	KindYield       Kind = "yield"
	KindStop        Kind = "stop"
)

// NoAgent marks an absent agent reference in a Behaviour.
const NoAgent = -1

// Behaviour is the output of Execute. Only a successful Execute writes it.
type Behaviour struct {
	Kind         Kind      `json:"kind"`
	TargetLine   int       `json:"target_line"` // index into the reference lines passed to Execute
	TargetLineID string    `json:"target_line_id"`
	TargetSpeed  float64   `json:"target_speed"` // m/s
	LeadAgentID  int       `json:"lead_agent_id"`
	DecisionID   string    `json:"decision_id"`
	DecidedAt    time.Time `json:"decided_at"`
	Reason       string    `json:"reason,omitempty"`
}
