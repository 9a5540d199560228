package behaviour

import (
	"github.com/banshee-data/motion.planner/internal/config"
	"github.com/banshee-data/motion.planner/internal/timeutil"
)

// Params holds the tunables shared by the built-in strategies.
type Params struct {
	MinFrontGap       float64 // Free space required ahead on a target line (m)
	MinRearGap        float64 // Free space required behind on a target line (m)
	CorridorHalfWidth float64 // Lateral half-width of a line's corridor (m)
	LookaheadDistance float64 // Agents further ahead are ignored (m)
	YieldDistance     float64 // Crossing agents within this range trigger a yield (m)
	StopDistance      float64 // Crossing agents within this range force a stop (m)
	DefaultSpeed      float64 // Cruise speed when no limit or lead applies (m/s)

	// CostBased only
	LaneChangeCommitCycles int     // Consecutive cycles a new line must win before switching
	LateralCostWeight      float64 // Weight on |lateral offset| (per m)
	GapCostWeight          float64 // Weight on 1/front gap
	SpeedCostWeight        float64 // Weight on speed shortfall (per m/s)

	// Clock stamps decisions. Nil uses the wall clock.
	Clock timeutil.Clock
}

// DefaultParams returns parameters loaded from the canonical defaults
// file. Panics if the file cannot be found; intended for tests and tools.
func DefaultParams() Params {
	return ParamsFromConfig(config.MustLoadDefaultConfig())
}

// ParamsFromConfig builds Params from a loaded PlanningConfig.
func ParamsFromConfig(cfg *config.PlanningConfig) Params {
	return Params{
		MinFrontGap:            cfg.GetMinFrontGap(),
		MinRearGap:             cfg.GetMinRearGap(),
		CorridorHalfWidth:      cfg.GetCorridorHalfWidth(),
		LookaheadDistance:      cfg.GetLookaheadDistance(),
		YieldDistance:          cfg.GetYieldDistance(),
		StopDistance:           cfg.GetStopDistance(),
		DefaultSpeed:           cfg.GetDefaultTargetSpeed(),
		LaneChangeCommitCycles: cfg.GetLaneChangeCommitCycles(),
		LateralCostWeight:      cfg.GetLateralCostWeight(),
		GapCostWeight:          cfg.GetGapCostWeight(),
		SpeedCostWeight:        cfg.GetSpeedCostWeight(),
	}
}

func (p Params) clock() timeutil.Clock {
	if p.Clock == nil {
		return timeutil.RealClock{}
	}
	return p.Clock
}
