package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical planning defaults file.
const DefaultConfigPath = "config/planning.defaults.json"

// Logical transport channel names. The addresses behind them belong to
// the transport layer and are carried here only so it can be wired from
// one file.
const (
	ChannelEgoVehicleStatus     = "ego_vehicle_status"
	ChannelTrafficLights        = "traffic_lights"
	ChannelActorList            = "actor_list"
	ChannelObjects              = "objects"
	ChannelPublishedTrajectory  = "published_trajectory"
	ChannelEgoVehicleInfo       = "ego_vehicle_info"
	ChannelEgoVehicleOdometry   = "ego_vehicle_odometry"
	ChannelVisualizedTrajectory = "visualized_trajectory"
	ChannelInitialPose          = "initial_pose"
	ChannelGoalPose             = "goal_pose"
	ChannelTrafficLightsInfo    = "traffic_lights_info"
	ServiceRoute                = "route"
	ServiceActorWaypoint        = "actor_waypoint"
	ServiceEgoWaypoint          = "ego_waypoint"
)

// DefaultChannels maps logical channel names to the simulator bridge
// topic and service addresses.
func DefaultChannels() map[string]string {
	return map[string]string{
		ChannelEgoVehicleStatus:     "/carla/ego_vehicle/vehicle_status",
		ChannelTrafficLights:        "/carla/traffic_lights",
		ChannelActorList:            "/carla/actor_list",
		ChannelObjects:              "/carla/objects",
		ChannelPublishedTrajectory:  "/published_trajectory",
		ChannelEgoVehicleInfo:       "/carla/ego_vehicle/vehicle_info",
		ChannelEgoVehicleOdometry:   "/carla/ego_vehicle/odometry",
		ChannelVisualizedTrajectory: "/visualized_trajectory",
		ChannelInitialPose:          "/initialpose",
		ChannelGoalPose:             "/move_base_simple/goal",
		ChannelTrafficLightsInfo:    "/carla/traffic_lights_infos",
		ServiceRoute:                "/carla/ego_vehicle/get_route",
		ServiceActorWaypoint:        "/carla_waypoint_publisher/ego_vehicle/get_actor_waypoint",
		ServiceEgoWaypoint:          "/carla_waypoint_publisher/ego_vehicle/get_waypoint",
	}
}

// PlanningConfig is the root planning configuration. Every field is
// optional; the Get* accessors supply defaults for missing values, so a
// partial file is safe.
type PlanningConfig struct {
	// Sampler params
	TimeEpsilon  *float64 `json:"time_epsilon,omitempty"`  // seconds
	SpeedEpsilon *float64 `json:"speed_epsilon,omitempty"` // derivative units

	// Behaviour params
	Strategy               *string  `json:"strategy,omitempty"`
	MinFrontGap            *float64 `json:"min_front_gap,omitempty"`        // m
	MinRearGap             *float64 `json:"min_rear_gap,omitempty"`         // m
	CorridorHalfWidth      *float64 `json:"corridor_half_width,omitempty"`  // m
	LookaheadDistance      *float64 `json:"lookahead_distance,omitempty"`   // m
	YieldDistance          *float64 `json:"yield_distance,omitempty"`       // m
	StopDistance           *float64 `json:"stop_distance,omitempty"`        // m
	DefaultTargetSpeed     *float64 `json:"default_target_speed,omitempty"` // m/s
	LaneChangeCommitCycles *int     `json:"lane_change_commit_cycles,omitempty"`
	LateralCostWeight      *float64 `json:"lateral_cost_weight,omitempty"`
	GapCostWeight          *float64 `json:"gap_cost_weight,omitempty"`
	SpeedCostWeight        *float64 `json:"speed_cost_weight,omitempty"`

	// Transport wiring, logical name -> address. Merged over DefaultChannels.
	Channels map[string]string `json:"channels,omitempty"`
}

// EmptyPlanningConfig returns a PlanningConfig with every field unset.
func EmptyPlanningConfig() *PlanningConfig {
	return &PlanningConfig{}
}

// LoadPlanningConfig loads a PlanningConfig from a JSON file.
// The file must have a .json extension and be under 1MB.
func LoadPlanningConfig(path string) (*PlanningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPlanningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching the current
// directory and its parents up to the repository root.
// Panics if the file cannot be loaded; intended for tests and tools.
func MustLoadDefaultConfig() *PlanningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from internal/planning/behaviour/
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadPlanningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run from repository root")
}

// Validate checks that set values are in range.
func (c *PlanningConfig) Validate() error {
	if c.TimeEpsilon != nil && *c.TimeEpsilon <= 0 {
		return fmt.Errorf("time_epsilon must be positive, got %g", *c.TimeEpsilon)
	}
	if c.SpeedEpsilon != nil && *c.SpeedEpsilon <= 0 {
		return fmt.Errorf("speed_epsilon must be positive, got %g", *c.SpeedEpsilon)
	}
	if c.Strategy != nil && *c.Strategy == "" {
		return fmt.Errorf("strategy must not be empty")
	}

	nonNegative := map[string]*float64{
		"min_front_gap":        c.MinFrontGap,
		"min_rear_gap":         c.MinRearGap,
		"lookahead_distance":   c.LookaheadDistance,
		"yield_distance":       c.YieldDistance,
		"stop_distance":        c.StopDistance,
		"default_target_speed": c.DefaultTargetSpeed,
		"lateral_cost_weight":  c.LateralCostWeight,
		"gap_cost_weight":      c.GapCostWeight,
		"speed_cost_weight":    c.SpeedCostWeight,
	}
	for name, v := range nonNegative {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must be non-negative, got %g", name, *v)
		}
	}

	if c.CorridorHalfWidth != nil && *c.CorridorHalfWidth <= 0 {
		return fmt.Errorf("corridor_half_width must be positive, got %g", *c.CorridorHalfWidth)
	}
	if c.LaneChangeCommitCycles != nil && *c.LaneChangeCommitCycles < 1 {
		return fmt.Errorf("lane_change_commit_cycles must be at least 1, got %d", *c.LaneChangeCommitCycles)
	}
	if c.StopDistance != nil && c.YieldDistance != nil && *c.StopDistance > *c.YieldDistance {
		return fmt.Errorf("stop_distance %g exceeds yield_distance %g", *c.StopDistance, *c.YieldDistance)
	}
	for name, addr := range c.Channels {
		if addr == "" {
			return fmt.Errorf("channel %q has empty address", name)
		}
	}

	return nil
}

// GetTimeEpsilon returns the time_epsilon value or the default.
func (c *PlanningConfig) GetTimeEpsilon() float64 {
	if c.TimeEpsilon == nil {
		return 1e-6
	}
	return *c.TimeEpsilon
}

// GetSpeedEpsilon returns the speed_epsilon value or the default.
func (c *PlanningConfig) GetSpeedEpsilon() float64 {
	if c.SpeedEpsilon == nil {
		return 1e-9
	}
	return *c.SpeedEpsilon
}

// GetStrategy returns the strategy name or the default.
func (c *PlanningConfig) GetStrategy() string {
	if c.Strategy == nil {
		return "lane_keep"
	}
	return *c.Strategy
}

// GetMinFrontGap returns the min_front_gap value or the default.
func (c *PlanningConfig) GetMinFrontGap() float64 {
	if c.MinFrontGap == nil {
		return 8.0
	}
	return *c.MinFrontGap
}

// GetMinRearGap returns the min_rear_gap value or the default.
func (c *PlanningConfig) GetMinRearGap() float64 {
	if c.MinRearGap == nil {
		return 5.0
	}
	return *c.MinRearGap
}

// GetCorridorHalfWidth returns the corridor_half_width value or the default.
func (c *PlanningConfig) GetCorridorHalfWidth() float64 {
	if c.CorridorHalfWidth == nil {
		return 1.75
	}
	return *c.CorridorHalfWidth
}

// GetLookaheadDistance returns the lookahead_distance value or the default.
func (c *PlanningConfig) GetLookaheadDistance() float64 {
	if c.LookaheadDistance == nil {
		return 60.0
	}
	return *c.LookaheadDistance
}

// GetYieldDistance returns the yield_distance value or the default.
func (c *PlanningConfig) GetYieldDistance() float64 {
	if c.YieldDistance == nil {
		return 30.0
	}
	return *c.YieldDistance
}

// GetStopDistance returns the stop_distance value or the default.
func (c *PlanningConfig) GetStopDistance() float64 {
	if c.StopDistance == nil {
		return 10.0
	}
	return *c.StopDistance
}

// GetDefaultTargetSpeed returns the default_target_speed value or the default.
func (c *PlanningConfig) GetDefaultTargetSpeed() float64 {
	if c.DefaultTargetSpeed == nil {
		return 13.9 // ~50 km/h
	}
	return *c.DefaultTargetSpeed
}

// GetLaneChangeCommitCycles returns the lane_change_commit_cycles value or the default.
func (c *PlanningConfig) GetLaneChangeCommitCycles() int {
	if c.LaneChangeCommitCycles == nil {
		return 3
	}
	return *c.LaneChangeCommitCycles
}

// GetLateralCostWeight returns the lateral_cost_weight value or the default.
func (c *PlanningConfig) GetLateralCostWeight() float64 {
	if c.LateralCostWeight == nil {
		return 1.0
	}
	return *c.LateralCostWeight
}

// GetGapCostWeight returns the gap_cost_weight value or the default.
func (c *PlanningConfig) GetGapCostWeight() float64 {
	if c.GapCostWeight == nil {
		return 20.0
	}
	return *c.GapCostWeight
}

// GetSpeedCostWeight returns the speed_cost_weight value or the default.
func (c *PlanningConfig) GetSpeedCostWeight() float64 {
	if c.SpeedCostWeight == nil {
		return 0.5
	}
	return *c.SpeedCostWeight
}

// GetChannels returns DefaultChannels with any configured overrides applied.
func (c *PlanningConfig) GetChannels() map[string]string {
	out := DefaultChannels()
	for name, addr := range c.Channels {
		out[name] = addr
	}
	return out
}

// GetChannel returns the address for one logical channel.
func (c *PlanningConfig) GetChannel(name string) (string, bool) {
	addr, ok := c.GetChannels()[name]
	return addr, ok
}
