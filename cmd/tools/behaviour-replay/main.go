// Command behaviour-replay feeds a recorded sequence of planning cycles
// through a behaviour strategy and prints one decision per cycle as
// JSON lines.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/banshee-data/motion.planner/internal/config"
	"github.com/banshee-data/motion.planner/internal/planning/behaviour"
	"github.com/banshee-data/motion.planner/internal/planning/trajectory"
	"github.com/banshee-data/motion.planner/internal/timeutil"
	"github.com/banshee-data/motion.planner/internal/version"
)

// Config holds the command-line options.
type Config struct {
	ScenarioPath string
	ConfigPath   string
	Strategy     string
	Verbose      bool
	Trace        bool
}

// Scenario is a recorded run: fixed reference lines and the agent set
// observed on each cycle.
type Scenario struct {
	EgoID          int                       `json:"ego_id"`
	Start          time.Time                 `json:"start"`
	CycleSeconds   float64                   `json:"cycle_seconds"`
	ReferenceLines []behaviour.ReferenceLine `json:"reference_lines"`
	Cycles         []Cycle                   `json:"cycles"`
}

// Cycle is one planning cycle's input. Lines, when set, replace the
// scenario's reference lines for that cycle only.
type Cycle struct {
	Agents []behaviour.Agent         `json:"agents"`
	Lines  []behaviour.ReferenceLine `json:"reference_lines,omitempty"`
}

// Record is one line of output.
type Record struct {
	Cycle     int                  `json:"cycle"`
	OK        bool                 `json:"ok"`
	Behaviour *behaviour.Behaviour `json:"behaviour,omitempty"`
	EgoKappa  *float64             `json:"ego_kappa,omitempty"`
}

func main() {
	cfg := Config{}
	flag.StringVar(&cfg.ScenarioPath, "scenario", "", "Path to scenario JSON")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Planning config JSON (default: built-in defaults)")
	flag.StringVar(&cfg.Strategy, "strategy", "", "Strategy name (default: from config)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Log per-cycle decisions to stderr")
	flag.BoolVar(&cfg.Trace, "trace", false, "Log per-line evaluation to stderr")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("behaviour-replay"))
		return
	}

	behaviour.SetLogWriters(os.Stderr, nil, nil)
	if cfg.Verbose || cfg.Trace {
		behaviour.SetLogWriters(os.Stderr, os.Stderr, nil)
	}
	if cfg.Trace {
		behaviour.SetLogWriters(os.Stderr, os.Stderr, os.Stderr)
	}

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("behaviour-replay: %v", err)
	}
}

func run(cfg Config, out io.Writer) error {
	if cfg.ScenarioPath == "" {
		return errors.New("scenario is required (-scenario)")
	}

	pc := config.EmptyPlanningConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadPlanningConfig(cfg.ConfigPath)
		if err != nil {
			return err
		}
		pc = loaded
	}
	name := cfg.Strategy
	if name == "" {
		name = pc.GetStrategy()
	}

	sc, err := loadScenario(cfg.ScenarioPath)
	if err != nil {
		return err
	}

	start := sc.Start
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}
	step := time.Duration(sc.CycleSeconds * float64(time.Second))
	if step <= 0 {
		step = 100 * time.Millisecond
	}
	clock := timeutil.NewMockClock(start)

	params := behaviour.ParamsFromConfig(pc)
	params.Clock = clock
	strategy, err := behaviour.NewRegistry().New(name, params)
	if err != nil {
		return err
	}

	if cfg.Verbose {
		src, _ := pc.GetChannel(config.ChannelActorList)
		log.Printf("replaying %d cycles of %s (recorded from %s) with %s",
			len(sc.Cycles), cfg.ScenarioPath, src, name)
	}

	enc := json.NewEncoder(out)
	for i, c := range sc.Cycles {
		set := make(behaviour.AgentSet, len(c.Agents))
		for _, a := range c.Agents {
			set[a.ID] = a
		}
		strategy.SetAgentSet(sc.EgoID, set)

		lines := sc.ReferenceLines
		if c.Lines != nil {
			lines = c.Lines
		}

		rec := Record{Cycle: i}
		var b behaviour.Behaviour
		if strategy.Execute(&b, lines) {
			rec.OK = true
			rec.Behaviour = &b
		}
		if ego, ok := set[sc.EgoID]; ok {
			if k, err := egoCurvature(ego.Predicted, pc.GetSpeedEpsilon()); err == nil {
				rec.EgoKappa = &k
			}
		}
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("write cycle %d: %w", i, err)
		}
		clock.Advance(step)
	}
	return nil
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(sc.Cycles) == 0 {
		return nil, fmt.Errorf("scenario %s has no cycles", path)
	}
	for i, c := range sc.Cycles {
		seen := make(map[int]bool, len(c.Agents))
		for _, a := range c.Agents {
			if seen[a.ID] {
				return nil, fmt.Errorf("scenario %s cycle %d: duplicate agent id %d", path, i, a.ID)
			}
			seen[a.ID] = true
		}
	}
	return &sc, nil
}

var errShortPrediction = errors.New("prediction needs three points")

// egoCurvature estimates the curvature at the second predicted point by
// finite differences over the first three.
func egoCurvature(pred trajectory.Trajectory, speedEps float64) (float64, error) {
	if len(pred) < 3 {
		return 0, errShortPrediction
	}
	p0, p1, p2 := pred[0], pred[1], pred[2]
	t0, t1, t2 := p0.RelativeTime, p1.RelativeTime, p2.RelativeTime
	if t1 <= t0 || t2 <= t1 {
		return 0, trajectory.ErrUnordered
	}

	vx0 := (p1.PathPoint.X - p0.PathPoint.X) / (t1 - t0)
	vy0 := (p1.PathPoint.Y - p0.PathPoint.Y) / (t1 - t0)
	vx1 := (p2.PathPoint.X - p1.PathPoint.X) / (t2 - t1)
	vy1 := (p2.PathPoint.Y - p1.PathPoint.Y) / (t2 - t1)
	half := (t2 - t0) / 2

	dx := (p2.PathPoint.X - p0.PathPoint.X) / (t2 - t0)
	dy := (p2.PathPoint.Y - p0.PathPoint.Y) / (t2 - t0)
	return trajectory.CheckedCurvature(dx, dy, (vx1-vx0)/half, (vy1-vy0)/half, speedEps)
}
