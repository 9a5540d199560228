// Command trajectory-resample evaluates a recorded trajectory on a fixed
// time grid and writes the result as JSON or CSV, optionally with PNG
// plots and an HTML chart page of the heading, curvature and speed
// profiles.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banshee-data/motion.planner/internal/config"
	"github.com/banshee-data/motion.planner/internal/planning/plots"
	"github.com/banshee-data/motion.planner/internal/planning/trajectory"
	"github.com/banshee-data/motion.planner/internal/units"
	"github.com/banshee-data/motion.planner/internal/version"
)

// Config holds the command-line options.
type Config struct {
	Input      string
	Output     string
	ConfigPath string
	Step       float64
	Format     string
	SpeedUnits string
	AngleUnits string
	Frame      string
	PlotDir    string
	HTMLPath   string
	Verbose    bool
	Version    bool
}

func main() {
	cfg := parseFlags()
	if cfg.Version {
		fmt.Println(version.String("trajectory-resample"))
		return
	}

	var err error
	if cfg.Output != "" {
		err = runToFile(cfg, cfg.Output)
	} else {
		err = run(cfg, os.Stdout)
	}
	if err != nil {
		log.Fatalf("trajectory-resample: %v", err)
	}
}

// runToFile runs into path, removing the file if the run fails.
func runToFile(cfg Config, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return run(cfg, f)
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.Input, "in", "", "Path to JSON trajectory (array of trajectory points)")
	flag.StringVar(&cfg.Output, "out", "", "Output file (default stdout)")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Planning config JSON (default: built-in defaults)")
	flag.Float64Var(&cfg.Step, "dt", 0.1, "Resampling step in seconds")
	flag.StringVar(&cfg.Format, "format", "json", "Output format: json, csv")
	flag.StringVar(&cfg.SpeedUnits, "speed-units", units.MPS, "Speed units for csv and plots: "+units.GetValidUnitsString())
	flag.StringVar(&cfg.AngleUnits, "angle-units", units.Radians, "Angle units for csv and plots: rad, deg")
	flag.StringVar(&cfg.Frame, "frame", "", "Re-express points in a frame offset by x,y,yaw (metres, radians)")
	flag.StringVar(&cfg.PlotDir, "plot-dir", "", "Write PNG profile plots to this directory")
	flag.StringVar(&cfg.HTMLPath, "html", "", "Write an HTML chart page to this path")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&cfg.Version, "version", false, "Print version and exit")

	flag.Parse()
	return cfg
}

func run(cfg Config, out io.Writer) error {
	if cfg.Input == "" {
		return fmt.Errorf("input trajectory is required (-in)")
	}
	if err := units.ParseUnits(cfg.SpeedUnits, cfg.AngleUnits); err != nil {
		return err
	}

	pc := config.EmptyPlanningConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadPlanningConfig(cfg.ConfigPath)
		if err != nil {
			return err
		}
		pc = loaded
	}
	interp := trajectory.NewInterpolator(pc.GetTimeEpsilon())

	tr, err := readTrajectory(cfg.Input)
	if err != nil {
		return err
	}
	if cfg.Frame != "" {
		pose, err := parseFrame(cfg.Frame)
		if err != nil {
			return err
		}
		tr = toFrame(tr, pose)
	}

	resampled, err := interp.Resample(tr, cfg.Step)
	if err != nil {
		return fmt.Errorf("resample %s: %w", cfg.Input, err)
	}
	if cfg.Verbose {
		log.Printf("resampled %d points over %.3fs into %d points (dt=%g eps=%g)",
			len(tr), tr.Duration(), len(resampled), cfg.Step, interp.Epsilon)
	}

	switch cfg.Format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resampled); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case "csv":
		if err := writeCSV(out, resampled, cfg.SpeedUnits, cfg.AngleUnits); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want json or csv)", cfg.Format)
	}

	series := plots.Profile(resampled, plots.Units{Speed: cfg.SpeedUnits, Angle: cfg.AngleUnits})
	title := strings.TrimSuffix(filepath.Base(cfg.Input), filepath.Ext(cfg.Input))

	if cfg.PlotDir != "" {
		paths, err := plots.SaveAll(series, title, cfg.PlotDir)
		if err != nil {
			return err
		}
		log.Printf("wrote %d plots to %s", len(paths), cfg.PlotDir)
	}
	if cfg.HTMLPath != "" {
		f, err := os.Create(cfg.HTMLPath)
		if err != nil {
			return fmt.Errorf("create html: %w", err)
		}
		defer f.Close()
		if err := plots.RenderHTML(f, title, series); err != nil {
			return err
		}
		log.Printf("wrote chart page to %s", cfg.HTMLPath)
	}
	return nil
}

func readTrajectory(path string) (trajectory.Trajectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trajectory: %w", err)
	}
	var tr trajectory.Trajectory
	if err := json.Unmarshal(data, &tr); err != nil {
		return nil, fmt.Errorf("parse trajectory %s: %w", path, err)
	}
	return tr, nil
}

// parseFrame reads "x,y,yaw" into a planar pose.
func parseFrame(s string) (trajectory.Pose, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return trajectory.Pose{}, fmt.Errorf("frame %q: want x,y,yaw", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return trajectory.Pose{}, fmt.Errorf("frame %q: %w", s, err)
		}
		v[i] = f
	}
	pose := trajectory.Pose{
		Position:    trajectory.Vec3{X: v[0], Y: v[1]},
		Orientation: trajectory.Quaternion{W: math.Cos(v[2] / 2), Z: math.Sin(v[2] / 2)},
	}
	if !trajectory.IsRigidTransform(trajectory.PoseMatrix(pose)) {
		return trajectory.Pose{}, fmt.Errorf("frame %q: not a rigid transform", s)
	}
	return pose, nil
}

// toFrame maps every point through pose. Headings rotate by the pose yaw.
func toFrame(tr trajectory.Trajectory, pose trajectory.Pose) trajectory.Trajectory {
	q := pose.Orientation
	yaw := 2 * math.Atan2(q.Z, q.W)
	out := make(trajectory.Trajectory, len(tr))
	for i, p := range tr {
		pp := &p.PathPoint
		v := trajectory.Transform(pose, trajectory.Vec3{X: pp.X, Y: pp.Y})
		pp.X, pp.Y = v.X, v.Y
		pp.Theta = trajectory.NormalizeAngle(pp.Theta + yaw)
		out[i] = p
	}
	return out
}

func writeCSV(w io.Writer, tr trajectory.Trajectory, speedUnits, angleUnits string) error {
	cw := csv.NewWriter(w)
	header := []string{"t", "x", "y", "s", "theta_" + angleUnits, "kappa", "dkappa",
		"v_" + speedUnits, "a_" + speedUnits + "_per_s", "jerk", "steer_" + angleUnits}
	if err := cw.Write(header); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, p := range tr {
		pp := p.PathPoint
		row := []string{
			f(p.RelativeTime), f(pp.X), f(pp.Y), f(pp.S),
			f(units.ConvertAngle(pp.Theta, angleUnits)), f(pp.Kappa), f(pp.DKappa),
			f(units.ConvertSpeed(p.Vel, speedUnits)), f(units.ConvertAcceleration(p.Acc, speedUnits)),
			f(p.Jerk), f(units.ConvertAngle(p.SteerAngle, angleUnits)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
