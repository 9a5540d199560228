package plots

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var lineColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// SavePNG writes s as a line plot to path.
func SavePNG(s Series, title, path string) error {
	if len(s.T) != len(s.V) {
		return fmt.Errorf("series %s: %d times but %d values", s.Name, len(s.T), len(s.V))
	}
	if len(s.T) == 0 {
		return fmt.Errorf("series %s: no samples", s.Name)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = s.Label()
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(s.T))
	for i := range s.T {
		pts[i] = plotter.XY{X: s.T[i], Y: s.V[i]}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("series %s: %w", s.Name, err)
	}
	line.Color = lineColor
	line.Width = vg.Points(1)
	p.Add(line)

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// SaveAll writes one PNG per series into dir, creating it if needed,
// and returns the file paths in series order.
func SaveAll(series []Series, title, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create plot directory: %w", err)
	}
	paths := make([]string, 0, len(series))
	for _, s := range series {
		path := filepath.Join(dir, s.Name+".png")
		if err := SavePNG(s, fmt.Sprintf("%s - %s", title, s.Name), path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
