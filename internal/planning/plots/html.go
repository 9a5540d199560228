package plots

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// AssetsHost is where the rendered page loads echarts from.
var AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// RenderHTML writes a page with one line chart per series to w.
func RenderHTML(w io.Writer, title string, series []Series) error {
	page := components.NewPage()
	page.SetAssetsHost(AssetsHost)

	for _, s := range series {
		if len(s.T) != len(s.V) {
			return fmt.Errorf("series %s: %d times but %d values", s.Name, len(s.T), len(s.V))
		}
		x := make([]string, len(s.T))
		y := make([]opts.LineData, len(s.V))
		for i := range s.T {
			x[i] = strconv.FormatFloat(s.T[i], 'f', 3, 64)
			y[i] = opts.LineData{Value: s.V[i]}
		}

		line := charts.NewLine()
		line.SetGlobalOptions(
			charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "360px", AssetsHost: AssetsHost}),
			charts.WithTitleOpts(opts.Title{Title: s.Label(), Subtitle: title}),
			charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
			charts.WithXAxisOpts(opts.XAxis{Name: "t (s)", NameLocation: "middle", NameGap: 25}),
			charts.WithYAxisOpts(opts.YAxis{Name: s.Unit}),
		)
		line.SetXAxis(x).AddSeries(s.Name, y)
		page.AddCharts(line)
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render %s: %w", title, err)
	}
	return nil
}
