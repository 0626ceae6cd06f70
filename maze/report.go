package maze

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteBenchmarkReport renders a benchmark as a self-contained HTML page
// with one bar chart for path length and one for wall-clock time.
func WriteBenchmarkReport(w io.Writer, b *Benchmark) error {
	labels := make([]string, 0, len(b.Entries))
	steps := make([]opts.BarData, 0, len(b.Entries))
	times := make([]opts.BarData, 0, len(b.Entries))
	for _, e := range b.Entries {
		labels = append(labels, e.Label)
		steps = append(steps, opts.BarData{Value: e.MeanSteps})
		times = append(times, opts.BarData{Value: float64(e.MeanTotal) / float64(time.Millisecond)})
	}

	subtitle := fmt.Sprintf("mode=%s repeat=%d", b.Mode, b.Repeat)

	stepsBar := charts.NewBar()
	stepsBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Maze Benchmark", Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: "Path Length (steps)", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	stepsBar.SetXAxis(labels).AddSeries("mean steps", steps)

	timeBar := charts.NewBar()
	timeBar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "450px"}),
		charts.WithTitleOpts(opts.Title{Title: "Total Time (ms)", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	timeBar.SetXAxis(labels).AddSeries("mean ms", times)

	page := components.NewPage()
	page.AddCharts(stepsBar, timeBar)
	return page.Render(w)
}
