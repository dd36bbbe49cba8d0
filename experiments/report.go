package experiments

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"tictactoe/experiments/metrics"
	"tictactoe/meta"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/muesli/termenv"
)

// RenderBars prints one "episodes | rate | ####" line per checkpoint.
// Colors are dropped when w is not a terminal.
func RenderBars(w io.Writer, checkpoints []metrics.Checkpoint) error {
	out := termenv.NewOutput(w)
	if _, err := fmt.Fprintln(w, "--- Draw Rate vs. Training Episodes ---"); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	for _, c := range checkpoints {
		drawRate := c.DrawRate()
		bar := out.String(strings.Repeat("#", int(drawRate*meta.BAR_WIDTH))).Foreground(out.Color(barColor(drawRate)))
		if _, err := fmt.Fprintf(w, "%5d episodes | %.2f | %s\n", c.Episodes, drawRate, bar); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// ANSI colors: green once the learner mostly holds the draw, red while it mostly loses
func barColor(drawRate float64) string {
	switch {
	case drawRate >= 0.8:
		return "2"
	case drawRate >= 0.5:
		return "3"
	default:
		return "1"
	}
}

// RenderChart writes an HTML line chart of the draw rate against training episodes.
func RenderChart(w io.Writer, checkpoints []metrics.Checkpoint) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Draw rate vs. training episodes",
			Subtitle: "greedy learner (X) against minimax (O)",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "episodes"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "draw rate", Min: 0, Max: 1}),
	)

	episodes := make([]string, 0, len(checkpoints))
	drawRates := make([]opts.LineData, 0, len(checkpoints))
	tableSizes := make([]opts.LineData, 0, len(checkpoints))
	largest := 1
	for _, c := range checkpoints {
		if c.TableSize > largest {
			largest = c.TableSize
		}
	}
	for _, c := range checkpoints {
		episodes = append(episodes, strconv.Itoa(c.Episodes))
		drawRates = append(drawRates, opts.LineData{Value: c.DrawRate()})
		tableSizes = append(tableSizes, opts.LineData{Value: float64(c.TableSize) / float64(largest)})
	}

	line.SetXAxis(episodes).
		AddSeries("draw rate", drawRates).
		AddSeries("table size (relative)", tableSizes)

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
