package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

func (g *Generator) generateLatencyChart(outputDir string, hours int) error {
	series, err := g.store.LatencySeries(hours)
	if err != nil {
		return err
	}

	for endpoint, points := range series {
		var (
			timestamps []time.Time
			values     []float64
		)

		for _, p := range points {
			if p.AvgLatencyMS < 0 {
				// Fully-failed cycle, no latency to plot.
				continue
			}
			timestamps = append(timestamps, p.Timestamp)
			values = append(values, p.AvgLatencyMS)
		}

		if len(values) < 2 {
			continue
		}

		graph := timeChart(fmt.Sprintf("Latency - %s", endpoint), "Latency (ms)", endpoint, timestamps, values)

		if err := renderChart(graph, filepath.Join(outputDir, fmt.Sprintf("latency_%s.png", sanitizeFilename(endpoint)))); err != nil {
			return err
		}
	}

	return nil
}

func (g *Generator) generateAvailabilityChart(outputDir string, hours int) error {
	series, err := g.store.LatencySeries(hours)
	if err != nil {
		return err
	}

	for endpoint, points := range series {
		var (
			timestamps []time.Time
			values     []float64
		)

		for _, p := range points {
			timestamps = append(timestamps, p.Timestamp)
			values = append(values, 100-p.PacketLossPct)
		}

		if len(values) < 2 {
			continue
		}

		graph := timeChart(fmt.Sprintf("Availability - %s", endpoint), "Success rate (%)", endpoint, timestamps, values)
		graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: 100}

		if err := renderChart(graph, filepath.Join(outputDir, fmt.Sprintf("availability_%s.png", sanitizeFilename(endpoint)))); err != nil {
			return err
		}
	}

	return nil
}

func timeChart(title, yName, seriesName string, timestamps []time.Time, values []float64) chart.Chart {
	return chart.Chart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: yName,
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: seriesName,
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
		},
	}
}

func renderChart(graph chart.Chart, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	if err := graph.Render(chart.PNG, file); err != nil {
		file.Close()
		return err
	}

	return file.Close()
}
