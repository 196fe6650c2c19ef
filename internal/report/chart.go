package report

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrEmptySeries is returned when charting a series with no recorded days.
var ErrEmptySeries = errors.New("report: series has no data")

// ChartOptions sizes the percentage chart.
type ChartOptions struct {
	Width  int
	Height int
	// MaxDay fixes the right edge of the x axis. Zero uses the last recorded day.
	MaxDay int
}

// DefaultChartOptions returns a chart sized for a side panel.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 480, Height: 360}
}

func (s *Series) chart(opts ChartOptions) (*chart.Chart, error) {
	if s.Len() == 0 {
		return nil, ErrEmptySeries
	}
	maxDay := opts.MaxDay
	if maxDay <= 0 {
		maxDay = s.LastDay()
	}
	maxDay = max(maxDay, 1)

	xs := make([]float64, s.Len())
	for k, d := range s.Days {
		xs[k] = float64(d)
	}
	series := make([]chart.Series, 0, len(s.Labels))
	for i, label := range s.Labels {
		x, y := xs, s.Values[i]
		if len(x) == 1 {
			x = []float64{x[0], x[0]}
			y = []float64{y[0], y[0]}
		}
		c := s.Colors[i]
		series = append(series, chart.ContinuousSeries{
			Name:    label,
			XValues: x,
			YValues: y,
			Style: chart.Style{
				StrokeColor: drawing.Color{R: c.R, G: c.G, B: c.B, A: 255},
				StrokeWidth: 2,
			},
		})
	}

	graph := &chart.Chart{
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "Day",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxDay)},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Percent",
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f%%", v.(float64))
			},
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(graph)}
	return graph, nil
}

// WriteChart renders the series as a PNG line chart of percentage vs day.
func (s *Series) WriteChart(w io.Writer, opts ChartOptions) error {
	graph, err := s.chart(opts)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// SaveChart writes the chart PNG to path.
func (s *Series) SaveChart(path string, opts ChartOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.WriteChart(f, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ChartImage renders the chart into an RGBA image for frame composition.
func (s *Series) ChartImage(opts ChartOptions) (*image.RGBA, error) {
	var buf bytes.Buffer
	if err := s.WriteChart(&buf, opts); err != nil {
		return nil, err
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), decoded, decoded.Bounds().Min, draw.Src)
	return img, nil
}
