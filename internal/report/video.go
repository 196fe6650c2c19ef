package report

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"

	"github.com/icza/mjpeg"

	"epigrid/internal/core"
	"epigrid/internal/render"
)

// VideoOptions controls frame layout and encoding.
type VideoOptions struct {
	FPS     int
	Scale   int
	Quality int
	Chart   ChartOptions
}

// DefaultVideoOptions returns 30 fps frames with a 480px wide chart.
func DefaultVideoOptions() VideoOptions {
	return VideoOptions{FPS: 30, Scale: 8, Quality: 90, Chart: DefaultChartOptions()}
}

// Frame renders the grid, titled with the current day, next to the series
// chart. The chart's x axis spans [0, duration].
func Frame(sim core.Sim, series *Series, duration int, opts VideoOptions) (*image.RGBA, error) {
	grid := render.GridImage(sim.ColorView(), opts.Scale)
	gw, gh := grid.Bounds().Dx(), grid.Bounds().Dy()

	left := image.NewRGBA(image.Rect(0, 0, gw+2*panelMargin, gh+panelTitle+2*panelMargin))
	draw.Draw(left, left.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	render.DrawCenteredLabel(left, panelMargin, panelMargin+gw, panelMargin, fmt.Sprintf("Day %d", sim.Day()), color.Black)
	draw.Draw(left, image.Rect(panelMargin, panelMargin+panelTitle, panelMargin+gw, panelMargin+panelTitle+gh), grid, image.Point{}, draw.Src)

	chartOpts := opts.Chart
	chartOpts.MaxDay = duration
	chartOpts.Height = max(chartOpts.Height, left.Bounds().Dy())
	plot, err := series.ChartImage(chartOpts)
	if err != nil {
		return nil, err
	}
	return render.ComposeHorizontal(color.White, left, plot), nil
}

// WriteVideo runs sim up to duration and writes one MJPEG AVI frame per day,
// starting with the current state. Every day is recorded into series.
func WriteVideo(ctx context.Context, path string, sim core.Sim, duration int, series *Series, opts VideoOptions) (err error) {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Quality <= 0 {
		opts.Quality = 90
	}
	series.Record(sim)
	frame, err := Frame(sim, series, duration, opts)
	if err != nil {
		return err
	}
	b := frame.Bounds()
	aw, err := mjpeg.New(path, int32(b.Dx()), int32(b.Dy()), int32(opts.FPS))
	if err != nil {
		return fmt.Errorf("create video %s: %w", path, err)
	}
	defer func() {
		if cerr := aw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close video %s: %w", path, cerr)
		}
	}()

	var buf bytes.Buffer
	jpegOpts := &jpeg.Options{Quality: opts.Quality}
	for {
		buf.Reset()
		if err := jpeg.Encode(&buf, frame, jpegOpts); err != nil {
			return fmt.Errorf("encode frame %d: %w", sim.Day(), err)
		}
		if err := aw.AddFrame(buf.Bytes()); err != nil {
			return fmt.Errorf("add frame %d: %w", sim.Day(), err)
		}
		if sim.Day() >= duration {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		sim.Step()
		series.Record(sim)
		if frame, err = Frame(sim, series, duration, opts); err != nil {
			return err
		}
	}
}
