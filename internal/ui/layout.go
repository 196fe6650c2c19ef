// Package ui lays out and draws the side panel of the live window: a text
// HUD with the day, status shares and parameters, and a line plot of the
// recorded series.
package ui

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode"

	"epigrid/internal/core"
	"epigrid/internal/report"
)

const (
	// PanelWidth is the width of the side panel in pixels.
	PanelWidth = 260
	// PlotHeight is the height reserved for the line plot at the panel bottom.
	PlotHeight = 170

	panelPadding   = 12
	lineHeight     = 16
	headerBaseline = 13
	swatchSize     = 10
)

// Line is one row of the HUD. Rows with HasSwatch draw a color square before
// the text.
type Line struct {
	Text      string
	Swatch    color.RGBA
	HasSwatch bool
	Dim       bool
}

// RunState is what the window knows about the run beyond the sim itself.
type RunState struct {
	Duration int
	Paused   bool
	PlotOn   bool
}

// Lines builds the HUD rows for sim.
func Lines(sim core.Sim, st RunState) []Line {
	lines := []Line{{Text: title(sim.Name())}}

	day := fmt.Sprintf("Day %d / %d", sim.Day(), st.Duration)
	switch {
	case sim.Day() >= st.Duration:
		day += "  done"
	case st.Paused:
		day += "  paused"
	}
	lines = append(lines, Line{Text: day}, Line{})

	for _, s := range sim.Breakdown() {
		lines = append(lines, Line{
			Text:      fmt.Sprintf("%-11s %6.2f%%", s.Label, s.Percent),
			Swatch:    s.Color,
			HasSwatch: true,
		})
	}
	if pp, ok := sim.(core.ParameterProvider); ok {
		lines = append(lines, Line{})
		for _, l := range pp.Parameters().Lines() {
			lines = append(lines, Line{Text: l})
		}
	}
	plot := "l show plot"
	if st.PlotOn {
		plot = "l hide plot"
	}
	lines = append(lines, Line{}, Line{Text: "space pause  n step", Dim: true}, Line{Text: plot + "  q quit", Dim: true})
	return lines
}

// MinHeight is the smallest window height that fits lines and the plot.
func MinHeight(lines int) int {
	return 2*panelPadding + lines*lineHeight + PlotHeight
}

// PlotRect returns the plot area inside a panel starting at offsetX on a
// window of the given height.
func PlotRect(offsetX, height int) image.Rectangle {
	return image.Rect(
		offsetX+panelPadding, height-PlotHeight,
		offsetX+PanelWidth-panelPadding, height-panelPadding,
	)
}

// Point is a position in window pixels.
type Point struct{ X, Y float32 }

// Curves maps every series in s onto r. Day 0 sits on the left edge and
// maxDay on the right; 0% at the bottom and 100% at the top.
func Curves(s *report.Series, r image.Rectangle, maxDay int) [][]Point {
	if s == nil || s.Len() == 0 || r.Empty() {
		return nil
	}
	maxDay = max(maxDay, 1)
	w, h := float32(r.Dx()), float32(r.Dy())
	out := make([][]Point, len(s.Values))
	for i, vals := range s.Values {
		pts := make([]Point, len(vals))
		for k, v := range vals {
			pts[k] = Point{
				X: float32(r.Min.X) + w*float32(min(s.Days[k], maxDay))/float32(maxDay),
				Y: float32(r.Max.Y) - h*float32(v)/100,
			}
		}
		out[i] = pts
	}
	return out
}

func title(name string) string {
	if name == "" {
		return "Simulation"
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return strings.TrimSpace(string(r))
}
