package report

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"epigrid/internal/core"
	"epigrid/internal/render"
)

// Layout is the panel grid of a static report.
type Layout struct {
	Cols int
	Rows int
}

// DefaultLayout is five panels across and three down.
func DefaultLayout() Layout { return Layout{Cols: 5, Rows: 3} }

// N returns the number of panels.
func (l Layout) N() int { return l.Cols * l.Rows }

// Panel is a color snapshot of the grid taken on Day.
type Panel struct {
	Day  int
	View [][]color.RGBA
}

const (
	panelMargin = 8
	panelTitle  = render.LabelHeight + 6
)

// PanelDays spreads n snapshot days from 0 to duration as evenly as integer
// days allow. The last day is always duration.
func PanelDays(duration, n int) []int {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []int{duration}
	}
	days := make([]int, n)
	for i := range days {
		days[i] = duration * i / (n - 1)
	}
	return days
}

// CapturePanels advances sim through the layout's snapshot days and records a
// color view at each. Days the sim has already passed are captured at its
// current day. Every stepped day is recorded into series when it is non-nil.
func CapturePanels(sim core.Sim, duration int, layout Layout, series *Series) []Panel {
	days := PanelDays(duration, layout.N())
	panels := make([]Panel, 0, len(days))
	for _, day := range days {
		advanceTo(sim, day, series)
		panels = append(panels, Panel{Day: day, View: sim.ColorView()})
	}
	return panels
}

// PanelScale picks a cell scale so each panel is roughly target pixels wide.
func PanelScale(size core.Size, target int) int {
	side := max(size.W, size.H)
	if side <= 0 {
		return 1
	}
	return max(target/side, 1)
}

// RenderPanels lays the panels out row by row on a white sheet, each titled
// "Day N".
func RenderPanels(panels []Panel, layout Layout, scale int) (*image.RGBA, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("report: no panels to render")
	}
	if layout.Cols <= 0 || layout.Rows <= 0 {
		return nil, fmt.Errorf("report: invalid layout %dx%d", layout.Cols, layout.Rows)
	}
	first := render.GridImage(panels[0].View, scale)
	cellW := first.Bounds().Dx() + panelMargin
	cellH := first.Bounds().Dy() + panelTitle + panelMargin

	sheet := image.NewRGBA(image.Rect(0, 0, layout.Cols*cellW+panelMargin, layout.Rows*cellH+panelMargin))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	for i, p := range panels {
		if i >= layout.N() {
			break
		}
		col, row := i%layout.Cols, i/layout.Cols
		x0 := panelMargin + col*cellW
		y0 := panelMargin + row*cellH
		grid := render.GridImage(p.View, scale)
		render.DrawCenteredLabel(sheet, x0, x0+grid.Bounds().Dx(), y0, fmt.Sprintf("Day %d", p.Day), color.Black)
		dst := image.Rect(x0, y0+panelTitle, x0+grid.Bounds().Dx(), y0+panelTitle+grid.Bounds().Dy())
		draw.Draw(sheet, dst, grid, image.Point{}, draw.Src)
	}
	return sheet, nil
}
