//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"epigrid/internal/report"
)

var (
	plotBackground = color.RGBA{R: 28, G: 28, B: 34, A: 255}
	axisColor      = color.RGBA{R: 110, G: 110, B: 120, A: 255}
	// Dead is drawn black on the grid, which would vanish on the dark panel.
	deadLine = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Plot draws the recorded series as one line per status.
type Plot struct {
	series  *report.Series
	maxDay  int
	visible bool
}

// NewPlot returns a visible plot of series over [0, maxDay].
func NewPlot(series *report.Series, maxDay int) *Plot {
	return &Plot{series: series, maxDay: maxDay, visible: true}
}

// Toggle shows or hides the plot.
func (p *Plot) Toggle() { p.visible = !p.visible }

// Visible reports whether the plot is drawn.
func (p *Plot) Visible() bool { return p.visible }

// Draw paints the axes and curves into r.
func (p *Plot) Draw(screen *ebiten.Image, r image.Rectangle) {
	if !p.visible || r.Empty() {
		return
	}
	x0, y0 := float32(r.Min.X), float32(r.Min.Y)
	x1, y1 := float32(r.Max.X), float32(r.Max.Y)
	vector.DrawFilledRect(screen, x0, y0, x1-x0, y1-y0, plotBackground, false)
	vector.StrokeLine(screen, x0, y1, x1, y1, 1, axisColor, false)
	vector.StrokeLine(screen, x0, y0, x0, y1, 1, axisColor, false)
	text.Draw(screen, "100%", basicfont.Face7x13, r.Min.X+3, r.Min.Y+12, axisColor)

	curves := Curves(p.series, r, p.maxDay)
	for i, pts := range curves {
		col := p.series.Colors[i]
		if col.R == 0 && col.G == 0 && col.B == 0 {
			col = deadLine
		}
		for k := 1; k < len(pts); k++ {
			vector.StrokeLine(screen, pts[k-1].X, pts[k-1].Y, pts[k].X, pts[k].Y, 1.5, col, true)
		}
	}
}
