//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"epigrid/internal/core"
)

var (
	panelBackground = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	textColor       = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor        = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// HUD renders the status panel to the right of the simulation view.
type HUD struct {
	sim   core.Sim
	panel *ebiten.Image
	lines []Line
}

// NewHUD constructs a HUD for the provided simulation.
func NewHUD(sim core.Sim) *HUD {
	return &HUD{sim: sim}
}

// Update refreshes the cached rows from the simulation.
func (h *HUD) Update(st RunState) {
	h.lines = Lines(h.sim, st)
}

// Draw paints the panel anchored at offsetX, filling the window height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(PanelWidth, height)
	}
	h.panel.Fill(panelBackground)

	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	for _, l := range h.lines {
		x := panelPadding
		if l.HasSwatch {
			vector.DrawFilledRect(h.panel, float32(x), float32(y-swatchSize), swatchSize, swatchSize, l.Swatch, false)
			x += swatchSize + 6
		}
		col := textColor
		if l.Dim {
			col = dimColor
		}
		if l.Text != "" {
			text.Draw(h.panel, l.Text, face, x, y, col)
		}
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
