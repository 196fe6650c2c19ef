package core

import "image/color"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells in a grid of this size.
func (s Size) Cells() int { return s.W * s.H }

// Share is one labelled slice of the population, used by charts, HUDs and
// reports. Percent is in the range [0, 100].
type Share struct {
	Label   string
	Color   color.RGBA
	Percent float64
}

// Sim is the read contract renderers and drivers consume. Implementations own
// their state; callers advance them with Step and only observe them through
// the query methods.
type Sim interface {
	Name() string
	Size() Size
	Day() int
	Step()
	// ColorView returns one color per cell indexed [y][x].
	ColorView() [][]color.RGBA
	// Breakdown returns the population shares in a stable order.
	Breakdown() []Share
}
