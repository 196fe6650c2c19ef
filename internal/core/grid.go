package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so owners can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// At returns the value stored at (x, y).
func (g *ByteGrid) At(x, y int) uint8 { return g.data[y*g.W+x] }

// Set stores v at (x, y).
func (g *ByteGrid) Set(x, y int, v uint8) { g.data[y*g.W+x] = v }

// CountAround counts the cells equal to v in the Moore neighborhood of (x, y).
// The neighborhood is clipped at the grid edges and excludes (x, y) itself.
func (g *ByteGrid) CountAround(x, y int, v uint8) int {
	n := 0
	for ny := max(y-1, 0); ny <= min(y+1, g.H-1); ny++ {
		row := ny * g.W
		for nx := max(x-1, 0); nx <= min(x+1, g.W-1); nx++ {
			if nx == x && ny == y {
				continue
			}
			if g.data[row+nx] == v {
				n++
			}
		}
	}
	return n
}

// Count returns how many cells hold v.
func (g *ByteGrid) Count(v uint8) int {
	n := 0
	for _, c := range g.data {
		if c == v {
			n++
		}
	}
	return n
}

// Fill sets every cell to v.
func (g *ByteGrid) Fill(v uint8) {
	for i := range g.data {
		g.data[i] = v
	}
}
