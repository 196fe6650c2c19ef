package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// LabelFace is the bitmap face used for every label.
var LabelFace font.Face = basicfont.Face7x13

// LabelHeight is the pixel height of one line of LabelFace text.
const LabelHeight = 13

// LabelWidth returns the pixel width of s in LabelFace.
func LabelWidth(s string) int {
	return font.MeasureString(LabelFace, s).Ceil()
}

// DrawLabel draws s with its top-left corner at (x, y).
func DrawLabel(dst draw.Image, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: LabelFace,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y + LabelHeight - 2)},
	}
	d.DrawString(s)
}

// DrawCenteredLabel draws s horizontally centred in [x0, x1) with its top at y.
func DrawCenteredLabel(dst draw.Image, x0, x1, y int, s string, col color.Color) {
	x := x0 + (x1-x0-LabelWidth(s))/2
	DrawLabel(dst, x, y, s, col)
}
