package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
)

// fillViewRGBA converts a [y][x] color view into RGBA pixels in buf, one pixel
// per cell. Rows shorter than w leave the remaining pixels transparent black.
func fillViewRGBA(buf []byte, view [][]color.RGBA, w int) {
	for i := range buf {
		buf[i] = 0
	}
	for y, row := range view {
		for x, col := range row {
			if x >= w {
				break
			}
			base := (y*w + x) * 4
			buf[base+0] = col.R
			buf[base+1] = col.G
			buf[base+2] = col.B
			buf[base+3] = col.A
		}
	}
}

// GridImage renders a color view as an image, drawing each cell as a
// scale x scale block.
func GridImage(view [][]color.RGBA, scale int) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	h := len(view)
	w := 0
	if h > 0 {
		w = len(view[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
	if scale == 1 {
		fillViewRGBA(img.Pix, view, w)
		return img
	}
	for y, row := range view {
		for x, col := range row {
			r := image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale)
			draw.Draw(img, r, &image.Uniform{C: col}, image.Point{}, draw.Src)
		}
	}
	return img
}

// ComposeHorizontal places images left to right on a background, top aligned.
func ComposeHorizontal(bg color.Color, images ...image.Image) *image.RGBA {
	totalWidth, maxHeight := 0, 0
	for _, img := range images {
		totalWidth += img.Bounds().Dx()
		maxHeight = max(maxHeight, img.Bounds().Dy())
	}
	out := image.NewRGBA(image.Rect(0, 0, totalWidth, maxHeight))
	draw.Draw(out, out.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)
	offsetX := 0
	for _, img := range images {
		rect := img.Bounds()
		draw.Draw(out, image.Rect(offsetX, 0, offsetX+rect.Dx(), rect.Dy()), img, rect.Min, draw.Src)
		offsetX += rect.Dx()
	}
	return out
}

// WritePNG encodes img as PNG to w.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes img to path as a PNG file.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
