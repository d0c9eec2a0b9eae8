package qr

import (
	"image"
	"image/color"
	"image/draw"
)

// Render rasterizes grid into an opaque RGBA image. Every module becomes a
// moduleSize x moduleSize block of fg or bg, and border modules of bg
// surround the grid on each side.
func Render(grid *Grid, moduleSize, border int, fg, bg color.RGBA) *image.RGBA {
	side := (grid.Size + 2*border) * moduleSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	draw.Draw(img, img.Bounds(), image.NewUniform(opaque(bg)), image.Point{}, draw.Src)

	dark := image.NewUniform(opaque(fg))
	for y := 0; y < grid.Size; y++ {
		for x := 0; x < grid.Size; x++ {
			if !grid.Set(x, y) {
				continue
			}
			px := (x + border) * moduleSize
			py := (y + border) * moduleSize
			draw.Draw(img, image.Rect(px, py, px+moduleSize, py+moduleSize), dark, image.Point{}, draw.Src)
		}
	}
	return img
}

// opaque drops any alpha so the base image is plain RGB.
func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}
