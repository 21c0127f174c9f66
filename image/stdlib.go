package image

import (
	stdimage "image"
	stdcolor "image/color"

	"github.com/bodgit/gfx/color"
)

// ToRGBA converts m to a standard library image.RGBA with a fully opaque
// alpha channel. An empty image converts to a zero-size RGBA.
func ToRGBA(m *TrueColorImage) *stdimage.RGBA {
	img := stdimage.NewRGBA(stdimage.Rect(0, 0, m.Width(), m.Height()))
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := m.Pixel(x, y)
			img.SetRGBA(x, y, stdcolor.RGBA{R: p.Red(), G: p.Green(), B: p.Blue(), A: 0xff})
		}
	}
	return img
}

// FromImage converts a standard library image to a TrueColorImage,
// discarding any alpha channel. A zero-size source converts to an empty
// image.
func FromImage(img stdimage.Image) *TrueColorImage {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return &TrueColorImage{}
	}
	m := New(b.Dx(), b.Dy(), color.TrueColorRGB{})
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			r, g, b2, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			m.SetPixel(x, y, color.NewTrueColor(uint8(r>>8), uint8(g>>8), uint8(b2>>8)))
		}
	}
	return m
}
