/*
Package filter implements raster image filters: clearing or scaling one
color component, cropping, clamp-to-edge padding and its inverse, grayscale
conversion, Sobel edge detection, and box blur.

Every filter reads a non-empty source image and returns a freshly allocated
result; the source is never written through, so a filter may safely be fed
its own earlier output. Filters operate purely in memory and treat invalid
arguments (an empty source, a bad channel index, an out-of-bounds rectangle,
a non-positive radius) as programmer errors, which panic.
*/
package filter

import (
	"fmt"
	"math"

	"github.com/bodgit/gfx/color"
	"github.com/bodgit/gfx/image"
)

func notEmpty[T color.Component, D color.Depth[T]](m *image.Image[T, D]) {
	if m.Empty() {
		panic("filter: empty source image")
	}
}

func checkIndex(i color.Index) {
	if !color.IsIndex(i) {
		panic(fmt.Sprintf("filter: invalid channel index %d", int(i)))
	}
}

// ClearComponent returns a copy of before with channel i of every pixel set
// to zero.
func ClearComponent[T color.Component, D color.Depth[T]](before *image.Image[T, D], i color.Index) *image.Image[T, D] {
	notEmpty(before)
	checkIndex(i)

	after := image.New(before.Width(), before.Height(), color.RGB[T, D]{})
	for y := 0; y < before.Height(); y++ {
		for x := 0; x < before.Width(); x++ {
			p := before.Pixel(x, y)
			p.Set(i, 0)
			after.SetPixel(x, y, p)
		}
	}
	return after
}

// ScaleComponent returns a copy of before with channel i of every pixel
// multiplied by factor, which must be non-negative. The arithmetic is done
// in the HDR depth; scaled intensities are capped at the maximum before
// converting back to before's depth.
func ScaleComponent[T color.Component, D color.Depth[T]](before *image.Image[T, D], i color.Index, factor float64) *image.Image[T, D] {
	notEmpty(before)
	checkIndex(i)
	if factor < 0 {
		panic(fmt.Sprintf("filter: negative scale factor %v", factor))
	}

	after := image.New(before.Width(), before.Height(), color.RGB[T, D]{})
	for y := 0; y < before.Height(); y++ {
		for x := 0; x < before.Width(); x++ {
			h := before.Pixel(x, y).ToHDR()
			v := float64(h.At(i)) * factor
			if v > 1 {
				v = 1
			}
			h.Set(i, float32(v))
			after.SetPixel(x, y, color.FromHDR[T, D](h))
		}
	}
	return after
}

// Crop returns the rectangle of before with the given top-left corner,
// width and height, re-indexed from (0, 0). The dimensions must be positive
// and the rectangle must lie entirely inside before.
func Crop[T color.Component, D color.Depth[T]](before *image.Image[T, D], left, top, width, height int) *image.Image[T, D] {
	notEmpty(before)
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("filter: invalid crop dimensions %dx%d", width, height))
	}
	if !before.IsX(left) || !before.IsY(top) || !before.IsX(left+width-1) || !before.IsY(top+height-1) {
		panic(fmt.Sprintf("filter: crop rectangle %dx%d+%d+%d outside image %dx%d",
			width, height, left, top, before.Width(), before.Height()))
	}

	after := image.New(width, height, color.RGB[T, D]{})
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			after.SetPixel(x, y, before.Pixel(left+x, top+y))
		}
	}
	return after
}

// ExtendEdges returns before surrounded by a border of padRadius pixels on
// every side, replicating the nearest edge pixel. padRadius must be
// positive. The center region is an exact copy of before, so convolution
// kernels applied to the result never need to read outside it.
func ExtendEdges[T color.Component, D color.Depth[T]](before *image.Image[T, D], padRadius int) *image.Image[T, D] {
	notEmpty(before)
	if padRadius <= 0 {
		panic(fmt.Sprintf("filter: invalid pad radius %d", padRadius))
	}

	after := image.New(before.Width()+2*padRadius, before.Height()+2*padRadius, color.RGB[T, D]{})
	for y := 0; y < after.Height(); y++ {
		for x := 0; x < after.Width(); x++ {
			after.SetPixel(x, y, before.Pixel(
				clampInt(x-padRadius, 0, before.Width()-1),
				clampInt(y-padRadius, 0, before.Height()-1)))
		}
	}
	return after
}

// CropExtendedEdges undoes ExtendEdges: applied with the same padRadius, it
// returns the original image that was padded. padRadius must be positive
// and less than half of either dimension of before.
func CropExtendedEdges[T color.Component, D color.Depth[T]](before *image.Image[T, D], padRadius int) *image.Image[T, D] {
	notEmpty(before)
	if padRadius <= 0 {
		panic(fmt.Sprintf("filter: invalid pad radius %d", padRadius))
	}

	return Crop(before, padRadius, padRadius, before.Width()-2*padRadius, before.Height()-2*padRadius)
}

// Grayscale returns before with every pixel replaced by its luma
// 0.2*R + 0.7*G + 0.1*B replicated across all three channels, computed in
// the image's native component type.
func Grayscale[T color.Component, D color.Depth[T]](before *image.Image[T, D]) *image.Image[T, D] {
	notEmpty(before)

	after := image.New(before.Width(), before.Height(), color.RGB[T, D]{})
	for y := 0; y < before.Height(); y++ {
		for x := 0; x < before.Width(); x++ {
			p := before.Pixel(x, y)
			gray := T(0.2*float64(p.Red()) + 0.7*float64(p.Green()) + 0.1*float64(p.Blue()))
			p.Assign(gray, gray, gray)
			after.SetPixel(x, y, p)
		}
	}
	return after
}

// The 3x3 Sobel kernels for the horizontal and vertical gradients.
var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// EdgeDetect converts before to grayscale, applies the Sobel edge detection
// convolution, and returns the gradient magnitude replicated across all
// three channels of an image of before's dimensions. The grayscale image is
// padded by one pixel with ExtendEdges so the kernels never read outside
// the input, then the padding is cropped away again.
func EdgeDetect[T color.Component, D color.Depth[T]](before *image.Image[T, D]) *image.Image[T, D] {
	notEmpty(before)

	var d D
	padded := ExtendEdges(Grayscale(before), 1)

	after := image.New(padded.Width(), padded.Height(), color.RGB[T, D]{})
	for y := 1; y < padded.Height()-1; y++ {
		for x := 1; x < padded.Width()-1; x++ {
			var gx, gy float64
			for ky := 0; ky < 3; ky++ {
				for kx := 0; kx < 3; kx++ {
					// All three channels hold the luma; read red.
					luma := float64(padded.Pixel(x+kx-1, y+ky-1).Red())
					gx += luma * sobelX[ky][kx]
					gy += luma * sobelY[ky][kx]
				}
			}
			mag := math.Sqrt(gx*gx + gy*gy)
			if mag > float64(d.Max()) {
				mag = float64(d.Max())
			}
			v := T(mag)
			var p color.RGB[T, D]
			p.Assign(v, v, v)
			after.SetPixel(x, y, p)
		}
	}

	return CropExtendedEdges(after, 1)
}

// BoxBlur returns before with every pixel averaged, per channel, over the
// square neighborhood of side 2*radius+1 centered on it, using clamp-to-edge
// padding so boundary pixels still average over a full window. radius must
// be positive.
func BoxBlur[T color.Component, D color.Depth[T]](before *image.Image[T, D], radius int) *image.Image[T, D] {
	notEmpty(before)
	if radius <= 0 {
		panic(fmt.Sprintf("filter: invalid blur radius %d", radius))
	}

	padded := ExtendEdges(before, radius)
	side := 2*radius + 1
	n := float64(side * side)

	after := image.New(before.Width(), before.Height(), color.RGB[T, D]{})
	for y := 0; y < before.Height(); y++ {
		for x := 0; x < before.Width(); x++ {
			var r, g, b float64
			for ky := 0; ky < side; ky++ {
				for kx := 0; kx < side; kx++ {
					p := padded.Pixel(x+kx, y+ky)
					r += float64(p.Red())
					g += float64(p.Green())
					b += float64(p.Blue())
				}
			}
			after.SetPixel(x, y, color.New[T, D](T(r/n), T(g/n), T(b/n)))
		}
	}
	return after
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
