/*
Package image implements a raster image of RGB pixels parameterized by a
color depth.

An Image is ordinarily non-empty, with positive width and height. The zero
value is the distinguished empty image with no pixel storage; emptiness is
all-or-nothing, so an image never has exactly one zero dimension. The empty
state exists so that the zero value and failed decodes have well-defined
semantics.

Pixels are stored row-major in a single flat slice which the Image owns
exclusively; no pixel is shared between two images.
*/
package image

import (
	"fmt"

	"github.com/bodgit/gfx/color"
)

// Image is a rectangular grid of RGB pixels in the color depth D.
//
// Accessing pixels of an empty image or with out-of-range coordinates is a
// programmer error and panics.
type Image[T color.Component, D color.Depth[T]] struct {
	width  int
	height int
	pix    []color.RGB[T, D]
}

// TrueColorImage is an image in the 8-bit TrueColor depth.
type TrueColorImage = Image[uint8, color.TrueColor]

// HDRImage is an image in the normalized HDR depth.
type HDRImage = Image[float32, color.HDR]

// New returns an image of the given dimensions, both of which must be
// positive, with every pixel initialized to fill.
func New[T color.Component, D color.Depth[T]](width, height int, fill color.RGB[T, D]) *Image[T, D] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("image: invalid dimensions %dx%d", width, height))
	}
	m := &Image[T, D]{
		width:  width,
		height: height,
		pix:    make([]color.RGB[T, D], width*height),
	}
	m.Fill(fill)
	return m
}

// Width returns the width of the image, or 0 when it is empty.
func (m *Image[T, D]) Width() int { return m.width }

// Height returns the height of the image, or 0 when it is empty.
func (m *Image[T, D]) Height() int { return m.height }

// Empty reports whether the image has no pixels.
func (m *Image[T, D]) Empty() bool { return len(m.pix) == 0 }

// Clear makes the image empty, releasing its pixel storage.
func (m *Image[T, D]) Clear() {
	m.width, m.height, m.pix = 0, 0, nil
}

// IsX reports whether x is a valid x-coordinate.
func (m *Image[T, D]) IsX(x int) bool {
	return !m.Empty() && x >= 0 && x < m.width
}

// IsY reports whether y is a valid y-coordinate.
func (m *Image[T, D]) IsY(y int) bool {
	return !m.Empty() && y >= 0 && y < m.height
}

func (m *Image[T, D]) checkCoords(x, y int) {
	if m.Empty() {
		panic("image: pixel access on empty image")
	}
	if !m.IsX(x) || !m.IsY(y) {
		panic(fmt.Sprintf("image: coordinates (%d, %d) out of range %dx%d", x, y, m.width, m.height))
	}
}

// Pixel returns the pixel at (x, y), which must be valid coordinates of a
// non-empty image.
func (m *Image[T, D]) Pixel(x, y int) color.RGB[T, D] {
	m.checkCoords(x, y)
	return m.pix[y*m.width+x]
}

// SetPixel overwrites the pixel at (x, y), which must be valid coordinates
// of a non-empty image.
func (m *Image[T, D]) SetPixel(x, y int, p color.RGB[T, D]) {
	m.checkCoords(x, y)
	m.pix[y*m.width+x] = p
}

// Fill overwrites every pixel with p.
func (m *Image[T, D]) Fill(p color.RGB[T, D]) {
	for i := range m.pix {
		m.pix[i] = p
	}
}

// Resize changes the image dimensions to width by height, both of which
// must be positive. If the dimensions are unchanged this is a no-op.
// Otherwise pixels are retained anchored at the top-left corner; pixels
// outside the new dimensions are discarded and newly created pixels are
// initialized to fill.
func (m *Image[T, D]) Resize(width, height int, fill color.RGB[T, D]) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("image: invalid dimensions %dx%d", width, height))
	}
	if width == m.width && height == m.height {
		return
	}

	pix := make([]color.RGB[T, D], width*height)

	keepW, keepH := m.width, m.height
	if width < keepW {
		keepW = width
	}
	if height < keepH {
		keepH = height
	}

	for y := 0; y < height; y++ {
		row := pix[y*width : (y+1)*width]
		if y < keepH {
			copy(row[:keepW], m.pix[y*m.width:y*m.width+keepW])
			for x := keepW; x < width; x++ {
				row[x] = fill
			}
		} else {
			for x := range row {
				row[x] = fill
			}
		}
	}

	m.width, m.height, m.pix = width, height, pix
}

// Bounds is the read-only dimension surface of an Image of any depth.
type Bounds interface {
	Empty() bool
	Width() int
	Height() int
}

// SameSize makes the image the same dimensions as other, which may be of a
// different depth: empty when other is empty, otherwise resized with new
// pixels initialized to fill.
func (m *Image[T, D]) SameSize(other Bounds, fill color.RGB[T, D]) {
	if other.Empty() {
		m.Clear()
		return
	}
	m.Resize(other.Width(), other.Height(), fill)
}

// Equal reports whether m and other have the same emptiness state,
// dimensions, and exactly equal pixels.
func (m *Image[T, D]) Equal(other *Image[T, D]) bool {
	if m.Empty() {
		return other.Empty()
	}
	if m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// AlmostEqual reports whether m and other have the same emptiness state and
// dimensions, and every corresponding pixel pair is within delta per
// channel.
func (m *Image[T, D]) AlmostEqual(other *Image[T, D], delta float64) bool {
	if m.Empty() {
		return other.Empty()
	}
	if m.width != other.width || m.height != other.height {
		return false
	}
	for i := range m.pix {
		if !m.pix[i].AlmostEqual(other.pix[i], delta) {
			return false
		}
	}
	return true
}

// EstimateBytes returns an estimate of the pixel storage size in bytes,
// excluding any container overhead. An empty image estimates to 0.
func (m *Image[T, D]) EstimateBytes() int {
	var d D
	return m.width * m.height * 3 * d.ComponentSize()
}

// ToHDR returns a new image of the same dimensions with every pixel
// re-encoded in the HDR depth. An empty image converts to an empty image.
// The receiver is never modified.
func (m *Image[T, D]) ToHDR() *HDRImage {
	if m.Empty() {
		return &HDRImage{}
	}
	out := New(m.width, m.height, color.HDRRGB{})
	for i := range m.pix {
		out.pix[i] = m.pix[i].ToHDR()
	}
	return out
}

// ToTrueColor returns a new image of the same dimensions with every pixel
// re-encoded in the 8-bit TrueColor depth. An empty image converts to an
// empty image. The receiver is never modified.
func (m *Image[T, D]) ToTrueColor() *TrueColorImage {
	if m.Empty() {
		return &TrueColorImage{}
	}
	out := New(m.width, m.height, color.TrueColorRGB{})
	for i := range m.pix {
		out.pix[i] = m.pix[i].ToTrueColor()
	}
	return out
}
