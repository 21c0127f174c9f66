/*
Package thumb implements a compact paletted thumbnail encoder and decoder
used by the image catalogue.

A thumbnail is at most 64 by 40 pixels, produced by area-averaged
downsampling of the source image and median cut quantization to at most 16
colors. The encoding is a three byte header of width, height, and palette
length, followed by the palette as three bytes per color and one palette
index byte per pixel in row-major order.
*/
package thumb

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/ericpauley/go-quantize/quantize"

	gfxcolor "github.com/bodgit/gfx/color"
	gfximage "github.com/bodgit/gfx/image"
)

const (
	// MaxWidth and MaxHeight bound the thumbnail canvas; sources are
	// scaled down to fit, preserving aspect ratio.
	MaxWidth  = 64
	MaxHeight = 40

	maxColors = 16
)

var (
	errEmptyImage = errors.New("thumb: empty image")
	errBadSize    = errors.New("thumb: invalid dimensions")
	errBadPalette = errors.New("thumb: invalid palette")
	errNotEnough  = errors.New("thumb: not enough data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// fit returns m scaled down, by averaging source blocks, so that it fits
// within the thumbnail canvas. A source that already fits is copied
// unscaled.
func fit(m *gfximage.TrueColorImage) *gfximage.TrueColorImage {
	sw, sh := m.Width(), m.Height()
	tw, th := sw, sh

	if tw > MaxWidth {
		th = th * MaxWidth / tw
		tw = MaxWidth
	}
	if th > MaxHeight {
		tw = tw * MaxHeight / th
		th = MaxHeight
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	out := gfximage.New(tw, th, gfxcolor.TrueColorRGB{})
	for y := 0; y < th; y++ {
		y0, y1 := y*sh/th, (y+1)*sh/th
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for x := 0; x < tw; x++ {
			x0, x1 := x*sw/tw, (x+1)*sw/tw
			if x1 <= x0 {
				x1 = x0 + 1
			}

			var r, g, b float64
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					p := m.Pixel(sx, sy)
					r += float64(p.Red())
					g += float64(p.Green())
					b += float64(p.Blue())
				}
			}
			n := float64((x1 - x0) * (y1 - y0))
			out.SetPixel(x, y, gfxcolor.NewTrueColor(uint8(r/n), uint8(g/n), uint8(b/n)))
		}
	}
	return out
}

type encoder struct {
	w io.Writer
}

func (e *encoder) encode(pm *image.Paletted) error {
	b := pm.Bounds()

	if _, err := e.w.Write([]byte{byte(b.Dx()), byte(b.Dy()), byte(len(pm.Palette))}); err != nil {
		return err
	}

	var tmp [3]byte
	for _, c := range pm.Palette {
		r, g, b, _ := c.RGBA()
		tmp[0], tmp[1], tmp[2] = byte(r>>8), byte(g>>8), byte(b>>8)
		if _, err := e.w.Write(tmp[:]); err != nil {
			return err
		}
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, err := e.w.Write([]byte{pm.ColorIndexAt(x, y)}); err != nil {
				return err
			}
		}
	}

	return nil
}

// Encode writes a thumbnail of the image m, which must not be empty, to w.
func Encode(w io.Writer, m *gfximage.TrueColorImage) error {
	if m.Empty() {
		return errEmptyImage
	}

	src := gfximage.ToRGBA(fit(m))
	b := src.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, maxColors), src))
	draw.Draw(pm, b, src, b.Min, draw.Src)

	e := encoder{w: w}

	return e.encode(pm)
}

type decoder struct {
	r io.Reader

	palette []gfxcolor.TrueColorRGB
	image   *gfximage.TrueColorImage
}

func (d *decoder) decode() error {
	var hdr [3]byte
	if err := readFull(d.r, hdr[:]); err != nil {
		return errNotEnough
	}

	width, height, colors := int(hdr[0]), int(hdr[1]), int(hdr[2])
	if width < 1 || width > MaxWidth || height < 1 || height > MaxHeight {
		return errBadSize
	}
	if colors < 1 || colors > maxColors {
		return errBadPalette
	}

	d.palette = make([]gfxcolor.TrueColorRGB, colors)
	for i := range d.palette {
		var tmp [3]byte
		if err := readFull(d.r, tmp[:]); err != nil {
			return errNotEnough
		}
		d.palette[i] = gfxcolor.NewTrueColor(tmp[0], tmp[1], tmp[2])
	}

	d.image = gfximage.New(width, height, gfxcolor.TrueColorRGB{})
	idx := make([]byte, width)
	for y := 0; y < height; y++ {
		if err := readFull(d.r, idx); err != nil {
			return errNotEnough
		}
		for x, i := range idx {
			if int(i) >= colors {
				return errBadPalette
			}
			d.image.SetPixel(x, y, d.palette[i])
		}
	}

	return nil
}

// Decode reads a thumbnail from r and returns it as a TrueColorImage.
func Decode(r io.Reader) (*gfximage.TrueColorImage, error) {
	d := decoder{r: r}
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.image, nil
}
