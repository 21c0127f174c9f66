package color

import "fmt"

// An Index identifies one of the red, green, or blue channels of an RGB
// value.
type Index int

const (
	Red   Index = 0
	Green Index = 1
	Blue  Index = 2
)

// IsIndex reports whether i identifies a valid channel.
func IsIndex(i Index) bool {
	return i >= Red && i <= Blue
}

func (i Index) String() string {
	switch i {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Index(%d)", int(i))
}

// RGB is a (red, green, blue) tuple encoded in the color depth D. The zero
// value is black. RGB values are small and copied freely; two values compare
// equal with == when every channel matches exactly.
//
// Constructing or assigning a channel intensity outside [0, Max] is a
// programmer error and panics.
type RGB[T Component, D Depth[T]] struct {
	c [3]T
}

// TrueColorRGB is an RGB value in the 8-bit TrueColor depth.
type TrueColorRGB = RGB[uint8, TrueColor]

// HDRRGB is an RGB value in the normalized HDR depth.
type HDRRGB = RGB[float32, HDR]

func check[T Component, D Depth[T]](x T) {
	var d D
	if !d.IsValue(x) {
		panic(fmt.Sprintf("color: intensity %v out of range [0, %v]", x, d.Max()))
	}
}

// New returns the RGB value (r, g, b) in the depth D.
func New[T Component, D Depth[T]](r, g, b T) RGB[T, D] {
	check[T, D](r)
	check[T, D](g)
	check[T, D](b)
	return RGB[T, D]{c: [3]T{r, g, b}}
}

// NewTrueColor returns the 8-bit RGB value (r, g, b).
func NewTrueColor(r, g, b uint8) TrueColorRGB {
	return New[uint8, TrueColor](r, g, b)
}

// NewHDR returns the normalized RGB value (r, g, b).
func NewHDR(r, g, b float32) HDRRGB {
	return New[float32, HDR](r, g, b)
}

// Red returns the red channel intensity.
func (p RGB[T, D]) Red() T { return p.c[Red] }

// Green returns the green channel intensity.
func (p RGB[T, D]) Green() T { return p.c[Green] }

// Blue returns the blue channel intensity.
func (p RGB[T, D]) Blue() T { return p.c[Blue] }

// At returns the intensity of channel i, which must be a valid index.
func (p RGB[T, D]) At(i Index) T {
	if !IsIndex(i) {
		panic(fmt.Sprintf("color: invalid channel index %d", int(i)))
	}
	return p.c[i]
}

// Set overwrites the intensity of channel i, which must be a valid index,
// with x, which must be a valid intensity.
func (p *RGB[T, D]) Set(i Index, x T) {
	if !IsIndex(i) {
		panic(fmt.Sprintf("color: invalid channel index %d", int(i)))
	}
	check[T, D](x)
	p.c[i] = x
}

// Assign overwrites all three channel intensities, each of which must be a
// valid intensity.
func (p *RGB[T, D]) Assign(r, g, b T) {
	check[T, D](r)
	check[T, D](g)
	check[T, D](b)
	p.c = [3]T{r, g, b}
}

// AlmostEqual reports whether every channel of p is within delta of the
// corresponding channel of q.
func (p RGB[T, D]) AlmostEqual(q RGB[T, D], delta float64) bool {
	for i := range p.c {
		d := float64(p.c[i]) - float64(q.c[i])
		if d < 0 {
			d = -d
		}
		if d > delta {
			return false
		}
	}
	return true
}

// ToHDR returns p re-encoded in the HDR depth.
func (p RGB[T, D]) ToHDR() HDRRGB {
	var (
		d D
		h HDR
	)
	var q HDRRGB
	for i := range p.c {
		q.c[i] = h.FromNormalized(d.Normalize(p.c[i]))
	}
	return q
}

// ToTrueColor returns p re-encoded in the 8-bit TrueColor depth,
// truncating each channel.
func (p RGB[T, D]) ToTrueColor() TrueColorRGB {
	var (
		d D
		t TrueColor
	)
	var q TrueColorRGB
	for i := range p.c {
		q.c[i] = t.FromNormalized(d.Normalize(p.c[i]))
	}
	return q
}

// FromHDR returns p re-encoded in the depth D.
func FromHDR[T Component, D Depth[T]](p HDRRGB) RGB[T, D] {
	var (
		h HDR
		d D
	)
	var q RGB[T, D]
	for i := range p.c {
		q.c[i] = d.FromNormalized(h.Normalize(p.c[i]))
	}
	return q
}

// HexColor converts a 24-bit hexadecimal color code of the form 0xRRGGBB
// into an 8-bit RGB value.
func HexColor(hex int) TrueColorRGB {
	if hex < 0 || hex > 0xffffff {
		panic(fmt.Sprintf("color: hex code %#x out of range", hex))
	}
	return NewTrueColor(uint8(hex>>16), uint8(hex>>8), uint8(hex))
}

// The HTML named colors, prefixed to avoid colliding with the channel
// indices.
// https://en.wikipedia.org/wiki/Web_colors#HTML_color_names
var (
	HTMLAqua    = HexColor(0x00ffff)
	HTMLBlack   = HexColor(0x000000)
	HTMLBlue    = HexColor(0x0000ff)
	HTMLFuchsia = HexColor(0xff00ff)
	HTMLGray    = HexColor(0x808080)
	HTMLGreen   = HexColor(0x008000)
	HTMLLime    = HexColor(0x00ff00)
	HTMLMaroon  = HexColor(0x800000)
	HTMLNavy    = HexColor(0x000080)
	HTMLOlive   = HexColor(0x808000)
	HTMLPurple  = HexColor(0x800080)
	HTMLRed     = HexColor(0xff0000)
	HTMLSilver  = HexColor(0xc0c0c0)
	HTMLTeal    = HexColor(0x008080)
	HTMLWhite   = HexColor(0xffffff)
	HTMLYellow  = HexColor(0xffff00)
)
