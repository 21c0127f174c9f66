/*
Package ppm implements a Portable PixMap (PPM) image decoder and encoder
for both the binary "raw" P6 and the textual "plain" P3 variants.

The format is documented at http://netpbm.sourceforge.net/doc/ppm.html. The
header consists of a two byte magic value, then width, height and maxval as
decimal integers separated by whitespace and optional '#' comments running
to end of line, terminated by exactly one whitespace byte. Binary samples
are one byte each when maxval is below 256, otherwise two bytes with the
most significant byte first. Text samples are whitespace-separated decimal
integers. Every sample is rescaled from [0, maxval] to [0, 255] on decode.
*/
package ppm

import (
	"bufio"
	"errors"
	"io"

	"github.com/bodgit/gfx/color"
	"github.com/bodgit/gfx/image"
)

const (
	maxMaxVal = 65535

	// maxPixels bounds the decoded image size; the check runs before any
	// pixel storage is allocated, so a header advertising absurd
	// dimensions is a decode error rather than a huge allocation
	maxPixels = 1 << 26
)

var (
	errBadMagic  = errors.New("ppm: invalid magic value")
	errBadHeader = errors.New("ppm: invalid header")
	errRange     = errors.New("ppm: header field out of range")
	errBadSample = errors.New("ppm: sample exceeds maxval")
	errNotEnough = errors.New("ppm: not enough image data")
)

// Config holds the header of a PPM file.
type Config struct {
	Width  int
	Height int
	MaxVal int
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

type decoder struct {
	br *bufio.Reader

	binary bool
	config Config

	image *image.TrueColorImage
}

// skipWhitespace consumes a run of whitespace bytes and reports whether any
// were consumed.
func (d *decoder) skipWhitespace() (bool, error) {
	matched := false
	for {
		b, err := d.br.ReadByte()
		if err == io.EOF {
			return matched, nil
		}
		if err != nil {
			return matched, err
		}
		if !isSpace(b) {
			if err := d.br.UnreadByte(); err != nil {
				return matched, err
			}
			return matched, nil
		}
		matched = true
	}
}

// skipComments consumes a run of '#' comments, each extending to end of
// line, and reports whether any were consumed.
func (d *decoder) skipComments() (bool, error) {
	matched := false
	for {
		b, err := d.br.ReadByte()
		if err == io.EOF {
			return matched, nil
		}
		if err != nil {
			return matched, err
		}
		if b != '#' {
			if err := d.br.UnreadByte(); err != nil {
				return matched, err
			}
			return matched, nil
		}
		if _, err := d.br.ReadString('\n'); err != nil && err != io.EOF {
			return matched, err
		}
		matched = true
	}
}

// Whitespace and comments may interleave in any combination between header
// tokens.
func (d *decoder) skipWhitespaceAndComments() error {
	for {
		ws, err := d.skipWhitespace()
		if err != nil {
			return err
		}
		c, err := d.skipComments()
		if err != nil {
			return err
		}
		if !ws && !c {
			return nil
		}
	}
}

// readInt reads a decimal integer token, without consuming the byte that
// ends it.
func (d *decoder) readInt() (int, error) {
	n, digits := 0, 0
	for {
		b, err := d.br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
		if b < '0' || b > '9' {
			if err := d.br.UnreadByte(); err != nil {
				return 0, err
			}
			break
		}
		n = n*10 + int(b-'0')
		if n > 1<<30 {
			return 0, errRange
		}
		digits++
	}
	if digits == 0 {
		return 0, errBadHeader
	}
	return n, nil
}

func (d *decoder) readHeader() error {
	var magic [2]byte
	if err := readFull(d.br, magic[:]); err != nil {
		return errBadMagic
	}

	switch string(magic[:]) {
	case "P6":
		d.binary = true
	case "P3":
		d.binary = false
	default:
		return errBadMagic
	}

	for _, field := range []*int{&d.config.Width, &d.config.Height, &d.config.MaxVal} {
		if err := d.skipWhitespaceAndComments(); err != nil {
			return err
		}
		n, err := d.readInt()
		if err != nil {
			return err
		}
		*field = n
	}

	// Exactly one whitespace byte separates maxval from the sample data;
	// comments are not permitted here.
	b, err := d.br.ReadByte()
	if err != nil || !isSpace(b) {
		return errBadHeader
	}

	if d.config.Width <= 0 || d.config.Height <= 0 || d.config.MaxVal <= 0 || d.config.MaxVal > maxMaxVal {
		return errRange
	}

	// Division rather than multiplication avoids overflowing int
	if d.config.Width > maxPixels/d.config.Height {
		return errRange
	}

	return nil
}

// readSample returns the next raw sample in [0, maxval].
func (d *decoder) readSample() (int, error) {
	var raw int
	if d.binary {
		if d.config.MaxVal < 256 {
			var b [1]byte
			if err := readFull(d.br, b[:]); err != nil {
				return 0, errNotEnough
			}
			raw = int(b[0])
		} else {
			// Two byte sample, most significant byte first.
			var b [2]byte
			if err := readFull(d.br, b[:]); err != nil {
				return 0, errNotEnough
			}
			raw = int(b[0])<<8 | int(b[1])
		}
	} else {
		if _, err := d.skipWhitespace(); err != nil {
			return 0, err
		}
		n, err := d.readInt()
		if err != nil {
			if err == errBadHeader {
				err = errNotEnough
			}
			return 0, err
		}
		raw = n
	}

	if raw > d.config.MaxVal {
		return 0, errBadSample
	}
	return raw, nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.br = bufio.NewReader(r)

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	d.image = image.New(d.config.Width, d.config.Height, color.TrueColorRGB{})

	for y := 0; y < d.config.Height; y++ {
		for x := 0; x < d.config.Width; x++ {
			var p color.TrueColorRGB
			for i := color.Red; i <= color.Blue; i++ {
				raw, err := d.readSample()
				if err != nil {
					return err
				}
				// Rescale from [0, maxval] to [0, 255]
				p.Set(i, uint8((raw*255)/d.config.MaxVal))
			}
			d.image.SetPixel(x, y, p)
		}
	}

	return nil
}

// Decode reads a PPM image from r and returns it as a TrueColorImage. No
// partially decoded image is ever returned; on any error the result is nil.
func Decode(r io.Reader) (*image.TrueColorImage, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the dimensions and maxval of a PPM image without
// decoding any pixel data.
func DecodeConfig(r io.Reader) (Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return Config{}, err
	}
	return d.config, nil
}
