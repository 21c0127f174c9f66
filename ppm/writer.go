package ppm

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/gfx/image"
)

var errEmptyImage = errors.New("ppm: empty image")

type encoder struct {
	bw *bufio.Writer

	binary bool
}

func (e *encoder) writeHeader(m *image.TrueColorImage) error {
	magic := "P3"
	if e.binary {
		magic = "P6"
	}

	// Maxval is hardcoded to 255.
	_, err := fmt.Fprintf(e.bw, "%s %d %d %d\n", magic, m.Width(), m.Height(), 255)
	return err
}

func (e *encoder) encode(m *image.TrueColorImage) error {
	if err := e.writeHeader(m); err != nil {
		return err
	}

	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			p := m.Pixel(x, y)
			if e.binary {
				if _, err := e.bw.Write([]byte{p.Red(), p.Green(), p.Blue()}); err != nil {
					return err
				}
			} else {
				// A space precedes every sample, including the first
				// of each row
				if _, err := fmt.Fprintf(e.bw, " %d %d %d", p.Red(), p.Green(), p.Blue()); err != nil {
					return err
				}
			}
		}
		if !e.binary {
			if err := e.bw.WriteByte('\n'); err != nil {
				return err
			}
		}
	}

	return e.bw.Flush()
}

// Encode writes the image m, which must not be empty, to w. When binary is
// true the more compact P6 variant is used, otherwise the textual P3
// variant.
func Encode(w io.Writer, m *image.TrueColorImage, binary bool) error {
	if m.Empty() {
		return errEmptyImage
	}
	e := encoder{bw: bufio.NewWriter(w), binary: binary}
	return e.encode(m)
}
