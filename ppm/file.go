package ppm

import (
	"os"

	"github.com/bodgit/gfx/image"
)

// ReadFile decodes the PPM file at path.
func ReadFile(path string) (*image.TrueColorImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

// WriteFile encodes the image m, which must not be empty, to a PPM file at
// path.
func WriteFile(path string, m *image.TrueColorImage, binary bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, m, binary); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
