package ppm_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/gfx/color"
	"github.com/bodgit/gfx/image"
	"github.com/bodgit/gfx/ppm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.TrueColorImage {
	m := image.New(2, 2, color.TrueColorRGB{})
	m.SetPixel(0, 0, color.NewTrueColor(1, 2, 3))
	m.SetPixel(1, 0, color.NewTrueColor(4, 5, 6))
	m.SetPixel(0, 1, color.NewTrueColor(250, 251, 252))
	m.SetPixel(1, 1, color.NewTrueColor(253, 254, 255))
	return m
}

func TestEncodeBinary(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, ppm.Encode(b, testImage(), true))

	expected := append([]byte("P6 2 2 255\n"), 1, 2, 3, 4, 5, 6, 250, 251, 252, 253, 254, 255)
	assert.Equal(t, expected, b.Bytes())
}

func TestEncodeText(t *testing.T) {
	b := new(bytes.Buffer)
	require.NoError(t, ppm.Encode(b, testImage(), false))

	expected := "P3 2 2 255\n 1 2 3 4 5 6\n 250 251 252 253 254 255\n"
	assert.Equal(t, expected, b.String())
}

func TestEncodeEmpty(t *testing.T) {
	var m image.TrueColorImage
	assert.Error(t, ppm.Encode(new(bytes.Buffer), &m, true))
}

func TestRoundTrip(t *testing.T) {
	for _, binary := range []bool{true, false} {
		b := new(bytes.Buffer)
		require.NoError(t, ppm.Encode(b, testImage(), binary))

		m, err := ppm.Decode(b)
		require.NoError(t, err)
		assert.True(t, m.Equal(testImage()))
	}
}

func TestDecodeComments(t *testing.T) {
	in := "P3\n# a comment\n2 # width\n# then the height\n1\n255\n 10 20 30 40 50 60\n"

	m, err := ppm.Decode(strings.NewReader(in))
	require.NoError(t, err)

	require.Equal(t, 2, m.Width())
	require.Equal(t, 1, m.Height())
	assert.Equal(t, color.NewTrueColor(10, 20, 30), m.Pixel(0, 0))
	assert.Equal(t, color.NewTrueColor(40, 50, 60), m.Pixel(1, 0))
}

func TestDecodeMaxValRescale(t *testing.T) {
	// Raw samples in [0, maxval] rescale to [0, 255] by multiplying
	// before dividing; 50 * 255 / 100 truncates to 127
	in := "P3 1 1 100\n 50 100 0\n"

	m, err := ppm.Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, color.NewTrueColor(127, 255, 0), m.Pixel(0, 0))
}

func TestDecodeTwoByteSamples(t *testing.T) {
	// maxval above 255 switches to two byte samples, most significant
	// byte first
	in := append([]byte("P6 1 1 65535\n"), 0xff, 0xff, 0x80, 0x00, 0x00, 0x00)

	m, err := ppm.Decode(bytes.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, color.NewTrueColor(255, 127, 0), m.Pixel(0, 0))
}

func TestDecodeSingleWhitespaceAfterMaxVal(t *testing.T) {
	// A comment is not permitted where the single whitespace byte
	// terminating the header is required
	_, err := ppm.Decode(strings.NewReader("P3 1 1 255# comment\n 1 2 3\n"))
	assert.Error(t, err)

	// Additional whitespace beyond the first byte belongs to the sample
	// data, which text parsing tolerates
	m, err := ppm.Decode(strings.NewReader("P3 1 1 255\n\n  1 2 3\n"))
	require.NoError(t, err)
	assert.Equal(t, color.NewTrueColor(1, 2, 3), m.Pixel(0, 0))
}

func TestDecodeErrors(t *testing.T) {
	tables := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"bad magic", "P5 1 1 255\n\x00"},
		{"zero width", "P3 0 1 255\n"},
		{"zero height", "P6 1 0 255\n"},
		{"zero maxval", "P3 1 1 0\n 1 2 3\n"},
		{"maxval too large", "P6 1 1 65536\n"},
		{"missing width", "P3\n"},
		{"truncated binary data", "P6 2 2 255\n\x01\x02\x03"},
		{"truncated text data", "P3 2 2 255\n 1 2 3\n"},
		{"sample exceeds maxval", "P3 1 1 100\n 101 0 0\n"},
		{"non-numeric sample", "P3 1 1 255\n x 2 3\n"},
		// The dimension bound must reject the header before any pixel
		// storage is allocated
		{"absurd dimensions", "P6 1000000000 1000000000 255\n"},
		{"absurd width", "P6 1000000000 1 255\n"},
	}

	for _, table := range tables {
		m, err := ppm.Decode(strings.NewReader(table.in))
		assert.Error(t, err, table.name)
		// No partial image is ever returned
		assert.Nil(t, m, table.name)
	}
}

func TestDecodeConfig(t *testing.T) {
	in := "P6 640 480 1023\n"

	c, err := ppm.DecodeConfig(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, ppm.Config{Width: 640, Height: 480, MaxVal: 1023}, c)
}

func TestReadWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ppm")

	require.NoError(t, ppm.WriteFile(path, testImage(), true))

	m, err := ppm.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, m.Equal(testImage()))

	_, err = ppm.ReadFile(filepath.Join(dir, "missing.ppm"))
	assert.True(t, os.IsNotExist(err))
}
