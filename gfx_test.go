package gfx

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodgit/gfx/color"
	"github.com/bodgit/gfx/gallery"
	"github.com/bodgit/gfx/image"
	"github.com/bodgit/gfx/ppm"
	"github.com/bodgit/gfx/thumb"
)

func TestCRCString(t *testing.T) {
	assert.Equal(t, "00000000", crcString(0))
	assert.Equal(t, "DEADBEEF", crcString(0xdeadbeef))
	assert.Equal(t, "0000ABCD", crcString(0xabcd))
}

func TestCRCFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "check")
	require.NoError(t, os.WriteFile(file, []byte("123456789"), 0644))

	crc, err := crcFile(file)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xcbf43926), crc)

	_, err = crcFile(filepath.Join(t.TempDir(), "nonexistent"))
	assert.Error(t, err)
}

func TestImageDB(t *testing.T) {
	db, err := NewImageDB(filepath.Join(t.TempDir(), "gfx.db"))
	require.NoError(t, err)
	defer db.Close()

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, db.AddImage("/a.ppm", 2, 2, "DEADBEEF", []byte{1, 2, 3}))
	require.NoError(t, db.AddImage("/b.ppm", 4, 4, "CAFEF00D", []byte{4, 5, 6}))

	// Same path replaces the existing row
	require.NoError(t, db.AddImage("/a.ppm", 3, 3, "0BADF00D", []byte{7, 8, 9}))

	n, err = db.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	b, err := db.FindThumbnailByCRC("0BADF00D")
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 8, 9}, b)

	b, err = db.FindThumbnailByCRC("DEADBEEF")
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	nested := filepath.Join(sub, "nested")
	require.NoError(t, os.Mkdir(nested, 0755))

	writePPM := func(file string, p color.TrueColorRGB) {
		require.NoError(t, ppm.WriteFile(file, image.New(8, 8, p), true))
	}

	writePPM(filepath.Join(dir, "red.ppm"), color.HTMLRed)
	writePPM(filepath.Join(dir, "blue.ppm"), color.HTMLBlue)
	writePPM(filepath.Join(sub, "lime.ppm"), color.HTMLLime)
	writePPM(filepath.Join(nested, "teal.ppm"), color.HTMLTeal)

	// Not decodable, should be logged and skipped
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.ppm"), []byte("P6 garbage"), 0644))
	// A header advertising absurd dimensions is also just skipped
	require.NoError(t, os.WriteFile(filepath.Join(dir, "huge.ppm"), []byte("P6 1000000000 1000000000 255\n"), 0644))
	// Wrong extension, should be ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))

	db, err := NewImageDB(filepath.Join(t.TempDir(), "gfx.db"))
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	l := New(db, log.New(&buf, "", 0))

	require.NoError(t, l.Scan(dir))

	n, err := db.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.Contains(t, buf.String(), "broken.ppm")
	assert.Contains(t, buf.String(), "huge.ppm")

	// Each directory containing images gains a fully written gallery index
	for _, d := range []string{dir, sub, nested} {
		b, err := os.ReadFile(filepath.Join(d, gallery.Filename))
		require.NoError(t, err)

		idx := gallery.New()
		require.NoError(t, idx.UnmarshalBinary(b))
		assert.NotZero(t, idx.Length())
	}

	// The catalogued thumbnail decodes and preserves the image
	crc, err := crcFile(filepath.Join(dir, "red.ppm"))
	require.NoError(t, err)

	b, err := db.FindThumbnailByCRC(crcString(crc))
	require.NoError(t, err)
	require.NotNil(t, b)

	m, err := thumb.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 8, m.Width())
	assert.Equal(t, 8, m.Height())
	assert.True(t, m.Pixel(0, 0).AlmostEqual(color.HTMLRed, 1))
}

func TestScanMissingPath(t *testing.T) {
	db, err := NewImageDB(filepath.Join(t.TempDir(), "gfx.db"))
	require.NoError(t, err)
	defer db.Close()

	l := New(db, log.New(io.Discard, "", 0))

	assert.Error(t, l.Scan(filepath.Join(t.TempDir(), "nonexistent")))
}
