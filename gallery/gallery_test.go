package gallery_test

import (
	"testing"

	"github.com/bodgit/gfx/gallery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	idx := gallery.New()

	require.NoError(t, idx.Set(0xdeadbeef, []byte{1, 2, 3}))
	assert.Equal(t, 1, idx.Length())

	// Setting the same CRC again is a no-op
	require.NoError(t, idx.Set(0xdeadbeef, []byte{4, 5, 6}))
	assert.Equal(t, 1, idx.Length())
	assert.Equal(t, []byte{1, 2, 3}, idx.Thumbnail(0xdeadbeef))

	assert.Nil(t, idx.Thumbnail(0xcafef00d))

	assert.Error(t, idx.Set(0x01, nil))
}

func TestRoundTrip(t *testing.T) {
	idx := gallery.New()
	require.NoError(t, idx.Set(0xdeadbeef, []byte{1, 2, 3}))
	require.NoError(t, idx.Set(0x00000001, []byte{4, 5}))
	require.NoError(t, idx.Set(0xffffffff, []byte{6}))

	b, err := idx.MarshalBinary()
	require.NoError(t, err)

	out := gallery.New()
	require.NoError(t, out.UnmarshalBinary(b))

	assert.Equal(t, 3, out.Length())
	assert.Equal(t, []byte{1, 2, 3}, out.Thumbnail(0xdeadbeef))
	assert.Equal(t, []byte{4, 5}, out.Thumbnail(0x00000001))
	assert.Equal(t, []byte{6}, out.Thumbnail(0xffffffff))
}

func TestUnmarshalErrors(t *testing.T) {
	tables := []struct {
		name string
		in   []byte
	}{
		{"empty", nil},
		{"truncated header", []byte{0x01}},
		{"truncated entries", []byte{0x01, 0x00, 0xef}},
		{"missing thumbnails", []byte{0x01, 0x00, 0xef, 0xbe, 0xad, 0xde, 0x00, 0x00}},
		{"truncated thumbnail", []byte{
			0x01, 0x00, // one entry
			0xef, 0xbe, 0xad, 0xde, 0x00, 0x00, // crc + offset
			0x01, 0x00, // one thumbnail
			0x04, 0x00, 0x00, 0x00, // four bytes long
			0x01, 0x02, // but only two present
		}},
		{"dangling offset", []byte{
			0x01, 0x00,
			0xef, 0xbe, 0xad, 0xde, 0x01, 0x00, // offset 1
			0x01, 0x00, // only one thumbnail
			0x01, 0x00, 0x00, 0x00,
			0xaa,
		}},
	}

	for _, table := range tables {
		assert.Error(t, gallery.New().UnmarshalBinary(table.in), table.name)
	}
}
