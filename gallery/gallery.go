/*
Package gallery implements the small sidecar index written to each scanned
directory that contains PPM images, mapping the CRC of every image file to
its encoded thumbnail.
*/
package gallery

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

const (
	// Filename is the expected filename used when writing to disk
	Filename   = "gallery.dbs"
	maxEntries = 1024

	// maxThumbSize bounds a single encoded thumbnail; anything larger is
	// corrupt
	maxThumbSize = 1 << 16
)

// Index is the gallery index object. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Index struct {
	checksums  map[uint32]uint16
	thumbnails [][]byte
}

// New returns an empty gallery index
func New() *Index {
	return &Index{
		checksums: make(map[uint32]uint16),
	}
}

// Length returns the number of checksums in the index
func (idx *Index) Length() int {
	return len(idx.checksums)
}

// Set stores the provided encoded thumbnail for the given CRC
func (idx *Index) Set(crc uint32, thumbnail []byte) error {
	if len(thumbnail) == 0 || len(thumbnail) > maxThumbSize {
		return errors.New("incorrect length")
	}
	if _, ok := idx.checksums[crc]; !ok {
		idx.thumbnails = append(idx.thumbnails, thumbnail)
		idx.checksums[crc] = uint16(len(idx.thumbnails) - 1)
	}
	return nil
}

// Thumbnail returns the encoded thumbnail stored for the given CRC, or nil
// when the CRC is not in the index
func (idx *Index) Thumbnail(crc uint32) []byte {
	i, ok := idx.checksums[crc]
	if !ok {
		return nil
	}
	return idx.thumbnails[i]
}

// MarshalBinary encodes the index into binary form and returns the result
func (idx *Index) MarshalBinary() ([]byte, error) {
	length := len(idx.checksums)

	if length > maxEntries {
		return nil, fmt.Errorf("more than %d entries", maxEntries)
	}

	keys := make([]uint32, 0, len(idx.checksums))
	for k := range idx.checksums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	b := new(bytes.Buffer)

	if err := binary.Write(b, binary.LittleEndian, uint16(length)); err != nil {
		return nil, err
	}

	// Write out CRC values and thumbnail offsets in CRC order
	for _, k := range keys {
		if err := binary.Write(b, binary.LittleEndian, k); err != nil {
			return nil, err
		}
		v := idx.checksums[k]
		if err := binary.Write(b, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}

	// Write out length-prefixed thumbnails
	if err := binary.Write(b, binary.LittleEndian, uint16(len(idx.thumbnails))); err != nil {
		return nil, err
	}
	for _, t := range idx.thumbnails {
		if err := binary.Write(b, binary.LittleEndian, uint32(len(t))); err != nil {
			return nil, err
		}
		if _, err := b.Write(t); err != nil {
			return nil, err
		}
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the index from binary form
func (idx *Index) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	idx.checksums = make(map[uint32]uint16)
	idx.thumbnails = nil

	var length uint16
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return err
	}
	if int(length) > maxEntries {
		return fmt.Errorf("more than %d entries", maxEntries)
	}

	for i := 0; i < int(length); i++ {
		var (
			crc    uint32
			offset uint16
		)
		if err := binary.Read(r, binary.LittleEndian, &crc); err != nil {
			return err
		}
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return err
		}
		idx.checksums[crc] = offset
	}

	var thumbnails uint16
	if err := binary.Read(r, binary.LittleEndian, &thumbnails); err != nil {
		return err
	}

	for i := 0; i < int(thumbnails); i++ {
		var size uint32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return err
		}
		if size == 0 || size > maxThumbSize {
			return errors.New("incorrect length")
		}
		t := make([]byte, size)
		if n, err := r.Read(t); n != int(size) || err != nil {
			return errors.New("insufficient data")
		}
		idx.thumbnails = append(idx.thumbnails, t)
	}

	for _, offset := range idx.checksums {
		if int(offset) >= len(idx.thumbnails) {
			return errors.New("invalid thumbnail offset")
		}
	}

	return nil
}
