package assetlz

import (
	"bufio"
	"io"
)

// sliceByteReader reads from a byte slice.
type sliceByteReader struct {
	data []byte // The byte slice to read from.
	pos  int    // The current position in the byte slice.
}

// ReadByte reads a byte from the slice.
func (r *sliceByteReader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}

	b := r.data[r.pos]
	r.pos++

	return b, nil
}

// byteReaderOf returns r itself when it already reads bytes, otherwise a buffered wrapper.
func byteReaderOf(r io.Reader) io.ByteReader {
	switch v := r.(type) {
	case io.ByteReader:
		return v
	case nil:
		return nil
	default:
		return bufio.NewReader(r)
	}
}
