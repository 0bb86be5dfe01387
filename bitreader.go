package assetlz

import (
	"errors"
	"fmt"
	"io"
)

// BitReader is a bit-level cursor over a byte source.
//
// Bits are taken from one buffered byte at a time; a new source byte is pulled only when
// the buffered byte is exhausted. Whole bytes (NextByte, ReadFull) come straight from the
// byte cursor and do not disturb a partially consumed bit byte, which is how flag-byte
// formats interleave control bits with data bytes.
type BitReader struct {
	src   io.ByteReader
	order BitOrder
	cur   byte  // Byte the bits are taken from.
	left  uint  // Unread bits in cur, 0..8.
	peek  byte  // Lookahead byte for PeekByte.
	ahead bool  // True when peek holds an unconsumed byte.
	n     int64 // Bytes consumed from src, not counting a pending lookahead.
}

// NewBitReader returns a BitReader reading from r in the given bit order.
// Readers that do not implement io.ByteReader are wrapped in a bufio.Reader.
func NewBitReader(r io.Reader, order BitOrder) *BitReader {
	return newBitReader(byteReaderOf(r), order)
}

func newBitReader(src io.ByteReader, order BitOrder) *BitReader {
	return &BitReader{src: src, order: order}
}

// Order returns the configured bit order.
func (r *BitReader) Order() BitOrder { return r.order }

// Offset returns the number of source bytes consumed so far.
func (r *BitReader) Offset() int64 { return r.n }

// Buffered returns the number of unread bits left in the current byte.
func (r *BitReader) Buffered() uint { return r.left }

// next pulls one byte from the source. Source exhaustion is reported as ErrUnexpectedEOF.
func (r *BitReader) next() (byte, error) {
	if r.ahead {
		r.ahead = false
		r.n++

		return r.peek, nil
	}

	b, err := r.src.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrUnexpectedEOF
		}

		return 0, err
	}
	r.n++

	return b, nil
}

// ReadBit returns the next bit (0 or 1).
func (r *BitReader) ReadBit() (uint32, error) {
	if r.left == 0 {
		b, err := r.next()
		if err != nil {
			return 0, err
		}
		r.cur = b
		r.left = 8
	}

	r.left--
	if r.order == LSBFirst {
		return uint32(r.cur>>(7-r.left)) & 1, nil
	}

	return uint32(r.cur>>r.left) & 1, nil
}

// ReadBits reads n bits (0..32) and composes them in the configured order.
// For MSBFirst the first bit read is the highest bit of the result, for LSBFirst the lowest.
func (r *BitReader) ReadBits(n uint) (uint32, error) {
	if n > 32 {
		return 0, fmt.Errorf("%w: n=%d", ErrBitCount, n)
	}

	var v uint32
	for i := uint(0); i < n; i++ {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if r.order == LSBFirst {
			v |= bit << i
		} else {
			v = v<<1 | bit
		}
	}

	return v, nil
}

// NextByte returns the next whole byte from the byte cursor.
func (r *BitReader) NextByte() (byte, error) {
	return r.next()
}

// ReadFull fills p from the byte cursor.
func (r *BitReader) ReadFull(p []byte) error {
	for i := range p {
		b, err := r.next()
		if err != nil {
			return err
		}
		p[i] = b
	}

	return nil
}

// PeekByte returns the next source byte without consuming it.
// It returns io.EOF when the source is cleanly exhausted.
func (r *BitReader) PeekByte() (byte, error) {
	if r.ahead {
		return r.peek, nil
	}

	b, err := r.src.ReadByte()
	if err != nil {
		return 0, err
	}
	r.peek = b
	r.ahead = true

	return b, nil
}

// Align discards the unread bits of the current byte.
func (r *BitReader) Align() {
	r.left = 0
}
