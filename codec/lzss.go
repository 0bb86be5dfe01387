package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/woozymasta/assetlz"
)

// LZSS:8bit format constants.
const (
	WindowSize      = 4096 // Sliding window size (12-bit offset).
	MaxMatch        = 18   // Maximum back-reference length with MinMatchDefault (3..18).
	MinMatchDefault = 3    // Length nibble bias.
	MinMatch2       = 2    // Length nibble bias of the 2..17 variant.
	Filler          = 0x20 // Fill byte when back-reference offset is before start of output.
	FlagBits        = 8    // Bits per flag byte (one flag byte per 8 slots: literal or pointer).
)

// LZSS returns the LZSS:8bit format: one flag byte per 8 slots read LSB first, bit 1 is a
// literal byte, bit 0 a 2-byte pointer [offset_lo8, offset_hi4<<4 | length-minMatch].
// Offsets reaching before the start of the output read Filler bytes, and a pointer in the
// last group may run past the end of the data, so it is cut to the remaining capacity.
func LZSS(minMatch int) assetlz.Format {
	if minMatch <= 0 {
		minMatch = MinMatchDefault
	}

	return assetlz.Format{
		Name:  fmt.Sprintf("lzss%d", minMatch),
		Order: assetlz.LSBFirst,
		NewClassifier: func() assetlz.Classifier {
			return &lzssClassifier{minMatch: minMatch}
		},
	}
}

type lzssClassifier struct {
	minMatch int
	pending  assetlz.Token // Back-reference left over after a Filler run.
	hasNext  bool
}

func (c *lzssClassifier) Classify(br *assetlz.BitReader, out *assetlz.Output) (assetlz.Token, error) {
	if c.hasNext {
		c.hasNext = false
		return c.pending, nil
	}

	flag, err := br.ReadBit()
	if err != nil {
		return assetlz.Token{}, err
	}
	if flag == 1 {
		return assetlz.Literal(1), nil
	}

	lo, err := br.NextByte()
	if err != nil {
		return assetlz.Token{}, err
	}
	hi, err := br.NextByte()
	if err != nil {
		return assetlz.Token{}, err
	}

	offset := int(lo) | int(hi&0xF0)<<4
	length := min(int(hi&0x0F)+c.minMatch, out.Remaining())
	if offset == 0 {
		return assetlz.Token{}, fmt.Errorf("%w: zero offset", assetlz.ErrInvalidBackReference)
	}

	// The window starts out as Filler; bytes before the output start read as Filler and
	// the rest of the match continues from the same offset.
	if before := offset - out.Cursor(); before > 0 {
		fill := min(before, length)
		if rest := length - fill; rest > 0 {
			c.pending = assetlz.BackRef(offset, rest)
			c.hasNext = true
		}

		return assetlz.Fill(Filler, fill), nil
	}

	return assetlz.BackRef(offset, length), nil
}

// DecompressLZSS decompresses one LZSS:8bit block with its trailing 4-byte checksum.
// Options nil means DefaultLZSSOptions (unsigned checksum, strict verification).
func DecompressLZSS(src []byte, outLen int, opts *LZSSOptions) ([]byte, error) {
	out, consumed, err := DecompressLZSSBlock(src, outLen, opts)
	if err != nil {
		return nil, err
	}
	if consumed != len(src) {
		return nil, fmt.Errorf("%w: consumed=%d input=%d", assetlz.ErrTrailingData, consumed, len(src))
	}

	return out, nil
}

// DecompressLZSSBlock decodes one block and its checksum from the beginning of src and
// returns the number of consumed bytes. Bytes after the checksum are ignored.
func DecompressLZSSBlock(src []byte, outLen int, opts *LZSSOptions) ([]byte, int, error) {
	if len(src) < 4 {
		return nil, 0, ErrInputTooShort
	}

	out, consumed, err := decodeLZSS(bytes.NewReader(src), outLen, opts)

	return out, int(consumed), err
}

// DecompressLZSSFromReader decodes one block and its checksum from r and returns the
// number of consumed bytes. Reading stops right after the checksum when r implements
// io.ByteReader; other readers are buffered and may be read further.
func DecompressLZSSFromReader(r io.Reader, outLen int, opts *LZSSOptions) ([]byte, int64, error) {
	if r == nil {
		return nil, 0, assetlz.ErrNilReader
	}

	return decodeLZSS(r, outLen, opts)
}

func decodeLZSS(r io.Reader, outLen int, opts *LZSSOptions) ([]byte, int64, error) {
	if opts == nil {
		opts = DefaultLZSSOptions()
	}
	if outLen < 0 {
		return nil, 0, ErrNegativeOutLen
	}

	dec, err := assetlz.NewDecoder(r, outLen, LZSS(opts.minMatch()), nil)
	if err != nil {
		return nil, 0, err
	}
	if _, err := dec.Fill(outLen); err != nil {
		return nil, dec.BitReader().Offset(), err
	}
	out := dec.Bytes()

	trailer := make([]byte, 4)
	if err := dec.BitReader().ReadFull(trailer); err != nil {
		return nil, dec.BitReader().Offset(), ErrInputTooShort
	}
	consumed := dec.BitReader().Offset()

	if opts.VerifyChecksum {
		got := checksum(out, opts.Checksum)
		want := binary.LittleEndian.Uint32(trailer)
		if got != want {
			return nil, consumed, fmt.Errorf("%w: got=0x%x expected=0x%x", ErrChecksumMismatch, got, want)
		}
	}

	return out, consumed, nil
}
