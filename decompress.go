package assetlz

import (
	"fmt"
	"io"
)

// Decompress decodes src into a new buffer of capacity units using format f.
// Options nil means DefaultOptions (trailing bytes rejected).
// If the format ends with an in-band terminator before capacity, the result is shorter.
func Decompress(src []byte, capacity int, f Format, opts *Options) ([]byte, error) {
	out, consumed, err := DecompressBlock(src, capacity, f, opts)
	if err != nil {
		return nil, err
	}

	if (opts == nil || !opts.AllowTrailing) && consumed != len(src) {
		return nil, fmt.Errorf("%w: consumed=%d input=%d", ErrTrailingData, consumed, len(src))
	}

	return out, nil
}

// DecompressBlock decodes one token stream from the beginning of src.
// It returns the decoded bytes and the number of consumed input bytes.
// Unlike Decompress, this function ignores trailing bytes after the stream.
func DecompressBlock(src []byte, capacity int, f Format, opts *Options) ([]byte, int, error) {
	reader := &sliceByteReader{data: src}
	out, consumed, err := decodeAll(reader, capacity, f, opts)

	return out, int(consumed), err
}

// DecompressFromReader decodes one token stream from r and returns consumed bytes.
// Decoding stops exactly after the last token; r is not read to EOF.
// Readers that do not implement io.ByteReader are buffered, so their position may move further.
func DecompressFromReader(r io.Reader, capacity int, f Format, opts *Options) ([]byte, int64, error) {
	if r == nil {
		return nil, 0, ErrNilReader
	}

	return decodeAll(byteReaderOf(r), capacity, f, opts)
}

// decodeAll runs a session to completion.
func decodeAll(src io.ByteReader, capacity int, f Format, opts *Options) ([]byte, int64, error) {
	dec, err := newDecoder(src, capacity, f, opts)
	if err != nil {
		return nil, 0, err
	}

	if _, err := dec.Fill(capacity); err != nil && err != io.EOF {
		return nil, dec.BitReader().Offset(), err
	}

	return dec.Bytes(), dec.BitReader().Offset(), nil
}
