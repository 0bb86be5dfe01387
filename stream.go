package assetlz

import (
	"bufio"
	"io"
)

// Reader exposes a decode session as a forward-only io.Reader.
// Rewinding means opening a new session from the compressed offset again.
type Reader struct {
	dec *Decoder
	pos int // Bytes of served output already copied to the caller.
}

// NewReader returns a Reader decoding r with format f into capacity units.
// Options nil means DefaultOptions().
func NewReader(r io.Reader, capacity int, f Format, opts *Options) (*Reader, error) {
	dec, err := NewDecoder(r, capacity, f, opts)
	if err != nil {
		return nil, err
	}

	return &Reader{dec: dec}, nil
}

// ReaderFrom wraps an existing session.
func ReaderFrom(dec *Decoder) *Reader {
	return &Reader{dec: dec, pos: len(dec.Bytes())}
}

// Read decodes just enough units to satisfy p and copies them out.
// It returns 0, io.EOF once the stream is exhausted.
func (r *Reader) Read(p []byte) (int, error) {
	if r.dec.state == stateClosed {
		return 0, ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}

	staged := r.dec.Bytes()
	if r.pos == len(staged) {
		unit := r.dec.UnitSize()
		if _, err := r.dec.Fill((len(p) + unit - 1) / unit); err != nil {
			return 0, err
		}
		staged = r.dec.Bytes()
	}

	n := copy(p, staged[r.pos:])
	r.pos += n

	return n, nil
}

// Size returns the decompressed size in bytes when the stream runs to capacity.
func (r *Reader) Size() int64 {
	return int64(r.dec.Capacity()) * int64(r.dec.UnitSize())
}

// Decoder returns the underlying session.
func (r *Reader) Decoder() *Decoder { return r.dec }

// Close ends the session and releases its buffer. Later reads return ErrClosed.
func (r *Reader) Close() error {
	r.pos = 0

	return r.dec.Close()
}

// Entry describes one compressed member of a container: a byte range of a shared source
// plus the header-validated output capacity. Every Open starts an independent session
// with its own cursor, so entries of one source can be unpacked from several goroutines.
type Entry struct {
	Source   io.ReaderAt
	Offset   int64 // Start of the compressed data in Source.
	Length   int64 // Size of the compressed data.
	Capacity int   // Decompressed size in units.
	Format   Format
	Options  *Options
}

// Open starts a new decode session for the entry.
func (e *Entry) Open() (*Reader, error) {
	if e.Source == nil {
		return nil, ErrNilReader
	}
	section := io.NewSectionReader(e.Source, e.Offset, e.Length)

	return NewReader(bufio.NewReader(section), e.Capacity, e.Format, e.Options)
}

// ReadAll opens the entry and decodes it completely.
func (e *Entry) ReadAll() ([]byte, error) {
	r, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
