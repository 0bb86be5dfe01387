package assetlz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// decoderState is the resumption point of a Decoder. Suspension happens only between
// tokens, so the state plus the BitReader, the classifier and the output cursor is all
// that has to survive between Fill calls.
type decoderState uint8

const (
	stateDecoding decoderState = iota // More tokens may follow.
	stateDone                         // Capacity reached or End token seen.
	stateFailed                       // A token failed; err is sticky.
	stateClosed                       // Close was called.
)

// Decoder is a resumable decode session.
//
// Fill drives the token loop only as far as the caller asks for, so reading a small
// prefix of a large payload costs only the tokens that produce that prefix.
type Decoder struct {
	bits        *BitReader
	classifier  Classifier
	out         *Output
	bitLiterals bool
	endAtEOF    bool
	name        string

	state  decoderState
	err    error
	served int // Units handed to the caller.
	last   int // First unit of the region returned by the latest Fill.
	tokens int

	log *slog.Logger
}

// NewDecoder starts a session decoding r with format f into capacity units.
// Options nil means DefaultOptions().
func NewDecoder(r io.Reader, capacity int, f Format, opts *Options) (*Decoder, error) {
	if r == nil {
		return nil, ErrNilReader
	}

	return newDecoder(byteReaderOf(r), capacity, f, opts)
}

func newDecoder(src io.ByteReader, capacity int, f Format, opts *Options) (*Decoder, error) {
	if f.NewClassifier == nil {
		return nil, ErrNilClassifier
	}
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}

	unit := f.unitSize()
	if unit < 1 || unit > 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUnitSize, unit)
	}
	if limit := opts.maxOutputSize(); capacity > limit/unit {
		return nil, fmt.Errorf("%w: %d units of %d bytes, limit %d bytes", ErrCapacityTooLarge, capacity, unit, limit)
	}

	out, err := NewOutput(capacity, unit)
	if err != nil {
		return nil, err
	}

	classifier := f.NewClassifier()
	if classifier == nil {
		return nil, ErrNilClassifier
	}

	d := &Decoder{
		bits:        newBitReader(src, f.Order),
		classifier:  classifier,
		out:         out,
		bitLiterals: f.BitLiterals,
		endAtEOF:    f.EndAtEOF,
		name:        f.Name,
		log:         opts.logger(),
	}
	if capacity == 0 {
		d.state = stateDone
	}
	d.debug("decode session opened", slog.Int("capacity", capacity), slog.Int("unit", unit))

	return d, nil
}

// Fill decodes until requested units beyond those already served are available, or until
// the stream ends, and serves at most requested of them. The served region is available
// through Last. Fill returns 0, io.EOF once every unit has been served.
// Errors are sticky: after a failure every call returns the same error.
func (d *Decoder) Fill(requested int) (int, error) {
	switch d.state {
	case stateFailed:
		return 0, d.err
	case stateClosed:
		return 0, ErrClosed
	}
	if requested < 0 {
		return 0, ErrNegativeRequest
	}

	for d.state == stateDecoding && d.out.cursor-d.served < requested {
		if err := d.step(); err != nil {
			d.fail(err)
			return 0, err
		}
	}

	n := min(requested, d.out.cursor-d.served)
	d.last = d.served
	d.served += n
	if n == 0 && requested > 0 && d.state == stateDone {
		return 0, io.EOF
	}

	return n, nil
}

// step decodes one token and advances the state.
func (d *Decoder) step() error {
	if d.out.Remaining() == 0 {
		d.finish("capacity")
		return nil
	}
	if d.endAtEOF && d.bits.Buffered() == 0 {
		if _, err := d.bits.PeekByte(); errors.Is(err, io.EOF) {
			d.finish("end of input")
			return nil
		}
	}

	tok, err := DecodeToken(d.bits, d.classifier, d.out, d.bitLiterals)
	if err != nil {
		return fmt.Errorf("%s: unit %d: %w", d.formatName(), d.out.cursor, err)
	}
	d.tokens++

	if d.log != nil && d.log.Enabled(context.Background(), slog.LevelDebug) {
		d.log.Debug("token",
			slog.String("format", d.name),
			slog.String("kind", tok.Kind.String()),
			slog.Int("count", tok.Count),
			slog.Int("offset", tok.Offset),
			slog.Int("cursor", d.out.cursor),
		)
	}

	switch {
	case tok.Kind == KindEnd:
		d.finish("end token")
	case d.out.Remaining() == 0:
		d.finish("capacity")
	}

	return nil
}

func (d *Decoder) finish(reason string) {
	d.state = stateDone
	d.debug("decode session finished",
		slog.String("reason", reason),
		slog.Int("units", d.out.cursor),
		slog.Int("tokens", d.tokens),
		slog.Int64("consumed", d.bits.Offset()),
	)
}

func (d *Decoder) fail(err error) {
	d.state = stateFailed
	d.err = err
	d.debug("decode session failed", slog.String("error", err.Error()))
}

func (d *Decoder) debug(msg string, attrs ...slog.Attr) {
	if d.log == nil {
		return
	}
	attrs = append(attrs, slog.String("format", d.name))
	d.log.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

func (d *Decoder) formatName() string {
	if d.name == "" {
		return "assetlz"
	}

	return d.name
}

// Last returns the bytes served by the latest Fill. The slice aliases the output buffer.
func (d *Decoder) Last() []byte {
	if d.state == stateClosed {
		return nil
	}
	u := d.out.unit

	return d.out.buf[d.last*u : d.served*u]
}

// Bytes returns every byte served so far. The slice aliases the output buffer.
func (d *Decoder) Bytes() []byte {
	if d.state == stateClosed {
		return nil
	}

	return d.out.buf[:d.served*d.out.unit]
}

// Served returns the number of units handed out by Fill.
func (d *Decoder) Served() int { return d.served }

// Produced returns the number of units decoded so far, served or not.
func (d *Decoder) Produced() int { return d.out.cursor }

// Capacity returns the output capacity in units.
func (d *Decoder) Capacity() int { return d.out.Capacity() }

// UnitSize returns the number of bytes per output unit.
func (d *Decoder) UnitSize() int { return d.out.unit }

// Done reports whether the token stream has terminated.
func (d *Decoder) Done() bool { return d.state == stateDone }

// Err returns the sticky decode error, if any.
func (d *Decoder) Err() error { return d.err }

// BitReader returns the session's bit reader, for reading trailers after the stream ends.
func (d *Decoder) BitReader() *BitReader { return d.bits }

// Close releases the output buffer. Later calls to Fill return ErrClosed.
func (d *Decoder) Close() error {
	if d.state == stateClosed {
		return nil
	}
	d.state = stateClosed
	d.out.buf = nil
	d.out.cursor = 0
	d.served, d.last = 0, 0

	return nil
}
