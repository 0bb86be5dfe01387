package codec

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// RLZOptions configures EncodeRLZ.
type RLZOptions struct {
	Window int // Max backward distance for match search.
}

// DefaultRLZOptions returns options with an 8 KiB search window.
func DefaultRLZOptions() *RLZOptions {
	return &RLZOptions{Window: 8192}
}

// rlzWriter keeps the first write error so the encoder can check once at the end.
type rlzWriter struct {
	w   *bitio.Writer
	err error
}

func (w *rlzWriter) bits(v uint64, n uint8) {
	if w.err == nil && n > 0 {
		w.err = w.w.WriteBits(v, n)
	}
}

func (w *rlzWriter) bit(b bool) {
	if w.err == nil {
		w.err = w.w.WriteBool(b)
	}
}

func (w *rlzWriter) octet(b byte) {
	if w.err == nil {
		w.err = w.w.WriteByte(b)
	}
}

// rice writes v as a unary quotient (ones closed by a zero, escaped at rlzEscapeBits)
// followed by k remainder bits.
func (w *rlzWriter) rice(v int, k uint8) {
	q := v >> k
	switch {
	case q >= 1<<rlzEscapeBits:
		if w.err == nil {
			w.err = fmt.Errorf("%w: %d", ErrValueTooLarge, v)
		}
		return
	case q >= rlzEscapeBits:
		w.bits(1<<rlzEscapeBits-1, rlzEscapeBits)
		w.bits(uint64(q), rlzEscapeBits)
	default:
		w.bits(1<<q-1, uint8(q)) // #nosec G115 -- q < rlzEscapeBits
		w.bit(false)
	}
	w.bits(uint64(v)&(1<<k-1), k)
}

// EncodeRLZ encodes src in the RLZ format, terminated by a zero offset.
// Options nil means DefaultRLZOptions().
func EncodeRLZ(src []byte, opts *RLZOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultRLZOptions()
	}
	window := max(opts.Window, 1)

	var buf bytes.Buffer
	w := &rlzWriter{w: bitio.NewWriter(&buf)}
	recent := newRecentOffsets()

	const maxRun = 1 << 16
	lit := 0
	flush := func(end int) {
		for lit < end {
			n := min(end-lit, maxRun)
			w.bit(false)
			w.rice(n-1, rlzLiteralK)
			for _, b := range src[lit : lit+n] {
				w.octet(b)
			}
			lit += n
		}
	}

	matchLen := func(i, off int) int {
		length := 0
		for length < maxRun && i+length < len(src) && src[i-off+length] == src[i+length] {
			length++
		}

		return length
	}

	i := 0
	for i < len(src) {
		recentLen, recentIdx := 0, 0
		for idx, off := range recent {
			if off > i {
				continue
			}
			if l := matchLen(i, off); l > recentLen {
				recentLen, recentIdx = l, idx
			}
		}

		bestLen, bestOff := 0, 0
		for off := 1; off <= min(i, window); off++ {
			if l := matchLen(i, off); l > bestLen {
				bestLen, bestOff = l, off
			}
		}

		switch {
		case recentLen >= rlzMinMatch && recentLen >= bestLen:
			flush(i)
			w.bit(true)
			w.bit(true)
			w.bits(uint64(recentIdx), rlzRecentBits) // #nosec G115 -- table index
			recent.use(recentIdx)
			w.rice(recentLen-rlzMinMatch, rlzLengthK)
			i += recentLen
			lit = i
		case bestLen >= 3:
			flush(i)
			w.bit(true)
			w.bit(false)
			w.rice(bestOff, rlzOffsetK)
			recent.push(bestOff)
			w.rice(bestLen-rlzMinMatch, rlzLengthK)
			i += bestLen
			lit = i
		default:
			i++
		}
	}
	flush(len(src))

	// Terminator: explicit offset 0.
	w.bit(true)
	w.bit(false)
	w.rice(0, rlzOffsetK)

	if w.err != nil {
		return nil, w.err
	}
	if err := w.w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
