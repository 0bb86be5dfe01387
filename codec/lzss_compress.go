package codec

import (
	"encoding/binary"
)

// LZSSCompressOptions configures compression (checksum mode, search limit and length bias).
type LZSSCompressOptions struct {
	Checksum       ChecksumMode
	SearchLimit    int // 0 = literals only; otherwise max backward distance for match search (e.g. 64..4096).
	MinMatchLength int // Length nibble bias; zero means MinMatchDefault.
}

// DefaultLZSSCompressOptions returns options for default compression (unsigned checksum, search limit 2048).
func DefaultLZSSCompressOptions() *LZSSCompressOptions {
	return &LZSSCompressOptions{
		Checksum:    ChecksumUnsigned,
		SearchLimit: 2048,
	}
}

// CompressLZSS compresses src into an LZSS:8bit block followed by its checksum.
// Options nil means DefaultLZSSCompressOptions().
func CompressLZSS(src []byte, opts *LZSSCompressOptions) ([]byte, error) {
	if opts == nil {
		opts = DefaultLZSSCompressOptions()
	}
	if len(src) == 0 {
		return nil, ErrEmptyInput
	}

	minMatch := opts.MinMatchLength
	if minMatch <= 0 {
		minMatch = MinMatchDefault
	}
	maxMatch := minMatch + 15

	// Worst case is all literals + flag bytes + 4 checksum bytes.
	out := make([]byte, 0, len(src)+(len(src)+7)/8+4)

	var flagByte byte
	bitCount := 0
	flagPos := -1

	startGroup := func() {
		flagPos = len(out)
		out = append(out, 0)
	}
	endGroup := func() {
		if flagPos >= 0 {
			out[flagPos] = flagByte
		}
		flagByte = 0
		bitCount = 0
	}

	limit := max(opts.SearchLimit, 0)
	limit = min(limit, WindowSize-1)

	startGroup()

	i := 0
	for i < len(src) {
		bestLen := 0
		bestOff := 0

		// Longest match within limit bytes back; src[:i] is the decoded output so far.
		for off := 1; off <= min(i, limit); off++ {
			length := 0
			for length < maxMatch && i+length < len(src) && src[i-off+length] == src[i+length] {
				length++
			}
			if length > bestLen {
				bestLen = length
				bestOff = off
				if bestLen == maxMatch {
					break
				}
			}
		}

		if bestLen >= minMatch {
			// LE 16-bit pointer: low byte = offset&0xFF, high byte bits 4..7 = offset>>8, bits 0..3 = length-minMatch.
			out = append(out, byte(bestOff), byte(bestOff>>8)<<4|byte(bestLen-minMatch))
			i += bestLen
		} else {
			flagByte |= 1 << bitCount
			out = append(out, src[i])
			i++
		}

		bitCount++
		if bitCount == FlagBits {
			endGroup()
			if i < len(src) {
				startGroup()
			}
		}
	}

	if bitCount > 0 {
		endGroup()
	}

	out = binary.LittleEndian.AppendUint32(out, checksum(src, opts.Checksum))

	return out, nil
}
