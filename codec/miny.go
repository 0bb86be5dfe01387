package codec

import "github.com/woozymasta/assetlz"

/*
Miny v2 control byte encoding:

	0x00-0xef  match: | llll | oooo |
	           llll 1-0xe start length; 0 fetches a count byte, 0,0 a big-endian word
	           oooo 1-0xf start offset; 0 fetches a zero-prefixed offset (each 0 adds 255)
	0xf0-0xff  literals: | 1111 | llll |
	           llll 1-0xf count; 0 fetches a count byte, 0,0 a big-endian word
*/
const (
	minyLiteralTag = 0xf0
	minyMaxNibLen  = 0xe
	minyMaxNibLit  = 0xf
	minyMaxNibOff  = 0xf
	minyMaxCount   = 0xffff
)

// Miny returns the byte-oriented Miny v2 format (YM register stream packer).
func Miny() assetlz.Format {
	return assetlz.Format{
		Name:  "miny",
		Order: assetlz.MSBFirst,
		NewClassifier: func() assetlz.Classifier {
			return assetlz.ClassifierFunc(classifyMiny)
		},
	}
}

func classifyMiny(br *assetlz.BitReader, _ *assetlz.Output) (assetlz.Token, error) {
	top, err := br.NextByte()
	if err != nil {
		return assetlz.Token{}, err
	}

	if top&0xf0 == minyLiteralTag {
		count, err := minyCount(br, int(top&0xf))
		if err != nil {
			return assetlz.Token{}, err
		}

		return assetlz.Literal(count), nil
	}

	count, err := minyCount(br, int(top>>4))
	if err != nil {
		return assetlz.Token{}, err
	}

	off := int(top & 0xf)
	if off == 0 {
		// Longer offset, zero-prefixed.
		for {
			b, err := br.NextByte()
			if err != nil {
				return assetlz.Token{}, err
			}
			if b != 0 {
				off += int(b)
				break
			}
			off += 255
		}
	}

	return assetlz.BackRef(off, count), nil
}

// minyCount resolves a nibble count, fetching the byte or word escape when it is zero.
func minyCount(br *assetlz.BitReader, count int) (int, error) {
	if count != 0 {
		return count, nil
	}

	b, err := br.NextByte()
	if err != nil {
		return 0, err
	}
	if b != 0 {
		return int(b), nil
	}

	hi, err := br.NextByte()
	if err != nil {
		return 0, err
	}
	lo, err := br.NextByte()
	if err != nil {
		return 0, err
	}

	return int(hi)<<8 | int(lo), nil
}

// EncodeMiny encodes src as Miny v2 using a greedy match search within window bytes.
func EncodeMiny(src []byte, window int) []byte {
	if window <= 0 {
		window = 4096
	}

	out := make([]byte, 0, len(src)+len(src)/8+4)
	lit := 0

	flush := func(end int) {
		for lit < end {
			n := min(end-lit, minyMaxCount)
			if n <= minyMaxNibLit {
				out = append(out, minyLiteralTag|byte(n))
			} else {
				out = append(out, minyLiteralTag)
				out = minyAppendCount(out, n)
			}
			out = append(out, src[lit:lit+n]...)
			lit += n
		}
	}

	i := 0
	for i < len(src) {
		bestLen, bestOff := 0, 0
		for off := 1; off <= min(i, window); off++ {
			length := 0
			for length < minyMaxCount && i+length < len(src) && src[i-off+length] == src[i+length] {
				length++
			}
			if length > bestLen {
				bestLen, bestOff = length, off
			}
		}

		if bestLen < 3 {
			i++
			continue
		}

		flush(i)
		var nibLen, nibOff byte
		if bestLen <= minyMaxNibLen {
			nibLen = byte(bestLen)
		}
		if bestOff <= minyMaxNibOff {
			nibOff = byte(bestOff)
		}
		out = append(out, nibLen<<4|nibOff)
		if nibLen == 0 {
			out = minyAppendCount(out, bestLen)
		}
		if nibOff == 0 {
			off := bestOff
			for off > 255 {
				// 256 is encoded as "0, 1": each zero adds 255.
				out = append(out, 0)
				off -= 255
			}
			out = append(out, byte(off))
		}
		i += bestLen
		lit = i
	}
	flush(len(src))

	return out
}

func minyAppendCount(out []byte, count int) []byte {
	if count < 256 {
		return append(out, byte(count))
	}

	return append(out, 0, byte(count>>8), byte(count))
}
