package codec

import "github.com/woozymasta/assetlz"

// RLE control bytes.
const (
	rleFill    = 0x00 // value byte, count byte
	rleLiteral = 0x01 // one literal byte
	rleRun     = 0x02 // count byte, then count literal bytes
	rleCopy    = 0x03 // offset byte, count byte
	rleEnd     = 0xFF
)

// RLE returns a byte-oriented run-length format with short back-references and an
// in-band terminator.
//
//	00 v n    write v n times
//	01 b      literal b
//	02 n ...  n literal bytes
//	03 o n    copy n bytes from o bytes back
//	FF        end of stream
func RLE() assetlz.Format {
	return assetlz.Format{
		Name:  "rle",
		Order: assetlz.MSBFirst,
		NewClassifier: func() assetlz.Classifier {
			return assetlz.ClassifierFunc(classifyRLE)
		},
	}
}

func classifyRLE(br *assetlz.BitReader, _ *assetlz.Output) (assetlz.Token, error) {
	code, err := br.NextByte()
	if err != nil {
		return assetlz.Token{}, err
	}

	switch code {
	case rleLiteral:
		return assetlz.Literal(1), nil
	case rleEnd:
		return assetlz.End(), nil
	}
	if code > rleCopy {
		return assetlz.Token{}, assetlz.UnsupportedControl(uint32(code))
	}

	a, err := br.NextByte()
	if err != nil {
		return assetlz.Token{}, err
	}
	if code == rleFill || code == rleCopy {
		n, err := br.NextByte()
		if err != nil {
			return assetlz.Token{}, err
		}
		if code == rleFill {
			return assetlz.Fill(uint32(a), int(n)), nil
		}

		return assetlz.BackRef(int(a), int(n)), nil
	}

	return assetlz.Literal(int(a)), nil
}

// EncodeRLE encodes src with fill runs, literal runs and short back-references,
// terminated by the end code.
func EncodeRLE(src []byte) []byte {
	const maxCount = 255

	out := make([]byte, 0, len(src)+len(src)/64+4)
	lit := 0 // Start of the pending literal run.

	flush := func(end int) {
		for lit < end {
			n := min(end-lit, maxCount)
			if n == 1 {
				out = append(out, rleLiteral, src[lit])
			} else {
				out = append(out, rleRun, byte(n))
				out = append(out, src[lit:lit+n]...)
			}
			lit += n
		}
	}

	i := 0
	for i < len(src) {
		run := 1
		for run < maxCount && i+run < len(src) && src[i+run] == src[i] {
			run++
		}

		bestLen, bestOff := 0, 0
		for off := 1; off <= min(i, maxCount); off++ {
			length := 0
			for length < maxCount && i+length < len(src) && src[i-off+length] == src[i+length] {
				length++
			}
			if length > bestLen {
				bestLen, bestOff = length, off
			}
		}

		switch {
		case run >= 4 && run >= bestLen:
			flush(i)
			out = append(out, rleFill, src[i], byte(run))
			i += run
			lit = i
		case bestLen >= 4:
			flush(i)
			out = append(out, rleCopy, byte(bestOff), byte(bestLen))
			i += bestLen
			lit = i
		default:
			i++
		}
	}
	flush(len(src))

	return append(out, rleEnd)
}
