package codec

import "github.com/woozymasta/assetlz"

// PackBits returns the PackBits format used by TIFF and many console texture packers:
// a signed control byte n >= 0 is followed by n+1 literal bytes, -127..-1 by one byte
// repeated 1-n times, and -128 is a no-op.
func PackBits() assetlz.Format {
	return assetlz.Format{
		Name:  "packbits",
		Order: assetlz.MSBFirst,
		NewClassifier: func() assetlz.Classifier {
			return assetlz.ClassifierFunc(classifyPackBits)
		},
	}
}

// PackBitsUntilEOF returns PackBits for strips that end with the compressed data rather
// than at a known decompressed size.
func PackBitsUntilEOF() assetlz.Format {
	f := PackBits()
	f.Name = "packbits-eof"
	f.EndAtEOF = true

	return f
}

func classifyPackBits(br *assetlz.BitReader, _ *assetlz.Output) (assetlz.Token, error) {
	b, err := br.NextByte()
	if err != nil {
		return assetlz.Token{}, err
	}

	code := int(int8(b))
	switch {
	case code >= 0:
		return assetlz.Literal(code + 1), nil
	case code == -128:
		// No-op.
		return assetlz.Literal(0), nil
	default:
		v, err := br.NextByte()
		if err != nil {
			return assetlz.Token{}, err
		}

		return assetlz.Fill(uint32(v), 1-code), nil
	}
}

// EncodePackBits encodes src as PackBits.
func EncodePackBits(src []byte) []byte {
	out := make([]byte, 0, len(src)+len(src)/128+1)

	i := 0
	for i < len(src) {
		run := 1
		for run < 128 && i+run < len(src) && src[i+run] == src[i] {
			run++
		}
		if run >= 2 {
			out = append(out, byte(int8(1-run)), src[i]) // #nosec G115 -- run is 2..128
			i += run
			continue
		}

		// Literal run up to the next pair of equal bytes.
		j := i + 1
		for j < len(src) && j-i < 128 && !(j+1 < len(src) && src[j] == src[j+1]) {
			j++
		}
		out = append(out, byte(j-i-1))
		out = append(out, src[i:j]...)
		i = j
	}

	return out
}
