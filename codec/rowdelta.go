package codec

import (
	"fmt"

	"github.com/woozymasta/assetlz"
)

// RowDelta control byte layout: kind in bits 6..7, run length minus one in bits 0..5.
const (
	rowLiteral = 0 // n pixels follow, little-endian
	rowFill    = 1 // one pixel follows, repeated n times
	rowAbove   = 2 // copy n pixels from the row above
	rowBack    = 3 // next byte + 1 is the distance in pixels
	rowRunMask = 0x3f
)

// RowDelta returns a 16-bit pixel format for images width pixels wide. Counts and
// offsets are in pixels; the row-above code addresses one full row back.
func RowDelta(width int) (assetlz.Format, error) {
	if width <= 0 {
		return assetlz.Format{}, fmt.Errorf("%w: %d", ErrWidth, width)
	}

	return assetlz.Format{
		Name:     "rowdelta",
		Order:    assetlz.MSBFirst,
		UnitSize: 2,
		NewClassifier: func() assetlz.Classifier {
			return assetlz.ClassifierFunc(func(br *assetlz.BitReader, _ *assetlz.Output) (assetlz.Token, error) {
				return classifyRowDelta(br, width)
			})
		},
	}, nil
}

func classifyRowDelta(br *assetlz.BitReader, width int) (assetlz.Token, error) {
	c, err := br.NextByte()
	if err != nil {
		return assetlz.Token{}, err
	}
	n := int(c&rowRunMask) + 1

	switch c >> 6 {
	case rowLiteral:
		return assetlz.Literal(n), nil
	case rowFill:
		var px [2]byte
		if err := br.ReadFull(px[:]); err != nil {
			return assetlz.Token{}, err
		}

		return assetlz.Fill(uint32(px[0])|uint32(px[1])<<8, n), nil
	case rowAbove:
		return assetlz.BackRef(width, n), nil
	default:
		d, err := br.NextByte()
		if err != nil {
			return assetlz.Token{}, err
		}

		return assetlz.BackRef(int(d)+1, n), nil
	}
}
