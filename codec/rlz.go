package codec

import "github.com/woozymasta/assetlz"

// RLZ code parameters.
const (
	rlzLiteralK   = 2  // Rice parameter of literal run lengths (stored as n-1).
	rlzOffsetK    = 4  // Rice parameter of explicit offsets; offset 0 ends the stream.
	rlzLengthK    = 1  // Rice parameter of match lengths (stored as n-rlzMinMatch).
	rlzMinMatch   = 2  // Shortest match.
	rlzRecentBits = 2  // Index width into the recent offset table.
	rlzEscapeBits = 16 // Unary cap and escape width.
)

// rlzUnary is the quotient code: a run of ones closed by a zero.
var rlzUnary = assetlz.UnaryCode{Continue: 1, MaxBits: rlzEscapeBits}

// recentOffsets is a move-to-front table of the last used match offsets.
type recentOffsets [1 << rlzRecentBits]int

func newRecentOffsets() recentOffsets {
	return recentOffsets{1, 2, 3, 4}
}

// use returns the offset at idx and moves it to the front.
func (r *recentOffsets) use(idx int) int {
	off := r[idx]
	copy(r[1:idx+1], r[:idx])
	r[0] = off

	return off
}

// push inserts a new offset at the front, dropping the oldest.
func (r *recentOffsets) push(off int) {
	copy(r[1:], r[:len(r)-1])
	r[0] = off
}

// RLZ returns a bit-oriented LZ format read MSB first:
//
//	0 <rice k=2: n-1> <n literal bytes>
//	1 0 <rice k=4: offset> <rice k=1: length-2>   explicit offset; offset 0 ends the stream
//	1 1 <2 bits: index> <rice k=1: length-2>      offset from the recent offset table
//
// Quotients are unary (ones closed by a zero); 16 ones escape to a raw 16-bit quotient.
// Literal bytes are taken from the bit stream.
func RLZ() assetlz.Format {
	return assetlz.Format{
		Name:        "rlz",
		Order:       assetlz.MSBFirst,
		BitLiterals: true,
		NewClassifier: func() assetlz.Classifier {
			return &rlzClassifier{recent: newRecentOffsets()}
		},
	}
}

type rlzClassifier struct {
	recent recentOffsets
}

func (c *rlzClassifier) Classify(br *assetlz.BitReader, _ *assetlz.Output) (assetlz.Token, error) {
	isMatch, err := br.ReadBit()
	if err != nil {
		return assetlz.Token{}, err
	}
	if isMatch == 0 {
		n, err := rlzUnary.ReadRice(br, rlzLiteralK)
		if err != nil {
			return assetlz.Token{}, err
		}

		return assetlz.Literal(int(n) + 1), nil
	}

	fromTable, err := br.ReadBit()
	if err != nil {
		return assetlz.Token{}, err
	}

	var offset int
	if fromTable == 1 {
		idx, err := br.ReadBits(rlzRecentBits)
		if err != nil {
			return assetlz.Token{}, err
		}
		offset = c.recent.use(int(idx))
	} else {
		v, err := rlzUnary.ReadRice(br, rlzOffsetK)
		if err != nil {
			return assetlz.Token{}, err
		}
		if v == 0 {
			return assetlz.End(), nil
		}
		offset = int(v)
		c.recent.push(offset)
	}

	n, err := rlzUnary.ReadRice(br, rlzLengthK)
	if err != nil {
		return assetlz.Token{}, err
	}

	return assetlz.BackRef(offset, int(n)+rlzMinMatch), nil
}
