package assetlz

// UnaryCode reads variable-length integers written as a run of identical bits.
//
// The run length is counted until a bit different from Continue appears. A run of MaxBits
// Continue bits is an escape: the value follows as MaxBits raw bits. This covers the
// Golomb/Rice style length and distance codes used by many asset packers without a
// canonical code table.
type UnaryCode struct {
	Continue uint32 // Bit value that extends the run (0 or 1).
	MaxBits  uint   // Run cap and escape width, 1..32. Zero means 32.
}

func (c UnaryCode) maxBits() uint {
	if c.MaxBits == 0 || c.MaxBits > 32 {
		return 32
	}

	return c.MaxBits
}

// Read returns the length of the unary run, or the escaped raw value.
func (c UnaryCode) Read(br *BitReader) (uint32, error) {
	limit := c.maxBits()

	var n uint32
	for {
		if uint(n) == limit {
			return br.ReadBits(limit)
		}

		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit != c.Continue&1 {
			return n, nil
		}
		n++
	}
}

// ReadRice reads a unary quotient followed by k remainder bits and returns q<<k | r.
func (c UnaryCode) ReadRice(br *BitReader, k uint) (uint32, error) {
	q, err := c.Read(br)
	if err != nil {
		return 0, err
	}

	rem, err := br.ReadBits(k)
	if err != nil {
		return 0, err
	}

	return q<<k | rem, nil
}
