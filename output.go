package assetlz

import "fmt"

// Output is a fixed-capacity unit buffer with a monotonic write cursor.
type Output struct {
	buf    []byte
	unit   int // Bytes per unit.
	cursor int // Units written.
}

// NewOutput allocates an output of capacity units of unit bytes each.
func NewOutput(capacity, unit int) (*Output, error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	if unit < 1 || unit > 4 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidUnitSize, unit)
	}

	return &Output{buf: make([]byte, capacity*unit), unit: unit}, nil
}

// Capacity returns the capacity in units.
func (o *Output) Capacity() int { return len(o.buf) / o.unit }

// Cursor returns the number of units written.
func (o *Output) Cursor() int { return o.cursor }

// Remaining returns the number of units that can still be written.
func (o *Output) Remaining() int { return o.Capacity() - o.cursor }

// UnitSize returns the number of bytes per unit.
func (o *Output) UnitSize() int { return o.unit }

// Bytes returns the units written so far. The slice aliases the buffer.
func (o *Output) Bytes() []byte { return o.buf[:o.cursor*o.unit] }

// At returns the already written unit i as a little-endian value.
// Classifiers use it for neighbor and previous-row context.
func (o *Output) At(i int) (uint32, error) {
	if i < 0 || i >= o.cursor {
		return 0, fmt.Errorf("%w: unit %d outside produced output (cursor=%d)", ErrInvalidBackReference, i, o.cursor)
	}

	var v uint32
	p := o.buf[i*o.unit : (i+1)*o.unit]
	for j := len(p) - 1; j >= 0; j-- {
		v = v<<8 | uint32(p[j])
	}

	return v, nil
}

// reserve checks that count more units fit and returns the byte range they occupy.
func (o *Output) reserve(count int) (int, int, error) {
	if count < 0 {
		return 0, 0, fmt.Errorf("%w: negative count %d", ErrInvalidBackReference, count)
	}
	if count > o.Remaining() {
		return 0, 0, fmt.Errorf("%w: cursor=%d count=%d capacity=%d", ErrOutputOverflow, o.cursor, count, o.Capacity())
	}

	return o.cursor * o.unit, (o.cursor + count) * o.unit, nil
}
