package assetlz

import "fmt"

// CopyOverlap copies count bytes inside buf from src to dst, where src < dst.
//
// When the ranges overlap (dst-src < count) bytes are copied one by one in increasing
// order, so bytes written early in the call are read again later: a one-byte source
// repeats itself across the whole run. Disjoint ranges use the built-in copy.
func CopyOverlap(buf []byte, src, dst, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidBackReference, count)
	}
	if count == 0 {
		return nil
	}
	if src < 0 || src >= dst {
		return fmt.Errorf("%w: src=%d dst=%d", ErrInvalidBackReference, src, dst)
	}
	if dst+count > len(buf) {
		return fmt.Errorf("%w: dst=%d count=%d size=%d", ErrOutputOverflow, dst, count, len(buf))
	}

	if src+count <= dst {
		copy(buf[dst:dst+count], buf[src:src+count])
		return nil
	}

	for i := 0; i < count; i++ {
		buf[dst+i] = buf[src+i]
	}

	return nil
}
