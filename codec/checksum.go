package codec

// checksum returns the LZSS trailer value: the 32-bit sum of data, with each byte taken
// as uint8 or, in signed mode, as int8. The stored trailer is the bit pattern of the sum.
func checksum(data []byte, mode ChecksumMode) uint32 {
	var s int32
	if mode == ChecksumSigned {
		for _, b := range data {
			s += int32(int8(b))
		}
	} else {
		for _, b := range data {
			s += int32(b)
		}
	}

	return uint32(s) // #nosec G115 -- bit pattern
}
