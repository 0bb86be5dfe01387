package codec

// ChecksumMode defines how the 4-byte LZSS checksum is computed.
type ChecksumMode int

// Checksum mode constants.
const (
	ChecksumUnsigned ChecksumMode = iota // Sum bytes as uint8 (default for archives).
	ChecksumSigned                       // Sum bytes as int8 (used by some texture formats).
)

// LZSSOptions configures DecompressLZSS.
type LZSSOptions struct {
	// Checksum sets unsigned vs signed checksum.
	Checksum ChecksumMode
	// VerifyChecksum: if true, DecompressLZSS returns an error on checksum mismatch.
	// If false, mismatch is ignored (lenient mode for formats with often-bad checksums).
	VerifyChecksum bool
	// MinMatchLength is added to the 4-bit length nibble. Zero means MinMatchDefault.
	MinMatchLength int
}

// DefaultLZSSOptions returns options for default behavior: unsigned checksum, strict verification.
func DefaultLZSSOptions() *LZSSOptions {
	return &LZSSOptions{
		Checksum:       ChecksumUnsigned,
		VerifyChecksum: true,
	}
}

// SignedLenientOptions returns options: signed checksum, do not return error on mismatch.
func SignedLenientOptions() *LZSSOptions {
	return &LZSSOptions{
		Checksum:       ChecksumSigned,
		VerifyChecksum: false,
	}
}

func (o *LZSSOptions) minMatch() int {
	if o == nil || o.MinMatchLength == 0 {
		return MinMatchDefault
	}

	return o.MinMatchLength
}
