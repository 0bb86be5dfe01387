package assetlz

// BitOrder selects how bits are taken from each source byte.
type BitOrder int

// Bit order constants.
const (
	MSBFirst BitOrder = iota // First bit read is bit 7 and becomes the highest bit of a multi-bit value.
	LSBFirst                 // First bit read is bit 0 and becomes the lowest bit of a multi-bit value.
)

// String returns the bit order name.
func (o BitOrder) String() string {
	switch o {
	case MSBFirst:
		return "msb"
	case LSBFirst:
		return "lsb"
	default:
		return "unknown"
	}
}

// Kind is the tag of a Token.
type Kind uint8

// Token kinds.
const (
	KindLiteral Kind = iota + 1 // Copy Count units verbatim from the source.
	KindFill                    // Write Value Count times.
	KindBackRef                 // Copy Count units from Offset units back in the output.
	KindEnd                     // In-band end of stream.
)

// String returns the token kind name.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindFill:
		return "fill"
	case KindBackRef:
		return "backref"
	case KindEnd:
		return "end"
	default:
		return "invalid"
	}
}

// Token is one decoded instruction. Count and Offset are in output units.
type Token struct {
	Kind   Kind
	Count  int
	Offset int    // Distance back from the cursor (KindBackRef only).
	Value  uint32 // Fill unit, little-endian in UnitSize bytes (KindFill only).
}

// Literal returns a token copying n units from the source.
func Literal(n int) Token { return Token{Kind: KindLiteral, Count: n} }

// Fill returns a token writing value n times.
func Fill(value uint32, n int) Token { return Token{Kind: KindFill, Count: n, Value: value} }

// BackRef returns a token copying n units starting offset units behind the cursor.
func BackRef(offset, n int) Token { return Token{Kind: KindBackRef, Count: n, Offset: offset} }

// End returns the in-band terminator token.
func End() Token { return Token{Kind: KindEnd} }

// Classifier reads one control value (plus whatever bits or bytes the format attaches to it)
// and maps it to a Token. A Classifier may keep adaptive tables between calls; a fresh one
// is created for every session.
type Classifier interface {
	Classify(br *BitReader, out *Output) (Token, error)
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc func(br *BitReader, out *Output) (Token, error)

// Classify calls f(br, out).
func (f ClassifierFunc) Classify(br *BitReader, out *Output) (Token, error) {
	return f(br, out)
}

// Format describes a concrete codec: how its bits are ordered, how large an output unit is,
// and how control values become tokens.
type Format struct {
	Name  string
	Order BitOrder
	// UnitSize is the number of bytes per output unit (byte, pixel, sample). Zero means 1.
	UnitSize int
	// BitLiterals: if true, literal units are read from the bit stream 8 bits per byte
	// instead of from the byte cursor.
	BitLiterals bool
	// EndAtEOF: if true, a source that is exhausted exactly at a token boundary ends the
	// stream instead of failing. For containers that only record the compressed size.
	EndAtEOF bool
	// NewClassifier returns a classifier with fresh per-session state.
	NewClassifier func() Classifier
}

func (f Format) unitSize() int {
	if f.UnitSize == 0 {
		return 1
	}

	return f.UnitSize
}
