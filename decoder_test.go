package assetlz

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
)

// testFormat is a small byte-coded table:
//
//	00 v n  fill v n times
//	01 b    one literal byte
//	02 o n  copy n from o back
//	03 n    n literal bytes
//	FF      end
func testFormat() Format {
	return Format{
		Name: "test",
		NewClassifier: func() Classifier {
			return ClassifierFunc(func(br *BitReader, _ *Output) (Token, error) {
				code, err := br.NextByte()
				if err != nil {
					return Token{}, err
				}
				switch code {
				case 0x00:
					v, err := br.NextByte()
					if err != nil {
						return Token{}, err
					}
					n, err := br.NextByte()
					if err != nil {
						return Token{}, err
					}
					return Fill(uint32(v), int(n)), nil
				case 0x01:
					return Literal(1), nil
				case 0x02:
					o, err := br.NextByte()
					if err != nil {
						return Token{}, err
					}
					n, err := br.NextByte()
					if err != nil {
						return Token{}, err
					}
					return BackRef(int(o), int(n)), nil
				case 0x03:
					n, err := br.NextByte()
					if err != nil {
						return Token{}, err
					}
					return Literal(int(n)), nil
				case 0xFF:
					return End(), nil
				}
				return Token{}, UnsupportedControl(uint32(code))
			})
		},
	}
}

// testStream decodes to "abcabcabcXXXXd" (14 bytes).
var testStream = []byte{
	0x03, 3, 'a', 'b', 'c',
	0x02, 3, 6,
	0x00, 'X', 4,
	0x01, 'd',
}

const testStreamText = "abcabcabcXXXXd"

func TestDecodeFillThenLiteral(t *testing.T) {
	out, err := Decompress([]byte{0x00, 0x41, 0x03, 0x01, 0x42}, 4, testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "AAAB" {
		t.Fatalf("got %q want AAAB", out)
	}
}

func TestDecodeTestStream(t *testing.T) {
	out, err := Decompress(testStream, len(testStreamText), testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != testStreamText {
		t.Fatalf("got %q", out)
	}
}

func TestFillResumable(t *testing.T) {
	whole, err := NewDecoder(bytes.NewReader(testStream), len(testStreamText), testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := whole.Fill(len(testStreamText)); err != nil {
		t.Fatal(err)
	}

	for k := 0; k <= len(testStreamText); k++ {
		dec, err := NewDecoder(bytes.NewReader(testStream), len(testStreamText), testFormat(), nil)
		if err != nil {
			t.Fatal(err)
		}

		n1, err := dec.Fill(k)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		first := append([]byte(nil), dec.Last()...)
		if n1 != k || len(first) != k {
			t.Fatalf("k=%d: first fill served %d units, %d bytes", k, n1, len(first))
		}

		n2, err := dec.Fill(len(testStreamText) - k)
		if err != nil && err != io.EOF {
			t.Fatalf("k=%d: %v", k, err)
		}
		got := append(first, dec.Last()[:n2]...)
		if !bytes.Equal(got, whole.Bytes()) {
			t.Fatalf("k=%d: got %q want %q", k, got, whole.Bytes())
		}
	}
}

func TestFillStopsAtTokenBoundary(t *testing.T) {
	dec, err := NewDecoder(bytes.NewReader(testStream), len(testStreamText), testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}

	n, err := dec.Fill(1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || string(dec.Last()) != "a" {
		t.Fatalf("served %d %q", n, dec.Last())
	}
	// The whole literal run was decoded, but only one unit served; no input beyond it was read.
	if dec.Produced() != 3 || dec.Served() != 1 {
		t.Fatalf("produced=%d served=%d", dec.Produced(), dec.Served())
	}
	if off := dec.BitReader().Offset(); off != 5 {
		t.Fatalf("consumed %d bytes, want 5", off)
	}
}

func TestFillAfterEnd(t *testing.T) {
	dec, err := NewDecoder(bytes.NewReader([]byte{0x01, 'z'}), 1, testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	n, err := dec.Fill(10)
	if err != nil || n != 1 {
		t.Fatalf("got %d %v", n, err)
	}
	if !dec.Done() {
		t.Fatal("decoder should be done at capacity")
	}
	if n, err := dec.Fill(10); n != 0 || err != io.EOF {
		t.Fatalf("want 0, io.EOF; got %d %v", n, err)
	}
}

func TestEndTokenBeforeCapacity(t *testing.T) {
	src := []byte{0x03, 2, 'h', 'i', 0xFF}
	out, err := Decompress(src, 100, testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "hi" {
		t.Fatalf("got %q", out)
	}
}

func TestTruncatedInput(t *testing.T) {
	for cut := 1; cut < len(testStream); cut++ {
		out, err := Decompress(testStream[:cut], len(testStreamText), testFormat(), nil)
		if !errors.Is(err, ErrUnexpectedEOF) {
			t.Fatalf("cut=%d: want ErrUnexpectedEOF, got %v", cut, err)
		}
		if out != nil {
			t.Fatalf("cut=%d: partial output returned", cut)
		}
	}
}

func TestStickyError(t *testing.T) {
	dec, err := NewDecoder(bytes.NewReader([]byte{0x01, 'a', 0x7E}), 4, testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = dec.Fill(4)
	if !errors.Is(err, ErrUnsupportedControlCode) {
		t.Fatalf("want ErrUnsupportedControlCode, got %v", err)
	}
	if _, again := dec.Fill(1); !errors.Is(again, ErrUnsupportedControlCode) {
		t.Fatalf("error not sticky: %v", again)
	}
	if !errors.Is(dec.Err(), ErrUnsupportedControlCode) {
		t.Fatalf("Err: %v", dec.Err())
	}
}

func TestInvalidBackReference(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		want error
	}{
		{"before start", []byte{0x01, 'a', 0x02, 2, 1}, ErrInvalidBackReference},
		{"zero offset", []byte{0x01, 'a', 0x02, 0, 1}, ErrInvalidBackReference},
		{"past capacity", []byte{0x01, 'a', 0x02, 1, 9}, ErrOutputOverflow},
		{"fill past capacity", []byte{0x00, 'a', 5}, ErrOutputOverflow},
		{"literal past capacity", []byte{0x03, 5, 'a', 'b', 'c', 'd', 'e'}, ErrOutputOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.src, 4, testFormat(), nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}
}

func TestCapacityLimits(t *testing.T) {
	if _, err := NewDecoder(bytes.NewReader(nil), -1, testFormat(), nil); !errors.Is(err, ErrNegativeCapacity) {
		t.Fatalf("want ErrNegativeCapacity, got %v", err)
	}

	opts := &Options{MaxOutputSize: 16}
	if _, err := NewDecoder(bytes.NewReader(nil), 17, testFormat(), opts); !errors.Is(err, ErrCapacityTooLarge) {
		t.Fatalf("want ErrCapacityTooLarge, got %v", err)
	}

	wide := testFormat()
	wide.UnitSize = 2
	if _, err := NewDecoder(bytes.NewReader(nil), 9, wide, opts); !errors.Is(err, ErrCapacityTooLarge) {
		t.Fatalf("want ErrCapacityTooLarge for 18 bytes, got %v", err)
	}

	if _, err := NewDecoder(bytes.NewReader(nil), 1, Format{}, nil); !errors.Is(err, ErrNilClassifier) {
		t.Fatalf("want ErrNilClassifier, got %v", err)
	}
	if _, err := NewDecoder(nil, 1, testFormat(), nil); !errors.Is(err, ErrNilReader) {
		t.Fatalf("want ErrNilReader, got %v", err)
	}
}

func TestZeroCapacity(t *testing.T) {
	dec, err := NewDecoder(bytes.NewReader(nil), 0, testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := dec.Fill(1); n != 0 || err != io.EOF {
		t.Fatalf("want 0, io.EOF; got %d %v", n, err)
	}
}

func TestNegativeRequest(t *testing.T) {
	dec, err := NewDecoder(bytes.NewReader(testStream), 4, testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := dec.Fill(-1); !errors.Is(err, ErrNegativeRequest) {
		t.Fatalf("want ErrNegativeRequest, got %v", err)
	}
}

func TestClose(t *testing.T) {
	dec, err := NewDecoder(bytes.NewReader(testStream), len(testStreamText), testFormat(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := dec.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := dec.Fill(1); !errors.Is(err, ErrClosed) {
		t.Fatalf("want ErrClosed, got %v", err)
	}
	if dec.Bytes() != nil {
		t.Fatal("closed decoder still exposes its buffer")
	}
}

func TestWideUnits(t *testing.T) {
	f := testFormat()
	f.UnitSize = 2
	// Fill 3 pixels of 0x34, then copy 2 pixels from 3 back.
	src := []byte{0x00, 0x34, 3, 0x02, 3, 2}
	out, err := Decompress(src, 5, f, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x34, 0, 0x34, 0, 0x34, 0, 0x34, 0, 0x34, 0}
	if !bytes.Equal(out, want) {
		t.Fatalf("got %x want %x", out, want)
	}
}

func TestBitLiterals(t *testing.T) {
	// One flag bit per token: 1 = literal byte from the bit stream, 0 = end.
	f := Format{
		Name:        "bits",
		Order:       MSBFirst,
		BitLiterals: true,
		NewClassifier: func() Classifier {
			return ClassifierFunc(func(br *BitReader, _ *Output) (Token, error) {
				bit, err := br.ReadBit()
				if err != nil {
					return Token{}, err
				}
				if bit == 0 {
					return End(), nil
				}
				return Literal(1), nil
			})
		},
	}
	// 1 'A'(01000001) 1 'B'(01000010) 0 -> 10100000 11010000 10000000
	src := []byte{0xA0, 0xD0, 0x80}
	out, err := Decompress(src, 8, f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "AB" {
		t.Fatalf("got %q", out)
	}
}

func TestEndAtEOF(t *testing.T) {
	f := testFormat()
	f.EndAtEOF = true

	out, err := Decompress([]byte{0x03, 2, 'o', 'k'}, 64, f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "ok" {
		t.Fatalf("got %q", out)
	}

	// Exhaustion inside a token is still an error.
	if _, err := Decompress([]byte{0x03, 3, 'o', 'k'}, 64, f, nil); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("want ErrUnexpectedEOF, got %v", err)
	}
}

// wrappedEOFReader reports exhaustion as a wrapped io.EOF.
type wrappedEOFReader struct {
	data []byte
}

func (r *wrappedEOFReader) ReadByte() (byte, error) {
	if len(r.data) == 0 {
		return 0, fmt.Errorf("archive member: %w", io.EOF)
	}
	b := r.data[0]
	r.data = r.data[1:]

	return b, nil
}

func (r *wrappedEOFReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, fmt.Errorf("archive member: %w", io.EOF)
	}
	n := copy(p, r.data)
	r.data = r.data[n:]

	return n, nil
}

func TestEndAtEOFWrapped(t *testing.T) {
	f := testFormat()
	f.EndAtEOF = true

	dec, err := NewDecoder(&wrappedEOFReader{data: []byte{0x03, 2, 'o', 'k'}}, 64, f, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n, err := dec.Fill(64); n != 2 || err != nil {
		t.Fatalf("want 2, nil; got %d %v", n, err)
	}
	if !dec.Done() || string(dec.Bytes()) != "ok" {
		t.Fatalf("done=%v bytes=%q", dec.Done(), dec.Bytes())
	}
}

func TestInvalidUnitSize(t *testing.T) {
	for _, unit := range []int{-1, -4, 5} {
		f := testFormat()
		f.UnitSize = unit
		if _, err := NewDecoder(bytes.NewReader(nil), 1, f, nil); !errors.Is(err, ErrInvalidUnitSize) {
			t.Fatalf("unit %d: want ErrInvalidUnitSize, got %v", unit, err)
		}
	}
}
