package assetlz

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/icza/bitio"
)

var bitPattern = []byte{0xA5, 0x3C, 0xF0, 0x0F, 0x81, 0x7E, 0x12, 0xED, 0x55}

func TestReadBitMSBFirst(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xA0}), MSBFirst)
	want := []uint32{1, 0, 1, 0, 0, 0, 0, 0}
	for i, w := range want {
		got, err := br.ReadBit()
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("bit %d: got %d want %d", i, got, w)
		}
	}
}

func TestReadBitLSBFirst(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xA0}), LSBFirst)
	want := []uint32{0, 0, 0, 0, 0, 1, 0, 1}
	for i, w := range want {
		got, err := br.ReadBit()
		if err != nil {
			t.Fatal(err)
		}
		if got != w {
			t.Fatalf("bit %d: got %d want %d", i, got, w)
		}
	}
}

func TestReadBitsKnownValues(t *testing.T) {
	tests := []struct {
		order BitOrder
		n     uint
		want  uint32
	}{
		{MSBFirst, 4, 0xA},
		{MSBFirst, 12, 0xA53},
		{MSBFirst, 16, 0xA53C},
		{LSBFirst, 4, 0x5},
		{LSBFirst, 12, 0xCA5},
		{LSBFirst, 16, 0x3CA5},
		{MSBFirst, 0, 0},
	}
	for _, tt := range tests {
		br := NewBitReader(bytes.NewReader(bitPattern), tt.order)
		got, err := br.ReadBits(tt.n)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("%s n=%d: got 0x%x want 0x%x", tt.order, tt.n, got, tt.want)
		}
	}
}

// lsbReference composes n bits starting at bit position pos, bit 0 of each byte first.
func lsbReference(data []byte, pos, n int) uint32 {
	var v uint32
	for j := 0; j < n; j++ {
		i := pos + j
		v |= uint32(data[i/8]>>(i%8)&1) << j
	}

	return v
}

func TestReadBitsEveryWidth(t *testing.T) {
	for n := 1; n <= 32; n++ {
		// MSB first must agree with an independent bit reader.
		ref := bitio.NewReader(bytes.NewReader(bitPattern))
		msb := NewBitReader(bytes.NewReader(bitPattern), MSBFirst)
		lsb := NewBitReader(bytes.NewReader(bitPattern), LSBFirst)

		for pos := 0; pos+n <= len(bitPattern)*8; pos += n {
			want, err := ref.ReadBits(uint8(n))
			if err != nil {
				t.Fatal(err)
			}
			got, err := msb.ReadBits(uint(n))
			if err != nil {
				t.Fatal(err)
			}
			if uint64(got) != want {
				t.Fatalf("msb n=%d pos=%d: got 0x%x want 0x%x", n, pos, got, want)
			}

			got, err = lsb.ReadBits(uint(n))
			if err != nil {
				t.Fatal(err)
			}
			if want := lsbReference(bitPattern, pos, n); got != want {
				t.Fatalf("lsb n=%d pos=%d: got 0x%x want 0x%x", n, pos, got, want)
			}
		}
	}
}

func TestReadBitsBytesRoundTrip(t *testing.T) {
	data := bitPattern[:8]
	for _, order := range []BitOrder{MSBFirst, LSBFirst} {
		br := NewBitReader(bytes.NewReader(data), order)
		got := make([]byte, 0, len(data))
		for range data {
			v, err := br.ReadBits(8)
			if err != nil {
				t.Fatal(err)
			}
			got = append(got, byte(v))
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("%s: got %x want %x", order, got, data)
		}
	}
}

func TestReadBitsTooWide(t *testing.T) {
	br := NewBitReader(bytes.NewReader(bitPattern), MSBFirst)
	if _, err := br.ReadBits(33); !errors.Is(err, ErrBitCount) {
		t.Fatalf("want ErrBitCount, got %v", err)
	}
}

func TestReadBitsUnexpectedEOF(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xFF}), MSBFirst)
	if _, err := br.ReadBits(9); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("want ErrUnexpectedEOF, got %v", err)
	}
}

func TestNextByteKeepsBitByte(t *testing.T) {
	// Flag byte 0b01 (LSB first) followed by two data bytes.
	br := NewBitReader(bytes.NewReader([]byte{0x01, 'a', 'b'}), LSBFirst)

	flag, err := br.ReadBit()
	if err != nil || flag != 1 {
		t.Fatalf("flag: %d %v", flag, err)
	}
	b, err := br.NextByte()
	if err != nil || b != 'a' {
		t.Fatalf("first data byte: %q %v", b, err)
	}
	flag, err = br.ReadBit()
	if err != nil || flag != 0 {
		t.Fatalf("second flag: %d %v", flag, err)
	}
	b, err = br.NextByte()
	if err != nil || b != 'b' {
		t.Fatalf("second data byte: %q %v", b, err)
	}
	if br.Buffered() != 6 {
		t.Fatalf("buffered bits: %d", br.Buffered())
	}
	if br.Offset() != 3 {
		t.Fatalf("offset: %d", br.Offset())
	}
}

func TestPeekByte(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0x42}), MSBFirst)

	for i := 0; i < 2; i++ {
		b, err := br.PeekByte()
		if err != nil || b != 0x42 {
			t.Fatalf("peek %d: 0x%x %v", i, b, err)
		}
	}
	if br.Offset() != 0 {
		t.Fatalf("peek consumed input: offset %d", br.Offset())
	}

	v, err := br.ReadBits(8)
	if err != nil || v != 0x42 {
		t.Fatalf("read after peek: 0x%x %v", v, err)
	}
	if _, err := br.PeekByte(); err != io.EOF {
		t.Fatalf("want io.EOF at end, got %v", err)
	}
}

func TestAlign(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0xFF, 0x12}), MSBFirst)
	if _, err := br.ReadBits(3); err != nil {
		t.Fatal(err)
	}
	br.Align()
	v, err := br.ReadBits(8)
	if err != nil || v != 0x12 {
		t.Fatalf("after align: 0x%x %v", v, err)
	}
}
