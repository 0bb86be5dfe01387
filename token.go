package assetlz

import "fmt"

// DecodeToken reads one token through c and applies it to out.
//
// Literal copies Count units verbatim from br (whole bytes, or 8-bit groups from the bit
// stream when bitLiterals is set). Fill writes Value Count times. BackRef copies Count
// units starting Offset units behind the cursor, overlapping copies included. End leaves
// the output untouched. Any token that would run past the output capacity fails with
// ErrOutputOverflow; nothing is clamped.
func DecodeToken(br *BitReader, c Classifier, out *Output, bitLiterals bool) (Token, error) {
	tok, err := c.Classify(br, out)
	if err != nil {
		return Token{}, err
	}

	if err := applyToken(br, tok, out, bitLiterals); err != nil {
		return Token{}, err
	}

	return tok, nil
}

func applyToken(br *BitReader, tok Token, out *Output, bitLiterals bool) error {
	switch tok.Kind {
	case KindEnd:
		return nil

	case KindLiteral:
		lo, hi, err := out.reserve(tok.Count)
		if err != nil {
			return err
		}
		dst := out.buf[lo:hi]
		if bitLiterals {
			for i := range dst {
				v, err := br.ReadBits(8)
				if err != nil {
					return err
				}
				dst[i] = byte(v)
			}
		} else if err := br.ReadFull(dst); err != nil {
			return err
		}

	case KindFill:
		lo, hi, err := out.reserve(tok.Count)
		if err != nil {
			return err
		}
		for i := lo; i < hi; i += out.unit {
			v := tok.Value
			for j := 0; j < out.unit; j++ {
				out.buf[i+j] = byte(v)
				v >>= 8
			}
		}

	case KindBackRef:
		if tok.Offset <= 0 || tok.Offset > out.cursor {
			return fmt.Errorf("%w: offset=%d cursor=%d", ErrInvalidBackReference, tok.Offset, out.cursor)
		}
		if _, _, err := out.reserve(tok.Count); err != nil {
			return err
		}
		u := out.unit
		if err := CopyOverlap(out.buf, (out.cursor-tok.Offset)*u, out.cursor*u, tok.Count*u); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: token kind %d", ErrUnsupportedControlCode, tok.Kind)
	}

	out.cursor += tok.Count

	return nil
}
