/*
Package assetlz implements a reusable decoding engine for the compressed streams found in
proprietary game-asset containers.

Most asset packers differ only in how they spell their control codes. Underneath, each one
reads a control value from a bit or byte stream and turns it into one of three instructions:
copy units verbatim (literal), repeat one unit (fill), or copy from output already produced
(back-reference, possibly overlapping itself to express RLE). The engine owns that loop; a
Format supplies the control table as a Classifier.

Building blocks:
  - BitReader: bit cursor over a byte source, MSB-first or LSB-first, with whole-byte reads
    and a one-byte lookahead.
  - UnaryCode: unary and Rice codes with a fixed-width escape.
  - CopyOverlap: back-reference copy that propagates forward when ranges overlap.
  - DecodeToken: classify one control value and apply the resulting Token to an Output.
  - Decoder: a resumable session; Fill produces only as many units as asked for.
  - Reader and Entry: the session as an io.Reader, and a per-entry opener over an io.ReaderAt.

The output capacity comes from a header parsed by the caller and is allocated once, up front.
Tokens that would run past it, reach before the start of the output, or use an unknown control
value fail the session; nothing is clamped.

Concrete control tables live in the codec subpackage.

# Examples

Decode a whole payload:

	out, err := assetlz.Decompress(src, size, codec.PackBits(), nil)
	if err != nil {
		return err
	}

Read only a sub-header from the start of a large entry:

	dec, err := assetlz.NewDecoder(bytes.NewReader(src), size, codec.Miny(), nil)
	if err != nil {
		return err
	}
	if _, err := dec.Fill(16); err != nil {
		return err
	}
	header := dec.Last()

Expose archive members as streams:

	entry := &assetlz.Entry{Source: f, Offset: off, Length: n, Capacity: size, Format: codec.LZSS(3)}
	r, err := entry.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	img, _, err := image.Decode(r)
*/
package assetlz
