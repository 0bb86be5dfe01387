/*
Package codec holds concrete control tables for the assetlz engine, plus encoders that
produce streams they decode.

Formats:
  - RLE: byte codes for fill, literal, short back-reference and an in-band end code.
  - PackBits: signed control byte, literal and fill runs.
  - LZSS: LZSS:8bit with flag bytes, 12-bit offsets and a 4-byte checksum trailer
    (DecompressLZSS, CompressLZSS).
  - Miny: Miny v2 nibble-packed matches with zero-escaped counts and offsets.
  - RLZ: MSB-first bit codec with Rice/unary lengths, a recent-offset table and an
    in-band terminator (EncodeRLZ).
  - RowDelta: 16-bit pixels with row-above references.

Lookup resolves a format by name for tools.
*/
package codec
