package codec

import (
	"fmt"
	"sort"

	"github.com/woozymasta/assetlz"
)

// builders maps codec names to format constructors. width is used by pixel formats.
var builders = map[string]func(width int) (assetlz.Format, error){
	"rle":          func(int) (assetlz.Format, error) { return RLE(), nil },
	"packbits":     func(int) (assetlz.Format, error) { return PackBits(), nil },
	"packbits-eof": func(int) (assetlz.Format, error) { return PackBitsUntilEOF(), nil },
	"lzss":         func(int) (assetlz.Format, error) { return LZSS(MinMatchDefault), nil },
	"lzss2":        func(int) (assetlz.Format, error) { return LZSS(MinMatch2), nil },
	"miny":         func(int) (assetlz.Format, error) { return Miny(), nil },
	"rlz":          func(int) (assetlz.Format, error) { return RLZ(), nil },
	"rowdelta":     RowDelta,
}

// Lookup returns the format registered under name.
func Lookup(name string, width int) (assetlz.Format, error) {
	build, ok := builders[name]
	if !ok {
		return assetlz.Format{}, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}

	return build(width)
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
