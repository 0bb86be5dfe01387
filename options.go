package assetlz

import "log/slog"

// DefaultMaxOutputSize caps the output buffer of a session (256 MiB).
const DefaultMaxOutputSize = 256 << 20

// Options configures decode sessions.
type Options struct {
	// MaxOutputSize is the largest output buffer in bytes a session may allocate.
	// Zero means DefaultMaxOutputSize. Capacity comes from untrusted headers,
	// so it is checked before anything is allocated.
	MaxOutputSize int
	// AllowTrailing: if false, Decompress returns ErrTrailingData when bytes remain
	// after the token stream ends.
	AllowTrailing bool
	// Logger receives debug traces. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns options for default behavior: 256 MiB limit, strict trailing check, no logging.
func DefaultOptions() *Options {
	return &Options{
		MaxOutputSize: DefaultMaxOutputSize,
	}
}

// LenientOptions returns default options that ignore trailing bytes.
// Archive entries are often padded to a sector or alignment boundary.
func LenientOptions() *Options {
	opts := DefaultOptions()
	opts.AllowTrailing = true

	return opts
}

func (o *Options) maxOutputSize() int {
	if o == nil || o.MaxOutputSize <= 0 {
		return DefaultMaxOutputSize
	}

	return o.MaxOutputSize
}

func (o *Options) logger() *slog.Logger {
	if o == nil {
		return nil
	}

	return o.Logger
}
