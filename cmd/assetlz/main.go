// Command assetlz decodes one compressed entry from a container file.
//
// Usage:
//
//	assetlz -codec lzss -offset 0x800 -length 4096 -size 16384 -o entry.bin data.pak
//	assetlz -codec rowdelta -width 128 -height 64 -size 8192 -o preview.png tex.bin
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/woozymasta/assetlz"
	"github.com/woozymasta/assetlz/codec"
)

type config struct {
	codec   string
	offset  int64
	length  int64
	size    int
	width   int
	height  int
	head    int64
	out     string
	verbose bool
	input   string
}

func parseFlags(args []string) (*config, error) {
	fs := flag.NewFlagSet("assetlz", flag.ContinueOnError)
	cfg := &config{}
	fs.StringVar(&cfg.codec, "codec", "lzss", "codec name: "+strings.Join(codec.Names(), ", "))
	fs.Int64Var(&cfg.offset, "offset", 0, "start of the compressed entry in the input file")
	fs.Int64Var(&cfg.length, "length", 0, "compressed size (0 = to end of file)")
	fs.IntVar(&cfg.size, "size", 0, "decompressed size in units (bytes, or pixels for pixel codecs)")
	fs.IntVar(&cfg.width, "width", 0, "image width in pixels (row codecs and image output)")
	fs.IntVar(&cfg.height, "height", 0, "image height in pixels (image output)")
	fs.Int64Var(&cfg.head, "head", 0, "decode only the first N bytes (0 = all)")
	fs.StringVar(&cfg.out, "o", "", "output file (.png, .bmp or raw; default stdout)")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, errors.New("expected exactly one input file")
	}
	cfg.input = fs.Arg(0)

	if cfg.size <= 0 {
		if cfg.width > 0 && cfg.height > 0 {
			cfg.size = cfg.width * cfg.height
		} else {
			return nil, errors.New("-size is required")
		}
	}

	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "assetlz:", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, logger); err != nil {
		logger.Error("decode failed", slog.String("input", cfg.input), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config, logger *slog.Logger) error {
	format, err := codec.Lookup(cfg.codec, cfg.width)
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.input)
	if err != nil {
		return err
	}
	defer f.Close()

	length := cfg.length
	if length <= 0 {
		st, err := f.Stat()
		if err != nil {
			return err
		}
		length = st.Size() - cfg.offset
	}

	opts := assetlz.LenientOptions()
	if cfg.verbose {
		opts.Logger = logger
	}

	entry := &assetlz.Entry{
		Source:   f,
		Offset:   cfg.offset,
		Length:   length,
		Capacity: cfg.size,
		Format:   format,
		Options:  opts,
	}
	r, err := entry.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	var src io.Reader = r
	if cfg.head > 0 {
		src = io.LimitReader(r, cfg.head)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	logger.Info("decoded",
		slog.String("codec", format.Name),
		slog.Int64("compressed", length),
		slog.Int("bytes", len(data)),
	)

	return write(cfg, format, data)
}
