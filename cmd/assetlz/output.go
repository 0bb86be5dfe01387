package main

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/woozymasta/assetlz"
	"golang.org/x/image/bmp"
)

// write stores data raw, or as a grayscale preview image when the output name asks for one.
func write(cfg *config, format assetlz.Format, data []byte) error {
	ext := strings.ToLower(filepath.Ext(cfg.out))
	if ext != ".png" && ext != ".bmp" {
		return writeRaw(cfg.out, data)
	}

	img, err := preview(data, cfg.width, cfg.height, format.UnitSize)
	if err != nil {
		return err
	}
	if ext == ".png" {
		return imgio.Save(cfg.out, img, imgio.PNGEncoder())
	}

	f, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := bmp.Encode(w, img); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func writeRaw(path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// preview maps 8-bit units to Gray and 16-bit little-endian units to Gray16.
// Palette and channel layouts belong to the format parsers, not to this tool.
func preview(data []byte, width, height, unit int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("image output needs -width and -height")
	}
	if unit == 0 {
		unit = 1
	}
	if need := width * height * unit; len(data) < need {
		return nil, fmt.Errorf("decoded %d bytes, image needs %d", len(data), need)
	}

	rect := image.Rect(0, 0, width, height)
	switch unit {
	case 1:
		img := image.NewGray(rect)
		copy(img.Pix, data)
		return img, nil
	case 2:
		img := image.NewGray16(rect)
		for i := 0; i < width*height; i++ {
			img.Pix[2*i] = data[2*i+1]
			img.Pix[2*i+1] = data[2*i]
		}
		return img, nil
	default:
		return nil, fmt.Errorf("no preview for %d-byte units", unit)
	}
}
