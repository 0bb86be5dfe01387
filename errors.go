// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/assetlz

package assetlz

import (
	"errors"
	"fmt"
)

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrUnexpectedEOF          = errors.New("unexpected end of input")
	ErrInvalidBackReference   = errors.New("invalid back-reference")
	ErrUnsupportedControlCode = errors.New("unsupported control code")
	ErrBitCount               = errors.New("bit count must be in range 0..32")
	ErrNegativeCapacity       = errors.New("output capacity must be non-negative")
	ErrCapacityTooLarge       = errors.New("output capacity exceeds limit")
	ErrInvalidUnitSize        = errors.New("unit size must be in range 1..4")
	ErrNilReader              = errors.New("reader is nil")
	ErrNilClassifier          = errors.New("format has no classifier")
	ErrNegativeRequest        = errors.New("requested unit count must be non-negative")
	ErrTrailingData           = errors.New("trailing bytes after compressed stream")
	ErrClosed                 = errors.New("decoder is closed")
)

// ErrOutputOverflow reports a token that would write past the output capacity.
// It matches ErrInvalidBackReference with errors.Is.
var ErrOutputOverflow = fmt.Errorf("%w: token overflows output capacity", ErrInvalidBackReference)

// UnsupportedControl returns an error for a control value the classifier does not know.
func UnsupportedControl(code uint32) error {
	return fmt.Errorf("%w: 0x%02x", ErrUnsupportedControlCode, code)
}
