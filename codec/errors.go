// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Maxim Levchenko (WoozyMasta)
// Source: github.com/woozymasta/assetlz

package codec

import "errors"

// Package errors. Use errors.New for static messages, fmt.Errorf when values are needed.
var (
	ErrInputTooShort    = errors.New("not enough data for checksum")
	ErrChecksumMismatch = errors.New("checksum mismatch")
	ErrEmptyInput       = errors.New("input is empty")
	ErrNegativeOutLen   = errors.New("output length must be non-negative")
	ErrWidth            = errors.New("row width must be positive")
	ErrUnknownCodec     = errors.New("unknown codec")
	ErrValueTooLarge    = errors.New("value does not fit the code")
)
