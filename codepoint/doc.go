// Package codepoint implements the codepoint-level Unicode algorithms shared by
// every conversion path in codecvt.
//
// # Surrogate Arithmetic
//
// A codepoint c at or above 0x10000 is split into a surrogate pair:
//
//	t    := c - 0x10000
//	high := 0xD800 + (t >> 10)
//	low  := 0xDC00 + (t & 0x3FF)
//
// and recombined as (high << 10) + low - 0x35FDC00. A high surrogate must be
// immediately followed by a low surrogate; any other surrogate unit is invalid.
//
// # Validation
//
// Decoders never substitute U+FFFD. Malformed input yields an
// *errors.Error of kind invalid_encoding whose Offset is the index of the
// offending unit.
//
// All functions operate on host-order code units and are safe for concurrent use.
package codepoint
