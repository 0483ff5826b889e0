package codepoint

import (
	"unicode/utf8"

	"github.com/wippyai/codecvt/errors"
)

const (
	surr1    = 0xD800 // first high surrogate
	surr2    = 0xDC00 // first low surrogate
	surr3    = 0xE000 // first unit past the surrogate range
	surrSelf = 0x10000

	surrMask = 0xFC00

	// combineBias folds the surrogate offsets and surrSelf into one constant:
	// (0xD800 << 10) + 0xDC00 - 0x10000.
	combineBias = 0x35FDC00

	// MaxRune is the largest valid codepoint.
	MaxRune = 0x10FFFF
)

// Encoding names used in error reports.
const (
	nameUTF8  = "UTF-8"
	nameUTF16 = "UTF-16"
	nameUTF32 = "UTF-32"
)

// IsHighSurrogate reports whether u is a leading surrogate (0xD800-0xDBFF).
func IsHighSurrogate(u uint32) bool {
	return u&^0x3FF == surr1
}

// IsLowSurrogate reports whether u is a trailing surrogate (0xDC00-0xDFFF).
func IsLowSurrogate(u uint32) bool {
	return u&^0x3FF == surr2
}

// IsSurrogate reports whether u lies anywhere in the surrogate range.
func IsSurrogate(u uint32) bool {
	return u-surr1 < surr3-surr1
}

// Valid reports whether c is a Unicode scalar value.
func Valid(c uint32) bool {
	return c <= MaxRune && !IsSurrogate(c)
}

// AppendUTF16 appends the UTF-16 encoding of c to dst without validating it.
// Codepoints below 0x10000 are emitted as one unit, the rest as a surrogate pair.
func AppendUTF16(dst []uint16, c uint32) []uint16 {
	if c < surrSelf {
		return append(dst, uint16(c))
	}
	t := c - surrSelf
	return append(dst, uint16(surr1+(t>>10)), uint16(surr2+(t&0x3FF)))
}

// EncodeUTF16 encodes a codepoint sequence as UTF-16 code units in host order.
func EncodeUTF16(cps []uint32) ([]uint16, error) {
	out := make([]uint16, 0, len(cps)+len(cps)/4)
	for i, c := range cps {
		if !Valid(c) {
			return nil, invalidCodepoint(errors.PhaseEncode, nameUTF32, i, c)
		}
		out = AppendUTF16(out, c)
	}
	return out, nil
}

// DecodeUTF16 decodes UTF-16 code units in host order into codepoints.
// An unpaired or reversed surrogate fails with an invalid encoding error.
func DecodeUTF16(units []uint16) ([]uint32, error) {
	out := make([]uint32, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := uint32(units[i])
		if !IsSurrogate(u) {
			out = append(out, u)
			continue
		}
		if i+1 < len(units) {
			next := uint32(units[i+1])
			if u&surrMask == surr1 && next&surrMask == surr2 {
				out = append(out, (u<<10)+next-combineBias)
				i++
				continue
			}
		}
		return nil, errors.InvalidUnit(errors.PhaseDecode, nameUTF16, i, u, "unpaired surrogate")
	}
	return out, nil
}

// ValidateUTF16 checks surrogate pairing without allocating.
func ValidateUTF16(units []uint16) error {
	for i := 0; i < len(units); i++ {
		u := uint32(units[i])
		if !IsSurrogate(u) {
			continue
		}
		if IsHighSurrogate(u) && i+1 < len(units) && IsLowSurrogate(uint32(units[i+1])) {
			i++
			continue
		}
		return errors.InvalidUnit(errors.PhaseDecode, nameUTF16, i, u, "unpaired surrogate")
	}
	return nil
}

// ValidateUTF32 checks that every unit is a Unicode scalar value.
func ValidateUTF32(cps []uint32) error {
	for i, c := range cps {
		if !Valid(c) {
			return invalidCodepoint(errors.PhaseDecode, nameUTF32, i, c)
		}
	}
	return nil
}

// EncodeUTF8 encodes a codepoint sequence as UTF-8.
func EncodeUTF8(cps []uint32) ([]byte, error) {
	out := make([]byte, 0, len(cps))
	for i, c := range cps {
		if !Valid(c) {
			return nil, invalidCodepoint(errors.PhaseEncode, nameUTF32, i, c)
		}
		out = utf8.AppendRune(out, rune(c))
	}
	return out, nil
}

// DecodeUTF8 decodes UTF-8 into codepoints. Overlong forms, encoded
// surrogates and truncated sequences are rejected.
func DecodeUTF8(b []byte) ([]uint32, error) {
	out := make([]uint32, 0, utf8.RuneCount(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, errors.InvalidUnit(errors.PhaseDecode, nameUTF8, i, uint32(b[i]), "invalid UTF-8 byte")
		}
		out = append(out, uint32(r))
		i += size
	}
	return out, nil
}

func invalidCodepoint(phase errors.Phase, encoding string, offset int, c uint32) *errors.Error {
	detail := "codepoint out of range"
	if IsSurrogate(c) {
		detail = "surrogate codepoint"
	}
	return errors.InvalidUnit(phase, encoding, offset, c, detail)
}
