package canon

import (
	"context"
	"unicode/utf8"

	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/codecvt"
	"github.com/wippyai/codecvt/codepoint"
	"github.com/wippyai/codecvt/errors"
)

// StringEncoding represents the string encoding for canonical ABI
type StringEncoding byte

const (
	StringEncodingUTF8 StringEncoding = iota
	StringEncodingUTF16
	StringEncodingLatin1UTF16
)

func (e StringEncoding) String() string {
	switch e {
	case StringEncodingUTF8:
		return "utf8"
	case StringEncodingUTF16:
		return "utf16"
	case StringEncodingLatin1UTF16:
		return "latin1+utf16"
	default:
		return "unknown"
	}
}

const (
	// MaxStringSize is the largest string, in bytes of guest memory, that is
	// lifted or lowered.
	MaxStringSize = 16 << 20

	// utf16Tag marks a latin1+utf16 length whose payload is UTF-16.
	utf16Tag = 1 << 31
)

// Options holds the canonical options that govern string passing.
type Options struct {
	Memory   api.Memory
	Realloc  api.Function
	Encoding StringEncoding
}

// LiftString reads a string from guest memory.
// For UTF-16 the length counts code units; for latin1+utf16 a length with
// bit 31 set denotes UTF-16 code units, otherwise Latin-1 bytes.
func LiftString(ctx context.Context, opts Options, ptr, length uint32) (string, error) {
	if opts.Memory == nil {
		return "", errors.NilPointer(errors.PhaseLift, "memory")
	}

	enc := opts.Encoding
	units := length
	if enc == StringEncodingLatin1UTF16 && length&utf16Tag != 0 {
		enc = StringEncodingUTF16
		units = length &^ utf16Tag
	}

	size := uint64(units)
	if enc == StringEncodingUTF16 {
		size *= 2
	}
	if size == 0 {
		return "", nil
	}
	if size > MaxStringSize {
		return "", errors.New(errors.PhaseLift, errors.KindInvalidInput).
			Detail("string size %d exceeds maximum %d", size, MaxStringSize).
			Build()
	}
	if enc == StringEncodingUTF16 && ptr%2 != 0 {
		return "", errors.InvalidInput(errors.PhaseLift, "UTF-16 string pointer is not 2-byte aligned")
	}

	data, ok := opts.Memory.Read(ptr, uint32(size))
	if !ok {
		return "", errors.OutOfBounds(errors.PhaseLift, ptr, uint32(size))
	}

	Logger().Debug("lift string",
		zap.Stringer("encoding", enc),
		zap.Uint32("ptr", ptr),
		zap.Uint32("units", units))

	switch enc {
	case StringEncodingUTF8:
		if !utf8.Valid(data) {
			_, err := codepoint.DecodeUTF8(data)
			return "", errors.Wrap(errors.PhaseLift, errors.KindInvalidEncoding, err, "string is not valid UTF-8")
		}
		return string(data), nil

	case StringEncodingUTF16:
		raw, err := codecvt.UTF16FromBytes(data)
		if err != nil {
			return "", errors.Wrap(errors.PhaseLift, errors.KindInvalidEncoding, err, "string is not valid UTF-16")
		}
		u8, err := codecvt.ToUTF8(raw, codecvt.From(codecvt.LittleEndian))
		if err != nil {
			return "", errors.Wrap(errors.PhaseLift, errors.KindInvalidEncoding, err, "string is not valid UTF-16")
		}
		return string(u8), nil

	default:
		u8, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", errors.Wrap(errors.PhaseLift, errors.KindInvalidEncoding, err, "string is not valid Latin-1")
		}
		return string(u8), nil
	}
}

// LowerString writes s to guest memory using realloc.
// Empty strings are lowered as (0, 0) without allocating.
func LowerString(ctx context.Context, opts Options, s string) (ptr, length uint32, err error) {
	if opts.Memory == nil {
		return 0, 0, errors.NilPointer(errors.PhaseLower, "memory")
	}
	if opts.Realloc == nil {
		return 0, 0, errors.NilPointer(errors.PhaseLower, "realloc")
	}
	if !utf8.ValidString(s) {
		_, err := codepoint.DecodeUTF8([]byte(s))
		return 0, 0, errors.Wrap(errors.PhaseLower, errors.KindInvalidEncoding, err, "string is not valid UTF-8")
	}
	if len(s) == 0 {
		return 0, 0, nil
	}

	data, length, align, err := encodeString(opts.Encoding, s)
	if err != nil {
		return 0, 0, err
	}
	if len(data) > MaxStringSize {
		return 0, 0, errors.New(errors.PhaseLower, errors.KindInvalidInput).
			Detail("string size %d exceeds maximum %d", len(data), MaxStringSize).
			Build()
	}
	size := uint32(len(data))

	// realloc(0, 0, align, size)
	results, err := opts.Realloc.Call(ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, 0, errors.AllocationFailed(errors.PhaseLower, size, align, err)
	}
	if len(results) == 0 {
		return 0, 0, errors.AllocationFailed(errors.PhaseLower, size, align, nil)
	}

	ptr = uint32(results[0])
	if align > 1 && ptr%align != 0 {
		return 0, 0, errors.New(errors.PhaseLower, errors.KindAllocation).
			Detail("realloc returned ptr=%d not aligned to %d", ptr, align).
			Build()
	}
	if !opts.Memory.Write(ptr, data) {
		return 0, 0, errors.OutOfBounds(errors.PhaseLower, ptr, size)
	}

	Logger().Debug("lower string",
		zap.Stringer("encoding", opts.Encoding),
		zap.Uint32("ptr", ptr),
		zap.Uint32("units", length&^utf16Tag))

	return ptr, length, nil
}

// encodeString returns the guest bytes of s, the length to report and the
// required alignment.
func encodeString(enc StringEncoding, s string) (data []byte, length, align uint32, err error) {
	switch enc {
	case StringEncodingUTF8:
		return []byte(s), uint32(len(s)), 1, nil

	case StringEncodingUTF16:
		data, units, err := utf16LE(s)
		if err != nil {
			return nil, 0, 0, err
		}
		return data, units, 2, nil

	case StringEncodingLatin1UTF16:
		if latin1Only(s) {
			data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(s))
			if err != nil {
				return nil, 0, 0, errors.Wrap(errors.PhaseLower, errors.KindInvalidEncoding, err, "Latin-1 encoding failed")
			}
			return data, uint32(len(data)), 2, nil
		}
		data, units, err := utf16LE(s)
		if err != nil {
			return nil, 0, 0, err
		}
		if units >= utf16Tag {
			return nil, 0, 0, errors.InvalidInput(errors.PhaseLower, "UTF-16 length overflows the latin1+utf16 tag")
		}
		return data, units | utf16Tag, 2, nil

	default:
		return nil, 0, 0, errors.InvalidInput(errors.PhaseLower, "unknown string encoding "+enc.String())
	}
}

func utf16LE(s string) ([]byte, uint32, error) {
	u16, err := codecvt.ToUTF16(codecvt.UTF8(s), codecvt.To(codecvt.LittleEndian))
	if err != nil {
		return nil, 0, errors.Wrap(errors.PhaseLower, errors.KindInvalidEncoding, err, "UTF-16 encoding failed")
	}
	return u16.Bytes(), uint32(len(u16)), nil
}

func latin1Only(s string) bool {
	for _, r := range s {
		if r > 0xFF {
			return false
		}
	}
	return true
}
