package codecvt

import (
	"github.com/wippyai/codecvt/endian"
	"github.com/wippyai/codecvt/errors"
)

// Narrow is text in the host narrow encoding. Its bytes are only meaningful
// on a host with the same locale.
type Narrow []byte

// UTF8 is UTF-8 encoded text.
type UTF8 []byte

// UTF16 is UTF-16 code units in the byte order chosen by the caller.
type UTF16 []uint16

// UTF32 is UTF-32 code units in the byte order chosen by the caller.
type UTF32 []uint32

// Wide is text in the host wide encoding, always in host order: UTF-16 on
// Windows and UTF-32 elsewhere.
type Wide []WChar

// Bytes returns a copy of the in-memory bytes of s.
func (s UTF16) Bytes() []byte { return endian.Bytes(s) }

// Bytes returns a copy of the in-memory bytes of s.
func (s UTF32) Bytes() []byte { return endian.Bytes(s) }

// Bytes returns a copy of the in-memory bytes of s.
func (s Wide) Bytes() []byte { return endian.Bytes(s) }

// UTF16FromBytes builds a UTF16 buffer from raw in-memory bytes.
func UTF16FromBytes(b []byte) (UTF16, error) {
	units, ok := endian.FromBytes[uint16](b)
	if !ok {
		return nil, partialUnit("UTF-16", len(b), 2)
	}
	return units, nil
}

// UTF32FromBytes builds a UTF32 buffer from raw in-memory bytes.
func UTF32FromBytes(b []byte) (UTF32, error) {
	units, ok := endian.FromBytes[uint32](b)
	if !ok {
		return nil, partialUnit("UTF-32", len(b), 4)
	}
	return units, nil
}

// WideFromBytes builds a Wide buffer from raw in-memory bytes.
func WideFromBytes(b []byte) (Wide, error) {
	units, ok := endian.FromBytes[WChar](b)
	if !ok {
		return nil, partialUnit("WCHAR_T", len(b), wcharSize)
	}
	return units, nil
}

func partialUnit(encoding string, n, width int) error {
	return errors.InvalidEncoding(errors.PhaseDecode, encoding, n/width, "trailing partial code unit")
}
