package main

import (
	"fmt"
	"strings"

	"github.com/wippyai/codecvt"
	"github.com/wippyai/codecvt/codepoint"
)

type encodingKind int

const (
	kindNarrow encodingKind = iota
	kindWide
	kindUTF8
	kindUTF16
	kindUTF32
)

type encoding struct {
	name  string
	kind  encodingKind
	order codecvt.ByteOrder
}

// encodings lists every flag value accepted by -from and -to, in display order.
var encodings = []encoding{
	{name: "utf-8", kind: kindUTF8},
	{name: "utf-16le", kind: kindUTF16, order: codecvt.LittleEndian},
	{name: "utf-16be", kind: kindUTF16, order: codecvt.BigEndian},
	{name: "utf-32le", kind: kindUTF32, order: codecvt.LittleEndian},
	{name: "utf-32be", kind: kindUTF32, order: codecvt.BigEndian},
	{name: "wide", kind: kindWide},
	{name: "narrow", kind: kindNarrow},
}

func encodingNames() string {
	names := make([]string, len(encodings))
	for i, e := range encodings {
		names[i] = e.name
	}
	return strings.Join(names, ", ")
}

func lookupEncoding(name string) (encoding, error) {
	n := strings.ToLower(strings.ReplaceAll(name, "_", "-"))
	switch n {
	case "utf8":
		n = "utf-8"
	case "wchar", "wchar-t":
		n = "wide"
	case "char":
		n = "narrow"
	}
	for _, e := range encodings {
		if e.name == n {
			return e, nil
		}
	}
	return encoding{}, fmt.Errorf("unknown encoding %q (want one of: %s)", name, encodingNames())
}

// textual reports whether output in e can be written to a terminal as is.
func (e encoding) textual() bool {
	return e.kind == kindUTF8 || e.kind == kindNarrow
}

// decode interprets raw bytes in e and returns them as UTF-8.
func (e encoding) decode(raw []byte) (codecvt.UTF8, error) {
	switch e.kind {
	case kindNarrow:
		return codecvt.ToUTF8(codecvt.Narrow(raw))
	case kindWide:
		w, err := codecvt.WideFromBytes(raw)
		if err != nil {
			return nil, err
		}
		return codecvt.ToUTF8(w)
	case kindUTF16:
		u, err := codecvt.UTF16FromBytes(raw)
		if err != nil {
			return nil, err
		}
		return codecvt.ToUTF8(u, codecvt.From(e.order))
	case kindUTF32:
		u, err := codecvt.UTF32FromBytes(raw)
		if err != nil {
			return nil, err
		}
		return codecvt.ToUTF8(u, codecvt.From(e.order))
	default:
		if _, err := codepoint.DecodeUTF8(raw); err != nil {
			return nil, err
		}
		return codecvt.UTF8(raw), nil
	}
}

// encode converts UTF-8 text into the bytes of e.
func (e encoding) encode(text codecvt.UTF8) ([]byte, error) {
	switch e.kind {
	case kindNarrow:
		return codecvt.ToString(text)
	case kindWide:
		w, err := codecvt.ToWString(text)
		if err != nil {
			return nil, err
		}
		return w.Bytes(), nil
	case kindUTF16:
		u, err := codecvt.ToUTF16(text, codecvt.To(e.order))
		if err != nil {
			return nil, err
		}
		return u.Bytes(), nil
	case kindUTF32:
		u, err := codecvt.ToUTF32(text, codecvt.To(e.order))
		if err != nil {
			return nil, err
		}
		return u.Bytes(), nil
	default:
		return text, nil
	}
}

// transcode converts raw bytes from one encoding to another.
func transcode(from, to encoding, raw []byte) ([]byte, error) {
	text, err := from.decode(raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", from.name, err)
	}
	out, err := to.encode(text)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", to.name, err)
	}
	return out, nil
}
