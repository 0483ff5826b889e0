package backend

import (
	"encoding/binary"

	"go.uber.org/zap"

	"github.com/wippyai/codecvt/codepoint"
	"github.com/wippyai/codecvt/endian"
	"github.com/wippyai/codecvt/errors"
)

// Code pages accepted by WideCodec.
const (
	cpACP  uint32 = 0
	cpUTF8 uint32 = 65001
)

// WideCodec converts between a multi-byte code page and host-order UTF-16.
// Both directions must reject input they cannot map instead of substituting.
type WideCodec interface {
	ToWide(codepage uint32, in []byte) ([]uint16, error)
	FromWide(codepage uint32, in []uint16) ([]byte, error)
}

// Native pivots every conversion through host-order UTF-16 using an OS codec.
// UTF-32 never reaches the codec: host-order UTF-32 is bridged with the
// codepoint transcoder, and UTF-32 paired with UTF-8 or stored in the
// opposite byte order goes to the fallback converter, as do names the codec
// has no code page for.
type Native struct {
	codec    WideCodec
	fallback Converter
}

// NewNative returns a converter over codec. A nil fallback means Named.
func NewNative(codec WideCodec, fallback Converter) *Native {
	if fallback == nil {
		fallback = Named
	}
	return &Native{codec: codec, fallback: fallback}
}

func (n *Native) Name() string { return "native" }

type nativeKind uint8

const (
	kindOther nativeKind = iota
	kindNarrow
	kindUTF8
	kindUTF16
	kindUTF32
)

type endpoint struct {
	name  string
	kind  nativeKind
	order endian.Order
}

// classify maps a name onto the native pivot. Wide is UTF-16 in host order.
func classify(name string) endpoint {
	switch c := canonical(name); c {
	case Narrow:
		if narrowOverridden() {
			return endpoint{name: c, kind: kindOther}
		}
		return endpoint{name: c, kind: kindNarrow}
	case UTF8:
		return endpoint{name: c, kind: kindUTF8}
	case Wide:
		return endpoint{name: c, kind: kindUTF16, order: endian.HostOrder()}
	case UTF16LE, UTF16BE:
		return endpoint{name: c, kind: kindUTF16, order: orderOf(c)}
	case UTF32LE, UTF32BE:
		return endpoint{name: c, kind: kindUTF32, order: orderOf(c)}
	default:
		return endpoint{name: name, kind: kindOther}
	}
}

// delegated reports whether the pair must go to the fallback converter.
func delegated(src, dst endpoint) bool {
	if src.kind == kindOther || dst.kind == kindOther {
		return true
	}
	for _, pair := range [2][2]endpoint{{src, dst}, {dst, src}} {
		if pair[0].kind != kindUTF32 {
			continue
		}
		if pair[0].order != endian.HostOrder() || pair[1].kind == kindUTF8 {
			return true
		}
	}
	return false
}

func (n *Native) Convert(in []byte, from, to string) ([]byte, error) {
	src, dst := classify(from), classify(to)
	if delegated(src, dst) {
		Logger().Debug("native path delegating",
			zap.String("from", src.name),
			zap.String("to", dst.name),
			zap.String("converter", n.fallback.Name()))
		return n.fallback.Convert(in, from, to)
	}

	wide, err := n.toWide(in, src, dst)
	if err != nil {
		Logger().Debug("conversion failed", zap.String("from", src.name), zap.String("to", dst.name), zap.Error(err))
		return nil, err
	}
	out, err := n.fromWide(wide, src, dst)
	if err != nil {
		Logger().Debug("conversion failed", zap.String("from", src.name), zap.String("to", dst.name), zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (n *Native) toWide(in []byte, src, dst endpoint) ([]uint16, error) {
	switch src.kind {
	case kindNarrow, kindUTF8:
		w, err := n.codec.ToWide(n.codepageOf(src), in)
		if err != nil {
			return nil, osError(errors.PhaseDecode, src, dst, err)
		}
		return w, nil
	case kindUTF16:
		if len(in)%2 != 0 {
			return nil, truncated(src, dst, len(in), 2)
		}
		w := units16(in, src.order)
		if err := codepoint.ValidateUTF16(w); err != nil {
			return nil, stamp(err, src, dst)
		}
		return w, nil
	default:
		if len(in)%4 != 0 {
			return nil, truncated(src, dst, len(in), 4)
		}
		cps := units32(in, src.order)
		if err := codepoint.ValidateUTF32(cps); err != nil {
			return nil, stamp(err, src, dst)
		}
		w, err := codepoint.EncodeUTF16(cps)
		if err != nil {
			return nil, stamp(err, src, dst)
		}
		return w, nil
	}
}

func (n *Native) fromWide(w []uint16, src, dst endpoint) ([]byte, error) {
	switch dst.kind {
	case kindNarrow, kindUTF8:
		out, err := n.codec.FromWide(n.codepageOf(dst), w)
		if err != nil {
			return nil, osError(errors.PhaseEncode, src, dst, err)
		}
		return out, nil
	case kindUTF16:
		return bytes16(w, dst.order), nil
	default:
		cps, err := codepoint.DecodeUTF16(w)
		if err != nil {
			return nil, stamp(err, src, dst)
		}
		return bytes32(cps, dst.order), nil
	}
}

// ansiCodePager is implemented by codecs that know the active ANSI code page.
type ansiCodePager interface {
	ANSICodePage() uint32
}

// codepageOf picks the code page for a narrow or UTF-8 endpoint. Narrow text
// uses CP_UTF8 when the ANSI code page is UTF-8.
func (n *Native) codepageOf(e endpoint) uint32 {
	if e.kind == kindUTF8 {
		return cpUTF8
	}
	if p, ok := n.codec.(ansiCodePager); ok && p.ANSICodePage() == cpUTF8 {
		return cpUTF8
	}
	return cpACP
}

func osError(phase errors.Phase, src, dst endpoint, cause error) error {
	if e, ok := cause.(*errors.Error); ok {
		return e
	}
	return errors.New(phase, errors.KindInvalidEncoding).
		From(src.name).
		To(dst.name).
		Cause(cause).
		Detail("%s", cause.Error()).
		Build()
}

func stamp(err error, src, dst endpoint) error {
	if e, ok := err.(*errors.Error); ok {
		e.From = src.name
		e.To = dst.name
	}
	return err
}

func truncated(src, dst endpoint, n, w int) error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidEncoding).
		From(src.name).
		To(dst.name).
		Offset(n/w).
		Detail("truncated %d-byte code unit", w).
		Build()
}

func byteOrder(o endian.Order) binary.ByteOrder {
	if o.Resolve() == endian.Big {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func units16(b []byte, o endian.Order) []uint16 {
	bo := byteOrder(o)
	out := make([]uint16, len(b)/2)
	for i := range out {
		out[i] = bo.Uint16(b[2*i:])
	}
	return out
}

func units32(b []byte, o endian.Order) []uint32 {
	bo := byteOrder(o)
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = bo.Uint32(b[4*i:])
	}
	return out
}

func bytes16(w []uint16, o endian.Order) []byte {
	bo := byteOrder(o)
	out := make([]byte, 2*len(w))
	for i, u := range w {
		bo.PutUint16(out[2*i:], u)
	}
	return out
}

func bytes32(cps []uint32, o endian.Order) []byte {
	bo := byteOrder(o)
	out := make([]byte, 4*len(cps))
	for i, c := range cps {
		bo.PutUint32(out[4*i:], c)
	}
	return out
}
