package codecvt

import (
	"go.uber.org/zap"

	"github.com/wippyai/codecvt/codepoint"
	"github.com/wippyai/codecvt/endian"
	"github.com/wippyai/codecvt/errors"
	"github.com/wippyai/codecvt/internal/backend"
)

// ToUTF8 converts text to UTF-8. From gives the order of a UTF16 or UTF32 source.
func ToUTF8[T Narrow | Wide | UTF16 | UTF32](text T, opts ...Option) (UTF8, error) {
	if len(text) == 0 {
		return UTF8{}, nil
	}
	o := collect(opts)
	raw, from := source(text, o)
	out, err := convert(raw, from, backend.UTF8)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToUTF16 converts text to UTF-16 in the order given by To. From gives the
// order of a UTF32 source.
func ToUTF16[T Narrow | Wide | UTF8 | UTF32](text T, opts ...Option) (UTF16, error) {
	if len(text) == 0 {
		return UTF16{}, nil
	}
	o := collect(opts)

	if cps, ok := any(text).(UTF32); ok {
		host := endian.NormalizeCopy(cps, o.from, endian.Host)
		if err := codepoint.ValidateUTF32(host); err != nil {
			return nil, transcodeFailed(err, backend.UTF32Name(o.from), backend.UTF16Name(o.to))
		}
		units, err := codepoint.EncodeUTF16(host)
		if err != nil {
			return nil, transcodeFailed(err, backend.UTF32Name(o.from), backend.UTF16Name(o.to))
		}
		endian.Normalize(units, endian.Host, o.to)
		return units, nil
	}

	raw, from := source(text, o)
	to := backend.UTF16Name(o.to)
	out, err := convert(raw, from, to)
	if err != nil {
		return nil, err
	}
	units, ok := endian.FromBytes[uint16](out)
	if !ok {
		return nil, partialResult(from, to)
	}
	return units, nil
}

// ToUTF32 converts text to UTF-32 in the order given by To. From gives the
// order of a UTF16 source.
func ToUTF32[T Narrow | Wide | UTF8 | UTF16](text T, opts ...Option) (UTF32, error) {
	if len(text) == 0 {
		return UTF32{}, nil
	}
	o := collect(opts)

	if units, ok := any(text).(UTF16); ok {
		cps, err := codepoint.DecodeUTF16(endian.NormalizeCopy(units, o.from, endian.Host))
		if err != nil {
			return nil, transcodeFailed(err, backend.UTF16Name(o.from), backend.UTF32Name(o.to))
		}
		endian.Normalize(cps, endian.Host, o.to)
		return cps, nil
	}

	raw, from := source(text, o)
	to := backend.UTF32Name(o.to)
	out, err := convert(raw, from, to)
	if err != nil {
		return nil, err
	}
	cps, ok := endian.FromBytes[uint32](out)
	if !ok {
		return nil, partialResult(from, to)
	}
	return cps, nil
}

// ToString converts text to the host narrow encoding. From gives the order of
// a UTF16 or UTF32 source.
func ToString[T Wide | UTF8 | UTF16 | UTF32](text T, opts ...Option) (Narrow, error) {
	if len(text) == 0 {
		return Narrow{}, nil
	}
	o := collect(opts)
	raw, from := source(text, o)
	out, err := convert(raw, from, backend.Narrow)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToWString converts text to the host wide encoding. From gives the order of
// a UTF16 or UTF32 source.
func ToWString[T Narrow | UTF8 | UTF16 | UTF32](text T, opts ...Option) (Wide, error) {
	if len(text) == 0 {
		return Wide{}, nil
	}
	o := collect(opts)
	raw, from := source(text, o)
	out, err := convert(raw, from, backend.Wide)
	if err != nil {
		return nil, err
	}
	wide, ok := endian.FromBytes[WChar](out)
	if !ok {
		return nil, partialResult(from, backend.Wide)
	}
	return wide, nil
}

// source returns the bytes of text and the name of their encoding. Narrow and
// UTF8 text is passed through without copying; converters never write to it.
// The in-memory bytes of a UTF16 or UTF32 buffer are already laid out in the
// declared order, so no swap is needed.
func source(text any, o options) ([]byte, string) {
	switch v := text.(type) {
	case Narrow:
		return v, backend.Narrow
	case UTF8:
		return v, backend.UTF8
	case UTF16:
		return endian.Bytes(v), backend.UTF16Name(o.from)
	case UTF32:
		return endian.Bytes(v), backend.UTF32Name(o.from)
	case Wide:
		return endian.Bytes(v), backend.Wide
	default:
		panic("codecvt: unsupported text type")
	}
}

func convert(raw []byte, from, to string) ([]byte, error) {
	Logger().Debug("convert",
		zap.String("from", from),
		zap.String("to", to),
		zap.Int("units", len(raw)/backend.UnitWidth(from)))

	out, err := backend.Active.Convert(raw, from, to)
	if err != nil {
		Logger().Debug("conversion failed", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, err
	}
	return out, nil
}

// transcodeFailed stamps the conversion pair onto a codepoint error.
func transcodeFailed(err error, from, to string) error {
	if e, ok := err.(*errors.Error); ok {
		e.From = from
		e.To = to
	}
	Logger().Debug("conversion failed", zap.String("from", from), zap.String("to", to), zap.Error(err))
	return err
}

func partialResult(from, to string) error {
	return errors.New(errors.PhaseEncode, errors.KindInvalidEncoding).
		From(from).
		To(to).
		Detail("converter produced a partial code unit").
		Build()
}
