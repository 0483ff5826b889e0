package backend

import (
	"bytes"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"

	"github.com/wippyai/codecvt/codepoint"
	"github.com/wippyai/codecvt/endian"
	"github.com/wippyai/codecvt/errors"
)

type family uint8

const (
	familyUTF8 family = iota
	familyUTF16
	familyUTF32
	familyLegacy
)

// charset is a resolved encoding name.
type charset struct {
	enc    encoding.Encoding
	name   string
	family family
	order  endian.Order
}

func (cs charset) width() int {
	switch cs.family {
	case familyUTF16:
		return 2
	case familyUTF32:
		return 4
	default:
		return 1
	}
}

// growth is the worst-case number of output units per input unit when
// encoding into cs.
func (cs charset) growth() int {
	switch cs.family {
	case familyUTF16:
		return 2
	case familyUTF32:
		return 1
	default:
		return 4
	}
}

var (
	utf8Charset    = charset{name: UTF8, family: familyUTF8, enc: unicode.UTF8}
	utf16LECharset = charset{name: UTF16LE, family: familyUTF16, order: endian.Little, enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}
	utf16BECharset = charset{name: UTF16BE, family: familyUTF16, order: endian.Big, enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}
	utf32LECharset = charset{name: UTF32LE, family: familyUTF32, order: endian.Little, enc: utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)}
	utf32BECharset = charset{name: UTF32BE, family: familyUTF32, order: endian.Big, enc: utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)}
)

// lookup resolves an encoding name. Names the IANA registry knows but
// x/text does not implement are unsupported, as are the BOM-dependent
// UTF-16 and UTF-32 forms.
func lookup(name string) (charset, error) {
	switch canonical(name) {
	case UTF8:
		return utf8Charset, nil
	case UTF16LE:
		return utf16LECharset, nil
	case UTF16BE:
		return utf16BECharset, nil
	case UTF32LE:
		return utf32LECharset, nil
	case UTF32BE:
		return utf32BECharset, nil
	case Wide:
		return lookup(wideName())
	case Narrow:
		narrow := NarrowName()
		if canonical(narrow) == Narrow {
			return charset{}, errors.Unsupported(errors.PhaseOpen, name, nil)
		}
		return lookup(narrow)
	}

	if strings.TrimSpace(name) == "" {
		return charset{}, errors.Unsupported(errors.PhaseOpen, name, nil)
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return charset{}, errors.Unsupported(errors.PhaseOpen, name, err)
	}
	if enc == nil {
		return charset{}, errors.Unsupported(errors.PhaseOpen, name, nil)
	}

	canon, err := ianaindex.IANA.Name(enc)
	if err != nil || canon == "" {
		canon = name
	}
	upper := strings.ToUpper(canon)
	switch {
	case upper == UTF8:
		return utf8Charset, nil
	case strings.HasPrefix(upper, "UTF-16"), strings.HasPrefix(upper, "UTF-32"):
		return charset{}, errors.Unsupported(errors.PhaseOpen, name,
			errors.InvalidInput(errors.PhaseOpen, "byte order must be explicit, use the LE or BE form"))
	}
	return charset{name: canon, family: familyLegacy, enc: enc}, nil
}

// Supported reports whether the named engine can open name.
func Supported(name string) error {
	_, err := lookup(name)
	return err
}

type pairKey struct {
	from, to string
}

// pools holds one *sync.Pool of idle contexts per resolved encoding pair.
var pools sync.Map

func poolFor(key pairKey) *sync.Pool {
	if p, ok := pools.Load(key); ok {
		return p.(*sync.Pool)
	}
	p, _ := pools.LoadOrStore(key, &sync.Pool{})
	return p.(*sync.Pool)
}

// Context is an open conversion between two encodings. It is not safe for
// concurrent use and must be released with Close.
type Context struct {
	dec    *encoding.Decoder
	enc    *encoding.Encoder
	from   charset
	to     charset
	key    pairKey
	closed bool
}

// Open resolves both names and returns a conversion context. Unknown names
// fail with an encoding_unsupported error before any data is read.
func Open(from, to string) (*Context, error) {
	src, err := lookup(from)
	if err != nil {
		return nil, err
	}
	dst, err := lookup(to)
	if err != nil {
		return nil, err
	}

	key := pairKey{from: src.name, to: dst.name}
	pool := poolFor(key)
	c, _ := pool.Get().(*Context)
	if c == nil {
		Logger().Debug("conversion context pool miss",
			zap.String("from", key.from),
			zap.String("to", key.to))
		c = &Context{
			from: src,
			to:   dst,
			key:  key,
			dec:  src.enc.NewDecoder(),
			enc:  dst.enc.NewEncoder(),
		}
	}
	c.closed = false
	return c, nil
}

// From returns the resolved source encoding name.
func (c *Context) From() string { return c.from.name }

// To returns the resolved target encoding name.
func (c *Context) To() string { return c.to.name }

// Close resets the context and returns it to its pool.
// The context must not be used afterwards.
func (c *Context) Close() {
	if c == nil || c.closed {
		return
	}
	c.closed = true
	c.dec.Reset()
	c.enc.Reset()
	poolFor(c.key).Put(c)
}

// Convert transcodes in from the source to the target encoding. Input that is
// not valid in the source encoding and characters the target cannot represent
// both fail with an invalid_encoding error. The result never aliases in.
func (c *Context) Convert(in []byte) ([]byte, error) {
	if c.closed {
		return nil, errors.InvalidInput(errors.PhaseOpen, "conversion context used after Close")
	}

	units, err := c.validate(in)
	if err != nil {
		return nil, err
	}

	text, err := c.decode(in, units)
	if err != nil {
		return nil, err
	}

	if c.to.family == familyUTF8 {
		if c.from.family == familyUTF8 {
			return slices.Clone(in), nil
		}
		return text, nil
	}
	return c.encode(text, units)
}

// validate checks in against the source encoding and returns its length in
// code units. Legacy charsets are checked after decoding.
func (c *Context) validate(in []byte) (int, error) {
	w := c.from.width()
	if len(in)%w != 0 {
		return 0, errors.New(errors.PhaseDecode, errors.KindInvalidEncoding).
			From(c.from.name).
			To(c.to.name).
			Offset(len(in)/w).
			Detail("truncated %d-byte code unit", w).
			Build()
	}

	var err error
	switch c.from.family {
	case familyUTF8:
		if off := invalidUTF8At(in); off >= 0 {
			err = errors.InvalidUnit(errors.PhaseDecode, c.from.name, off, uint32(in[off]), "invalid UTF-8 byte")
		}
	case familyUTF16:
		err = codepoint.ValidateUTF16(units16(in, c.from.order))
	case familyUTF32:
		err = codepoint.ValidateUTF32(units32(in, c.from.order))
	}
	if err != nil {
		return 0, c.annotate(err)
	}
	return len(in) / w, nil
}

func (c *Context) decode(in []byte, units int) ([]byte, error) {
	if c.from.family == familyUTF8 {
		return in, nil
	}

	text, _, err := run(c.dec, in, 4*units)
	if err != nil {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidEncoding).
			From(c.from.name).
			To(c.to.name).
			Cause(err).
			Detail("decode failed").
			Build()
	}
	if c.from.family == familyLegacy {
		if err := c.checkReplacement(in, text); err != nil {
			return nil, err
		}
	}
	return text, nil
}

var replacement = []byte(string(utf8.RuneError))

// checkReplacement rejects legacy input that x/text decoded to U+FFFD
// because it was malformed. A U+FFFD that re-encodes to the original bytes
// is data.
func (c *Context) checkReplacement(in, text []byte) error {
	i := bytes.Index(text, replacement)
	if i < 0 {
		return nil
	}
	back, err := c.from.enc.NewEncoder().Bytes(text)
	if err == nil && bytes.Equal(back, in) {
		return nil
	}

	b := errors.New(errors.PhaseDecode, errors.KindInvalidEncoding).
		From(c.from.name).
		To(c.to.name).
		Detail("invalid byte sequence")
	if prefix, err := c.from.enc.NewEncoder().Bytes(text[:i]); err == nil && bytes.HasPrefix(in, prefix) && len(prefix) < len(in) {
		b.Offset(len(prefix)).Value(uint32(in[len(prefix)]))
	}
	return b.Build()
}

func (c *Context) encode(text []byte, units int) ([]byte, error) {
	out, consumed, err := run(c.enc, text, c.to.growth()*units*c.to.width())
	if err != nil {
		r, _ := utf8.DecodeRune(text[consumed:])
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidEncoding).
			From(c.from.name).
			To(c.to.name).
			Value(uint32(r)).
			Cause(err).
			Detail("character U+%04X cannot be represented", r).
			Build()
	}
	return out, nil
}

// annotate stamps the pair onto a codepoint validation error.
func (c *Context) annotate(err error) error {
	if e, ok := err.(*errors.Error); ok {
		e.From = c.from.name
		e.To = c.to.name
	}
	return err
}

// run drives t over src into a buffer of the given initial size, growing it
// when the transformer runs out of room. It returns the bytes produced and
// the number of source bytes consumed.
func run(t transform.Transformer, src []byte, size int) ([]byte, int, error) {
	t.Reset()
	dst := make([]byte, size)
	var nDst, nSrc int
	for {
		n, m, err := t.Transform(dst[nDst:], src[nSrc:], true)
		nDst += n
		nSrc += m
		switch err {
		case nil:
			return dst[:nDst], nSrc, nil
		case transform.ErrShortDst:
			grown := make([]byte, 2*len(dst)+utf8.UTFMax)
			copy(grown, dst[:nDst])
			dst = grown
		default:
			return nil, nSrc, err
		}
	}
}

func invalidUTF8At(b []byte) int {
	for i := 0; i < len(b); {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}

// named is the x/text backed engine.
type named struct{}

// Named is the named-encoding engine.
var Named Converter = named{}

func (named) Name() string { return "named" }

func (named) Convert(in []byte, from, to string) ([]byte, error) {
	c, err := Open(from, to)
	if err != nil {
		Logger().Debug("open failed", zap.String("from", from), zap.String("to", to), zap.Error(err))
		return nil, err
	}
	defer c.Close()

	out, err := c.Convert(in)
	if err != nil {
		Logger().Debug("conversion failed",
			zap.String("from", c.From()),
			zap.String("to", c.To()),
			zap.Int("units", len(in)/c.from.width()),
			zap.Error(err))
		return nil, err
	}
	return out, nil
}
