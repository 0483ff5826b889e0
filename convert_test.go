package codecvt

import (
	"bytes"
	"slices"
	"testing"

	"github.com/wippyai/codecvt/endian"
	"github.com/wippyai/codecvt/errors"
)

var (
	sampleUTF32 = UTF32{0x4F60, 'a', 0x597D, 'b', 0x1F600, 'c'}
	sampleUTF16 = UTF16{0x4F60, 'a', 0x597D, 'b', 0xD83D, 0xDE00, 'c'}
	sampleUTF8  = UTF8{
		0xE4, 0xBD, 0xA0, 0x61, 0xE5, 0xA5, 0xBD, 0x62,
		0xF0, 0x9F, 0x98, 0x80, 0x63,
	}
)

func TestScenario_UTF32(t *testing.T) {
	u8, err := ToUTF8(sampleUTF32)
	if err != nil {
		t.Fatalf("ToUTF8: %v", err)
	}
	if !bytes.Equal(u8, sampleUTF8) {
		t.Errorf("ToUTF8 = % X, want % X", u8, sampleUTF8)
	}
	if string(u8) != "你a好b😀c" {
		t.Errorf("ToUTF8 = %q", u8)
	}

	u16, err := ToUTF16(sampleUTF32)
	if err != nil {
		t.Fatalf("ToUTF16: %v", err)
	}
	if !slices.Equal(u16, sampleUTF16) {
		t.Errorf("ToUTF16 = %04X, want %04X", u16, sampleUTF16)
	}

	back, err := ToUTF32(u16)
	if err != nil {
		t.Fatalf("ToUTF32: %v", err)
	}
	if !slices.Equal(back, sampleUTF32) {
		t.Errorf("ToUTF32 = %X, want %X", back, sampleUTF32)
	}

	fromU8, err := ToUTF32(u8)
	if err != nil {
		t.Fatalf("ToUTF32(UTF8): %v", err)
	}
	if !slices.Equal(fromU8, sampleUTF32) {
		t.Errorf("ToUTF32(UTF8) = %X, want %X", fromU8, sampleUTF32)
	}
}

func TestCrossEncodingIdentity(t *testing.T) {
	orders := []ByteOrder{HostEndian, BigEndian, LittleEndian}

	for _, o16 := range orders {
		for _, o32 := range orders {
			t.Run(o16.String()+"/"+o32.String(), func(t *testing.T) {
				u16, err := ToUTF16(sampleUTF8, To(o16))
				if err != nil {
					t.Fatalf("UTF8->UTF16: %v", err)
				}
				u32, err := ToUTF32(u16, From(o16), To(o32))
				if err != nil {
					t.Fatalf("UTF16->UTF32: %v", err)
				}
				if want := endian.NormalizeCopy(sampleUTF32, HostEndian, o32); !slices.Equal(u32, want) {
					t.Errorf("UTF32 = %X, want %X", u32, want)
				}

				u16again, err := ToUTF16(u32, From(o32), To(o16))
				if err != nil {
					t.Fatalf("UTF32->UTF16: %v", err)
				}
				if !slices.Equal(u16again, u16) {
					t.Errorf("UTF16 = %04X, want %04X", u16again, u16)
				}

				u8, err := ToUTF8(u32, From(o32))
				if err != nil {
					t.Fatalf("UTF32->UTF8: %v", err)
				}
				if !bytes.Equal(u8, sampleUTF8) {
					t.Errorf("UTF32->UTF8 = % X", u8)
				}
				u8, err = ToUTF8(u16, From(o16))
				if err != nil {
					t.Fatalf("UTF16->UTF8: %v", err)
				}
				if !bytes.Equal(u8, sampleUTF8) {
					t.Errorf("UTF16->UTF8 = % X", u8)
				}

				u32b, err := ToUTF32(sampleUTF8, To(o32))
				if err != nil {
					t.Fatalf("UTF8->UTF32: %v", err)
				}
				if !slices.Equal(u32b, u32) {
					t.Errorf("UTF8->UTF32 = %X, want %X", u32b, u32)
				}
			})
		}
	}
}

func TestByteOrderDefault(t *testing.T) {
	host, err := ToUTF16(UTF8("A"))
	if err != nil {
		t.Fatalf("ToUTF16: %v", err)
	}
	if !slices.Equal(host, UTF16{0x0041}) {
		t.Errorf("host order = %04X, want 0041", host)
	}

	opposite := endian.HostOrder().Opposite()
	swapped, err := ToUTF16(UTF8("A"), To(opposite))
	if err != nil {
		t.Fatalf("ToUTF16: %v", err)
	}
	if !slices.Equal(swapped, UTF16{0x4100}) {
		t.Errorf("opposite order = %04X, want 4100", swapped)
	}
	if !slices.Equal(ChangeEndianCopy(swapped), host) {
		t.Error("swapping the opposite-order result does not give host order")
	}

	big, err := ToUTF16(UTF8("A"), To(BigEndian))
	if err != nil {
		t.Fatalf("ToUTF16: %v", err)
	}
	if raw := big.Bytes(); !bytes.Equal(raw, []byte{0x00, 0x41}) {
		t.Errorf("big-endian bytes = % X, want 00 41", raw)
	}
	little, err := ToUTF16(UTF8("A"), To(LittleEndian))
	if err != nil {
		t.Fatalf("ToUTF16: %v", err)
	}
	if raw := little.Bytes(); !bytes.Equal(raw, []byte{0x41, 0x00}) {
		t.Errorf("little-endian bytes = % X, want 41 00", raw)
	}
}

func TestSourceOrder(t *testing.T) {
	big := ToBigEndianCopy(UTF16{0x4F60, 'a'})
	u8, err := ToUTF8(big, From(BigEndian))
	if err != nil {
		t.Fatalf("ToUTF8: %v", err)
	}
	if string(u8) != "你a" {
		t.Errorf("ToUTF8 = %q, want 你a", u8)
	}

	little := ToLittleEndianCopy(UTF32{0x1F600})
	u16, err := ToUTF16(little, From(LittleEndian), To(BigEndian))
	if err != nil {
		t.Fatalf("ToUTF16: %v", err)
	}
	if raw := u16.Bytes(); !bytes.Equal(raw, []byte{0xD8, 0x3D, 0xDE, 0x00}) {
		t.Errorf("bytes = % X, want D8 3D DE 00", raw)
	}
}

func TestInvalidInput(t *testing.T) {
	t.Run("isolated high surrogate to UTF-8", func(t *testing.T) {
		out, err := ToUTF8(UTF16{0xD800})
		if out != nil {
			t.Errorf("partial result % X", out)
		}
		if !errors.Is(err, errors.ErrInvalidEncoding) {
			t.Fatalf("err = %v, want invalid encoding", err)
		}
	})

	t.Run("isolated high surrogate to UTF-32", func(t *testing.T) {
		_, err := ToUTF32(UTF16{'a', 0xD800, 'b'})
		if !errors.IsInvalidEncoding(err) {
			t.Fatalf("err = %v, want invalid encoding", err)
		}
		if got := err.(*errors.Error).Offset; got != 1 {
			t.Errorf("Offset = %d, want 1", got)
		}
	})

	t.Run("surrogate codepoint to UTF-16", func(t *testing.T) {
		if _, err := ToUTF16(UTF32{0xDC00}); !errors.IsInvalidEncoding(err) {
			t.Errorf("err = %v, want invalid encoding", err)
		}
	})

	t.Run("codepoint above max", func(t *testing.T) {
		if _, err := ToUTF8(UTF32{0x110000}); !errors.IsInvalidEncoding(err) {
			t.Errorf("err = %v, want invalid encoding", err)
		}
	})

	t.Run("malformed UTF-8", func(t *testing.T) {
		if _, err := ToUTF16(UTF8{0xC3}); !errors.IsInvalidEncoding(err) {
			t.Errorf("err = %v, want invalid encoding", err)
		}
		if _, err := ToWString(UTF8{0xFF, 'a'}); !errors.IsInvalidEncoding(err) {
			t.Errorf("err = %v, want invalid encoding", err)
		}
	})

	t.Run("declared order matters", func(t *testing.T) {
		// 0x00D8 stored in the opposite order is the unit 0xD800.
		if _, err := ToUTF8(UTF16{0x00D8}, From(endian.HostOrder().Opposite())); !errors.IsInvalidEncoding(err) {
			t.Errorf("err = %v, want invalid encoding", err)
		}
	})
}

func TestEmptyInput(t *testing.T) {
	u8, err := ToUTF8(UTF16{})
	if err != nil || u8 == nil || len(u8) != 0 {
		t.Errorf("ToUTF8(empty) = %v, %v", u8, err)
	}
	u16, err := ToUTF16(UTF32(nil))
	if err != nil || u16 == nil || len(u16) != 0 {
		t.Errorf("ToUTF16(nil) = %v, %v", u16, err)
	}
	u32, err := ToUTF32(Narrow{})
	if err != nil || u32 == nil || len(u32) != 0 {
		t.Errorf("ToUTF32(empty) = %v, %v", u32, err)
	}
	n, err := ToString(UTF8{})
	if err != nil || n == nil || len(n) != 0 {
		t.Errorf("ToString(empty) = %v, %v", n, err)
	}
	w, err := ToWString(UTF16{})
	if err != nil || w == nil || len(w) != 0 {
		t.Errorf("ToWString(empty) = %v, %v", w, err)
	}
}

func TestInputsNotMutated(t *testing.T) {
	u16 := slices.Clone(sampleUTF16)
	u32 := slices.Clone(sampleUTF32)
	opposite := endian.HostOrder().Opposite()

	swapped16 := ChangeEndianCopy(u16)
	swapped32 := ChangeEndianCopy(u32)
	keep16 := slices.Clone(swapped16)
	keep32 := slices.Clone(swapped32)

	if _, err := ToUTF32(swapped16, From(opposite)); err != nil {
		t.Fatalf("ToUTF32: %v", err)
	}
	if _, err := ToUTF16(swapped32, From(opposite)); err != nil {
		t.Fatalf("ToUTF16: %v", err)
	}
	if _, err := ToUTF8(swapped16, From(opposite)); err != nil {
		t.Fatalf("ToUTF8: %v", err)
	}
	if !slices.Equal(swapped16, keep16) || !slices.Equal(swapped32, keep32) {
		t.Error("conversion mutated its input")
	}

	u8 := slices.Clone(sampleUTF8)
	w, err := ToWString(u8)
	if err != nil {
		t.Fatalf("ToWString: %v", err)
	}
	if !bytes.Equal(u8, sampleUTF8) {
		t.Error("ToWString mutated its input")
	}
	if len(w) != len(sampleUTF32) && len(w) != len(sampleUTF16) {
		t.Errorf("ToWString produced %d units", len(w))
	}
}

func TestWide(t *testing.T) {
	w, err := ToWString(sampleUTF8)
	if err != nil {
		t.Fatalf("ToWString: %v", err)
	}

	back, err := ToUTF8(w)
	if err != nil {
		t.Fatalf("ToUTF8(Wide): %v", err)
	}
	if !bytes.Equal(back, sampleUTF8) {
		t.Errorf("ToUTF8(Wide) = % X, want % X", back, sampleUTF8)
	}

	u16, err := ToUTF16(w)
	if err != nil {
		t.Fatalf("ToUTF16(Wide): %v", err)
	}
	if !slices.Equal(u16, sampleUTF16) {
		t.Errorf("ToUTF16(Wide) = %04X, want %04X", u16, sampleUTF16)
	}

	u32, err := ToUTF32(w)
	if err != nil {
		t.Fatalf("ToUTF32(Wide): %v", err)
	}
	if !slices.Equal(u32, sampleUTF32) {
		t.Errorf("ToUTF32(Wide) = %X, want %X", u32, sampleUTF32)
	}

	for _, src := range []any{sampleUTF16, sampleUTF32} {
		var got Wide
		switch v := src.(type) {
		case UTF16:
			got, err = ToWString(v)
		case UTF32:
			got, err = ToWString(v)
		}
		if err != nil {
			t.Fatalf("ToWString(%T): %v", src, err)
		}
		if !slices.Equal(got, w) {
			t.Errorf("ToWString(%T) = %X, want %X", src, got, w)
		}
	}
}

func TestNarrowRoundTrip(t *testing.T) {
	if Backend() != "named" {
		t.Skip("narrow encoding is fixed by the OS code page on the native backend")
	}
	if err := Configure(&Config{NarrowEncoding: "GB18030"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer Configure(nil)

	narrow := Narrow{0xC4, 0xE3, 'a', 0xBA, 0xC3, 'b', 'c'}

	u16, err := ToUTF16(narrow)
	if err != nil {
		t.Fatalf("ToUTF16: %v", err)
	}
	if !slices.Equal(u16, UTF16{0x4F60, 'a', 0x597D, 'b', 'c'}) {
		t.Errorf("ToUTF16 = %04X", u16)
	}

	back, err := ToString(u16)
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if !bytes.Equal(back, narrow) {
		t.Errorf("ToString = % X, want % X", back, narrow)
	}

	for name, conv := range map[string]func() (Narrow, error){
		"utf8":  func() (Narrow, error) { return ToString(UTF8("你a好bc")) },
		"utf32": func() (Narrow, error) { return ToString(UTF32{0x4F60, 'a', 0x597D, 'b', 'c'}) },
	} {
		got, err := conv()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(got, narrow) {
			t.Errorf("%s = % X, want % X", name, got, narrow)
		}
	}

	w, err := ToWString(narrow)
	if err != nil {
		t.Fatalf("ToWString: %v", err)
	}
	again, err := ToString(w)
	if err != nil {
		t.Fatalf("ToString(Wide): %v", err)
	}
	if !bytes.Equal(again, narrow) {
		t.Errorf("ToString(Wide) = % X, want % X", again, narrow)
	}

	if _, err := ToString(UTF8("😀")); err != nil {
		t.Errorf("GB18030 should represent U+1F600: %v", err)
	}
}

func TestUnrepresentableNarrow(t *testing.T) {
	if Backend() != "named" {
		t.Skip("narrow encoding is fixed by the OS code page on the native backend")
	}
	if err := Configure(&Config{NarrowEncoding: "ISO-8859-1"}); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	defer Configure(nil)

	out, err := ToString(UTF8("a你"))
	if out != nil {
		t.Errorf("partial result % X", out)
	}
	if !errors.Is(err, errors.ErrInvalidEncoding) {
		t.Fatalf("err = %v, want invalid encoding", err)
	}
}
