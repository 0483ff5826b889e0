package codecvt

import (
	"bytes"
	"slices"
	"testing"

	"github.com/wippyai/codecvt/errors"
)

func TestByteViews(t *testing.T) {
	u16 := UTF16{0x0041, 0xD83D, 0xDE00}
	back16, err := UTF16FromBytes(u16.Bytes())
	if err != nil {
		t.Fatalf("UTF16FromBytes: %v", err)
	}
	if !slices.Equal(back16, u16) {
		t.Errorf("UTF16 round trip = %04X, want %04X", back16, u16)
	}

	u32 := UTF32{0x1F600, 'x'}
	back32, err := UTF32FromBytes(u32.Bytes())
	if err != nil {
		t.Fatalf("UTF32FromBytes: %v", err)
	}
	if !slices.Equal(back32, u32) {
		t.Errorf("UTF32 round trip = %X, want %X", back32, u32)
	}

	w := Wide{'h', 'i'}
	backW, err := WideFromBytes(w.Bytes())
	if err != nil {
		t.Fatalf("WideFromBytes: %v", err)
	}
	if !slices.Equal(backW, w) {
		t.Errorf("Wide round trip = %X, want %X", backW, w)
	}
}

func TestByteViews_Copy(t *testing.T) {
	u16 := UTF16{0x0041}
	raw := u16.Bytes()
	raw[0], raw[1] = 0xFF, 0xFF
	if u16[0] != 0x0041 {
		t.Error("Bytes aliases the buffer")
	}
}

func TestByteViews_PartialUnit(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"utf16", func() error { _, err := UTF16FromBytes([]byte{1, 2, 3}); return err }},
		{"utf32", func() error { _, err := UTF32FromBytes([]byte{1, 2, 3, 4, 5}); return err }},
		{"wide", func() error { _, err := WideFromBytes([]byte{1}); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.IsInvalidEncoding(err) {
				t.Errorf("err = %v, want invalid encoding", err)
			}
		})
	}
}

func TestEndianHelpers(t *testing.T) {
	if IsBigEndian() != (LittleEndian.Opposite() == HostEndian.Resolve()) {
		t.Error("IsBigEndian disagrees with the resolved host order")
	}

	u16 := UTF16{0x0041, 0x4F60}
	swapped := ChangeEndianCopy(u16)
	if !slices.Equal(swapped, UTF16{0x4100, 0x604F}) {
		t.Errorf("ChangeEndianCopy = %04X", swapped)
	}
	if u16[0] != 0x0041 {
		t.Error("ChangeEndianCopy mutated its input")
	}

	ChangeEndian(swapped)
	if !slices.Equal(swapped, u16) {
		t.Errorf("ChangeEndian = %04X, want %04X", swapped, u16)
	}

	term := UTF32{0x41, 0x42, 0, 0x43}
	ChangeEndianTerminated(term)
	want := UTF32{0x41000000, 0x42000000, 0, 0x43}
	if !slices.Equal(term, want) {
		t.Errorf("ChangeEndianTerminated = %08X, want %08X", term, want)
	}

	big := ToBigEndianCopy(UTF16{0x0041})
	if !bytes.Equal(big.Bytes(), []byte{0x00, 0x41}) {
		t.Errorf("ToBigEndianCopy bytes = % X", big.Bytes())
	}
	little := ToLittleEndianCopy(UTF16{0x0041})
	if !bytes.Equal(little.Bytes(), []byte{0x41, 0x00}) {
		t.Errorf("ToLittleEndianCopy bytes = % X", little.Bytes())
	}

	inPlace := UTF32{0x1F600}
	ToBigEndian(inPlace)
	if !bytes.Equal(inPlace.Bytes(), []byte{0x00, 0x01, 0xF6, 0x00}) {
		t.Errorf("ToBigEndian bytes = % X", inPlace.Bytes())
	}
	inPlace = UTF32{0x1F600}
	ToLittleEndian(inPlace)
	if !bytes.Equal(inPlace.Bytes(), []byte{0x00, 0xF6, 0x01, 0x00}) {
		t.Errorf("ToLittleEndian bytes = % X", inPlace.Bytes())
	}
}
