package main

import (
	"bytes"
	"testing"
)

func mustEncoding(t *testing.T, name string) encoding {
	t.Helper()
	e, err := lookupEncoding(name)
	if err != nil {
		t.Fatalf("lookupEncoding(%q): %v", name, err)
	}
	return e
}

func TestLookupEncoding(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"utf-8", "utf-8"},
		{"UTF8", "utf-8"},
		{"UTF_16LE", "utf-16le"},
		{"utf-32be", "utf-32be"},
		{"WCHAR_T", "wide"},
		{"char", "narrow"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := mustEncoding(t, tt.in).name; got != tt.want {
				t.Errorf("lookupEncoding(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if _, err := lookupEncoding("ebcdic"); err == nil {
		t.Error("lookupEncoding(ebcdic) succeeded")
	}
}

func TestTranscode(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		in, want []byte
	}{
		{"utf8 to utf16le", "utf-8", "utf-16le", []byte("a你"), []byte{0x61, 0x00, 0x60, 0x4F}},
		{"utf8 to utf16be", "utf-8", "utf-16be", []byte("a你"), []byte{0x00, 0x61, 0x4F, 0x60}},
		{"utf8 to utf32be", "utf-8", "utf-32be", []byte("😀"), []byte{0x00, 0x01, 0xF6, 0x00}},
		{"utf16be to utf32le", "utf-16be", "utf-32le", []byte{0xD8, 0x3D, 0xDE, 0x00}, []byte{0x00, 0xF6, 0x01, 0x00}},
		{"utf32le to utf8", "utf-32le", "utf-8", []byte{0x60, 0x4F, 0x00, 0x00}, []byte("你")},
		{"utf8 identity", "utf-8", "utf-8", []byte("héllo"), []byte("héllo")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transcode(mustEncoding(t, tt.from), mustEncoding(t, tt.to), tt.in)
			if err != nil {
				t.Fatalf("transcode: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got % X, want % X", got, tt.want)
			}
		})
	}
}

func TestTranscode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		from string
		in   []byte
	}{
		{"bad utf8", "utf-8", []byte{'a', 0xFF}},
		{"odd utf16", "utf-16le", []byte{0x61, 0x00, 0x62}},
		{"lone surrogate", "utf-16le", []byte{0x00, 0xD8}},
		{"utf32 out of range", "utf-32le", []byte{0x00, 0x00, 0x11, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := transcode(mustEncoding(t, tt.from), mustEncoding(t, "utf-8"), tt.in); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWideRoundTrip(t *testing.T) {
	wide := mustEncoding(t, "wide")
	out, err := transcode(mustEncoding(t, "utf-8"), wide, []byte("a😀"))
	if err != nil {
		t.Fatalf("transcode: %v", err)
	}
	if w := unitWidth(wide); len(out)%w != 0 {
		t.Fatalf("len %d not a multiple of %d", len(out), w)
	}
	back, err := transcode(wide, mustEncoding(t, "utf-8"), out)
	if err != nil {
		t.Fatalf("transcode back: %v", err)
	}
	if string(back) != "a😀" {
		t.Errorf("round trip = %q", back)
	}
}

func TestUnits(t *testing.T) {
	if got := units([]byte{0x61, 0x00, 0x60, 0x4F}, 2); got != "6100 604F" {
		t.Errorf("units = %q", got)
	}
	if got := units([]byte{0x61, 0x62, 0x63}, 2); got != "6162 63" {
		t.Errorf("units partial = %q", got)
	}
}

func TestRun_TextFlagConflicts(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		inFile string
	}{
		{"non utf-8 source", "utf-16le", ""},
		{"narrow source", "narrow", ""},
		{"with input file", "utf-8", "input.txt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(tt.from, "utf-8", tt.inFile, "", "abc", false); err == nil {
				t.Error("expected error")
			}
		})
	}
}
