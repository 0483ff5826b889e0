//go:build windows

package backend

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procMultiByteToWideChar = modkernel32.NewProc("MultiByteToWideChar")
	procWideCharToMultiByte = modkernel32.NewProc("WideCharToMultiByte")
	procGetACP              = modkernel32.NewProc("GetACP")
)

const (
	mbErrInvalidChars = 0x00000008
	wcErrInvalidChars = 0x00000080
)

// activeCodePage is read once; Windows applies a code page change at reboot.
var activeCodePage = sync.OnceValue(func() uint32 {
	acp, _, _ := procGetACP.Call()
	return uint32(acp)
})

// Kernel32 is the WideCodec backed by MultiByteToWideChar and
// WideCharToMultiByte.
type Kernel32 struct{}

// ANSICodePage returns the result of GetACP.
func (Kernel32) ANSICodePage() uint32 { return activeCodePage() }

func (Kernel32) ToWide(codepage uint32, in []byte) ([]uint16, error) {
	if len(in) == 0 {
		return []uint16{}, nil
	}
	n, err := multiByteToWideChar(codepage, in, nil)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	if _, err := multiByteToWideChar(codepage, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (Kernel32) FromWide(codepage uint32, in []uint16) ([]byte, error) {
	if len(in) == 0 {
		return []byte{}, nil
	}
	n, err := wideCharToMultiByte(codepage, in, nil)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	if _, err := wideCharToMultiByte(codepage, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// multiByteToWideChar measures when out is nil and converts otherwise.
func multiByteToWideChar(codepage uint32, in []byte, out []uint16) (int, error) {
	var dst uintptr
	if len(out) > 0 {
		dst = uintptr(unsafe.Pointer(&out[0]))
	}
	ret, _, err := procMultiByteToWideChar.Call(
		uintptr(codepage),
		uintptr(mbErrInvalidChars),
		uintptr(unsafe.Pointer(&in[0])),
		uintptr(len(in)),
		dst,
		uintptr(len(out)),
	)
	if ret == 0 {
		return 0, fmt.Errorf("MultiByteToWideChar failed: %w", err)
	}
	return int(ret), nil
}

// wideCharToMultiByte measures when out is nil and converts otherwise.
// WC_ERR_INVALID_CHARS is only accepted for UTF-8, and UTF-8 requires a nil
// used-default pointer.
func wideCharToMultiByte(codepage uint32, in []uint16, out []byte) (int, error) {
	if codepage == cpACP && activeCodePage() == cpUTF8 {
		codepage = cpUTF8
	}
	var flags uintptr
	if codepage == cpUTF8 {
		flags = wcErrInvalidChars
	}
	var dst uintptr
	if len(out) > 0 {
		dst = uintptr(unsafe.Pointer(&out[0]))
	}
	var usedDefault int32
	var usedDefaultPtr uintptr
	if codepage != cpUTF8 {
		usedDefaultPtr = uintptr(unsafe.Pointer(&usedDefault))
	}
	ret, _, err := procWideCharToMultiByte.Call(
		uintptr(codepage),
		flags,
		uintptr(unsafe.Pointer(&in[0])),
		uintptr(len(in)),
		dst,
		uintptr(len(out)),
		0,
		usedDefaultPtr,
	)
	if ret == 0 {
		return 0, fmt.Errorf("WideCharToMultiByte failed: %w", err)
	}
	if usedDefault != 0 {
		return 0, fmt.Errorf("WideCharToMultiByte: character not representable in code page %d", codepage)
	}
	return int(ret), nil
}

// detectNarrow maps the active ANSI code page to an encoding name.
func detectNarrow() string {
	return codepageName(activeCodePage())
}
