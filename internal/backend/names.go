package backend

import (
	"strings"

	"github.com/wippyai/codecvt/endian"
)

// Built-in encoding names understood by every converter.
const (
	UTF8    = "UTF-8"
	UTF16LE = "UTF-16LE"
	UTF16BE = "UTF-16BE"
	UTF32LE = "UTF-32LE"
	UTF32BE = "UTF-32BE"

	// Narrow is the host locale encoding.
	Narrow = "CHAR"
	// Wide is the host wide-character encoding.
	Wide = "WCHAR_T"
)

// Converter transcodes raw bytes between two named encodings. The input and
// output are laid out as the names describe, including byte order.
type Converter interface {
	Name() string
	Convert(in []byte, from, to string) ([]byte, error)
}

// UTF16Name returns the UTF-16 name for a byte order.
func UTF16Name(o endian.Order) string {
	if o.Resolve() == endian.Big {
		return UTF16BE
	}
	return UTF16LE
}

// UTF32Name returns the UTF-32 name for a byte order.
func UTF32Name(o endian.Order) string {
	if o.Resolve() == endian.Big {
		return UTF32BE
	}
	return UTF32LE
}

// UnitWidth returns the size in bytes of one code unit of the named encoding.
// Names outside the UTF-16/UTF-32 families are byte oriented.
func UnitWidth(name string) int {
	switch canonical(name) {
	case UTF16LE, UTF16BE:
		return 2
	case UTF32LE, UTF32BE:
		return 4
	case Wide:
		return WideWidth
	default:
		return 1
	}
}

// canonical folds the spellings of the built-in names. Other names are
// returned unchanged.
func canonical(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch n {
	case "UTF-8", "UTF8":
		return UTF8
	case "UTF-16LE", "UTF16LE":
		return UTF16LE
	case "UTF-16BE", "UTF16BE":
		return UTF16BE
	case "UTF-32LE", "UTF32LE":
		return UTF32LE
	case "UTF-32BE", "UTF32BE":
		return UTF32BE
	case Narrow:
		return Narrow
	case Wide, "WCHAR":
		return Wide
	}
	return name
}

func orderOf(name string) endian.Order {
	switch name {
	case UTF16BE, UTF32BE:
		return endian.Big
	default:
		return endian.Little
	}
}
