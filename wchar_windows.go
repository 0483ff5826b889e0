//go:build windows

package codecvt

// WChar is one host wide character.
type WChar = uint16

const wcharSize = 2
