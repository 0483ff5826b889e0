//go:build !windows

package codecvt

// WChar is one host wide character.
type WChar = uint32

const wcharSize = 4
