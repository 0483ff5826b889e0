//go:build !windows

package backend

import "github.com/wippyai/codecvt/endian"

// WideWidth is the size of one wide character on this platform.
const WideWidth = 4

// wideName is the concrete encoding behind the Wide name.
func wideName() string {
	return UTF32Name(endian.Host)
}
