// Package endian normalizes the byte order of UTF-16 and UTF-32 code units.
//
// A buffer's Order describes the physical bytes of each unit in memory. A unit
// 0x0041 declared Big on a little-endian host is stored as 41 00 and therefore
// reads back as 0x4100. Nothing in this package fails.
package endian

import (
	"math/bits"
	"slices"
	"sync"
	"unsafe"
)

// Order is the byte order of a UTF-16 or UTF-32 buffer.
type Order uint8

const (
	// Host is the zero value and stands for the byte order of the running machine.
	Host Order = iota
	Big
	Little
)

func (o Order) String() string {
	switch o {
	case Host:
		return "host"
	case Big:
		return "big"
	case Little:
		return "little"
	default:
		return "unknown"
	}
}

// Resolve maps Host to the concrete order of the running machine.
func (o Order) Resolve() Order {
	if o == Host {
		return HostOrder()
	}
	return o
}

// Opposite returns the other concrete order.
func (o Order) Opposite() Order {
	if o.Resolve() == Big {
		return Little
	}
	return Big
}

var hostIsBig = sync.OnceValue(func() bool {
	probe := uint32(0x01020304)
	return *(*byte)(unsafe.Pointer(&probe)) == 0x01
})

// HostIsBigEndian reports whether the running machine stores the most
// significant byte first. The answer is computed once.
func HostIsBigEndian() bool {
	return hostIsBig()
}

// HostOrder returns Big or Little for the running machine.
func HostOrder() Order {
	if hostIsBig() {
		return Big
	}
	return Little
}

// Unit is a fixed-width code unit.
type Unit interface {
	~uint16 | ~uint32
}

// Swap reverses the bytes of one unit.
func Swap[E Unit](u E) E {
	if unsafe.Sizeof(u) == 2 {
		return E(bits.ReverseBytes16(uint16(u)))
	}
	return E(bits.ReverseBytes32(uint32(u)))
}

// SwapInPlace reverses the bytes of every unit in s.
func SwapInPlace[S ~[]E, E Unit](s S) {
	for i, u := range s {
		s[i] = Swap(u)
	}
}

// SwapCopy returns a byte-swapped copy of s. The input is left untouched.
func SwapCopy[S ~[]E, E Unit](s S) S {
	out := make(S, len(s))
	for i, u := range s {
		out[i] = Swap(u)
	}
	return out
}

// TerminatedLen returns the number of units before the first zero unit, or
// len(s) when there is none.
func TerminatedLen[S ~[]E, E Unit](s S) int {
	for i, u := range s {
		if u == 0 {
			return i
		}
	}
	return len(s)
}

// SwapTerminated swaps the units preceding the first zero unit in place.
func SwapTerminated[S ~[]E, E Unit](s S) {
	SwapInPlace(s[:TerminatedLen(s)])
}

// SwapTerminatedCopy returns the swapped units preceding the first zero unit.
func SwapTerminatedCopy[S ~[]E, E Unit](s S) S {
	return SwapCopy(s[:TerminatedLen(s)])
}

// Normalize converts s from actual to desired order in place.
// It is a no-op when both resolve to the same order.
func Normalize[S ~[]E, E Unit](s S, actual, desired Order) {
	if actual.Resolve() == desired.Resolve() {
		return
	}
	SwapInPlace(s)
}

// NormalizeCopy is Normalize on a fresh slice. The result never aliases s.
func NormalizeCopy[S ~[]E, E Unit](s S, actual, desired Order) S {
	if actual.Resolve() == desired.Resolve() {
		out := make(S, len(s))
		copy(out, s)
		return out
	}
	return SwapCopy(s)
}

// ToBig converts host-order units to big-endian in place.
func ToBig[S ~[]E, E Unit](s S) { Normalize(s, Host, Big) }

// ToLittle converts host-order units to little-endian in place.
func ToLittle[S ~[]E, E Unit](s S) { Normalize(s, Host, Little) }

// ToBigCopy returns a big-endian copy of host-order units.
func ToBigCopy[S ~[]E, E Unit](s S) S { return NormalizeCopy(s, Host, Big) }

// ToLittleCopy returns a little-endian copy of host-order units.
func ToLittleCopy[S ~[]E, E Unit](s S) S { return NormalizeCopy(s, Host, Little) }

// ToBigTerminated converts the units preceding the first zero unit to
// big-endian in place.
func ToBigTerminated[S ~[]E, E Unit](s S) {
	Normalize(s[:TerminatedLen(s)], Host, Big)
}

// ToLittleTerminated converts the units preceding the first zero unit to
// little-endian in place.
func ToLittleTerminated[S ~[]E, E Unit](s S) {
	Normalize(s[:TerminatedLen(s)], Host, Little)
}

// Bytes returns a copy of the in-memory bytes of s.
func Bytes[S ~[]E, E Unit](s S) []byte {
	if len(s) == 0 {
		return []byte{}
	}
	size := int(unsafe.Sizeof(s[0]))
	raw := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData([]E(s)))), len(s)*size)
	return slices.Clone(raw)
}

// FromBytes builds units from their in-memory bytes. It reports false when
// len(b) is not a multiple of the unit size.
func FromBytes[E Unit](b []byte) ([]E, bool) {
	var zero E
	size := int(unsafe.Sizeof(zero))
	if len(b)%size != 0 {
		return nil, false
	}
	out := make([]E, len(b)/size)
	if len(out) > 0 {
		dst := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(out))), len(b))
		copy(dst, b)
	}
	return out, true
}
