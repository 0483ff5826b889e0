package codecvt

import "github.com/wippyai/codecvt/endian"

// IsBigEndian reports whether the host stores the most significant byte first.
func IsBigEndian() bool {
	return endian.HostIsBigEndian()
}

// ChangeEndian swaps the bytes of every unit of s in place.
func ChangeEndian[S ~[]E, E endian.Unit](s S) {
	endian.SwapInPlace(s)
}

// ChangeEndianCopy returns a byte-swapped copy of s.
func ChangeEndianCopy[S ~[]E, E endian.Unit](s S) S {
	return endian.SwapCopy(s)
}

// ChangeEndianTerminated swaps, in place, the units of s that precede the
// first zero unit.
func ChangeEndianTerminated[S ~[]E, E endian.Unit](s S) {
	endian.SwapTerminated(s)
}

// ToBigEndian converts host-order units to big-endian in place.
func ToBigEndian[S ~[]E, E endian.Unit](s S) {
	endian.ToBig(s)
}

// ToBigEndianCopy returns a big-endian copy of host-order units.
func ToBigEndianCopy[S ~[]E, E endian.Unit](s S) S {
	return endian.ToBigCopy(s)
}

// ToLittleEndian converts host-order units to little-endian in place.
func ToLittleEndian[S ~[]E, E endian.Unit](s S) {
	endian.ToLittle(s)
}

// ToLittleEndianCopy returns a little-endian copy of host-order units.
func ToLittleEndianCopy[S ~[]E, E endian.Unit](s S) S {
	return endian.ToLittleCopy(s)
}
