// Package canon lifts and lowers WebAssembly Component Model strings between
// Go and wazero guest memory.
//
// # Encodings
//
//   - StringEncodingUTF8: length in bytes, alignment 1
//   - StringEncodingUTF16: UTF-16LE, length in code units, alignment 2
//   - StringEncodingLatin1UTF16: Latin-1 when every character fits in a byte,
//     otherwise UTF-16LE with bit 31 of the length set
//
// Guest text is validated on the way in and Go text on the way out. Memory is
// allocated through the guest's realloc export, called as
// realloc(0, 0, align, size).
//
// # Example
//
//	opts := canon.Options{
//		Memory:   mod.Memory(),
//		Realloc:  mod.ExportedFunction("cabi_realloc"),
//		Encoding: canon.StringEncodingUTF16,
//	}
//	ptr, n, err := canon.LowerString(ctx, opts, "你好")
//	s, err := canon.LiftString(ctx, opts, ptr, n)
package canon
