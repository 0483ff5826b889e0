// Package codecvt converts text between UTF-8, UTF-16, UTF-32, the host wide
// encoding and the host narrow (locale) encoding.
//
// Conversions are strict: malformed input and characters the target cannot
// represent fail with an *errors.Error instead of being replaced. UTF-16 and
// UTF-32 buffers carry an explicit byte order on both sides of a conversion.
//
// # Architecture Overview
//
//	codecvt/             Root package with the conversion functions and buffer types
//	├── codepoint/       Surrogate arithmetic and UTF-8/16/32 codepoint mapping
//	├── endian/          Byte-order detection and normalization
//	├── errors/          Structured error types
//	├── canon/           Component Model string lifting and lowering over wazero memory
//	├── internal/backend Named x/text engine and native Win32 converter
//	└── cmd/codecvt/     Command-line converter and interactive viewer
//
// # Quick Start
//
//	u8, err := codecvt.ToUTF8(codecvt.UTF32{0x4F60, 'a', 0x1F600})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	be, err := codecvt.ToUTF16(u8, codecvt.To(codecvt.BigEndian))
//
// # Byte Order
//
// The order of a UTF16 or UTF32 buffer describes the physical bytes of each
// unit. From sets the order of a UTF-16/UTF-32 source and To the order of a
// UTF-16/UTF-32 result; both default to host order and are ignored when they
// do not apply. Wide buffers are always in host order.
//
// # Backends
//
// Windows builds convert through MultiByteToWideChar and WideCharToMultiByte.
// All other builds, and Windows builds with the codecvt_named tag, use the
// golang.org/x/text engine. Backend reports which one is compiled in.
//
// # Thread Safety
//
// Conversion functions are safe for concurrent use. The in-place byte-order
// helpers mutate their argument and must not race with other users of it.
package codecvt
