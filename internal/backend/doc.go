// Package backend implements the conversion engines behind the public codecvt
// API.
//
// # Converters
//
//   - Named: the golang.org/x/text engine, addressed by encoding name.
//   - Native: pivots through host-order UTF-16 using a WideCodec. On Windows
//     the codec is Kernel32 (MultiByteToWideChar / WideCharToMultiByte).
//
// Active is chosen at build time. Windows builds use Native unless the
// codecvt_named tag is set; every other platform uses Named.
//
// # Encoding Names
//
// UTF-8, UTF-16LE, UTF-16BE, UTF-32LE and UTF-32BE are built in. CHAR names
// the host narrow encoding and WCHAR_T the host wide encoding. Any other name
// is resolved through the IANA index.
//
// # Strictness
//
// x/text decoders replace malformed input with U+FFFD. The named engine
// validates input before decoding and rejects replacement characters that did
// not come from the source, so malformed text always fails with an
// invalid_encoding error.
package backend
