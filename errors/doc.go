// Package errors provides structured error types for the codecvt library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the source and target encoding names, the offset of the
// offending code unit and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidEncoding).
//		From("UTF-16LE").
//		To("UTF-8").
//		Offset(3).
//		Detail("unpaired surrogate 0x%04X", 0xD800).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidUnit(errors.PhaseDecode, "UTF-16", 3, 0xD800, "unpaired surrogate")
//	err := errors.Unsupported(errors.PhaseOpen, "EBCDIC-XYZ", nil)
//
// The two kinds every conversion can fail with have phase-agnostic sentinels:
//
//	if errors.Is(err, errors.ErrInvalidEncoding) { ... }
//	if errors.Is(err, errors.ErrEncodingUnsupported) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
