package codecvt

import (
	"go.uber.org/zap"

	"github.com/wippyai/codecvt/internal/backend"
)

// Config holds process-wide conversion settings.
type Config struct {
	// Logger receives debug logs from conversions.
	// nil leaves the current logger in place.
	Logger *zap.Logger

	// NarrowEncoding overrides the host narrow encoding, e.g. "GB18030" or
	// "windows-1252". Empty means detect it from the host: the locale
	// variables LC_ALL, LC_CTYPE and LANG on Unix, the ANSI code page on Windows.
	NarrowEncoding string
}

// Configure applies cfg. A nil cfg restores the defaults: host detection of
// the narrow encoding and a no-op logger.
// An unknown NarrowEncoding fails with an encoding_unsupported error and
// leaves the previous setting in effect.
func Configure(cfg *Config) error {
	if cfg == nil {
		SetLogger(nil)
		return backend.SetNarrow("")
	}
	if err := backend.SetNarrow(cfg.NarrowEncoding); err != nil {
		return err
	}
	if cfg.Logger != nil {
		SetLogger(cfg.Logger)
	}
	Logger().Debug("configured", zap.String("narrow", NarrowEncoding()), zap.String("backend", Backend()))
	return nil
}

// NarrowEncoding returns the encoding currently used for Narrow text.
func NarrowEncoding() string {
	return backend.NarrowName()
}

// Backend reports the converter compiled into this build: "native" or "named".
func Backend() string {
	return backend.Active.Name()
}
