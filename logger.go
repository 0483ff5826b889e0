package codecvt

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/codecvt/internal/backend"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the logger for this package and its backend.
// This must be called before any conversions run. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	backend.SetLogger(l.Named("backend"))
}
