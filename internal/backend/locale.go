package backend

import (
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/codecvt/errors"
)

var narrowOverride atomic.Pointer[string]

// SetNarrow overrides the narrow encoding. An empty name restores locale
// detection. The name must be a byte-oriented encoding the named engine can
// open.
func SetNarrow(name string) error {
	if name == "" {
		narrowOverride.Store(nil)
		Logger().Debug("narrow encoding override cleared")
		return nil
	}
	if c := canonical(name); c == Narrow || c == Wide || UnitWidth(name) != 1 {
		return errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("narrow encoding %q must be byte oriented", name))
	}
	cs, err := lookup(name)
	if err != nil {
		return errors.Unsupported(errors.PhaseConfig, name, err)
	}
	narrowOverride.Store(&cs.name)
	Logger().Debug("narrow encoding override set", zap.String("encoding", cs.name))
	return nil
}

// NarrowName returns the encoding behind the Narrow name: the override when
// one is set, otherwise the encoding detected from the host.
func NarrowName() string {
	if p := narrowOverride.Load(); p != nil {
		return *p
	}
	return detectNarrow()
}

// narrowOverridden reports whether SetNarrow replaced host detection.
func narrowOverridden() bool {
	return narrowOverride.Load() != nil
}

// codepageName maps a Windows ANSI code page to an encoding name.
func codepageName(cp uint32) string {
	switch cp {
	case cpUTF8:
		return UTF8
	case 932:
		return "Shift_JIS"
	case 936:
		return "GBK"
	case 949:
		return "EUC-KR"
	case 950:
		return "Big5"
	case 20127:
		return "US-ASCII"
	case 28591:
		return "ISO-8859-1"
	default:
		return fmt.Sprintf("windows-%d", cp)
	}
}
