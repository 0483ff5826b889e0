//go:build windows && !codecvt_named

package backend

// Active is the converter compiled into this build.
var Active Converter = NewNative(Kernel32{}, Named)
